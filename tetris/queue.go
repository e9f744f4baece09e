package tetris

import "math/rand/v2"

// startKinds seeds every new queue.
var startKinds = []Kind{T, J, I, Z}

// Queue is the fixed length look-ahead of upcoming kinds. Index 0 is the
// falling piece.
type Queue struct {
	kinds []Kind
	rand  *rand.Rand
}

func newQueue(length int, r *rand.Rand) *Queue {
	q := &Queue{kinds: make([]Kind, length), rand: r}
	for i := range q.kinds {
		if i < len(startKinds) {
			q.kinds[i] = startKinds[i]
			continue
		}
		q.kinds[i] = q.random()
	}
	return q
}

func (q *Queue) Head() Kind { return q.kinds[0] }
func (q *Queue) Len() int   { return len(q.kinds) }

// Kinds returns a copy of the queue, head first.
func (q *Queue) Kinds() []Kind {
	k := make([]Kind, len(q.kinds))
	copy(k, q.kinds)
	return k
}

// Preview returns a copy of the kinds after the head.
func (q *Queue) Preview() []Kind {
	return q.Kinds()[1:]
}

// advance drops the head and appends a random kind.
func (q *Queue) advance() {
	copy(q.kinds, q.kinds[1:])
	q.kinds[len(q.kinds)-1] = q.random()
}

func (q *Queue) random() Kind {
	return Kinds[q.rand.IntN(len(Kinds))]
}

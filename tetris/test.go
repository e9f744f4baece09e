package tetris

import (
	"math/rand/v2"
	"sync"
	"time"
)

// MockClock records the pauses it is asked for without sleeping.
type MockClock struct {
	sleeps []time.Duration
	mu     sync.Mutex
}

func (m *MockClock) Sleep(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sleeps = append(m.sleeps, d)
}

func (m *MockClock) Sleeps() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.sleeps...)
}

// MockRenderer records every notification it receives.
type MockRenderer struct {
	Frames    []*Snapshot
	Flashes   []int
	Scores    []int
	Queues    [][]Kind
	GameOvers []int
	mu        sync.Mutex
}

func (m *MockRenderer) Frame(s *Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Frames = append(m.Frames, s)
}

func (m *MockRenderer) Flash(row int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Flashes = append(m.Flashes, row)
}

func (m *MockRenderer) Score(score int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Scores = append(m.Scores, score)
}

func (m *MockRenderer) Queue(preview []Kind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Queues = append(m.Queues, preview)
}

func (m *MockRenderer) GameOver(score int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GameOvers = append(m.GameOvers, score)
}

// TestOptions returns default rules with a seeded random source, a MockClock
// and a MockRenderer so tests run without pauses.
func TestOptions() (*Options, *MockRenderer, *MockClock) {
	r, c := &MockRenderer{}, &MockClock{}
	o := DefaultOptions()
	o.Clock = c
	o.Renderer = r
	o.Rand = rand.New(rand.NewPCG(1, 2))
	return o.withDefaults(), r, c
}

// NewTestTetris creates a session on an empty board with kind falling from
// the spawn location.
func NewTestTetris(kind Kind) *Tetris {
	o, _, _ := TestOptions()
	t := newTetris(o)
	t.draw(false)
	t.Queue.kinds[0] = kind
	t.spawn()
	return t
}

// NewTestGame creates a game around t and returns the renderer and clock
// attached to it.
func NewTestGame(t *Tetris) (*Game, *MockRenderer, *MockClock) {
	r, c := &MockRenderer{}, &MockClock{}
	opts := *t.opts
	opts.Renderer = r
	opts.Clock = c
	t.opts = &opts
	return &Game{tetris: t, opts: &opts}, r, c
}

// Fill occupies the given interior cells as {row, col} pairs.
func (b *Board) Fill(cells ...[2]int) {
	for _, c := range cells {
		b.Set(c[0], c[1], true)
	}
}

// FillRow occupies every interior cell of row except the listed columns.
func (b *Board) FillRow(row int, except ...int) {
	b.fillRow(row, true)
	for _, c := range except {
		b.Set(row, c, false)
	}
}

package tetris

// Renderer is notified by the engine whenever something visible changes.
// Calls happen on the goroutine applying the action and must not block for
// long: the engine waits for each call to return.
type Renderer interface {
	// Frame is called after every applied action with a copy of the state.
	Frame(*Snapshot)
	// Flash is called when a full row is about to be cleared.
	Flash(row int)
	// Score is called when the score changed.
	Score(score int)
	// Queue is called when the queue advanced, with the upcoming kinds
	// that are not falling yet.
	Queue(preview []Kind)
	// GameOver is called once when the session tops out.
	GameOver(score int)
}

type nopRenderer struct{}

func (nopRenderer) Frame(*Snapshot) {}
func (nopRenderer) Flash(int)       {}
func (nopRenderer) Score(int)       {}
func (nopRenderer) Queue([]Kind)    {}
func (nopRenderer) GameOver(int)    {}

// Snapshot is a copy of a session that is safe to read concurrently.
type Snapshot struct {
	// Rows is the playfield occupancy, active piece included.
	Rows     [][]bool
	Piece    Piece
	Queue    []Kind
	Score    int
	Lines    int
	GameOver bool
}

// Preview returns the queued kinds after the falling one.
func (s *Snapshot) Preview() []Kind {
	if len(s.Queue) == 0 {
		return nil
	}
	return s.Queue[1:]
}

// Package tetris contains the piece physics and board state of the game.
//
// A session is synchronous: every action is collision-checked, applied to
// the board and rendered before the next one is accepted. Gravity is not
// driven by a timer here, falling only happens through drop actions.
package tetris

import (
	"log/slog"
	"math/rand/v2"
	"time"
)

const (
	DefaultWidth          = 20
	DefaultHeight         = 20
	DefaultScoreIncrement = 347
	DefaultQueueLength    = 4
	DefaultFlashDelay     = 40 * time.Millisecond
	DefaultClearDelay     = 200 * time.Millisecond
)

// Piece is the falling piece. X and Y locate the top-left corner of its frame.
type Piece struct {
	Kind     Kind
	Rotation int
	X, Y     int
}

func (p Piece) Shape() Shape { return ShapeOf(p.Kind, p.Rotation) }

// Options configures a session. Zero values fall back to the defaults, except
// the delays where zero means no pause.
type Options struct {
	Width, Height  int
	ScoreIncrement int
	QueueLength    int
	FlashDelay     time.Duration
	ClearDelay     time.Duration

	Clock    Clock
	Renderer Renderer
	Rand     *rand.Rand
	Logger   *slog.Logger
}

// DefaultOptions returns the rules of the classic game.
func DefaultOptions() *Options {
	return &Options{
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		ScoreIncrement: DefaultScoreIncrement,
		QueueLength:    DefaultQueueLength,
		FlashDelay:     DefaultFlashDelay,
		ClearDelay:     DefaultClearDelay,
	}
}

func (o *Options) withDefaults() *Options {
	r := *o
	if r.Width == 0 {
		r.Width = DefaultWidth
	}
	if r.Height == 0 {
		r.Height = DefaultHeight
	}
	if r.ScoreIncrement == 0 {
		r.ScoreIncrement = DefaultScoreIncrement
	}
	if r.QueueLength == 0 {
		r.QueueLength = DefaultQueueLength
	}
	if r.Clock == nil {
		r.Clock = wallClock{}
	}
	if r.Renderer == nil {
		r.Renderer = nopRenderer{}
	}
	if r.Rand == nil {
		r.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if r.Logger == nil {
		r.Logger = slog.New(slog.DiscardHandler)
	}
	return &r
}

// Tetris is a single session: the board, the falling piece, the queue and
// the score.
type Tetris struct {
	Board    *Board
	Piece    Piece
	Queue    *Queue
	Score    int
	Lines    int
	GameOver bool

	opts *Options
}

// newTetris starts a session on an empty board with the head of a fresh
// queue already falling.
func newTetris(o *Options) *Tetris {
	t := &Tetris{
		Board: NewBoard(o.Width, o.Height),
		Queue: newQueue(o.QueueLength, o.Rand),
		opts:  o,
	}
	t.spawn()
	return t
}

// Read returns a copy of the session that's safe to read concurrently.
func (t *Tetris) Read() *Snapshot {
	return &Snapshot{
		Rows:     t.Board.Rows(),
		Piece:    t.Piece,
		Queue:    t.Queue.Kinds(),
		Score:    t.Score,
		Lines:    t.Lines,
		GameOver: t.GameOver,
	}
}

// action applies a piece action and reports whether a was one.
func (t *Tetris) action(a Action) bool {
	var obstruction int
	switch a {
	case MoveLeft:
		t.move(-1)
	case MoveRight:
		t.move(1)
	case RotateCW:
		t.rotate()
	case SoftDrop:
		obstruction = t.softDrop()
	case HardDrop:
		obstruction = t.hardDrop()
	default:
		return false
	}
	if obstruction != 0 {
		t.lock(obstruction)
	}
	return true
}

// spawn puts the head of the queue at the top of the board, unrotated,
// overwriting whatever is there.
func (t *Tetris) spawn() {
	t.Piece = Piece{
		Kind: t.Queue.Head(),
		X:    t.Board.Width()/2 - FrameWidth/2,
	}
	t.draw(true)
}

// draw commits or withdraws the piece's cells on the board.
func (t *Tetris) draw(occupied bool) {
	shape := t.Piece.Shape()
	for bit := range FrameWidth * FrameHeight {
		ix, iy := bit%FrameWidth, bit/FrameWidth
		if shape.Solid(ix, iy) {
			t.Board.Set(t.Piece.Y+iy, t.Piece.X+ix, occupied)
		}
	}
}

// move shifts the piece one column in dir (-1 left, 1 right) unless it
// collides. The piece is redrawn either way.
func (t *Tetris) move(dir int) bool {
	t.draw(false)
	ok := !CollidesLateral(t.Board, t.Piece.Shape(), t.Piece.X+dir, t.Piece.Y)
	if ok {
		t.Piece.X += dir
	}
	t.draw(true)
	return ok
}

// rotate turns the piece one rotation unit clockwise in place. Any lateral
// or longitudinal collision of the rotated shape keeps the old rotation.
func (t *Tetris) rotate() bool {
	t.draw(false)
	next := (t.Piece.Rotation + 1) % Rotations
	shape := ShapeOf(t.Piece.Kind, next)
	ok := !CollidesLateral(t.Board, shape, t.Piece.X, t.Piece.Y) &&
		CollideLongitudinal(t.Board, shape, t.Piece.X, t.Piece.Y) == 0
	if ok {
		t.Piece.Rotation = next
	}
	t.draw(true)
	return ok
}

// softDrop moves the piece one row down. When the row below is blocked the
// piece stays and the obstruction row is returned.
func (t *Tetris) softDrop() int {
	t.draw(false)
	obstruction := CollideLongitudinal(t.Board, t.Piece.Shape(), t.Piece.X, t.Piece.Y+1)
	if obstruction == 0 {
		t.Piece.Y++
	}
	t.draw(true)
	return obstruction
}

func (t *Tetris) hardDrop() int {
	for {
		if obstruction := t.softDrop(); obstruction != 0 {
			return obstruction
		}
	}
}

// lock makes the piece part of the board. A piece blocked within its own
// frame height of the top ends the game and nothing else changes.
func (t *Tetris) lock(obstruction int) {
	if obstruction-1 <= FrameHeight {
		t.GameOver = true
		return
	}
	if t.clearFrom(obstruction - 1) {
		t.opts.Renderer.Score(t.Score)
	}
	t.Queue.advance()
	t.opts.Renderer.Queue(t.Queue.Preview())
	t.spawn()
}

// clearFrom scans rows upward from start to start-FrameHeight inclusive, so
// FrameHeight+1 rows at most, and removes the full ones. After a removal the same row is checked again since
// the row above has moved into it.
func (t *Tetris) clearFrom(start int) bool {
	var cleared bool
	end := start - FrameHeight
	for row := start; row >= 0 && row >= end; {
		if !t.Board.rowFull(row) {
			row--
			continue
		}
		t.opts.Renderer.Flash(row)
		t.opts.Clock.Sleep(t.opts.FlashDelay)

		t.Board.fillRow(row, false)
		t.opts.Renderer.Frame(t.Read())
		t.opts.Clock.Sleep(t.opts.ClearDelay)

		t.Board.shiftDown(row)
		t.Score += t.opts.ScoreIncrement
		t.Lines++
		cleared = true
	}
	return cleared
}

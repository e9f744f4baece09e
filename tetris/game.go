package tetris

import (
	"context"
	"log/slog"
)

type Action string

const (
	MoveLeft  Action = "left"    // Moves the piece one column to the left.
	MoveRight Action = "right"   // Moves the piece one column to the right.
	RotateCW  Action = "rotate"  // Rotates the piece clockwise.
	SoftDrop  Action = "down"    // Moves the piece one row down.
	HardDrop  Action = "drop"    // Drops the piece down the stack.
	Restart   Action = "restart" // Discards the session and starts a new one.
	Quit      Action = "quit"    // Ends the game.
	NoOp      Action = "noop"
)

// ParseAction maps s to an action. Anything unknown is NoOp.
func ParseAction(s string) Action {
	switch a := Action(s); a {
	case MoveLeft, MoveRight, RotateCW, SoftDrop, HardDrop, Restart, Quit:
		return a
	}
	return NoOp
}

type State int

const (
	StatePlaying State = iota
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game_over"
	}
	return "unknown"
}

// Game is the play/game-over state machine around a session.
type Game struct {
	tetris *Tetris
	state  State
	opts   *Options
}

// NewGame creates a game with a fresh session. Nothing is rendered until
// Start.
func NewGame(o *Options) *Game {
	if o == nil {
		o = DefaultOptions()
	}
	opts := o.withDefaults()
	return &Game{
		tetris: newTetris(opts),
		opts:   opts,
	}
}

// Start renders the current session in full.
func (g *Game) Start() {
	g.render()
}

func (g *Game) State() State { return g.state }

// Read returns a copy of the current session.
func (g *Game) Read() *Snapshot { return g.tetris.Read() }

// Step applies one action and reports whether the game goes on. It returns
// false only for Quit.
func (g *Game) Step(a Action) bool {
	switch g.state {
	case StatePlaying:
		switch a {
		case Quit:
			return false
		case Restart:
			g.restart()
			return true
		}
		if !g.tetris.action(a) {
			return true
		}
		if g.tetris.GameOver {
			g.state = StateGameOver
			g.opts.Logger.Debug("game over", slog.Int("score", g.tetris.Score), slog.Int("lines", g.tetris.Lines))
			g.opts.Renderer.GameOver(g.tetris.Score)
			return true
		}
		g.opts.Renderer.Frame(g.tetris.Read())
	case StateGameOver:
		switch a {
		case Quit:
			return false
		case Restart:
			g.restart()
		}
	}
	return true
}

// Listen applies actions one at a time until Quit, the channel is closed or
// ctx is done.
func (g *Game) Listen(ctx context.Context, actions <-chan Action) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case a, ok := <-actions:
			if !ok {
				return nil
			}
			if !g.Step(a) {
				g.opts.Logger.Debug("quit", slog.Int("score", g.tetris.Score))
				return nil
			}
		}
	}
}

func (g *Game) restart() {
	g.tetris = newTetris(g.opts)
	g.state = StatePlaying
	g.opts.Logger.Debug("session restarted")
	g.render()
}

func (g *Game) render() {
	g.opts.Renderer.Frame(g.tetris.Read())
	g.opts.Renderer.Score(g.tetris.Score)
	g.opts.Renderer.Queue(g.tetris.Queue.Preview())
}

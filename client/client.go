// Package client plays the game on a terminal, either locally or against a
// remote session server.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"picotet/tetris"

	"github.com/eiannone/keyboard"
	"golang.org/x/sync/errgroup"
)

// Ticker paces the gravity drops.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type wrappedTicker struct {
	ticker *time.Ticker
}

func newWrappedTicker(d time.Duration) Ticker {
	return &wrappedTicker{ticker: time.NewTicker(d)}
}

func (t *wrappedTicker) C() <-chan time.Time { return t.ticker.C }
func (t *wrappedTicker) Stop()               { t.ticker.Stop() }

type Options struct {
	// Game holds the rules of local games. Nil uses the defaults.
	Game *tetris.Options
	// Gravity drops the piece one row every period. Zero disables it.
	Gravity time.Duration
	Online  bool
	Address string
}

type Client struct {
	render    *render
	options   *Options
	logger    *slog.Logger
	kbCh      <-chan keyboard.KeyEvent
	newTicker func(time.Duration) Ticker
}

// New opens the keyboard and prepares to draw on w. Close must be called to
// give the keyboard back.
func New(w io.Writer, l *slog.Logger, o *Options) (*Client, error) {
	r, err := newRender(w, l)
	if err != nil {
		return nil, fmt.Errorf("failed to load renderer: %w", err)
	}
	kb, err := keyboard.GetKeys(20)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyboard: %w", err)
	}
	return &Client{
		render:    r,
		options:   o,
		logger:    l,
		kbCh:      kb,
		newTicker: newWrappedTicker,
	}, nil
}

func (c *Client) Close() error {
	return keyboard.Close()
}

// Run plays until the player quits or ctx is done.
func (c *Client) Run(ctx context.Context) error {
	var err error
	if c.options.Online {
		err = c.playOnline(ctx)
	} else {
		err = c.play(ctx)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (c *Client) play(ctx context.Context) error {
	opts := tetris.DefaultOptions()
	if c.options.Game != nil {
		o := *c.options.Game
		opts = &o
	}
	opts.Renderer = c.render
	opts.Logger = c.logger
	game := tetris.NewGame(opts)
	game.Start()

	actions := make(chan tetris.Action)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return game.Listen(gctx, actions)
	})
	g.Go(func() error {
		defer close(actions)
		return c.listenKB(gctx, func(a tetris.Action) error {
			select {
			case actions <- a:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	})
	return g.Wait()
}

// listenKB turns key presses and gravity ticks into actions until the
// player quits.
func (c *Client) listenKB(ctx context.Context, send func(tetris.Action) error) error {
	var tick <-chan time.Time
	if c.options.Gravity > 0 {
		t := c.newTicker(c.options.Gravity)
		defer t.Stop()
		tick = t.C()
	}
	for {
		a := tetris.NoOp
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
			if !c.render.isOver() {
				a = tetris.SoftDrop
			}
		case event, ok := <-c.kbCh:
			if !ok {
				return errors.New("keyboard events channel closed unexpectedly")
			}
			if event.Err != nil {
				return fmt.Errorf("keyboard events error: %w", event.Err)
			}
			a = keyAction(event, c.render.isOver())
		}
		if a == tetris.NoOp {
			continue
		}
		if err := send(a); err != nil {
			return err
		}
		if a == tetris.Quit {
			c.logger.Debug("player quit")
			return nil
		}
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"picotet/client"
	"picotet/config"
	"picotet/tetris"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	hideCursor = "\033[2J\033[?25l" // also clear screen
	showCursor = "\r\n\033[?25h"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var file string
	v := config.New()
	cmd := &cobra.Command{
		Use:          "picotet",
		Short:        "Play falling blocks in the terminal",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return config.BindFlags(v, cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := config.Load(v, file)
			if err != nil {
				return err
			}
			return play(cmd.Context(), c)
		},
	}
	f := cmd.Flags()
	f.StringVar(&file, "config", "", "read settings from this file")
	f.Bool("online", false, "play a session hosted by picotet-server")
	f.String("address", config.DefaultAddress, "picotet-server address for online play")
	f.Duration("gravity", 0, "drop the piece one row every period, 0 disables gravity")
	f.Int("board-width", tetris.DefaultWidth, "playfield width in cells")
	f.Int("board-height", tetris.DefaultHeight, "playfield height in cells")
	f.Bool("no-color", false, "draw without colors")
	f.String("log-file", "", "write logs to this file")
	f.String("log-level", config.DefaultLogLevel, "log level")
	return cmd
}

func play(ctx context.Context, c *config.Config) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("picotet must run in an interactive terminal")
	}
	if c.NoColor {
		color.NoColor = true
	}
	// the terminal is busy with the game, logs only go to a file.
	logger, closeLog, err := c.Logger(nil)
	if err != nil {
		return err
	}
	defer closeLog() //nolint: errcheck

	cl, err := client.New(os.Stdout, logger, &client.Options{
		Game:    c.GameOptions(),
		Gravity: c.Gravity,
		Online:  c.Online,
		Address: c.Address,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := cl.Close(); err != nil {
			logger.Error("unable to close keyboard", slog.String("error", err.Error()))
		}
	}()

	fmt.Print(hideCursor)
	defer fmt.Print(showCursor)
	return cl.Run(ctx)
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"picotet/config"
	"picotet/pb"
	"picotet/server"
	"picotet/tetris"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

// sessions still open after this long are cut on shutdown.
const shutdownTimeout = 5 * time.Second

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
		Use:          "picotet-server",
		Short:        "Host picotet sessions over gRPC",
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
			return serve(cmd.Context(), c)
		},
	}
	f := cmd.Flags()
	f.StringVar(&file, "config", "", "read settings from this file")
	f.Int("port", config.DefaultPort, "port to listen on")
	f.Int("board-width", tetris.DefaultWidth, "playfield width in cells")
	f.Int("board-height", tetris.DefaultHeight, "playfield height in cells")
	f.String("log-file", "", "write logs to this file instead of stderr")
	f.String("log-level", config.DefaultLogLevel, "log level")
	return cmd
}

func serve(ctx context.Context, c *config.Config) error {
	logger, closeLog, err := c.Logger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog() //nolint: errcheck

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", c.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	s := grpc.NewServer()
	pb.RegisterSessionServer(s, server.New(logger, c.GameOptions()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", slog.String("address", lis.Addr().String()))
		if err := s.Serve(lis); err != nil {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("stopping server")
		stopped := make(chan struct{})
		go func() {
			s.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-time.After(shutdownTimeout):
			s.Stop()
		}
		return nil
	})
	return g.Wait()
}

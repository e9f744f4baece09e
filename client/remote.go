package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"picotet/pb"
	"picotet/tetris"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

func (c *Client) playOnline(ctx context.Context) error {
	conn, err := grpc.NewClient(c.options.Address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("unable to create gRPC client: %w", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			c.logger.Error("unable to close gRPC client", slog.String("error", err.Error()))
		}
	}()
	return c.stream(ctx, pb.NewSessionClient(conn))
}

// stream plays a remote session: key presses are sent as actions and every
// frame received is drawn.
func (c *Client) stream(ctx context.Context, sc pb.SessionClient) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	stream, err := sc.Play(gctx)
	if err != nil {
		return fmt.Errorf("unable to create gRPC Play stream: %w", err)
	}
	header, err := stream.Header()
	if err != nil {
		return fmt.Errorf("unable to read session header: %w", err)
	}
	if ids := header.Get(pb.SessionIDHeader); len(ids) > 0 {
		c.logger.Info("joined session", slog.String("session", ids[0]))
	}

	g.Go(func() error {
		// the keyboard stops listening once the server is gone.
		defer cancel()
		for {
			st, err := stream.Recv()
			if err != nil {
				if err := streamErr(err); err != nil {
					return fmt.Errorf("unable to receive frame: %w", err)
				}
				c.logger.Debug("stream closed", slog.String("msg", err.Error()))
				return nil
			}
			f, err := pb.DecodeFrame(st)
			if err != nil {
				return err
			}
			c.render.frame(f)
		}
	})
	g.Go(func() error {
		err := c.listenKB(gctx, func(a tetris.Action) error {
			return stream.Send(pb.Action(string(a)))
		})
		// a failed send surfaces as an error on the receiving side.
		return streamErr(err)
	})
	return g.Wait()
}

// streamErr returns nil for the errors that only mean the stream is over.
func streamErr(err error) error {
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	if st, ok := status.FromError(err); ok && st.Code() == codes.Canceled {
		return nil
	}
	return err
}

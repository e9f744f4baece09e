package server

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"picotet/pb"
	"picotet/tetris"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type sessionServer struct {
	pb.UnimplementedSessionServer
	options  tetris.Options
	logger   *slog.Logger
	sessions map[string]time.Time
	mu       sync.Mutex
}

// New returns a Session service. Every Play stream gets its own game built
// from o.
func New(l *slog.Logger, o *tetris.Options) pb.SessionServer {
	if o == nil {
		o = tetris.DefaultOptions()
	}
	return &sessionServer{
		options:  *o,
		logger:   l,
		sessions: make(map[string]time.Time),
	}
}

func (s *sessionServer) Play(stream pb.PlayServer) error {
	id := uuid.NewString()
	logger := s.logger.With(slog.String("session", id))
	if err := stream.SendHeader(metadata.Pairs(pb.SessionIDHeader, id)); err != nil {
		return fmt.Errorf("failed to send session header: %w", err)
	}

	r := &streamRenderer{id: id, stream: stream}
	opts := s.options
	opts.Renderer = r
	opts.Logger = logger
	// sessions run concurrently, each needs its own random source.
	opts.Rand = nil
	game := tetris.NewGame(&opts)
	r.read = game.Read

	s.add(id)
	defer func() {
		logger.Info("session ended", slog.Duration("duration", s.remove(id)))
	}()
	logger.Info("session started", slog.Int("sessions", s.count()))

	game.Start()
	for {
		if r.err != nil {
			return fmt.Errorf("failed to send frame: %w", r.err)
		}
		rcv, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				logger.Info("session closed by client")
				return nil
			}
			if status.Code(err) == codes.Canceled {
				logger.Debug("session canceled", slog.String("msg", err.Error()))
				return nil
			}
			return fmt.Errorf("failed to receive Play message: %w", err)
		}
		if !game.Step(tetris.ParseAction(rcv.GetValue())) {
			logger.Info("session quit", slog.Int("score", game.Read().Score))
			return nil
		}
	}
}

func (s *sessionServer) add(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = time.Now()
}

// remove forgets the session and returns how long it lasted.
func (s *sessionServer) remove(id string) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	started := s.sessions[id]
	delete(s.sessions, id)
	return time.Since(started)
}

func (s *sessionServer) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// streamRenderer turns engine notifications into frames on the stream. Score
// and queue changes travel inside the next frame.
type streamRenderer struct {
	id     string
	stream pb.PlayServer
	read   func() *tetris.Snapshot
	err    error
}

func (r *streamRenderer) Frame(s *tetris.Snapshot) { r.send(s, pb.NoFlash) }
func (r *streamRenderer) Flash(row int)            { r.send(r.read(), row) }
func (r *streamRenderer) GameOver(int)             { r.send(r.read(), pb.NoFlash) }
func (r *streamRenderer) Score(int)                {}
func (r *streamRenderer) Queue([]tetris.Kind)      {}

// send keeps the first error only, the session stops on it.
func (r *streamRenderer) send(s *tetris.Snapshot, flash int) {
	if r.err != nil {
		return
	}
	st, err := pb.EncodeFrame(&pb.Frame{Session: r.id, Flash: flash, Snapshot: s})
	if err != nil {
		r.err = err
		return
	}
	r.err = r.stream.Send(st)
}

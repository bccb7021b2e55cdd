package peer

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"time"

	"go.klb.dev/seep/internal/clipboard"
	"go.klb.dev/seep/internal/transport"
)

// Session drives one transport channel: an inbound loop pumping received
// messages into the Receiver, an outbound loop draining the send queue into
// the channel, and the change detector feeding that queue. The two loops
// race — whichever direction fails first tears everything down, exactly
// once. Any buffered image header is discarded with the State.
type Session struct {
	Channel transport.Channel
	Backend clipboard.Backend

	// Notify, when set, is called with a short description of each
	// received image.
	Notify func(msg string)

	// PollInterval overrides the detector interval; zero means
	// DefaultPollInterval. Tests shorten it.
	PollInterval time.Duration
}

// Run blocks until the channel fails in either direction or ctx is
// cancelled. The State (and so the clipboard cache) lives and dies with
// this call; reconnecting starts from scratch.
func (s *Session) Run(ctx context.Context) {
	log := slog.With("peer", s.Channel.RemoteAddr())

	state := NewState()
	recv := NewReceiver(state, s.Backend, s.Notify)
	out := transport.NewQueue()

	sctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var once sync.Once
	teardown := func() {
		once.Do(func() {
			cancel()
			out.Close()
			_ = s.Channel.Close()
		})
	}
	defer teardown()

	// Outbound: strict enqueue order — an image header must reach the wire
	// before its payload.
	go func() {
		for {
			m, ok := out.Pop()
			if !ok {
				return
			}
			if err := s.Channel.Write(m); err != nil {
				log.Warn("write failed", "err", err)
				teardown()
				return
			}
		}
	}()

	det := NewDetector(state, s.Backend, out.Push)
	if s.PollInterval > 0 {
		det.interval = s.PollInterval
	}
	go det.Run(sctx)

	go func() {
		<-sctx.Done()
		teardown()
	}()

	// Inbound, on the calling goroutine.
	for {
		m, err := s.Channel.Read()
		if err != nil {
			if !errors.Is(err, net.ErrClosed) && sctx.Err() == nil {
				log.Info("connection closed", "err", err)
			}
			return
		}
		recv.Handle(m)
	}
}

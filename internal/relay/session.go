package relay

import (
	"errors"
	"log/slog"
	"net"
	"sync"

	"go.klb.dev/seep/internal/transport"
)

// Session pumps one relay-side connection: inbound messages fan out to all
// other registered peers, outbound messages drain from this connection's
// queue. The relay never inspects payloads — framing is the only thing it
// understands, so a peer speaking a newer envelope version still relays.
type Session struct {
	id  string
	ch  transport.Channel
	reg *Registry
}

// NewSession wraps an accepted connection under the given registry id:
// the remote address, prefixed with the peer's source identifier when it
// announced one.
func NewSession(ch transport.Channel, reg *Registry, id string) *Session {
	return &Session{id: id, ch: ch, reg: reg}
}

// Run registers the connection, then drives both directions until one
// fails. Teardown — unregister, close the queue, close the channel — runs
// exactly once even when read and write fail concurrently.
func (s *Session) Run() {
	log := slog.With("peer", s.id)
	queue := s.reg.Register(s.id)

	var once sync.Once
	teardown := func() {
		once.Do(func() {
			s.reg.Unregister(s.id)
			queue.Close()
			_ = s.ch.Close()
		})
	}
	defer teardown()

	// Outbound: drain this peer's queue. A slow peer only ever stalls
	// itself; fan-out to the others happened at enqueue time.
	go func() {
		for {
			m, ok := queue.Pop()
			if !ok {
				return
			}
			if err := s.ch.Write(m); err != nil {
				log.Warn("write failed", "err", err)
				teardown()
				return
			}
		}
	}()

	// Inbound: one synchronous fan-out per message keeps every sender's
	// order intact at every recipient. Close frames surface as read errors
	// and end only this session.
	for {
		m, err := s.ch.Read()
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				log.Info("connection closed", "err", err)
			}
			return
		}
		log.Debug("relaying", "kind", m.Kind, "bytes", len(m.Data))
		s.reg.BroadcastExcept(s.id, m)
	}
}

package relay

import (
	"context"
	"log/slog"

	"go.klb.dev/seep/internal/clipboard"
	"go.klb.dev/seep/internal/peer"
	"go.klb.dev/seep/internal/transport"
)

// LocalID is the registry id of the relay's own clipboard peer when no
// source identifier is configured.
const LocalID = "local"

// RunLocal joins the registry as the relay host's clipboard peer: a change
// detector publishes local clipboard changes to every connected peer, and
// incoming broadcasts are applied to the local clipboard. This is what
// `seep relay --sync` runs, and it is also how two machines sync without a
// third relay box. id labels the peer in logs and /status; empty means
// LocalID. Blocks until ctx is cancelled.
func RunLocal(ctx context.Context, reg *Registry, id string, backend clipboard.Backend, notify func(string)) {
	if id == "" {
		id = LocalID
	}
	queue := reg.Register(id)
	defer reg.Unregister(id)

	state := peer.NewState()
	recv := peer.NewReceiver(state, backend, notify)

	lctx, cancel := context.WithCancel(ctx)
	defer cancel()

	det := peer.NewDetector(state, backend, func(m transport.Message) bool {
		reg.BroadcastExcept(id, m)
		return true
	})
	go det.Run(lctx)

	// Unblock the queue drain below when the context goes away.
	go func() {
		<-lctx.Done()
		reg.Unregister(id)
	}()

	slog.Info("local clipboard peer started", "source", id)
	for {
		m, ok := queue.Pop()
		if !ok {
			return
		}
		recv.Handle(m)
	}
}

// Package relay implements the star center: a WebSocket listener that
// rebroadcasts every message from one connection to all others, plus the
// per-connection registry driving that fan-out.
package relay

import (
	"log/slog"
	"sort"
	"sync"

	"go.klb.dev/seep/internal/transport"
)

// Registry maps connection ids to their outbound queues. It is the only
// state shared across sessions; every operation takes the one mutex, and
// broadcast enqueues synchronously while holding it, which is what
// preserves a sender's message order at every recipient. Hold time is
// O(peers) per broadcast and nothing under the lock blocks.
type Registry struct {
	mu    sync.Mutex
	peers map[string]*transport.Queue
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{peers: make(map[string]*transport.Queue)}
}

// Register creates the outbound queue for id and returns it. Registering an
// id that is already present replaces (and closes) the stale entry — ids
// are remote addresses, so a collision means the old session is dead.
func (r *Registry) Register(id string) *transport.Queue {
	q := transport.NewQueue()
	r.mu.Lock()
	stale := r.peers[id]
	r.peers[id] = q
	total := len(r.peers)
	r.mu.Unlock()

	if stale != nil {
		stale.Close()
	}
	slog.Info("peer registered", "peer", id, "total", total)
	return q
}

// Unregister removes id and closes its queue. Idempotent: concurrent
// teardown of both session directions may call it twice.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	q, ok := r.peers[id]
	if ok {
		delete(r.peers, id)
	}
	total := len(r.peers)
	r.mu.Unlock()

	if !ok {
		return
	}
	q.Close()
	slog.Info("peer unregistered", "peer", id, "total", total)
}

// BroadcastExcept enqueues m onto every registered queue except the
// sender's. Delivery is best-effort: a recipient whose session is tearing
// down simply discards the push.
func (r *Registry) BroadcastExcept(senderID string, m transport.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, q := range r.peers {
		if id == senderID {
			continue
		}
		q.Push(m)
	}
}

// Len returns the number of registered connections.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.peers)
}

// IDs returns a sorted snapshot of the registered connection ids.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	ids := make([]string, 0, len(r.peers))
	for id := range r.peers {
		ids = append(ids, id)
	}
	r.mu.Unlock()
	sort.Strings(ids)
	return ids
}

// Package peer implements the client side of a sync session: the per-
// connection clipboard cache, the change detector, the inbound receiver,
// and the session loop with its fixed-interval reconnect policy.
package peer

import (
	"sync"

	"go.klb.dev/seep/internal/content"
	"go.klb.dev/seep/internal/protocol"
)

// State is the per-session clipboard cache plus the buffered image header
// awaiting its binary payload. It is owned by one session but mutated from
// two goroutines — the change detector and the inbound receiver — so every
// access goes through one mutex. Updating the cache on receipt before the
// next detector tick is what keeps a received change from being echoed
// straight back out.
type State struct {
	mu      sync.Mutex
	cache   content.Content
	pending *protocol.ImageHeader
}

// NewState returns an empty State: no cached content, no pending header.
func NewState() *State {
	return &State{}
}

// Cache returns the last content applied or sent.
func (s *State) Cache() content.Content {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache
}

// SetCache records c as the last applied content.
func (s *State) SetCache(c content.Content) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = c
}

// UpdateIfChanged compares c against the cache and, if it differs, stores
// it and reports true. Compare and store happen under one lock so a
// concurrent receipt cannot slip between them.
func (s *State) UpdateIfChanged(c content.Content) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if content.Equal(s.cache, c) {
		return false
	}
	s.cache = c
	return true
}

// SetPending buffers an image header until its payload arrives, returning
// the header it displaced, if any.
func (s *State) SetPending(h *protocol.ImageHeader) *protocol.ImageHeader {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.pending
	s.pending = h
	return prev
}

// TakePending returns and clears the buffered image header.
func (s *State) TakePending() *protocol.ImageHeader {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.pending
	s.pending = nil
	return h
}

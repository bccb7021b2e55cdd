package peer

import (
	"fmt"
	"log/slog"

	"go.klb.dev/seep/internal/clipboard"
	"go.klb.dev/seep/internal/content"
	"go.klb.dev/seep/internal/protocol"
	"go.klb.dev/seep/internal/transport"
)

// Receiver applies inbound messages to the local clipboard and the session
// State. A malformed message or a protocol violation is dropped and logged;
// the session stays up — one corrupt frame should not kill an otherwise
// healthy connection.
type Receiver struct {
	state   *State
	backend clipboard.Backend
	notify  func(msg string) // nil = no desktop notifications
}

// NewReceiver wires a receiver to its session state and clipboard backend.
func NewReceiver(state *State, backend clipboard.Backend, notify func(string)) *Receiver {
	return &Receiver{state: state, backend: backend, notify: notify}
}

// Handle applies one inbound transport message.
func (r *Receiver) Handle(m transport.Message) {
	switch m.Kind {
	case transport.KindText:
		r.handleNotification(m.Data)
	case transport.KindBinary:
		r.handleImagePayload(m.Data)
	default:
		slog.Warn("unexpected message kind, dropping", "kind", m.Kind)
	}
}

func (r *Receiver) handleNotification(data []byte) {
	n, err := protocol.Unmarshal(data)
	if err != nil {
		slog.Warn("dropping malformed notification", "err", err)
		return
	}

	switch {
	case n.Text != nil:
		// Cache before anything else: even if the platform write fails,
		// the detector must not re-broadcast the received value.
		r.state.SetCache(content.Text{Value: n.Text.Content})
		if err := r.backend.WriteText(n.Text.Content); err != nil {
			slog.Error("clipboard text write failed", "err", err)
			return
		}
		slog.Debug("clipboard text applied", "preview", preview(n.Text.Content))

	case n.Image != nil:
		if prev := r.state.SetPending(n.Image); prev != nil {
			slog.Warn("image header superseded before its payload arrived",
				"width", prev.Width, "height", prev.Height)
		}
	}
}

func (r *Receiver) handleImagePayload(data []byte) {
	hdr := r.state.TakePending()
	if hdr == nil {
		slog.Warn("binary payload with no pending image header, dropping")
		return
	}

	pixels, err := protocol.Decompress(data)
	if err != nil {
		slog.Warn("dropping undecodable image payload", "err", err)
		return
	}

	img := content.Image{Width: hdr.Width, Height: hdr.Height, Pixels: pixels}
	if len(pixels) != img.Size() {
		slog.Warn("dropping image payload with wrong pixel count",
			"got", len(pixels), "want", img.Size(),
			"width", hdr.Width, "height", hdr.Height)
		return
	}

	r.state.SetCache(img)
	if err := r.backend.WriteImage(img); err != nil {
		slog.Error("clipboard image write failed", "err", err)
		return
	}
	slog.Debug("clipboard image applied", "width", img.Width, "height", img.Height)

	if r.notify != nil {
		r.notify(fmt.Sprintf("Received %d×%d image", img.Width, img.Height))
	}
}

// preview truncates text for debug logs.
func preview(s string) string {
	if len(s) > 120 {
		return s[:120] + "…"
	}
	return s
}

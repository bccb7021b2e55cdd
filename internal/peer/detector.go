package peer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.klb.dev/seep/internal/clipboard"
	"go.klb.dev/seep/internal/content"
	"go.klb.dev/seep/internal/protocol"
	"go.klb.dev/seep/internal/transport"
)

// DefaultPollInterval is how often the detector samples the clipboard.
const DefaultPollInterval = 2 * time.Second

// Detector polls the local clipboard and enqueues a change notification
// whenever the content differs from the session cache. Images take priority
// over text, matching what the OS exposes when both are present. At most
// one notification (pair, for images) is produced per tick.
type Detector struct {
	state    *State
	backend  clipboard.Backend
	send     func(transport.Message) bool
	interval time.Duration
}

// NewDetector returns a detector that pushes outbound messages via send.
// send reports whether the message was accepted; once it starts failing the
// owning session is tearing down and the detector gives up the tick.
func NewDetector(state *State, backend clipboard.Backend, send func(transport.Message) bool) *Detector {
	return &Detector{
		state:    state,
		backend:  backend,
		send:     send,
		interval: DefaultPollInterval,
	}
}

// Run ticks until ctx is cancelled.
func (d *Detector) Run(ctx context.Context) {
	t := time.NewTicker(d.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			d.tick()
		}
	}
}

// tick samples the clipboard once: image first, then text. Transient read
// failures skip the tick without touching the cache.
func (d *Detector) tick() {
	img, err := d.backend.ReadImage()
	switch {
	case err == nil:
		d.publishImage(img)
	case errors.Is(err, clipboard.ErrUnavailable):
		text, err := d.backend.ReadText()
		if err != nil {
			if !errors.Is(err, clipboard.ErrUnavailable) {
				slog.Debug("clipboard text read failed, skipping tick", "err", err)
			}
			return
		}
		d.publishText(text)
	default:
		slog.Debug("clipboard image read failed, skipping tick", "err", err)
	}
}

func (d *Detector) publishImage(img content.Image) {
	// Cheap pre-check so an unchanged image is not recompressed every tick.
	if content.Equal(d.state.Cache(), img) {
		return
	}

	// Build both frames before committing to the cache so a codec failure
	// cannot leave the cache updated with nothing sent.
	header, err := protocol.NewImage(img.Width, img.Height).Marshal()
	if err != nil {
		slog.Warn("image header encode failed, skipping tick", "err", err)
		return
	}
	pixels, err := protocol.Compress(img.Pixels)
	if err != nil {
		slog.Warn("image compress failed, skipping tick", "err", err)
		return
	}

	if !d.state.UpdateIfChanged(img) {
		return
	}

	// Header strictly before payload, on the same queue.
	if !d.send(transport.Message{Kind: transport.KindText, Data: header}) {
		return
	}
	d.send(transport.Message{Kind: transport.KindBinary, Data: pixels})
	slog.Debug("clipboard image change detected", "width", img.Width, "height", img.Height)
}

func (d *Detector) publishText(text string) {
	data, err := protocol.NewText(text).Marshal()
	if err != nil {
		slog.Warn("text notification encode failed, skipping tick", "err", err)
		return
	}

	if !d.state.UpdateIfChanged(content.Text{Value: text}) {
		return
	}

	d.send(transport.Message{Kind: transport.KindText, Data: data})
	slog.Debug("clipboard text change detected", "preview", preview(text))
}

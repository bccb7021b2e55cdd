package peer

import (
	"context"
	"log/slog"
	"time"

	"go.klb.dev/seep/internal/clipboard"
	"go.klb.dev/seep/internal/transport"
)

// DefaultRetryInterval is the fixed wait between failed connection
// attempts. No backoff, no cap, no jitter: a relay that comes back hours
// later still gets found.
const DefaultRetryInterval = 60 * time.Second

// Client maintains a sync session against one relay address, reconnecting
// forever. Each established connection gets a fresh Session and a fresh
// State — the clipboard cache does not survive a reconnect, so the first
// tick after reconnecting may re-send the current clipboard.
type Client struct {
	Addr    string
	Backend clipboard.Backend
	Notify  func(msg string)

	// Source is the identifier announced to the relay, which labels this
	// peer in the relay's logs and /status. Empty announces nothing.
	Source string

	// Dial overrides the WebSocket dialer; tests inject failures here.
	Dial func(addr string) (transport.Channel, error)

	// RetryInterval overrides DefaultRetryInterval when positive.
	RetryInterval time.Duration

	// PollInterval is handed to each session's change detector.
	PollInterval time.Duration
}

// Run connects, syncs, and reconnects until ctx is cancelled. The retry
// wait applies only to failed dials; after a live session drops, the next
// attempt is immediate.
func (c *Client) Run(ctx context.Context) {
	dial := c.Dial
	if dial == nil {
		dial = transport.DialWebSocket
	}
	retry := c.RetryInterval
	if retry <= 0 {
		retry = DefaultRetryInterval
	}
	addr := c.Addr
	if c.Source != "" {
		addr = transport.WithSource(addr, c.Source)
	}

	for ctx.Err() == nil {
		ch, err := dial(addr)
		if err != nil {
			slog.Warn("connection failed", "addr", c.Addr, "err", err, "retry_in", retry)
			select {
			case <-ctx.Done():
				return
			case <-time.After(retry):
			}
			slog.Info("reconnecting", "addr", c.Addr)
			continue
		}

		slog.Info("connected", "addr", c.Addr)
		sess := &Session{
			Channel:      ch,
			Backend:      c.Backend,
			Notify:       c.Notify,
			PollInterval: c.PollInterval,
		}
		sess.Run(ctx)

		if ctx.Err() == nil {
			slog.Warn("disconnected", "addr", c.Addr)
		}
	}
}

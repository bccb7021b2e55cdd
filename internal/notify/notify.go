// Package notify emits fire-and-forget desktop notifications.
package notify

import (
	"log/slog"

	"github.com/gen2brain/beeep"
)

// Notify shows a desktop notification. Failures are logged and swallowed —
// a missing notification daemon must never disturb the sync loop.
func Notify(title, body string) {
	if err := beeep.Notify(title, body, ""); err != nil {
		slog.Debug("desktop notification failed", "err", err)
	}
}

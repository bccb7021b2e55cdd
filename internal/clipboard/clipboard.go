// Package clipboard provides access to the native system clipboard as a
// pair of typed read/write primitives. New returns the platform backend via
// golang.design/x/clipboard, falling back to a headless no-op backend when
// no display environment is available (containers, SSH sessions).
package clipboard

import (
	"errors"

	"go.klb.dev/seep/internal/content"
)

// ErrUnavailable reports that the clipboard holds no content of the
// requested kind. It is transient: the caller skips the current poll tick
// and tries again on the next one.
var ErrUnavailable = errors.New("clipboard content unavailable")

// Backend is the native clipboard primitive. Reads return ErrUnavailable
// when the clipboard holds no content of the requested kind; any other
// error is a platform failure and equally treated as transient by callers.
type Backend interface {
	ReadText() (string, error)
	ReadImage() (content.Image, error)
	WriteText(s string) error
	WriteImage(img content.Image) error

	// Close releases any resources held by the backend.
	Close()
}

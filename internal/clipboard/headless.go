package clipboard

import "go.klb.dev/seep/internal/content"

// headlessBackend is a no-op backend for environments without a display
// server. Reads report an empty clipboard and writes are discarded, so a
// headless relay can still run with --sync without special-casing.
type headlessBackend struct{}

func (*headlessBackend) ReadText() (string, error)         { return "", ErrUnavailable }
func (*headlessBackend) ReadImage() (content.Image, error) { return content.Image{}, ErrUnavailable }
func (*headlessBackend) WriteText(string) error            { return nil }
func (*headlessBackend) WriteImage(content.Image) error    { return nil }
func (*headlessBackend) Close()                            {}

package clipboard

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log/slog"

	"golang.design/x/clipboard"

	"go.klb.dev/seep/internal/content"
)

// New returns the native clipboard backend. clipboard.Init is called here
// rather than in init() so that CLI sub-commands that never touch the
// clipboard don't trigger the display probe. If the display environment is
// unavailable the headless no-op backend is returned instead.
func New() Backend {
	if err := clipboard.Init(); err != nil {
		slog.Warn("clipboard unavailable, running headless", "err", err)
		return &headlessBackend{}
	}
	return &nativeBackend{}
}

// nativeBackend talks to the OS clipboard. golang.design/x/clipboard
// exchanges images as PNG, so the backend converts between PNG and the raw
// RGBA8 buffers the sync protocol carries.
type nativeBackend struct{}

func (*nativeBackend) ReadText() (string, error) {
	b := clipboard.Read(clipboard.FmtText)
	if b == nil {
		return "", ErrUnavailable
	}
	return string(b), nil
}

func (*nativeBackend) ReadImage() (content.Image, error) {
	b := clipboard.Read(clipboard.FmtImage)
	if b == nil {
		return content.Image{}, ErrUnavailable
	}
	img, err := decodePNG(b)
	if err != nil {
		return content.Image{}, fmt.Errorf("clipboard image: %w", err)
	}
	return img, nil
}

func (*nativeBackend) WriteText(s string) error {
	clipboard.Write(clipboard.FmtText, []byte(s))
	return nil
}

func (*nativeBackend) WriteImage(img content.Image) error {
	b, err := encodePNG(img)
	if err != nil {
		return fmt.Errorf("clipboard image: %w", err)
	}
	clipboard.Write(clipboard.FmtImage, b)
	return nil
}

func (*nativeBackend) Close() {}

// decodePNG converts PNG bytes into a raw RGBA8 image. The pixel buffer is
// non-premultiplied, like the wire format and PNG itself, so the conversion
// must stay in NRGBA: going through image.RGBA premultiplies and loses
// translucent pixels.
func decodePNG(b []byte) (content.Image, error) {
	src, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		return content.Image{}, fmt.Errorf("decode png: %w", err)
	}
	bounds := src.Bounds()
	nrgba, ok := src.(*image.NRGBA)
	if !ok {
		// Non-NRGBA color models (gray, RGB, palette) are opaque, so the
		// premultiplied draw path is exact for them.
		nrgba = image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), src, bounds.Min, draw.Src)
	}
	return content.Image{
		Width:  uint(bounds.Dx()),
		Height: uint(bounds.Dy()),
		Pixels: nrgba.Pix,
	}, nil
}

// encodePNG converts a raw non-premultiplied RGBA8 image into PNG bytes.
func encodePNG(img content.Image) ([]byte, error) {
	if len(img.Pixels) != img.Size() {
		return nil, fmt.Errorf("pixel buffer is %d bytes, want %d for %dx%d",
			len(img.Pixels), img.Size(), img.Width, img.Height)
	}
	nrgba := &image.NRGBA{
		Pix:    img.Pixels,
		Stride: int(img.Width) * 4,
		Rect:   image.Rect(0, 0, int(img.Width), int(img.Height)),
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, nrgba); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Package content defines the clipboard content model shared by the change
// detector, the session loops, and the clipboard backends. Content is a
// closed sum: the clipboard holds either text or one image at any time.
package content

import "bytes"

// Content is a snapshot of the clipboard. The only implementations are
// Text and Image; consumers switch exhaustively over those two.
type Content interface {
	isContent()
}

// Text is plain UTF-8 clipboard text.
type Text struct {
	Value string
}

// Image is a raw RGBA8 bitmap, row-major, 4 bytes per pixel,
// non-premultiplied alpha.
type Image struct {
	Width  uint
	Height uint
	Pixels []byte
}

func (Text) isContent()  {}
func (Image) isContent() {}

// Size returns the expected pixel buffer length for the image dimensions.
func (i Image) Size() int {
	return int(i.Width) * int(i.Height) * 4
}

// Equal reports structural equality: text compares by value, images compare
// byte-for-byte over the pixel buffer, not just by dimensions. A nil Content
// (empty cache) equals only nil.
func Equal(a, b Content) bool {
	switch av := a.(type) {
	case Text:
		bv, ok := b.(Text)
		return ok && av.Value == bv.Value
	case Image:
		bv, ok := b.(Image)
		return ok &&
			av.Width == bv.Width &&
			av.Height == bv.Height &&
			bytes.Equal(av.Pixels, bv.Pixels)
	case nil:
		return b == nil
	}
	return false
}

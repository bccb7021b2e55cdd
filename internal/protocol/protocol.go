// Package protocol defines the seep wire protocol.
//
// Every clipboard change travels as a JSON text frame:
//
//	{"payload":{"Text":{"content":"hello"}}}
//	{"payload":{"Image":{"width":1920,"height":1080}}}
//
// A text notification is self-contained. An image notification is only the
// header; the pixel data follows as exactly one binary frame on the same
// connection, zlib-compressed, decompressing to width*height*4 RGBA bytes.
// The sender never puts another notification between a header and its
// payload, so receivers buffer one pending header at most.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrCodec marks a message that could not be decoded: malformed JSON, an
// unrecognized payload tag, or a truncated compressed stream. Callers drop
// the offending message; a codec error never tears the session down.
var ErrCodec = errors.New("codec error")

// TextPayload is the body of a text change notification.
type TextPayload struct {
	Content string `json:"content"`
}

// ImageHeader announces an image change; the compressed pixels follow in a
// separate binary frame.
type ImageHeader struct {
	Width  uint `json:"width"`
	Height uint `json:"height"`
}

// Notification is the change-notification envelope. Exactly one of Text or
// Image is set.
type Notification struct {
	Text  *TextPayload
	Image *ImageHeader
}

// NewText builds a text notification.
func NewText(content string) *Notification {
	return &Notification{Text: &TextPayload{Content: content}}
}

// NewImage builds an image header notification.
func NewImage(width, height uint) *Notification {
	return &Notification{Image: &ImageHeader{Width: width, Height: height}}
}

type payload struct {
	Text  *TextPayload `json:"Text,omitempty"`
	Image *ImageHeader `json:"Image,omitempty"`
}

type envelope struct {
	Payload payload `json:"payload"`
}

// Marshal serialises the notification to its wire form.
func (n *Notification) Marshal() ([]byte, error) {
	if (n.Text == nil) == (n.Image == nil) {
		return nil, fmt.Errorf("%w: notification must carry exactly one payload", ErrCodec)
	}
	return json.Marshal(envelope{Payload: payload{Text: n.Text, Image: n.Image}})
}

// Unmarshal parses a wire envelope. It fails with ErrCodec on malformed
// JSON, a missing payload, an unrecognized tag, or an ambiguous envelope
// carrying both variants.
func Unmarshal(b []byte) (*Notification, error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCodec, err)
	}
	if (env.Payload.Text == nil) == (env.Payload.Image == nil) {
		return nil, fmt.Errorf("%w: envelope must carry exactly one payload", ErrCodec)
	}
	return &Notification{Text: env.Payload.Text, Image: env.Payload.Image}, nil
}

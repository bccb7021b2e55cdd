package peer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/seep/internal/clipboard"
	"go.klb.dev/seep/internal/content"
	"go.klb.dev/seep/internal/protocol"
	"go.klb.dev/seep/internal/transport"
)

func textMsg(t *testing.T, s string) transport.Message {
	t.Helper()
	data, err := protocol.NewText(s).Marshal()
	require.NoError(t, err)
	return transport.Message{Kind: transport.KindText, Data: data}
}

func headerMsg(t *testing.T, w, h uint) transport.Message {
	t.Helper()
	data, err := protocol.NewImage(w, h).Marshal()
	require.NoError(t, err)
	return transport.Message{Kind: transport.KindText, Data: data}
}

func payloadMsg(t *testing.T, pixels []byte) transport.Message {
	t.Helper()
	data, err := protocol.Compress(pixels)
	require.NoError(t, err)
	return transport.Message{Kind: transport.KindBinary, Data: data}
}

func TestReceiverAppliesText(t *testing.T) {
	backend := clipboard.NewMemory()
	st := NewState()
	r := NewReceiver(st, backend, nil)

	r.Handle(textMsg(t, "hello"))

	assert.Equal(t, content.Text{Value: "hello"}, backend.Current())
	assert.Equal(t, content.Text{Value: "hello"}, st.Cache())
}

func TestReceiverAppliesImage(t *testing.T) {
	backend := clipboard.NewMemory()
	st := NewState()
	var notified string
	r := NewReceiver(st, backend, func(msg string) { notified = msg })

	img := testImage()
	r.Handle(headerMsg(t, img.Width, img.Height))
	// Header alone applies nothing.
	assert.Nil(t, backend.Current())

	r.Handle(payloadMsg(t, img.Pixels))
	assert.Equal(t, img, backend.Current())
	assert.Equal(t, img, st.Cache())
	assert.NotEmpty(t, notified)
	assert.Nil(t, st.TakePending(), "pending header must be consumed")
}

func TestReceiverDropsOrphanBinary(t *testing.T) {
	backend := clipboard.NewMemory()
	st := NewState()
	r := NewReceiver(st, backend, nil)

	r.Handle(payloadMsg(t, []byte{1, 2, 3, 4}))
	assert.Nil(t, backend.Current())
	assert.Nil(t, st.Cache())
}

func TestReceiverHeaderSupersededByNewerHeader(t *testing.T) {
	backend := clipboard.NewMemory()
	st := NewState()
	r := NewReceiver(st, backend, nil)

	r.Handle(headerMsg(t, 100, 100)) // never gets its payload
	r.Handle(headerMsg(t, 1, 1))
	r.Handle(payloadMsg(t, []byte{9, 9, 9, 9}))

	// The stale 100×100 header is gone; the payload pairs with the 1×1 one.
	want := content.Image{Width: 1, Height: 1, Pixels: []byte{9, 9, 9, 9}}
	assert.Equal(t, want, backend.Current())
}

func TestReceiverDropsMalformedNotification(t *testing.T) {
	backend := clipboard.NewMemory()
	st := NewState()
	r := NewReceiver(st, backend, nil)

	r.Handle(transport.Message{Kind: transport.KindText, Data: []byte("{nope")})
	r.Handle(transport.Message{Kind: transport.KindText, Data: []byte(`{"payload":{}}`)})

	assert.Nil(t, backend.Current())
	assert.Nil(t, st.Cache())

	// The session is still healthy: a valid message right after works.
	r.Handle(textMsg(t, "recovered"))
	assert.Equal(t, content.Text{Value: "recovered"}, backend.Current())
}

func TestReceiverDropsWrongPixelCount(t *testing.T) {
	backend := clipboard.NewMemory()
	st := NewState()
	r := NewReceiver(st, backend, nil)

	r.Handle(headerMsg(t, 2, 2))                // wants 16 bytes
	r.Handle(payloadMsg(t, []byte{1, 2, 3, 4})) // delivers 4

	assert.Nil(t, backend.Current())
	assert.Nil(t, st.Cache())
}

func TestReceiverDropsUndecodablePayload(t *testing.T) {
	backend := clipboard.NewMemory()
	st := NewState()
	r := NewReceiver(st, backend, nil)

	r.Handle(headerMsg(t, 1, 1))
	r.Handle(transport.Message{Kind: transport.KindBinary, Data: []byte("not zlib")})

	assert.Nil(t, backend.Current())
}

package relay

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/seep/internal/clipboard"
	"go.klb.dev/seep/internal/content"
	"go.klb.dev/seep/internal/protocol"
	"go.klb.dev/seep/internal/transport"
)

func TestLocalPeerAppliesBroadcasts(t *testing.T) {
	reg := NewRegistry()
	backend := clipboard.NewMemory()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		RunLocal(ctx, reg, "", backend, nil)
	}()
	waitFor(t, func() bool { return reg.Len() == 1 }, "local peer registered")

	data, err := protocol.NewText("from a remote peer").Marshal()
	require.NoError(t, err)
	reg.BroadcastExcept("someone-else", transport.Message{Kind: transport.KindText, Data: data})

	waitFor(t, func() bool {
		return content.Equal(backend.Current(), content.Text{Value: "from a remote peer"})
	}, "broadcast applied to the relay host clipboard")

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("local peer did not stop on cancel")
	}
	assert.Equal(t, 0, reg.Len(), "local peer unregistered")
}

func TestLocalPeerSkipsOwnBroadcasts(t *testing.T) {
	reg := NewRegistry()
	backend := clipboard.NewMemory()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go RunLocal(ctx, reg, "", backend, nil)
	waitFor(t, func() bool { return reg.Len() == 1 }, "local peer registered")

	data, err := protocol.NewText("self").Marshal()
	require.NoError(t, err)
	reg.BroadcastExcept(LocalID, transport.Message{Kind: transport.KindText, Data: data})

	time.Sleep(50 * time.Millisecond)
	assert.Nil(t, backend.Current(), "a local change must not loop back to the local clipboard")
}

func TestLocalPeerUsesSourceID(t *testing.T) {
	reg := NewRegistry()
	backend := clipboard.NewMemory()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go RunLocal(ctx, reg, "workstation", backend, nil)

	waitFor(t, func() bool { return reg.Len() == 1 }, "local peer registered")
	assert.Equal(t, []string{"workstation"}, reg.IDs())
}

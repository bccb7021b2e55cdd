package peer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.klb.dev/seep/internal/content"
	"go.klb.dev/seep/internal/protocol"
)

func TestStateUpdateIfChanged(t *testing.T) {
	s := NewState()

	assert.True(t, s.UpdateIfChanged(content.Text{Value: "a"}))
	assert.False(t, s.UpdateIfChanged(content.Text{Value: "a"}))
	assert.True(t, s.UpdateIfChanged(content.Text{Value: "b"}))
	assert.Equal(t, content.Text{Value: "b"}, s.Cache())
}

func TestStatePendingHeader(t *testing.T) {
	s := NewState()
	assert.Nil(t, s.TakePending())

	first := &protocol.ImageHeader{Width: 1, Height: 1}
	second := &protocol.ImageHeader{Width: 2, Height: 2}

	assert.Nil(t, s.SetPending(first))
	assert.Equal(t, first, s.SetPending(second), "replacing returns the displaced header")

	assert.Equal(t, second, s.TakePending())
	assert.Nil(t, s.TakePending(), "take clears")
}

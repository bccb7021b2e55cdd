package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	for i := byte(0); i < 5; i++ {
		require.True(t, q.Push(Message{Kind: KindText, Data: []byte{i}}))
	}
	for i := byte(0); i < 5; i++ {
		m, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, []byte{i}, m.Data)
	}
}

func TestQueuePopBlocksUntilPush(t *testing.T) {
	q := NewQueue()
	got := make(chan Message, 1)
	go func() {
		m, ok := q.Pop()
		if ok {
			got <- m
		}
	}()

	time.Sleep(10 * time.Millisecond) // let Pop park
	q.Push(Message{Kind: KindText, Data: []byte("late")})

	select {
	case m := <-got:
		assert.Equal(t, []byte("late"), m.Data)
	case <-time.After(time.Second):
		t.Fatal("Pop never woke up")
	}
}

func TestQueueCloseDrainsThenEnds(t *testing.T) {
	q := NewQueue()
	q.Push(Message{Kind: KindText, Data: []byte("a")})
	q.Push(Message{Kind: KindBinary, Data: []byte("b")})
	q.Close()

	m, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, []byte("a"), m.Data)
	m, ok = q.Pop()
	require.True(t, ok)
	assert.Equal(t, []byte("b"), m.Data)

	_, ok = q.Pop()
	assert.False(t, ok)

	// Push after close is discarded.
	assert.False(t, q.Push(Message{Kind: KindText}))
	assert.Equal(t, 0, q.Len())
}

func TestQueueCloseIdempotent(t *testing.T) {
	q := NewQueue()
	q.Close()
	q.Close()
	_, ok := q.Pop()
	assert.False(t, ok)
}

func TestQueueCloseWakesBlockedPop(t *testing.T) {
	q := NewQueue()
	done := make(chan bool, 1)
	go func() {
		_, ok := q.Pop()
		done <- ok
	}()

	time.Sleep(10 * time.Millisecond)
	q.Close()

	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Close did not wake Pop")
	}
}

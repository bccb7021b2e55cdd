// Package transport abstracts the message-framed duplex connection between
// peers and the relay. A Channel carries two message kinds, text and binary,
// with FIFO ordering within each direction. The production implementation
// wraps a WebSocket connection; tests use in-memory pipes.
package transport

// Kind discriminates the two frame types on the wire.
type Kind int

const (
	// KindText carries a JSON change-notification envelope.
	KindText Kind = iota + 1
	// KindBinary carries a compressed image pixel payload.
	KindBinary
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBinary:
		return "binary"
	}
	return "unknown"
}

// Message is one framed message.
type Message struct {
	Kind Kind
	Data []byte
}

// Channel is an ordered, message-framed duplex connection. Read and Write
// may be used concurrently with each other, but each must be driven by a
// single goroutine. Either may fail at any time; after a failure the
// channel is unusable and the session owning it must tear down.
type Channel interface {
	// Read blocks until the next message arrives or the connection fails.
	Read() (Message, error)

	// Write sends one message. Messages are delivered in write order.
	Write(Message) error

	// Close releases the connection. Safe to call more than once and
	// concurrently with Read and Write, which it unblocks.
	Close() error

	// RemoteAddr identifies the far end, used as the connection id.
	RemoteAddr() string
}

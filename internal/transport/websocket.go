package transport

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	handshakeTimeout = 10 * time.Second
	writeWait        = 10 * time.Second
)

// wsChannel adapts a gorilla WebSocket connection to Channel. Text and
// binary frames map directly onto the two message kinds; control frames are
// handled inside gorilla and never surface here.
type wsChannel struct {
	conn *websocket.Conn
}

// WebSocket wraps an established WebSocket connection.
func WebSocket(conn *websocket.Conn) Channel {
	return &wsChannel{conn: conn}
}

// DialWebSocket connects to a relay. Addresses without a scheme get ws://
// prepended so plain host:port targets work.
func DialWebSocket(addr string) (Channel, error) {
	if !strings.Contains(addr, "://") {
		addr = "ws://" + addr
	}
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.Dial(addr, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return &wsChannel{conn: conn}, nil
}

// WithSource tags a relay address with a source identifier, carried as the
// "source" query parameter of the dial URL. The relay labels the connection
// with it in logs and /status instead of the bare remote address.
func WithSource(addr, source string) string {
	if !strings.Contains(addr, "://") {
		addr = "ws://" + addr
	}
	u, err := url.Parse(addr)
	if err != nil {
		return addr
	}
	q := u.Query()
	q.Set("source", source)
	u.RawQuery = q.Encode()
	return u.String()
}

func (c *wsChannel) Read() (Message, error) {
	for {
		typ, data, err := c.conn.ReadMessage()
		if err != nil {
			return Message{}, err
		}
		switch typ {
		case websocket.TextMessage:
			return Message{Kind: KindText, Data: data}, nil
		case websocket.BinaryMessage:
			return Message{Kind: KindBinary, Data: data}, nil
		}
		// Anything else is a stray frame type; keep reading.
	}
}

func (c *wsChannel) Write(m Message) error {
	typ := websocket.TextMessage
	if m.Kind == KindBinary {
		typ = websocket.BinaryMessage
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(typ, m.Data)
}

func (c *wsChannel) Close() error {
	return c.conn.Close()
}

func (c *wsChannel) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

package transport

import (
	"fmt"
	"io"
	"sync/atomic"
)

var pipeSeq atomic.Int64

// pipeChannel is one end of an in-memory duplex channel, used by tests and
// by any in-process session that wants the full Channel contract without a
// socket.
type pipeChannel struct {
	addr string
	in   *Queue
	out  *Queue
}

// Pipe returns two connected channel ends. Writes on one end are read from
// the other, FIFO per direction. Closing either end unblocks both.
func Pipe() (Channel, Channel) {
	n := pipeSeq.Add(1)
	ab, ba := NewQueue(), NewQueue()
	a := &pipeChannel{addr: fmt.Sprintf("pipe-%d-a", n), in: ba, out: ab}
	b := &pipeChannel{addr: fmt.Sprintf("pipe-%d-b", n), in: ab, out: ba}
	return a, b
}

func (p *pipeChannel) Read() (Message, error) {
	m, ok := p.in.Pop()
	if !ok {
		return Message{}, io.EOF
	}
	return m, nil
}

func (p *pipeChannel) Write(m Message) error {
	if !p.out.Push(m) {
		return io.ErrClosedPipe
	}
	return nil
}

func (p *pipeChannel) Close() error {
	p.in.Close()
	p.out.Close()
	return nil
}

func (p *pipeChannel) RemoteAddr() string {
	return p.addr
}

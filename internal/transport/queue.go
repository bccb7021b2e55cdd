package transport

import "sync"

// Queue is an unbounded FIFO of messages. It decouples producers (the
// change detector, relay fan-out) from the I/O path of a single connection:
// a slow or stalled writer never blocks a push. Entries are never dropped:
// losing one would split an image header from its payload.
type Queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []Message
	closed bool
}

// NewQueue returns an empty open queue.
func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends m. It reports false if the queue is already closed, in which
// case m is discarded.
func (q *Queue) Push(m Message) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.items = append(q.items, m)
	q.cond.Signal()
	return true
}

// Pop blocks until a message is available or the queue is closed and
// drained. Remaining messages are still delivered after Close; ok is false
// only once the queue is both closed and empty.
func (q *Queue) Pop() (m Message, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		return Message{}, false
	}
	m = q.items[0]
	q.items[0] = Message{}
	q.items = q.items[1:]
	return m, true
}

// Close marks the queue closed and wakes all blocked Pops. Idempotent.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.cond.Broadcast()
}

// Len returns the number of queued messages.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

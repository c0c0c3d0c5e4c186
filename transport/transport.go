// Package transport simulates the radio medium between fob and vehicle.
//
// The medium is a closed broadcast channel: every attached handler,
// including the one that sent a message, observes every message. Delivery
// is synchronous and strictly ordered; Drain runs until no messages
// remain.
package transport

// Handler is the capability both protocol roles expose to the medium. It
// evaluates one inbound message and returns at most one response; a nil
// return means no response.
type Handler interface {
	Handle(message []byte) []byte
}

// Medium is an ordered queue of pending messages shared by every
// attached handler. It is not safe for concurrent use: the simulation is
// single-threaded and one logical step is one dequeue plus delivery to
// all handlers.
type Medium struct {
	queue    [][]byte
	handlers []Handler
}

// NewMedium creates an empty medium with no handlers attached.
func NewMedium() *Medium {
	return &Medium{}
}

// Attach subscribes a handler to every subsequent delivery.
func (m *Medium) Attach(h Handler) {
	m.handlers = append(m.handlers, h)
}

// Broadcast appends a message to the pending queue.
func (m *Medium) Broadcast(message []byte) {
	m.queue = append(m.queue, message)
}

// Drain delivers pending messages in FIFO emission order until the queue
// is empty. Each message goes to every attached handler, sender included;
// non-nil responses are enqueued behind whatever is already pending, so a
// response is delivered before any message emitted after it.
func (m *Medium) Drain() {
	for len(m.queue) > 0 {
		message := m.queue[0]
		m.queue = m.queue[1:]
		for _, h := range m.handlers {
			if response := h.Handle(message); response != nil {
				m.queue = append(m.queue, response)
			}
		}
	}
}

// Pending reports the number of undelivered messages.
func (m *Medium) Pending() int {
	return len(m.queue)
}

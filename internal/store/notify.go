package store

import "sync"

// Op classifies a mutation for change notification.
type Op string

const (
	OpAdd     Op = "add"
	OpPut     Op = "put"
	OpDelete  Op = "delete"
	OpReplace Op = "replace" // Clear or ReplaceAll; whole-collection change
)

// Event describes one mutation. ID is empty for whole-collection events.
type Event struct {
	Collection string
	Op         Op
	ID         string
}

// Watch registers a subscriber and returns its event channel. Events are
// delivered best-effort: a subscriber that falls behind drops events rather
// than blocking writers, so consumers must treat the channel as an
// invalidation hint and re-fetch, never as a complete change log. Polling
// consumers that ignore Watch entirely remain fully supported.
//
// The channel is closed when the store is closed. cancel unregisters the
// subscriber; it is safe to call more than once.
func (s *Store) Watch() (events <-chan Event, cancel func()) {
	return s.notifier.subscribe()
}

// notifier fans mutation events out to subscribers.
type notifier struct {
	mu     sync.Mutex
	closed bool
	subs   map[int]chan Event
	nextID int
}

const subscriberBuffer = 16

func newNotifier() *notifier {
	return &notifier{subs: make(map[int]chan Event)}
}

func (n *notifier) subscribe() (<-chan Event, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	if n.closed {
		close(ch)
		return ch, func() {}
	}

	id := n.nextID
	n.nextID++
	n.subs[id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if sub, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// publish delivers an event to every subscriber without blocking.
// A full subscriber channel drops the event.
func (n *notifier) publish(ev Event) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return
	}
	for _, ch := range n.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (n *notifier) close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return
	}
	n.closed = true
	for id, ch := range n.subs {
		delete(n.subs, id)
		close(ch)
	}
}

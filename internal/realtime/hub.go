package realtime

import (
	"sync"
	"sync/atomic"
)

const (
	EventNewDisaster = "new-disaster"
	EventNewAlert    = "new-alert"
)

// Event is one broadcast message: an event name and the full created record.
type Event struct {
	Name    string
	Payload any
}

// Hub is the process-wide monitoring room. Delivery is best-effort with no
// replay: subscribers joining after a publish never see missed events, and
// a slow subscriber drops events rather than blocking the publisher.
type Hub struct {
	subscribers map[uint64]chan Event
	nextID      atomic.Uint64
	mu          sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[uint64]chan Event),
	}
}

func (h *Hub) Subscribe() (uint64, chan Event) {
	id := h.nextID.Add(1)
	ch := make(chan Event, 100)

	h.mu.Lock()
	h.subscribers[id] = ch
	h.mu.Unlock()

	return id, ch
}

func (h *Hub) Unsubscribe(id uint64) {
	h.mu.Lock()
	if ch, ok := h.subscribers[id]; ok {
		close(ch)
		delete(h.subscribers, id)
	}
	h.mu.Unlock()
}

// Publish delivers the event to every current subscriber. It never blocks
// and never fails the caller.
func (h *Hub) Publish(name string, payload any) {
	ev := Event{Name: name, Payload: payload}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subscribers {
		select {
		case ch <- ev:
		default:
			// Skip slow subscribers
		}
	}
}

func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Close closes all subscriber channels, ending their streams gracefully.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subscribers {
		close(ch)
		delete(h.subscribers, id)
	}
}

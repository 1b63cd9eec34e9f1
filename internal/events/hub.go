package events

import "sync"

// Hub fans progress events out to subscribers (console reporter, future
// UIs). Slow subscribers get dropped events rather than stalling the run.
type Hub struct {
	mu      sync.Mutex
	clients map[chan Progress]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[chan Progress]struct{})}
}

func (h *Hub) Subscribe() chan Progress {
	ch := make(chan Progress, 16)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) Unsubscribe(ch chan Progress) {
	h.mu.Lock()
	delete(h.clients, ch)
	h.mu.Unlock()
	close(ch)
}

func (h *Hub) Publish(evt Progress) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- evt:
		default:
			// drop if slow
		}
	}
}

package handlers

import (
	"sync"

	"geiger_console/internal/models"
	"geiger_console/internal/service"
)

// Hub fans renders out to WebSocket subscribers. Each subscriber holds at
// most one pending value per stream; a slow reader only ever sees the most
// recent one.
type Hub struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

var _ service.RenderSink = (*Hub)(nil)

func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscription]struct{})}
}

// Subscription is one WebSocket client's view of the hub.
type Subscription struct {
	hub        *Hub
	Telemetry  chan service.TelemetryView
	Connection chan models.ConnectionState
}

func (h *Hub) Subscribe() *Subscription {
	s := &Subscription{
		hub:        h,
		Telemetry:  make(chan service.TelemetryView, 1),
		Connection: make(chan models.ConnectionState, 1),
	}
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	return s
}

// Unsubscribe detaches the subscription. Channels are left open so a
// concurrent reader never sees a spurious zero value.
func (s *Subscription) Unsubscribe() {
	s.hub.mu.Lock()
	delete(s.hub.subs, s)
	s.hub.mu.Unlock()
}

// Subscribers returns the current subscriber count.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) RenderTelemetry(view service.TelemetryView) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs {
		offerLatest(s.Telemetry, view)
	}
}

func (h *Hub) RenderConnection(state models.ConnectionState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs {
		offerLatest(s.Connection, state)
	}
}

// offerLatest replaces any unread value in ch with v without blocking.
// Senders are serialized by the hub lock, so after one drain the send
// always finds room.
func offerLatest[T any](ch chan T, v T) {
	select {
	case ch <- v:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- v:
	default:
	}
}

package service

import (
	"sync"
	"time"

	"geiger_console/internal/models"
)

// ConnectionTracker derives the connectivity signal from the most recent poll
// outcome. No hysteresis: one failure reports Disconnected, one success
// clears it.
type ConnectionTracker struct {
	sink RenderSink

	mu    sync.Mutex
	state models.ConnectionState
}

func NewConnectionTracker(sink RenderSink) *ConnectionTracker {
	if sink == nil {
		sink = NopSink{}
	}
	return &ConnectionTracker{
		sink:  sink,
		state: models.ConnectionState{Status: models.Disconnected},
	}
}

// OnPollResult applies one poll outcome observed at the given time.
func (t *ConnectionTracker) OnPollResult(success bool, at time.Time) {
	next := models.Disconnected
	if success {
		next = models.Connected
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.Status == next && !t.state.ChangedAt.IsZero() {
		return
	}
	t.state = models.ConnectionState{Status: next, ChangedAt: at.UTC()}
	t.sink.RenderConnection(t.state)
}

// State returns the current connection state.
func (t *ConnectionTracker) State() models.ConnectionState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

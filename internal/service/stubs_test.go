package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"geiger_console/internal/models"
	"geiger_console/internal/transport"
)

// stubDevice is a hand-written transport.Transport whose behaviour is set
// per test through the function fields.
type stubDevice struct {
	mu sync.Mutex

	statusFn func(ctx context.Context) (models.StatusReport, error)
	configFn func(ctx context.Context) (models.ConfigDocument, error)
	saveFn   func(ctx context.Context, payload map[string]any) error
	pingFn   func(ctx context.Context) error

	statusCalls int
	configCalls int
	pings       int
	saved       []map[string]any
}

var _ transport.Transport = (*stubDevice)(nil)

func (s *stubDevice) FetchStatus(ctx context.Context) (models.StatusReport, error) {
	s.mu.Lock()
	s.statusCalls++
	fn := s.statusFn
	s.mu.Unlock()
	if fn == nil {
		return models.StatusReport{}, nil
	}
	return fn(ctx)
}

func (s *stubDevice) FetchConfig(ctx context.Context) (models.ConfigDocument, error) {
	s.mu.Lock()
	s.configCalls++
	fn := s.configFn
	s.mu.Unlock()
	if fn == nil {
		return models.ConfigDocument{}, nil
	}
	return fn(ctx)
}

func (s *stubDevice) SaveConfig(ctx context.Context, payload map[string]any) error {
	s.mu.Lock()
	s.saved = append(s.saved, payload)
	fn := s.saveFn
	s.mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn(ctx, payload)
}

func (s *stubDevice) Ping(ctx context.Context) error {
	s.mu.Lock()
	s.pings++
	fn := s.pingFn
	s.mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (s *stubDevice) pingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pings
}

func (s *stubDevice) lastSaved() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.saved) == 0 {
		return nil
	}
	return s.saved[len(s.saved)-1]
}

// recordingSink captures renders.
type recordingSink struct {
	mu          sync.Mutex
	telemetry   []TelemetryView
	connections []models.ConnectionState
}

func (r *recordingSink) RenderTelemetry(v TelemetryView) {
	r.mu.Lock()
	r.telemetry = append(r.telemetry, v)
	r.mu.Unlock()
}

func (r *recordingSink) RenderConnection(s models.ConnectionState) {
	r.mu.Lock()
	r.connections = append(r.connections, s)
	r.mu.Unlock()
}

func (r *recordingSink) telemetryCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.telemetry)
}

func (r *recordingSink) connectionStatuses() []models.ConnectionStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.ConnectionStatus, 0, len(r.connections))
	for _, c := range r.connections {
		out = append(out, c.Status)
	}
	return out
}

// recordingEvents captures EventSink calls.
type recordingEvents struct {
	mu    sync.Mutex
	types []string
}

func (r *recordingEvents) Record(typ, _ string, _ any) {
	r.mu.Lock()
	r.types = append(r.types, typ)
	r.mu.Unlock()
}

func (r *recordingEvents) recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.types...)
}

func ptr(v float64) *float64 { return &v }

func networkErr(op string) error {
	return &transport.Error{Op: op, Kind: transport.KindNetwork, Err: context.DeadlineExceeded}
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

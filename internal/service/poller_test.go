package service

import (
	"context"
	"testing"
	"time"

	"geiger_console/internal/models"

	"github.com/jonboulle/clockwork"
)

func scenarioReport() models.StatusReport {
	return models.StatusReport{
		DoseUSvh: 0.123, CPM: 45, Counts: 1234,
		HasTHP: true, Temperature: ptr(21.5), Humidity: ptr(40), Pressure: ptr(1013.2),
		UptimeS: 3725,
	}
}

func newTestPoller(dev *stubDevice, clock clockwork.Clock) (*Poller, *ConnectionTracker, *recordingSink) {
	sink := &recordingSink{}
	tracker := NewConnectionTracker(sink)
	return NewPoller(dev, tracker, sink, clock, time.Second, nil), tracker, sink
}

func TestPoller_Poll_SuccessRendersSnapshotAndConnects(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClockAt(time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC))
	dev := &stubDevice{statusFn: func(context.Context) (models.StatusReport, error) {
		return scenarioReport(), nil
	}}
	p, tracker, sink := newTestPoller(dev, clock)

	if err := p.Poll(context.Background()); err != nil {
		t.Fatalf("Poll: %v", err)
	}

	if sink.telemetryCount() != 1 {
		t.Fatalf("want 1 telemetry render, got %d", sink.telemetryCount())
	}
	v := sink.telemetry[0]
	if v.DoseRate != "0.123" || v.Uptime != "1h 2m" || !v.EnvVisible {
		t.Fatalf("unexpected view: %+v", v)
	}
	if !tracker.State().IsConnected() {
		t.Fatalf("expected Connected, got %+v", tracker.State())
	}

	view := p.Current()
	if view.Telemetry == nil || view.LastUpdate != "Just updated" {
		t.Fatalf("unexpected dashboard: %+v", view)
	}
	clock.Advance(5 * time.Second)
	if got := p.Current().LastUpdate; got != "Updated 5s ago" {
		t.Fatalf("LastUpdate = %q", got)
	}
}

func TestPoller_Poll_FailureKeepsLastSnapshot(t *testing.T) {
	t.Parallel()

	fail := false
	dev := &stubDevice{}
	dev.statusFn = func(context.Context) (models.StatusReport, error) {
		if fail {
			return models.StatusReport{}, networkErr("fetch_status")
		}
		return scenarioReport(), nil
	}
	p, tracker, sink := newTestPoller(dev, clockwork.NewFakeClock())

	_ = p.Poll(context.Background())
	fail = true
	if err := p.Poll(context.Background()); err == nil {
		t.Fatalf("expected error from failed poll")
	}

	if sink.telemetryCount() != 1 {
		t.Fatalf("failed poll must not render telemetry, got %d renders", sink.telemetryCount())
	}
	if tracker.State().IsConnected() {
		t.Fatalf("expected Disconnected after failure")
	}
	snap, ok := p.Latest()
	if !ok || snap.DoseRate != 0.123 {
		t.Fatalf("previous snapshot should be kept, got %+v ok=%v", snap, ok)
	}
}

func TestPoller_FailureThenSuccessFlipsConnection(t *testing.T) {
	t.Parallel()

	calls := 0
	dev := &stubDevice{statusFn: func(context.Context) (models.StatusReport, error) {
		calls++
		if calls == 1 {
			return models.StatusReport{}, networkErr("fetch_status")
		}
		return scenarioReport(), nil
	}}
	p, _, sink := newTestPoller(dev, clockwork.NewFakeClock())

	_ = p.Poll(context.Background())
	_ = p.Poll(context.Background())

	got := sink.connectionStatuses()
	want := []models.ConnectionStatus{models.Disconnected, models.Connected}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("connection renders = %v, want %v", got, want)
	}
}

func TestPoller_OverlappingPolls_LastReceivedWins(t *testing.T) {
	t.Parallel()

	releaseSlow := make(chan struct{})
	slowStarted := make(chan struct{})
	calls := 0
	dev := &stubDevice{}
	dev.statusFn = func(ctx context.Context) (models.StatusReport, error) {
		dev.mu.Lock()
		calls++
		n := calls
		dev.mu.Unlock()
		if n == 1 {
			close(slowStarted)
			<-releaseSlow
			return models.StatusReport{DoseUSvh: 1.111}, nil
		}
		return models.StatusReport{DoseUSvh: 2.222}, nil
	}
	p, _, _ := newTestPoller(dev, clockwork.NewFakeClock())

	done := make(chan struct{})
	go func() {
		_ = p.Poll(context.Background())
		close(done)
	}()
	<-slowStarted

	// issued later, answered first
	if err := p.Poll(context.Background()); err != nil {
		t.Fatalf("fast poll: %v", err)
	}
	close(releaseSlow)
	<-done

	snap, _ := p.Latest()
	if snap.DoseRate != 1.111 {
		t.Fatalf("the response received last must win, got %v", snap.DoseRate)
	}
}

func TestPoller_StartPollsImmediatelyAndPeriodically(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	dev := &stubDevice{statusFn: func(context.Context) (models.StatusReport, error) {
		return scenarioReport(), nil
	}}
	p, _, sink := newTestPoller(dev, clock)

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer p.Stop()

	waitFor(t, "immediate poll", func() bool { return sink.telemetryCount() >= 1 })
	clock.Advance(time.Second)
	waitFor(t, "periodic poll", func() bool { return sink.telemetryCount() >= 2 })
}

func TestPoller_StopDiscardsInflightCompletion(t *testing.T) {
	t.Parallel()

	started := make(chan struct{}, 1)
	dev := &stubDevice{statusFn: func(ctx context.Context) (models.StatusReport, error) {
		started <- struct{}{}
		<-ctx.Done()
		return models.StatusReport{}, ctx.Err()
	}}
	p, tracker, sink := newTestPoller(dev, clockwork.NewFakeClock())

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	<-started
	p.Stop()

	if n := len(sink.connectionStatuses()); n != 0 {
		t.Fatalf("completion after Stop must be discarded, got %d connection renders", n)
	}
	if !tracker.State().ChangedAt.IsZero() {
		t.Fatalf("tracker should be untouched, got %+v", tracker.State())
	}
}

func TestPoller_CurrentBeforeFirstSnapshot(t *testing.T) {
	t.Parallel()

	p, _, _ := newTestPoller(&stubDevice{}, clockwork.NewFakeClock())
	view := p.Current()
	if view.Telemetry != nil || view.LastUpdate != "Never" || view.Connection.Status != models.Disconnected {
		t.Fatalf("unexpected initial dashboard: %+v", view)
	}
}

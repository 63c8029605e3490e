package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"geiger_console/internal/logger"
	"geiger_console/internal/models"
	"geiger_console/internal/schedule"
	"geiger_console/internal/transport"

	"github.com/jonboulle/clockwork"
)

// DefaultPollInterval is the dashboard refresh period.
const DefaultPollInterval = 2 * time.Second

// errStalePoll marks a completion that lost to a newer one.
var errStalePoll = errors.New("poll result discarded")

// Poller requests a telemetry snapshot on a fixed period. Ticks never wait
// for the previous request: overlapping requests are allowed and the
// response received last wins, which is safe because every snapshot is a
// full replacement.
type Poller struct {
	fetcher transport.StatusFetcher
	tracker *ConnectionTracker
	sink    RenderSink
	clock   clockwork.Clock
	log     *logger.Logger
	task    *schedule.Task

	inflight sync.WaitGroup

	mu          sync.Mutex
	epoch       uint64 // bumped on Start/Stop; completions from another epoch are dropped
	lastReceipt time.Time
	latest      *models.TelemetrySnapshot
}

func NewPoller(fetcher transport.StatusFetcher, tracker *ConnectionTracker, sink RenderSink,
	clock clockwork.Clock, interval time.Duration, log *logger.Logger) *Poller {
	if sink == nil {
		sink = NopSink{}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if log == nil {
		log = logger.Nop()
	}
	p := &Poller{
		fetcher: fetcher,
		tracker: tracker,
		sink:    sink,
		clock:   clock,
		log:     log,
	}
	p.task = schedule.NewTask(clock, interval, p.tick, schedule.WithImmediate())
	return p
}

// Start polls once immediately and then every interval until Stop or ctx ends.
func (p *Poller) Start(ctx context.Context) error {
	p.bumpEpoch()

	if err := p.task.Start(ctx); err != nil {
		return err
	}
	p.log.Infow("telemetry_poller_started")
	return nil
}

// Stop cancels the timer and in-flight requests. Completions that arrive
// afterwards are discarded.
func (p *Poller) Stop() {
	p.bumpEpoch()
	p.task.Stop()
	// polls issued between the first bump and the timer stopping
	p.bumpEpoch()

	p.inflight.Wait()
	p.log.Infow("telemetry_poller_stopped")
}

func (p *Poller) bumpEpoch() {
	p.mu.Lock()
	p.epoch++
	p.mu.Unlock()
}

func (p *Poller) tick(ctx context.Context) {
	p.inflight.Add(1)
	go func() {
		defer p.inflight.Done()
		_ = p.Poll(ctx)
	}()
}

// Poll issues one snapshot request. On success the snapshot replaces the
// previous one and is rendered; on failure nothing is published and the
// tracker is told. The returned error is informational only.
func (p *Poller) Poll(ctx context.Context) error {
	p.mu.Lock()
	issuedEpoch := p.epoch
	p.mu.Unlock()

	report, err := p.fetcher.FetchStatus(ctx)
	receivedAt := p.clock.Now()

	p.mu.Lock()
	defer p.mu.Unlock()

	if issuedEpoch != p.epoch || receivedAt.Before(p.lastReceipt) {
		return errStalePoll
	}
	p.lastReceipt = receivedAt

	if err != nil {
		p.log.Debugw("telemetry_poll_failed", "err", err, "kind", transport.Classify(err))
		p.tracker.OnPollResult(false, receivedAt)
		return err
	}

	snap := models.NewTelemetrySnapshot(report, receivedAt)
	p.latest = &snap
	p.sink.RenderTelemetry(FormatTelemetry(snap))
	p.tracker.OnPollResult(true, receivedAt)
	return nil
}

// Latest returns the most recently applied snapshot, if any.
func (p *Poller) Latest() (models.TelemetrySnapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.latest == nil {
		return models.TelemetrySnapshot{}, false
	}
	return *p.latest, true
}

// Current returns the dashboard as a presenter should draw it right now.
func (p *Poller) Current() DashboardView {
	view := DashboardView{
		Connection: p.tracker.State(),
		LastUpdate: neverUpdated,
	}
	if snap, ok := p.Latest(); ok {
		tv := FormatTelemetry(snap)
		view.Telemetry = &tv
		view.LastUpdate = LastUpdateText(snap.ReceivedAt, p.clock.Now())
	}
	return view
}

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

// DefaultHeartbeatInterval is how often the suppression lease is renewed.
const DefaultHeartbeatInterval = 2 * time.Second

// Heartbeat keeps the device's "suppress ticking" lease alive while a
// configuration session is open. If renewals stop the device lease expires
// and normal feedback resumes.
type Heartbeat struct {
	pinger  transport.Pinger
	clock   clockwork.Clock
	log     *logger.Logger
	enabled bool
	task    *schedule.Task

	inflight sync.WaitGroup

	mu    sync.Mutex
	lease models.HeartbeatLease
}

// NewHeartbeat builds a stopped heartbeat. With enabled=false Start is a no-op
// (local fixture mode has no lease endpoint).
func NewHeartbeat(pinger transport.Pinger, clock clockwork.Clock, interval time.Duration,
	enabled bool, log *logger.Logger) *Heartbeat {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if interval <= 0 {
		interval = DefaultHeartbeatInterval
	}
	if log == nil {
		log = logger.Nop()
	}
	h := &Heartbeat{
		pinger:  pinger,
		clock:   clock,
		log:     log,
		enabled: enabled,
	}
	h.task = schedule.NewTask(clock, interval, h.tick, schedule.WithImmediate())
	return h
}

// Start begins renewing the lease. Calling Start on an active heartbeat is a no-op.
func (h *Heartbeat) Start(ctx context.Context) error {
	if !h.enabled {
		h.log.Infow("config_heartbeat_disabled")
		return nil
	}

	h.mu.Lock()
	if h.lease.Active {
		h.mu.Unlock()
		return nil
	}
	h.lease = models.HeartbeatLease{Active: true, StartedAt: h.clock.Now().UTC()}
	h.mu.Unlock()

	if err := h.task.Start(ctx); err != nil && !errors.Is(err, schedule.ErrAlreadyRunning) {
		h.mu.Lock()
		h.lease.Active = false
		h.mu.Unlock()
		return err
	}
	h.log.Infow("config_heartbeat_started")
	return nil
}

// Stop halts renewals. In-flight pings are cancelled and waited for, so once
// Stop returns no further ping is sent, even if a tick was already pending.
func (h *Heartbeat) Stop() {
	h.task.Stop()
	h.inflight.Wait()

	h.mu.Lock()
	wasActive := h.lease.Active
	h.lease.Active = false
	h.mu.Unlock()

	if wasActive {
		h.log.Infow("config_heartbeat_stopped")
	}
}

// Lease returns the client-side view of the lease.
func (h *Heartbeat) Lease() models.HeartbeatLease {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lease
}

// tick fires a renewal without waiting for the previous one, so a slow device
// does not stretch the interval.
func (h *Heartbeat) tick(ctx context.Context) {
	h.inflight.Add(1)
	go func() {
		defer h.inflight.Done()
		h.renew(ctx)
	}()
}

// renew sends one ping. Failures are logged and the next tick tries again.
func (h *Heartbeat) renew(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	err := h.pinger.Ping(ctx)
	if err != nil {
		if ctx.Err() == nil {
			h.log.Warnw("config_heartbeat_failed", "err", err, "kind", transport.Classify(err))
		}
		return
	}

	h.mu.Lock()
	if h.lease.Active {
		h.lease.LastRenewal = h.clock.Now().UTC()
	}
	h.mu.Unlock()
}

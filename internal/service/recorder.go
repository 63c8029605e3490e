package service

import (
	"context"
	"time"

	"geiger_console/internal/logger"
	"geiger_console/internal/models"
	"geiger_console/internal/repository"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

const defaultRecorderQueue = 64

// EventSink accepts console events for the audit log.
type EventSink interface {
	Record(typ, description string, metadata any)
}

// EventRecorder writes console events to the repository on its own
// goroutine so that callers holding state locks never wait on SQLite. It is
// also a RenderSink: connection transitions become CONNECTED/DISCONNECTED
// entries. Telemetry renders are ignored.
type EventRecorder struct {
	repo  repository.EventRepo
	clock clockwork.Clock
	log   *logger.Logger
	queue chan models.ConsoleEvent
}

func NewEventRecorder(repo repository.EventRepo, clock clockwork.Clock, log *logger.Logger) *EventRecorder {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &EventRecorder{
		repo:  repo,
		clock: clock,
		log:   log,
		queue: make(chan models.ConsoleEvent, defaultRecorderQueue),
	}
}

// Record enqueues an event. When the queue is full the event is dropped.
func (r *EventRecorder) Record(typ, description string, metadata any) {
	e := models.ConsoleEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  r.clock.Now().UTC(),
		Type:        typ,
		Description: description,
		Metadata:    metadata,
	}
	select {
	case r.queue <- e:
	default:
		r.log.Warnw("console_event_dropped", "type", typ)
	}
}

func (r *EventRecorder) RenderTelemetry(TelemetryView) {}

func (r *EventRecorder) RenderConnection(state models.ConnectionState) {
	if state.IsConnected() {
		r.Record(models.EventConnected, "Device reachable", nil)
		return
	}
	r.Record(models.EventDisconnected, "Device unreachable", nil)
}

// Run persists queued events until ctx is done, then flushes what is left.
func (r *EventRecorder) Run(ctx context.Context) {
	r.log.Infow("console_event_recorder_started")
	for {
		select {
		case <-ctx.Done():
			r.drain(context.WithoutCancel(ctx))
			r.log.Infow("console_event_recorder_stopped")
			return
		case e := <-r.queue:
			r.write(ctx, e)
		}
	}
}

func (r *EventRecorder) drain(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	for {
		select {
		case e := <-r.queue:
			r.write(ctx, e)
		default:
			return
		}
	}
}

func (r *EventRecorder) write(ctx context.Context, e models.ConsoleEvent) {
	if err := r.repo.Append(ctx, e); err != nil {
		r.log.Errorw("console_event_write_failed", "type", e.Type, "event_id", e.EventID, "err", err)
	}
}

// Package schedule runs cancellable periodic tasks on an injectable clock.
package schedule

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// ErrAlreadyRunning is returned by Start on a running task.
var ErrAlreadyRunning = errors.New("task already running")

// Func is one scheduled invocation. ctx is cancelled when the task stops.
type Func func(ctx context.Context)

// Option configures a Task.
type Option func(*Task)

// WithImmediate runs the task once right after Start, before the first period.
func WithImmediate() Option {
	return func(t *Task) { t.immediate = true }
}

// Task invokes fn every period until stopped. Invocations run on the task's
// own goroutine, one at a time; fn must not call Stop.
type Task struct {
	clock     clockwork.Clock
	period    time.Duration
	fn        Func
	immediate bool

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewTask builds a stopped task.
func NewTask(clock clockwork.Clock, period time.Duration, fn Func, opts ...Option) *Task {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	t := &Task{clock: clock, period: period, fn: fn}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start launches the loop. The task also stops when parent is cancelled.
func (t *Task) Start(parent context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.runningLocked() {
		return ErrAlreadyRunning
	}
	if t.cancel != nil {
		// the parent context ended the previous run
		t.cancel()
	}
	if t.period <= 0 {
		return errors.New("task period must be positive")
	}

	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	t.cancel = cancel
	t.done = done

	// The ticker is created before Start returns so a fake clock sees it.
	ticker := t.clock.NewTicker(t.period)
	go t.loop(ctx, ticker, done)
	return nil
}

// Stop cancels the task and waits for the loop to exit. After Stop returns
// fn is not invoked again until the next Start. Safe to call repeatedly.
func (t *Task) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the loop is active.
func (t *Task) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.runningLocked()
}

func (t *Task) runningLocked() bool {
	if t.done == nil {
		return false
	}
	select {
	case <-t.done:
		return false
	default:
		return true
	}
}

func (t *Task) loop(ctx context.Context, ticker clockwork.Ticker, done chan<- struct{}) {
	defer close(done)
	defer ticker.Stop()

	if t.immediate && ctx.Err() == nil {
		t.fn(ctx)
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			// both cases may be ready at once; a stopped task must not run
			if ctx.Err() != nil {
				return
			}
			t.fn(ctx)
		}
	}
}

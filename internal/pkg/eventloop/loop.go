package eventloop

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

const defaultQueueSize = 256

// Loop runs posted tasks one at a time on a dedicated goroutine.
type Loop struct {
	tasks  chan func()
	done   chan struct{}
	once   sync.Once
	logger *slog.Logger
}

// NewLoop creates a loop. Call Run to start processing tasks.
func NewLoop(logger *slog.Logger) *Loop {
	return &Loop{
		tasks:  make(chan func(), defaultQueueSize),
		done:   make(chan struct{}),
		logger: logger.With("component", "event_loop"),
	}
}

// Run processes tasks until ctx is cancelled. Tasks still queued at that
// point are discarded.
func (l *Loop) Run(ctx context.Context) {
	l.logger.InfoContext(ctx, "Event loop started")
	defer func() {
		l.once.Do(func() { close(l.done) })
		l.logger.InfoContext(context.Background(), "Event loop stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case task := <-l.tasks:
			l.run(task)
		}
	}
}

func (l *Loop) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("Event loop task panicked", "panic", r)
		}
	}()
	task()
}

// Post queues f without waiting. It returns false if the loop has stopped.
func (l *Loop) Post(f func()) bool {
	if l.stopped() {
		return false
	}
	select {
	case <-l.done:
		return false
	case l.tasks <- f:
		return true
	}
}

// Do runs f on the loop and blocks until it returns. A panic in f is
// recovered and reported as ErrTaskPanicked. Do must not be called from a
// task already running on the loop.
func (l *Loop) Do(ctx context.Context, f func()) error {
	result := make(chan error, 1)
	task := func() {
		result <- runRecovered(f, l.logger)
	}

	if l.stopped() {
		return ErrLoopStopped
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrLoopStopped
	case l.tasks <- task:
	}

	select {
	case err := <-result:
		return err
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func runRecovered(f func(), logger *slog.Logger) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Event loop task panicked", "panic", r)
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
		}
	}()
	f()
	return nil
}

func (l *Loop) stopped() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

// Now returns the wall clock.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules f to run on the loop after d.
func (l *Loop) AfterFunc(d time.Duration, f func()) Timer {
	lt := &loopTimer{}
	lt.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if !lt.fire() {
				return
			}
			f()
		})
	})
	return lt
}

type loopTimer struct {
	timer *time.Timer
	state atomic.Int32
}

const (
	timerPending int32 = iota
	timerFired
	timerStopped
)

func (t *loopTimer) fire() bool {
	return t.state.CompareAndSwap(timerPending, timerFired)
}

func (t *loopTimer) Stop() bool {
	t.timer.Stop()
	return t.state.CompareAndSwap(timerPending, timerStopped)
}

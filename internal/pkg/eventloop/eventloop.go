// Package eventloop serializes the dashboard's mutable state onto a single
// goroutine.
//
// The feed simulation, the connection manager and the order store are written
// as single-threaded code: their callbacks never run concurrently and timers
// never fire after they have been stopped. Loop provides that guarantee on a
// real clock; Manual provides it on a virtual clock driven by tests.
package eventloop

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrLoopStopped is returned by Do when the loop is no longer running.
	ErrLoopStopped = errors.New("event loop stopped")

	// ErrTaskPanicked is returned by Do when the function it ran panicked.
	ErrTaskPanicked = errors.New("event loop task panicked")
)

// Timer is a pending callback created by AfterFunc.
type Timer interface {
	// Stop cancels the timer. It reports whether the call prevented the callback
	// from running. Once Stop returns the callback is guaranteed not to run.
	Stop() bool
}

// Scheduler is the time source used by loop-bound components.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Executor runs a function on the loop goroutine and waits for it to finish.
// Code outside the loop (HTTP handlers, cron jobs, main) uses it to reach
// loop-owned state.
type Executor interface {
	Do(ctx context.Context, f func()) error
}

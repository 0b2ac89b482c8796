// Package remote simulates the remote side of dashboard status edits.
package remote

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"dashboard/internal/core/domain/model/kernel"
	"dashboard/internal/core/domain/model/order"
	"dashboard/internal/pkg/errs"
	"dashboard/internal/pkg/eventloop"
	"dashboard/internal/pkg/random"
)

// DefaultLatency is the simulated round trip of a status write.
const DefaultLatency = 350 * time.Millisecond

var ErrWriteRejected = errors.New("remote status write rejected")

// SimulatedStatusWriter answers every write after a fixed latency. A write
// fails with probability failureRate.
type SimulatedStatusWriter struct {
	scheduler   eventloop.Scheduler
	latency     time.Duration
	failureRate float64
	src         random.Source
	logger      *slog.Logger
}

func NewSimulatedStatusWriter(
	scheduler eventloop.Scheduler,
	latency time.Duration,
	failureRate float64,
	src random.Source,
	logger *slog.Logger,
) (*SimulatedStatusWriter, error) {
	if scheduler == nil {
		return nil, errs.NewValueIsRequiredError("scheduler")
	}
	if src == nil {
		return nil, errs.NewValueIsRequiredError("random source")
	}
	if latency < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("latency", fmt.Errorf("%s is negative", latency))
	}
	if failureRate < 0 || failureRate > 1 {
		return nil, errs.NewValueIsOutOfRangeError("failure rate", failureRate, 0, 1)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SimulatedStatusWriter{
		scheduler:   scheduler,
		latency:     latency,
		failureRate: failureRate,
		src:         src,
		logger:      logger.With("component", "remote_status_writer"),
	}, nil
}

func (w *SimulatedStatusWriter) WriteStatus(id kernel.OrderID, status order.Status, done func(error)) {
	w.scheduler.AfterFunc(w.latency, func() {
		if random.Chance(w.src, w.failureRate) {
			w.logger.Warn("Status write rejected", "order_id", id.String(), "status", status.String())
			done(fmt.Errorf("%w: %s -> %s", ErrWriteRejected, id, status))
			return
		}
		w.logger.Debug("Status write confirmed", "order_id", id.String(), "status", status.String())
		done(nil)
	})
}

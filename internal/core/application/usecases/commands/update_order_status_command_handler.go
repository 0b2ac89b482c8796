package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dashboard/internal/core/domain/model/order"
	"dashboard/internal/core/ports"
)

// ErrStatusUpdateRolledBack wraps the writer error when an optimistic edit is undone.
var ErrStatusUpdateRolledBack = errors.New("status update rolled back")

// Clock supplies the updatedAt of optimistic edits.
type Clock interface {
	Now() time.Time
}

// PendingStatusUpdate describes an optimistic edit whose remote write has not
// settled yet.
type PendingStatusUpdate struct {
	// Previous is the collection as it was before the edit.
	Previous []*order.Order
	// Order is the optimistically updated order.
	Order *order.Order
	// Done receives nil once the write is confirmed, or an error wrapping
	// ErrStatusUpdateRolledBack once the edit has been undone. It is buffered
	// and receives exactly one value.
	Done <-chan error
}

// UpdateOrderStatusCommandHandler applies status edits optimistically.
//
// The new status is written into the store before the remote write starts,
// so readers see it immediately. If the writer later reports failure, the
// edited order is put back exactly as it was in the captured snapshot.
// Changes the realtime feed made to other orders in the meantime survive the
// rollback. A feed update to the same order is last-write-wins by arrival.
// Only the edited entry is restored, not the whole snapshot, so orders the
// feed prepended during the write are not lost.
//
// Handle must be called on the event loop goroutine.
type UpdateOrderStatusCommandHandler struct {
	store  ports.OrderStore
	writer ports.OrderStatusWriter
	clock  Clock
	logger *slog.Logger
}

func NewUpdateOrderStatusCommandHandler(
	store ports.OrderStore,
	writer ports.OrderStatusWriter,
	clock Clock,
	logger *slog.Logger,
) UpdateOrderStatusCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return UpdateOrderStatusCommandHandler{
		store:  store,
		writer: writer,
		clock:  clock,
		logger: logger.With("component", "update_order_status"),
	}
}

func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (PendingStatusUpdate, error) {
	if err := cmd.Validate(); err != nil {
		return PendingStatusUpdate{}, err
	}

	current, err := h.store.Get(cmd.OrderID())
	if err != nil {
		return PendingStatusUpdate{}, err
	}

	updated, err := current.WithStatus(cmd.Status(), h.clock.Now())
	if err != nil {
		return PendingStatusUpdate{}, err
	}

	previous := h.store.Snapshot()
	h.store.Replace(updated)

	h.logger.InfoContext(ctx, "Status updated optimistically",
		"order_id", cmd.OrderID().String(), "status", cmd.Status().String())

	done := make(chan error, 1)
	h.writer.WriteStatus(cmd.OrderID(), cmd.Status(), func(writeErr error) {
		if writeErr == nil {
			done <- nil
			return
		}

		h.store.Restore(previous, cmd.OrderID())
		h.logger.Warn("Status update rolled back",
			"order_id", cmd.OrderID().String(), "status", cmd.Status().String(), "error", writeErr)
		done <- errors.Join(ErrStatusUpdateRolledBack, writeErr)
	})

	return PendingStatusUpdate{Previous: previous, Order: updated, Done: done}, nil
}

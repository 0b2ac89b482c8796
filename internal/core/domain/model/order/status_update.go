package order

import (
	"errors"
	"time"

	"dashboard/internal/core/domain/model/kernel"
	"dashboard/internal/pkg/errs"
)

// StatusUpdate moves an existing order to a new status at a given time.
// Applying it to a collection that has no order with OrderID is a no-op.
type StatusUpdate struct {
	OrderID   kernel.OrderID
	Status    Status
	UpdatedAt time.Time
}

// NewStatusUpdate validates the event fields.
func NewStatusUpdate(id kernel.OrderID, status Status, updatedAt time.Time) (StatusUpdate, error) {
	var timeErr error
	if updatedAt.IsZero() {
		timeErr = errs.NewValueIsRequiredError("updatedAt")
	}
	if err := errors.Join(id.Validate(), status.Validate(), timeErr); err != nil {
		return StatusUpdate{}, err
	}
	return StatusUpdate{OrderID: id, Status: status, UpdatedAt: updatedAt}, nil
}

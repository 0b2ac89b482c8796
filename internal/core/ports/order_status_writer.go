package ports

import (
	"dashboard/internal/core/domain/model/kernel"
	"dashboard/internal/core/domain/model/order"
)

// OrderStatusWriter persists a status change to the remote side. The call
// returns immediately; done is invoked exactly once on the event loop with
// the outcome.
type OrderStatusWriter interface {
	WriteStatus(id kernel.OrderID, status order.Status, done func(error))
}

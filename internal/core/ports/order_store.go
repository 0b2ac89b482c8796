// Package ports defines the contracts between the dashboard core and its adapters.
// The order store and the remote status writer are the only stateful collaborators;
// both are driven from the event loop goroutine.
package ports

import (
	"dashboard/internal/core/domain/model/kernel"
	"dashboard/internal/core/domain/model/order"
)

// OrderReader gives read access to the order collection.
type OrderReader interface {
	// Snapshot returns the orders in presentation order, newest first. The slice
	// is a copy; the orders themselves are immutable values.
	Snapshot() []*order.Order

	// Get returns the order with the given id or an errs.ObjectNotFoundError.
	Get(id kernel.OrderID) (*order.Order, error)
}

// OrderStore is the single in-memory source of truth for the order collection.
// It is written by two independent writers: dashboard edits and the realtime feed.
type OrderStore interface {
	OrderReader

	// Prepend inserts a new order at the front. Returns an
	// errs.ObjectAlreadyExistsError when the id is already present.
	Prepend(o *order.Order) error

	// ApplyStatusUpdate sets the status and updatedAt of the matching order.
	// It reports false, leaving the collection unchanged, when no order matches.
	ApplyStatusUpdate(update order.StatusUpdate) bool

	// Replace swaps the entry with the same id for o, keeping its position.
	Replace(o *order.Order) bool

	// Restore puts back the snapshot entries for ids and reports how many
	// were restored. Entries for other ids are left as they are.
	Restore(snapshot []*order.Order, ids ...kernel.OrderID) int
}

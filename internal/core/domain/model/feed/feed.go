// Package feed defines the messages carried by the realtime order feed.
package feed

import (
	"errors"

	"dashboard/internal/core/domain/model/order"
)

// Kind names a message variant on the wire.
type Kind string

const (
	KindNewOrder    Kind = "new_order"
	KindOrderStatus Kind = "order_status"
)

var ErrMessageIsEmpty = errors.New("feed message carries no value")

// Message is either a NewOrder or a StatusUpdate. The unexported method keeps
// other packages from adding variants.
type Message interface {
	Kind() Kind
	Validate() error
	isMessage()
}

// NewOrder announces an order that should be prepended to the collection.
type NewOrder struct {
	Order *order.Order
}

func (NewOrder) Kind() Kind { return KindNewOrder }

func (m NewOrder) Validate() error {
	if m.Order == nil {
		return ErrMessageIsEmpty
	}
	return m.Order.Validate()
}

func (NewOrder) isMessage() {}

// StatusUpdate moves an existing order to a new status.
type StatusUpdate struct {
	Update order.StatusUpdate
}

func (StatusUpdate) Kind() Kind { return KindOrderStatus }

func (m StatusUpdate) Validate() error {
	return errors.Join(m.Update.OrderID.Validate(), m.Update.Status.Validate())
}

func (StatusUpdate) isMessage() {}

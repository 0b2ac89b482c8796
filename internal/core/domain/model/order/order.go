package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dashboard/internal/core/domain/model/kernel"
	"dashboard/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrTotalMismatch is returned by RestoreOrder when the supplied total disagrees with the items.
	ErrTotalMismatch = errors.New("total amount does not match items")
)

// Params carries the fields of an order for NewOrder and RestoreOrder.
type Params struct {
	ID              kernel.OrderID
	CustomerName    string
	CustomerEmail   string
	Status          Status
	Items           []Item
	Currency        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ShippingAddress kernel.Address
}

// Order is an ecommerce order as displayed on the dashboard.
//
// Order follows these invariants:
//   - Must have a valid identifier and status
//   - Must have at least one item
//   - totalAmount equals the sum of item subtotals rounded to 2 places
//   - updatedAt is not before createdAt
//
// Orders are immutable. WithStatus returns a modified copy, which lets the
// store hand out snapshots without copying every order.
type Order struct {
	id              kernel.OrderID
	customerName    string
	customerEmail   string
	status          Status
	items           []Item
	totalAmount     decimal.Decimal
	currency        string
	createdAt       time.Time
	updatedAt       time.Time
	shippingAddress kernel.Address

	isConstructed bool
}

// NewOrder creates an order and derives its total from the items.
//
// Example:
//
//	item, _ := order.NewItem("item-1", "Desk Lamp", 2, decimal.RequireFromString("24.50"))
//	o, err := order.NewOrder(order.Params{
//	    ID:           kernel.MustNewOrderID(7),
//	    CustomerName: "Mia Novak",
//	    Status:       order.Pending,
//	    Items:        []order.Item{item},
//	    Currency:     "USD",
//	    CreatedAt:    now,
//	    UpdatedAt:    now,
//	})
//	// o.TotalAmount() == 49.00
func NewOrder(p Params) (*Order, error) {
	o := &Order{
		id:              p.ID,
		customerName:    p.CustomerName,
		customerEmail:   p.CustomerEmail,
		status:          p.Status,
		currency:        p.Currency,
		createdAt:       p.CreatedAt,
		updatedAt:       p.UpdatedAt,
		shippingAddress: p.ShippingAddress,
		isConstructed:   true,
	}

	if err := errors.Join(
		p.ID.Validate(),
		p.Status.Validate(),
		o.setCustomerName(p.CustomerName),
		o.setCurrency(p.Currency),
		o.setItems(p.Items),
		o.validateTimestamps(),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order received from outside the process, checking
// that the supplied total matches the items.
func RestoreOrder(p Params, totalAmount decimal.Decimal) (*Order, error) {
	o, err := NewOrder(p)
	if err != nil {
		return nil, err
	}
	if !o.totalAmount.Equal(totalAmount.Round(2)) {
		return nil, errs.NewValueIsInvalidErrorWithCause("totalAmount",
			fmt.Errorf("%w: got %s, items sum to %s", ErrTotalMismatch, totalAmount, o.totalAmount))
	}
	return o, nil
}

// Validate ensures the Order was created by a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.OrderID              { return o.id }
func (o *Order) CustomerName() string            { return o.customerName }
func (o *Order) CustomerEmail() string           { return o.customerEmail }
func (o *Order) Status() Status                  { return o.status }
func (o *Order) TotalAmount() decimal.Decimal    { return o.totalAmount }
func (o *Order) Currency() string                { return o.currency }
func (o *Order) CreatedAt() time.Time            { return o.createdAt }
func (o *Order) UpdatedAt() time.Time            { return o.updatedAt }
func (o *Order) ShippingAddress() kernel.Address { return o.shippingAddress }

// Items returns a copy of the line items.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// WithStatus returns a copy of the order with a new status and update time.
func (o *Order) WithStatus(status Status, updatedAt time.Time) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if updatedAt.Before(o.createdAt) {
		return nil, errs.NewValueIsInvalidErrorWithCause("updatedAt",
			fmt.Errorf("%s is before createdAt %s", updatedAt.Format(time.RFC3339), o.createdAt.Format(time.RFC3339)))
	}

	updated := *o
	updated.status = status
	updated.updatedAt = updatedAt
	return &updated, nil
}

// Apply returns the order with the update applied. ok is false when the update
// targets another order or carries an invalid value.
func (o *Order) Apply(update StatusUpdate) (*Order, bool) {
	if !o.id.IsEqual(update.OrderID) {
		return o, false
	}
	updated, err := o.WithStatus(update.Status, update.UpdatedAt)
	if err != nil {
		return o, false
	}
	return updated, true
}

func (o *Order) setCustomerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("customer name")
	}
	return nil
}

func (o *Order) setCurrency(currency string) error {
	if strings.TrimSpace(currency) == "" {
		return errs.NewValueIsRequiredError("currency")
	}
	return nil
}

// setItems stores a private copy of the items and derives the total.
func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	o.totalAmount = total.Round(2)
	return nil
}

func (o *Order) validateTimestamps() error {
	if o.createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	if o.updatedAt.Before(o.createdAt) {
		return errs.NewValueIsInvalidErrorWithCause("updatedAt",
			fmt.Errorf("%s is before createdAt %s", o.updatedAt.Format(time.RFC3339), o.createdAt.Format(time.RFC3339)))
	}
	return nil
}

package order

import (
	"errors"
	"fmt"
	"strings"

	"dashboard/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Item is a single order line.
type Item struct {
	id          string
	productName string
	quantity    int
	price       decimal.Decimal
}

// NewItem validates and creates a line item. Quantity must be positive and
// price must not be negative.
func NewItem(id, productName string, quantity int, price decimal.Decimal) (Item, error) {
	var problems []error
	if strings.TrimSpace(id) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("item id"))
	}
	if strings.TrimSpace(productName) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("product name"))
	}
	if quantity <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity)))
	}
	if price.IsNegative() {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"price is invalid", fmt.Errorf("%s is negative", price)))
	}
	if err := errors.Join(problems...); err != nil {
		return Item{}, err
	}

	return Item{
		id:          id,
		productName: productName,
		quantity:    quantity,
		price:       price,
	}, nil
}

func (i Item) ID() string             { return i.id }
func (i Item) ProductName() string    { return i.productName }
func (i Item) Quantity() int          { return i.quantity }
func (i Item) Price() decimal.Decimal { return i.price }

// Subtotal returns price * quantity.
func (i Item) Subtotal() decimal.Decimal {
	return i.price.Mul(decimal.NewFromInt(int64(i.quantity)))
}

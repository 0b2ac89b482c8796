package kernel

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"dashboard/internal/pkg/errs"
)

const orderIDPrefix = "ORD-"

var orderNumberPattern = regexp.MustCompile(`ORD-(\d+)`)

// OrderID identifies an order. Identifiers created by NewOrderID look like
// "ORD-0007"; identifiers received from the feed are accepted as long as they
// are not blank.
type OrderID struct {
	value string
}

// NewOrderID formats n as a zero-padded order identifier.
func NewOrderID(n int) (OrderID, error) {
	if n <= 0 {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause(
			"order number is invalid", fmt.Errorf("%d is not greater than 0", n))
	}
	return OrderID{value: fmt.Sprintf("%s%04d", orderIDPrefix, n)}, nil
}

// MustNewOrderID is NewOrderID for constants and tests.
func MustNewOrderID(n int) OrderID {
	id, err := NewOrderID(n)
	if err != nil {
		panic(err)
	}
	return id
}

// ParseOrderID wraps an identifier read from outside the process.
func ParseOrderID(s string) (OrderID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return OrderID{}, errs.NewValueIsRequiredError("order id")
	}
	return OrderID{value: s}, nil
}

// Validate rejects the zero value.
func (id OrderID) Validate() error {
	if id.value == "" {
		return errs.NewValueIsRequiredError("order id")
	}
	return nil
}

// Number returns the numeric part of an "ORD-<digits>" identifier, or 0 when
// the identifier carries none.
func (id OrderID) Number() int {
	match := orderNumberPattern.FindStringSubmatch(id.value)
	if match == nil {
		return 0
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return n
}

func (id OrderID) String() string {
	return id.value
}

func (id OrderID) IsEqual(other OrderID) bool {
	return id.value == other.value
}

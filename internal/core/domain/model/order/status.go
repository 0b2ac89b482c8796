package order

import (
	"fmt"

	"dashboard/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions used by the synthetic feed:
//
//	Pending ──┬──> Processing ──┬──> Shipped ──> Delivered
//	          │                 │
//	          └──> Cancelled <──┘
//
// Delivered and Cancelled are final. Dashboard users may set any valid status.
type Status string

const (
	Pending    Status = "pending"
	Processing Status = "processing"
	Shipped    Status = "shipped"
	Delivered  Status = "delivered"
	Cancelled  Status = "cancelled"
)

// getNextStatuses returns the feed transition table.
func getNextStatuses() map[Status][]Status {
	return map[Status][]Status{
		Pending:    {Processing, Cancelled},
		Processing: {Shipped, Cancelled},
		Shipped:    {Delivered},
		Delivered:  {Delivered},
		Cancelled:  {Cancelled},
	}
}

// All returns every valid status in display order.
func All() []Status {
	return []Status{Pending, Processing, Shipped, Delivered, Cancelled}
}

// ParseStatus converts the wire representation into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate checks that s is one of the five known statuses.
func (s Status) Validate() error {
	if _, ok := getNextStatuses()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

// IsFinal reports whether no further progress is possible.
func (s Status) IsFinal() bool {
	return s == Delivered || s == Cancelled
}

// NextStatuses returns the statuses the feed may move an order to.
// Final statuses map to themselves; invalid statuses have none.
func (s Status) NextStatuses() []Status {
	next := getNextStatuses()[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// Package memory holds the in-process order store.
package memory

import (
	"dashboard/internal/core/domain/model/kernel"
	"dashboard/internal/core/domain/model/order"
	"dashboard/internal/pkg/errs"
)

// OrderStore keeps orders newest first with an index by id.
//
// It is not safe for concurrent use. All access happens on the event loop,
// which serializes the dashboard edits and the realtime feed.
type OrderStore struct {
	orders []*order.Order
	index  map[string]int
}

// NewOrderStore creates a store holding seed in the given order. Later
// duplicates of an id are dropped.
func NewOrderStore(seed []*order.Order) *OrderStore {
	s := &OrderStore{
		orders: make([]*order.Order, 0, len(seed)),
		index:  make(map[string]int, len(seed)),
	}
	for _, o := range seed {
		if o == nil {
			continue
		}
		if _, exists := s.index[o.ID().String()]; exists {
			continue
		}
		s.index[o.ID().String()] = len(s.orders)
		s.orders = append(s.orders, o)
	}
	return s
}

func (s *OrderStore) Snapshot() []*order.Order {
	snapshot := make([]*order.Order, len(s.orders))
	copy(snapshot, s.orders)
	return snapshot
}

func (s *OrderStore) Len() int {
	return len(s.orders)
}

func (s *OrderStore) Get(id kernel.OrderID) (*order.Order, error) {
	pos, ok := s.index[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order id", id.String())
	}
	return s.orders[pos], nil
}

func (s *OrderStore) Prepend(o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if _, exists := s.index[o.ID().String()]; exists {
		return errs.NewObjectAlreadyExistsError("order id", o.ID().String())
	}

	s.orders = append([]*order.Order{o}, s.orders...)
	s.reindex()
	return nil
}

func (s *OrderStore) ApplyStatusUpdate(update order.StatusUpdate) bool {
	pos, ok := s.index[update.OrderID.String()]
	if !ok {
		return false
	}
	updated, ok := s.orders[pos].Apply(update)
	if !ok {
		return false
	}
	s.orders[pos] = updated
	return true
}

func (s *OrderStore) Replace(o *order.Order) bool {
	if o.Validate() != nil {
		return false
	}
	pos, ok := s.index[o.ID().String()]
	if !ok {
		return false
	}
	s.orders[pos] = o
	return true
}

// Restore puts back the entries of snapshot whose ids are listed in ids.
// Orders added or changed since the snapshot under other ids are kept.
func (s *OrderStore) Restore(snapshot []*order.Order, ids ...kernel.OrderID) int {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id.String()] = struct{}{}
	}

	restored := 0
	for _, o := range snapshot {
		if _, ok := wanted[o.ID().String()]; !ok {
			continue
		}
		if s.Replace(o) {
			restored++
		}
	}
	return restored
}

func (s *OrderStore) reindex() {
	clear(s.index)
	for i, o := range s.orders {
		s.index[o.ID().String()] = i
	}
}

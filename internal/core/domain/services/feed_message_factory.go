package services

import (
	"errors"

	"dashboard/internal/core/domain/model/feed"
	"dashboard/internal/core/domain/model/order"
	"dashboard/internal/pkg/random"
)

// statusUpdateThreshold makes roughly 55% of messages status updates once
// the collection has orders.
const statusUpdateThreshold = 0.45

var ErrGeneratorIsRequired = errors.New("order generator is required")

// FeedMessageFactory chooses the next message of the simulated feed.
type FeedMessageFactory struct {
	generator *OrderGenerator
	src       random.Source
	clock     Clock
}

func NewFeedMessageFactory(generator *OrderGenerator, src random.Source, clock Clock) (*FeedMessageFactory, error) {
	if generator == nil {
		return nil, ErrGeneratorIsRequired
	}
	return &FeedMessageFactory{generator: generator, src: src, clock: clock}, nil
}

// Create returns a message for the given collection. An empty collection
// always yields a new order; otherwise a status update for a random order is
// chosen with probability 0.55 and a new order numbered after the highest
// existing one otherwise.
func (f *FeedMessageFactory) Create(orders []*order.Order) (feed.Message, error) {
	if len(orders) == 0 || f.src.Float64() <= statusUpdateThreshold {
		return f.newOrder(orders)
	}
	return f.statusUpdate(orders)
}

func (f *FeedMessageFactory) newOrder(orders []*order.Order) (feed.Message, error) {
	o, err := f.generator.NewOrder(NextOrderNumber(orders))
	if err != nil {
		return nil, err
	}
	return feed.NewOrder{Order: o}, nil
}

func (f *FeedMessageFactory) statusUpdate(orders []*order.Order) (feed.Message, error) {
	target := random.Sample(f.src, orders)
	update, err := order.NewStatusUpdate(target.ID(), f.generator.NextStatus(target.Status()), f.clock.Now())
	if err != nil {
		return nil, err
	}
	return feed.StatusUpdate{Update: update}, nil
}

// NextOrderNumber returns one more than the highest ORD number in orders.
// Identifiers without a number count as 0.
func NextOrderNumber(orders []*order.Order) int {
	highest := 0
	for _, o := range orders {
		highest = max(highest, o.ID().Number())
	}
	return highest + 1
}

package services_test

import (
	"testing"

	"dashboard/internal/core/domain/model/feed"
	"dashboard/internal/core/domain/model/order"
	"dashboard/internal/core/domain/services"
	"dashboard/internal/pkg/random"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedDraw returns the same Float64 every time and delegates IntN.
type fixedDraw struct {
	value float64
	ints  random.Source
}

func (f fixedDraw) Float64() float64 { return f.value }
func (f fixedDraw) IntN(n int) int   { return f.ints.IntN(n) }

func newFactory(t *testing.T, draw float64) (*services.FeedMessageFactory, *services.OrderGenerator) {
	t.Helper()
	gen := services.NewOrderGenerator(random.New(11), fixedClock{now})
	factory, err := services.NewFeedMessageFactory(gen, fixedDraw{value: draw, ints: random.New(5)}, fixedClock{now})
	require.NoError(t, err)
	return factory, gen
}

func TestFeedMessageFactory_Create(t *testing.T) {
	t.Run("should create first order for empty collection", func(t *testing.T) {
		factory, _ := newFactory(t, 0.99)

		msg, err := factory.Create(nil)

		require.NoError(t, err)
		created, ok := msg.(feed.NewOrder)
		require.True(t, ok)
		assert.Equal(t, "ORD-0001", created.Order.ID().String())
	})

	t.Run("should update an existing order when draw is above threshold", func(t *testing.T) {
		factory, gen := newFactory(t, 0.46)
		orders, err := gen.Seed(5)
		require.NoError(t, err)

		msg, err := factory.Create(orders)

		require.NoError(t, err)
		update, ok := msg.(feed.StatusUpdate)
		require.True(t, ok)
		assert.Equal(t, now, update.Update.UpdatedAt)

		var target *order.Order
		for _, o := range orders {
			if o.ID().IsEqual(update.Update.OrderID) {
				target = o
			}
		}
		require.NotNil(t, target)
		assert.Contains(t, target.Status().NextStatuses(), update.Update.Status)
	})

	t.Run("should number new order after the highest existing one", func(t *testing.T) {
		factory, gen := newFactory(t, 0.45)
		orders, err := gen.Seed(3)
		require.NoError(t, err)
		extra, err := gen.NewOrder(42)
		require.NoError(t, err)
		orders = append([]*order.Order{extra}, orders...)

		msg, err := factory.Create(orders)

		require.NoError(t, err)
		created, ok := msg.(feed.NewOrder)
		require.True(t, ok)
		assert.Equal(t, "ORD-0043", created.Order.ID().String())
		assert.Equal(t, order.Pending, created.Order.Status())
	})
}

func TestNewFeedMessageFactory(t *testing.T) {
	_, err := services.NewFeedMessageFactory(nil, random.New(1), fixedClock{now})

	assert.ErrorIs(t, err, services.ErrGeneratorIsRequired)
}

func TestNextOrderNumber(t *testing.T) {
	assert.Equal(t, 1, services.NextOrderNumber(nil))
}

package feed_test

import (
	"testing"
	"time"

	"dashboard/internal/core/domain/model/feed"
	"dashboard/internal/core/domain/model/kernel"
	"dashboard/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_Kind(t *testing.T) {
	messages := []feed.Message{feed.NewOrder{}, feed.StatusUpdate{}}

	assert.Equal(t, feed.KindNewOrder, messages[0].Kind())
	assert.Equal(t, feed.KindOrderStatus, messages[1].Kind())
}

func TestNewOrder_Validate(t *testing.T) {
	t.Run("should reject missing order", func(t *testing.T) {
		assert.ErrorIs(t, feed.NewOrder{}.Validate(), feed.ErrMessageIsEmpty)
	})

	t.Run("should accept constructed order", func(t *testing.T) {
		now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		item, err := order.NewItem("item-1", "Mug", 1, decimal.NewFromInt(12))
		require.NoError(t, err)
		o, err := order.NewOrder(order.Params{
			ID:           kernel.MustNewOrderID(3),
			CustomerName: "Ava Ito",
			Status:       order.Pending,
			Items:        []order.Item{item},
			Currency:     "USD",
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		require.NoError(t, err)

		assert.NoError(t, feed.NewOrder{Order: o}.Validate())
	})
}

func TestStatusUpdate_Validate(t *testing.T) {
	t.Run("should reject zero value", func(t *testing.T) {
		assert.Error(t, feed.StatusUpdate{}.Validate())
	})

	t.Run("should accept valid update", func(t *testing.T) {
		msg := feed.StatusUpdate{Update: order.StatusUpdate{
			OrderID:   kernel.MustNewOrderID(1),
			Status:    order.Shipped,
			UpdatedAt: time.Now(),
		}}

		assert.NoError(t, msg.Validate())
	})
}

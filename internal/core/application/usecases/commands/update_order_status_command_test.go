package commands_test

import (
	"testing"

	"dashboard/internal/core/application/usecases/commands"
	"dashboard/internal/core/domain/model/kernel"
	"dashboard/internal/core/domain/model/order"
	"dashboard/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateOrderStatusCommand(t *testing.T) {
	t.Run("should create valid command", func(t *testing.T) {
		cmd, err := commands.NewUpdateOrderStatusCommand(kernel.MustNewOrderID(1), order.Shipped)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, "ORD-0001", cmd.OrderID().String())
		assert.Equal(t, order.Shipped, cmd.Status())
	})

	t.Run("should reject empty id and unknown status", func(t *testing.T) {
		_, err := commands.NewUpdateOrderStatusCommand(kernel.OrderID{}, "lost")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject zero value", func(t *testing.T) {
		var cmd commands.UpdateOrderStatusCommand

		assert.ErrorIs(t, cmd.Validate(), commands.ErrUpdateOrderStatusCommandIsNotConstructed)
	})
}

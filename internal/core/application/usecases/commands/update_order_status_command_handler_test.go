package commands_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"dashboard/internal/adapters/out/memory"
	"dashboard/internal/core/application/usecases/commands"
	"dashboard/internal/core/domain/model/kernel"
	"dashboard/internal/core/domain/model/order"
	"dashboard/internal/pkg/errs"
	"dashboard/internal/pkg/eventloop"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderStatusWriter struct {
	mock.Mock
	done func(error)
}

func (m *MockOrderStatusWriter) WriteStatus(id kernel.OrderID, status order.Status, done func(error)) {
	m.Called(id, status)
	m.done = done
}

var (
	seededAt = time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)
	editedAt = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	discard  = slog.New(slog.NewTextHandler(io.Discard, nil))
)

func seedOrder(t *testing.T, n int, status order.Status) *order.Order {
	t.Helper()
	item, err := order.NewItem("item-1", "Running Shoes", 1, decimal.RequireFromString("89.90"))
	require.NoError(t, err)
	o, err := order.NewOrder(order.Params{
		ID:           kernel.MustNewOrderID(n),
		CustomerName: "Levi Okoro",
		Status:       status,
		Items:        []order.Item{item},
		Currency:     "USD",
		CreatedAt:    seededAt,
		UpdatedAt:    seededAt.Add(time.Hour),
	})
	require.NoError(t, err)
	return o
}

func setup(t *testing.T) (*memory.OrderStore, *MockOrderStatusWriter, commands.UpdateOrderStatusCommandHandler) {
	t.Helper()
	store := memory.NewOrderStore([]*order.Order{
		seedOrder(t, 1, order.Pending),
		seedOrder(t, 2, order.Processing),
	})
	writer := new(MockOrderStatusWriter)
	handler := commands.NewUpdateOrderStatusCommandHandler(store, writer, eventloop.NewManual(editedAt), discard)
	return store, writer, handler
}

func TestUpdateOrderStatusCommandHandler_Handle_AppliesOptimistically(t *testing.T) {
	store, writer, handler := setup(t)
	id := kernel.MustNewOrderID(1)
	writer.On("WriteStatus", id, order.Shipped).Return().Once()
	cmd, _ := commands.NewUpdateOrderStatusCommand(id, order.Shipped)

	pending, err := handler.Handle(t.Context(), cmd)

	require.NoError(t, err)
	got, _ := store.Get(id)
	assert.Equal(t, order.Shipped, got.Status())
	assert.Equal(t, editedAt, got.UpdatedAt())
	assert.Equal(t, order.Shipped, pending.Order.Status())
	assert.Equal(t, order.Pending, pending.Previous[0].Status())
	assert.Empty(t, pending.Done, "result must not be available before the write settles")
	writer.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_ConfirmedWriteKeepsEdit(t *testing.T) {
	store, writer, handler := setup(t)
	id := kernel.MustNewOrderID(1)
	writer.On("WriteStatus", id, order.Shipped).Return().Once()
	cmd, _ := commands.NewUpdateOrderStatusCommand(id, order.Shipped)

	pending, err := handler.Handle(t.Context(), cmd)
	require.NoError(t, err)
	writer.done(nil)

	require.NoError(t, <-pending.Done)
	got, _ := store.Get(id)
	assert.Equal(t, order.Shipped, got.Status())
}

func TestUpdateOrderStatusCommandHandler_Handle_FailedWriteRollsBack(t *testing.T) {
	store, writer, handler := setup(t)
	id := kernel.MustNewOrderID(1)
	writer.On("WriteStatus", id, order.Shipped).Return().Once()
	cmd, _ := commands.NewUpdateOrderStatusCommand(id, order.Shipped)
	before, _ := store.Get(id)

	pending, err := handler.Handle(t.Context(), cmd)
	require.NoError(t, err)
	writer.done(errors.New("remote unavailable"))

	result := <-pending.Done
	require.ErrorIs(t, result, commands.ErrStatusUpdateRolledBack)
	assert.Contains(t, result.Error(), "remote unavailable")

	got, _ := store.Get(id)
	assert.Equal(t, order.Pending, got.Status())
	assert.Equal(t, before.UpdatedAt(), got.UpdatedAt())
}

func TestUpdateOrderStatusCommandHandler_Handle_RollbackKeepsFeedChangesToOtherOrders(t *testing.T) {
	store, writer, handler := setup(t)
	id := kernel.MustNewOrderID(1)
	writer.On("WriteStatus", id, order.Cancelled).Return().Once()
	cmd, _ := commands.NewUpdateOrderStatusCommand(id, order.Cancelled)

	pending, err := handler.Handle(t.Context(), cmd)
	require.NoError(t, err)

	// Feed traffic arrives while the write is in flight.
	require.True(t, store.ApplyStatusUpdate(order.StatusUpdate{
		OrderID: kernel.MustNewOrderID(2), Status: order.Shipped, UpdatedAt: editedAt.Add(time.Second),
	}))
	require.NoError(t, store.Prepend(seedOrder(t, 3, order.Pending)))

	writer.done(errors.New("remote unavailable"))
	require.Error(t, <-pending.Done)

	first, _ := store.Get(id)
	second, _ := store.Get(kernel.MustNewOrderID(2))
	assert.Equal(t, order.Pending, first.Status())
	assert.Equal(t, order.Shipped, second.Status())
	assert.Equal(t, 3, store.Len())
}

func TestUpdateOrderStatusCommandHandler_Handle_UnknownOrder(t *testing.T) {
	_, writer, handler := setup(t)
	cmd, _ := commands.NewUpdateOrderStatusCommand(kernel.MustNewOrderID(9), order.Shipped)

	_, err := handler.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	writer.AssertNotCalled(t, "WriteStatus", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_ValidationError(t *testing.T) {
	_, writer, handler := setup(t)

	_, err := handler.Handle(t.Context(), commands.UpdateOrderStatusCommand{})

	require.ErrorIs(t, err, commands.ErrUpdateOrderStatusCommandIsNotConstructed)
	writer.AssertNotCalled(t, "WriteStatus", mock.Anything, mock.Anything)
}

package jobs_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"dashboard/internal/adapters/out/memory"
	"dashboard/internal/core/domain/model/feed"
	"dashboard/internal/core/domain/model/kernel"
	"dashboard/internal/core/domain/model/order"
	"dashboard/internal/jobs"
	"dashboard/internal/pkg/errs"
	"dashboard/internal/pkg/eventloop"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type MockConnectionMonitor struct {
	mock.Mock
}

func (m *MockConnectionMonitor) Status() feed.ConnectionStatus {
	args := m.Called()
	return args.Get(0).(feed.ConnectionStatus)
}

func (m *MockConnectionMonitor) Attempt() int {
	args := m.Called()
	return args.Int(0)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newOrder(t *testing.T, n int, status order.Status) *order.Order {
	t.Helper()
	item, err := order.NewItem("item-1", "Notebook", 1, decimal.RequireFromString("9.99"))
	require.NoError(t, err)
	o, err := order.NewOrder(order.Params{
		ID:           kernel.MustNewOrderID(n),
		CustomerName: "Mia Novak",
		Status:       status,
		Items:        []order.Item{item},
		Currency:     "USD",
		CreatedAt:    epoch,
		UpdatedAt:    epoch,
	})
	require.NoError(t, err)
	return o
}

func TestDashboardSummaryJob_Summarize(t *testing.T) {
	store := memory.NewOrderStore([]*order.Order{
		newOrder(t, 1, order.Pending),
		newOrder(t, 2, order.Shipped),
		newOrder(t, 3, order.Shipped),
		newOrder(t, 4, order.Cancelled),
	})
	monitor := &MockConnectionMonitor{}
	monitor.On("Status").Return(feed.Reconnecting)
	monitor.On("Attempt").Return(2)

	job, err := jobs.NewDashboardSummaryJob(eventloop.NewManual(epoch), store, monitor, "", discard())
	require.NoError(t, err)

	summary, err := job.Summarize(t.Context())

	require.NoError(t, err)
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, map[order.Status]int{
		order.Pending:   1,
		order.Shipped:   2,
		order.Cancelled: 1,
	}, summary.ByStatus)
	assert.Equal(t, feed.Reconnecting, summary.Connection)
	assert.Equal(t, 2, summary.Attempt)
	monitor.AssertExpectations(t)
}

func TestDashboardSummaryJob_SummarizeAfterLoopStopped(t *testing.T) {
	loop := eventloop.NewLoop(discard())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	job, err := jobs.NewDashboardSummaryJob(loop, memory.NewOrderStore(nil), &MockConnectionMonitor{}, "", discard())
	require.NoError(t, err)

	_, err = job.Summarize(t.Context())

	require.ErrorIs(t, err, eventloop.ErrLoopStopped)
}

func TestNewDashboardSummaryJob_Validation(t *testing.T) {
	store := memory.NewOrderStore(nil)
	scheduler := eventloop.NewManual(epoch)
	monitor := &MockConnectionMonitor{}

	t.Run("should reject an invalid schedule", func(t *testing.T) {
		_, err := jobs.NewDashboardSummaryJob(scheduler, store, monitor, "every now and then", discard())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject a five-field schedule", func(t *testing.T) {
		_, err := jobs.NewDashboardSummaryJob(scheduler, store, monitor, "*/5 * * * *", discard())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should require dependencies", func(t *testing.T) {
		_, err := jobs.NewDashboardSummaryJob(nil, store, monitor, "", discard())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = jobs.NewDashboardSummaryJob(scheduler, nil, monitor, "", discard())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = jobs.NewDashboardSummaryJob(scheduler, store, nil, "", discard())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestJobManager_StartAndStop(t *testing.T) {
	manager, err := jobs.NewJobManager(
		eventloop.NewManual(epoch),
		memory.NewOrderStore(nil),
		&MockConnectionMonitor{},
		"@every 1h",
		discard(),
	)
	require.NoError(t, err)

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}

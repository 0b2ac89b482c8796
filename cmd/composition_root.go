package cmd

import (
	"fmt"
	"log/slog"

	httpin "dashboard/internal/adapters/in/http"
	"dashboard/internal/adapters/out/memory"
	"dashboard/internal/adapters/out/remote"
	"dashboard/internal/core/application/usecases/commands"
	"dashboard/internal/core/application/usecases/queries"
	"dashboard/internal/core/domain/model/feed"
	"dashboard/internal/core/domain/services"
	"dashboard/internal/jobs"
	"dashboard/internal/pkg/eventloop"
	"dashboard/internal/pkg/random"
	"dashboard/internal/realtime"
	"dashboard/internal/realtime/channel"

	"github.com/labstack/echo/v4"
)

// EventLoop is the scheduler and executor every loop-bound component shares.
// *eventloop.Loop satisfies it in production and *eventloop.Manual in tests.
type EventLoop interface {
	eventloop.Scheduler
	eventloop.Executor
}

type CompositionRoot struct {
	config  Config
	loop    EventLoop
	src     random.Source
	logger  *slog.Logger
	store   *memory.OrderStore
	manager *realtime.Manager
}

// NewCompositionRoot seeds the order store and builds the realtime manager.
// The manager is left inactive; activate it on the loop.
func NewCompositionRoot(config Config, loop EventLoop, logger *slog.Logger) (*CompositionRoot, error) {
	if logger == nil {
		logger = slog.Default()
	}
	src := random.New(config.RandomSeed)

	generator := services.NewOrderGenerator(src, loop)
	seed, err := generator.Seed(config.SeedOrders)
	if err != nil {
		return nil, fmt.Errorf("seed orders: %w", err)
	}
	store := memory.NewOrderStore(seed)

	factory, err := services.NewFeedMessageFactory(generator, src, loop)
	if err != nil {
		return nil, err
	}
	createMessage := func() (feed.Message, error) {
		return factory.Create(store.Snapshot())
	}

	manager, err := realtime.NewManager(loop, store, createMessage,
		realtime.WithRandom(src),
		realtime.WithLogger(logger),
		realtime.WithChannelOptions(
			channel.WithInterval(config.FeedIntervalMin, config.FeedIntervalMax),
			channel.WithDropChance(config.DropChance),
			channel.WithDropCheckInterval(config.DropCheckMin, config.DropCheckMax),
		),
		realtime.WithStatusListener(func(status feed.ConnectionStatus) {
			logger.Info("Connection status changed", "status", status.String())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("create realtime manager: %w", err)
	}

	logger.Info("Order store seeded", "orders", store.Len())

	return &CompositionRoot{
		config:  config,
		loop:    loop,
		src:     src,
		logger:  logger,
		store:   store,
		manager: manager,
	}, nil
}

func (c *CompositionRoot) Store() *memory.OrderStore {
	return c.store
}

func (c *CompositionRoot) Manager() *realtime.Manager {
	return c.manager
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() (commands.UpdateOrderStatusCommandHandler, error) {
	writer, err := remote.NewSimulatedStatusWriter(c.loop, c.config.WriteLatency, c.config.WriteFailureRate, c.src, c.logger)
	if err != nil {
		return commands.UpdateOrderStatusCommandHandler{}, err
	}
	return commands.NewUpdateOrderStatusCommandHandler(c.store, writer, c.loop, c.logger), nil
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.store)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.store)
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	return jobs.NewJobManager(c.loop, c.store, c.manager, c.config.SummarySchedule, c.logger)
}

// CreateWebServer builds the echo instance with every dashboard route.
func (c *CompositionRoot) CreateWebServer() (*echo.Echo, error) {
	api, err := httpin.LoadOpenAPI()
	if err != nil {
		return nil, err
	}
	updateOrderStatusHandler, err := c.CreateUpdateOrderStatusCommandHandler()
	if err != nil {
		return nil, err
	}

	server, err := httpin.NewServer(
		c.loop,
		api,
		updateOrderStatusHandler,
		c.CreateListOrdersQueryHandler(),
		c.CreateGetOrderQueryHandler(),
		c.manager,
	)
	if err != nil {
		return nil, err
	}

	return httpin.NewRouter(server, api, c.logger), nil
}

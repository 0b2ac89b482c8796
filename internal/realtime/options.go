package realtime

import (
	"log/slog"

	"dashboard/internal/core/domain/model/feed"
	"dashboard/internal/pkg/random"
	"dashboard/internal/realtime/channel"
)

// Option customizes a Manager.
type Option func(*Manager)

// WithChannelFactory replaces the built-in simulator, typically with a fake in tests.
func WithChannelFactory(factory ChannelFactory) Option {
	return func(m *Manager) { m.newChannel = factory }
}

// WithChannelOptions configures the built-in simulator. Ignored when a
// custom channel factory is set.
func WithChannelOptions(opts ...channel.Option) Option {
	return func(m *Manager) { m.channelOpts = append(m.channelOpts, opts...) }
}

// WithRandom sets the random source of the built-in simulator.
func WithRandom(src random.Source) Option {
	return func(m *Manager) { m.src = src }
}

func WithDecoder(decoder Decoder) Option {
	return func(m *Manager) { m.decoder = decoder }
}

func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithStatusListener registers a callback invoked on every status change.
func WithStatusListener(listener func(feed.ConnectionStatus)) Option {
	return func(m *Manager) { m.statusListener = listener }
}

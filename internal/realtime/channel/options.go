package channel

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"dashboard/internal/core/domain/model/feed"
	"dashboard/internal/pkg/errs"
	"dashboard/internal/realtime/codec"
)

const (
	DefaultMinInterval          = 3000 * time.Millisecond
	DefaultMaxInterval          = 5000 * time.Millisecond
	DefaultDropChance           = 0.12
	DefaultDropCheckMinInterval = 6000 * time.Millisecond
	DefaultDropCheckMaxInterval = 12000 * time.Millisecond
)

// MessageFactory produces the next message to emit.
type MessageFactory func() (feed.Message, error)

// Encoder serializes messages for delivery.
type Encoder interface {
	Encode(msg feed.Message) ([]byte, error)
}

type config struct {
	minInterval          time.Duration
	maxInterval          time.Duration
	dropChance           float64
	dropCheckMinInterval time.Duration
	dropCheckMaxInterval time.Duration
	encoder              Encoder
	logger               *slog.Logger
}

func defaultConfig() config {
	return config{
		minInterval:          DefaultMinInterval,
		maxInterval:          DefaultMaxInterval,
		dropChance:           DefaultDropChance,
		dropCheckMinInterval: DefaultDropCheckMinInterval,
		dropCheckMaxInterval: DefaultDropCheckMaxInterval,
		encoder:              codec.JSON{},
		logger:               slog.Default(),
	}
}

// Option customizes a Channel.
type Option func(*config)

// WithInterval sets the bounds of the delay between two messages.
func WithInterval(minInterval, maxInterval time.Duration) Option {
	return func(c *config) {
		c.minInterval = minInterval
		c.maxInterval = maxInterval
	}
}

// WithDropChance sets the probability, in [0, 1], that a drop check closes the channel.
func WithDropChance(p float64) Option {
	return func(c *config) { c.dropChance = p }
}

// WithDropCheckInterval sets the bounds of the delay between two drop checks.
func WithDropCheckInterval(minInterval, maxInterval time.Duration) Option {
	return func(c *config) {
		c.dropCheckMinInterval = minInterval
		c.dropCheckMaxInterval = maxInterval
	}
}

func WithEncoder(encoder Encoder) Option {
	return func(c *config) { c.encoder = encoder }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

func (c config) validate() error {
	var problems []error
	if c.minInterval < 0 || c.maxInterval < c.minInterval {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("message interval",
			fmt.Errorf("[%s, %s] is not a valid range", c.minInterval, c.maxInterval)))
	}
	if c.dropCheckMinInterval < 0 || c.dropCheckMaxInterval < c.dropCheckMinInterval {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("drop check interval",
			fmt.Errorf("[%s, %s] is not a valid range", c.dropCheckMinInterval, c.dropCheckMaxInterval)))
	}
	if c.dropChance < 0 || c.dropChance > 1 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("drop chance", c.dropChance, 0, 1))
	}
	if c.encoder == nil {
		problems = append(problems, errs.NewValueIsRequiredError("encoder"))
	}
	if c.logger == nil {
		problems = append(problems, errs.NewValueIsRequiredError("logger"))
	}
	return errors.Join(problems...)
}

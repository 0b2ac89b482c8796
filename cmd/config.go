package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"dashboard/internal/adapters/out/remote"
	"dashboard/internal/jobs"
	"dashboard/internal/pkg/errs"
	"dashboard/internal/realtime/channel"

	"github.com/joho/godotenv"
)

const (
	EnvHTTPPort          = "HTTP_PORT"
	EnvSeedOrders        = "SEED_ORDERS"
	EnvFeedIntervalMinMS = "FEED_INTERVAL_MIN_MS"
	EnvFeedIntervalMaxMS = "FEED_INTERVAL_MAX_MS"
	EnvDropChance        = "DROP_CHANCE"
	EnvDropCheckMinMS    = "DROP_CHECK_MIN_MS"
	EnvDropCheckMaxMS    = "DROP_CHECK_MAX_MS"
	EnvWriteLatencyMS    = "WRITE_LATENCY_MS"
	EnvWriteFailureRate  = "WRITE_FAILURE_RATE"
	EnvSummarySchedule   = "SUMMARY_SCHEDULE"
	EnvLogLevel          = "LOG_LEVEL"
	EnvRandomSeed        = "RANDOM_SEED"
)

const (
	DefaultHTTPPort   = "8080"
	DefaultSeedOrders = 80
)

type Config struct {
	HTTPPort         string
	SeedOrders       int
	FeedIntervalMin  time.Duration
	FeedIntervalMax  time.Duration
	DropChance       float64
	DropCheckMin     time.Duration
	DropCheckMax     time.Duration
	WriteLatency     time.Duration
	WriteFailureRate float64
	SummarySchedule  string
	LogLevel         slog.Level
	// RandomSeed seeds every random draw. Zero seeds from the clock.
	RandomSeed uint64
}

// DefaultConfig returns the configuration used when no variable is set.
func DefaultConfig() Config {
	return Config{
		HTTPPort:         DefaultHTTPPort,
		SeedOrders:       DefaultSeedOrders,
		FeedIntervalMin:  channel.DefaultMinInterval,
		FeedIntervalMax:  channel.DefaultMaxInterval,
		DropChance:       channel.DefaultDropChance,
		DropCheckMin:     channel.DefaultDropCheckMinInterval,
		DropCheckMax:     channel.DefaultDropCheckMaxInterval,
		WriteLatency:     remote.DefaultLatency,
		WriteFailureRate: 0,
		SummarySchedule:  jobs.DefaultSummarySchedule,
		LogLevel:         slog.LevelInfo,
	}
}

// LoadDotEnv loads variables from path into the process environment. A
// missing file is not an error. Variables already set are kept.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// LoadConfig reads the configuration through getenv, usually os.Getenv.
// Unset or blank variables keep their defaults. All invalid values are
// reported together.
func LoadConfig(getenv func(string) string) (Config, error) {
	c := DefaultConfig()
	r := envReader{getenv: getenv}

	if port := r.string(EnvHTTPPort); port != "" {
		c.HTTPPort = port
	}
	r.int(EnvSeedOrders, &c.SeedOrders)
	r.millis(EnvFeedIntervalMinMS, &c.FeedIntervalMin)
	r.millis(EnvFeedIntervalMaxMS, &c.FeedIntervalMax)
	r.float(EnvDropChance, &c.DropChance)
	r.millis(EnvDropCheckMinMS, &c.DropCheckMin)
	r.millis(EnvDropCheckMaxMS, &c.DropCheckMax)
	r.millis(EnvWriteLatencyMS, &c.WriteLatency)
	r.float(EnvWriteFailureRate, &c.WriteFailureRate)
	if schedule := r.string(EnvSummarySchedule); schedule != "" {
		c.SummarySchedule = schedule
	}
	if level := r.string(EnvLogLevel); level != "" {
		if err := c.LogLevel.UnmarshalText([]byte(level)); err != nil {
			r.fail(errs.NewValueIsInvalidErrorWithCause(EnvLogLevel, err))
		}
	}
	if seed := r.string(EnvRandomSeed); seed != "" {
		v, err := strconv.ParseUint(seed, 10, 64)
		if err != nil {
			r.fail(errs.NewValueIsInvalidErrorWithCause(EnvRandomSeed, err))
		}
		c.RandomSeed = v
	}

	if err := errors.Join(append(r.problems, c.validate())...); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	var problems []error
	if c.SeedOrders < 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(EnvSeedOrders,
			fmt.Errorf("%d is negative", c.SeedOrders)))
	}
	if c.FeedIntervalMin <= 0 || c.FeedIntervalMax < c.FeedIntervalMin {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(EnvFeedIntervalMinMS,
			fmt.Errorf("interval %s..%s is not a positive range", c.FeedIntervalMin, c.FeedIntervalMax)))
	}
	if c.DropCheckMin <= 0 || c.DropCheckMax < c.DropCheckMin {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(EnvDropCheckMinMS,
			fmt.Errorf("interval %s..%s is not a positive range", c.DropCheckMin, c.DropCheckMax)))
	}
	if c.DropChance < 0 || c.DropChance > 1 {
		problems = append(problems, errs.NewValueIsOutOfRangeError(EnvDropChance, c.DropChance, 0, 1))
	}
	if c.WriteFailureRate < 0 || c.WriteFailureRate > 1 {
		problems = append(problems, errs.NewValueIsOutOfRangeError(EnvWriteFailureRate, c.WriteFailureRate, 0, 1))
	}
	if c.WriteLatency < 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(EnvWriteLatencyMS,
			fmt.Errorf("%s is negative", c.WriteLatency)))
	}
	return errors.Join(problems...)
}

type envReader struct {
	getenv   func(string) string
	problems []error
}

func (r *envReader) string(key string) string {
	return strings.TrimSpace(r.getenv(key))
}

func (r *envReader) fail(err error) {
	r.problems = append(r.problems, err)
}

func (r *envReader) int(key string, dest *int) bool {
	raw := r.string(key)
	if raw == "" {
		return false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		r.fail(errs.NewValueIsInvalidErrorWithCause(key, err))
		return false
	}
	*dest = v
	return true
}

func (r *envReader) float(key string, dest *float64) {
	raw := r.string(key)
	if raw == "" {
		return
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		r.fail(errs.NewValueIsInvalidErrorWithCause(key, err))
		return
	}
	*dest = v
}

func (r *envReader) millis(key string, dest *time.Duration) {
	var ms int
	if r.int(key, &ms) {
		*dest = time.Duration(ms) * time.Millisecond
	}
}

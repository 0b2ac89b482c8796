// Package channel simulates an unreliable push connection without any network.
//
// A Channel moves through Closed -> Connecting -> Open -> Closed. While open it
// emits messages on a randomized schedule and periodically rolls for a
// simulated drop. Every notification is delivered synchronously on the event
// loop that owns the channel's timers, so no two notifications from one
// channel ever overlap.
package channel

import (
	"errors"
	"log/slog"

	"dashboard/internal/pkg/errs"
	"dashboard/internal/pkg/eventloop"
	"dashboard/internal/pkg/random"

	"github.com/google/uuid"
)

// State is the channel's own view of the connection.
type State int

const (
	Closed State = iota
	Connecting
	Open
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Connecting:
		return "connecting"
	case Open:
		return "open"
	default:
		return "unknown"
	}
}

// Close codes, following the WebSocket numbering.
const (
	CodeNormalClosure   = 1000
	CodeAbnormalClosure = 1006
)

const (
	ReasonClosedByClient = "closed by client"
	ReasonSimulatedDrop  = "simulated network drop"
)

// CloseEvent describes why a channel closed.
type CloseEvent struct {
	Code   int
	Reason string
}

// Listener receives channel notifications. Methods run on the event loop.
type Listener interface {
	OnOpen()
	OnMessage(data []byte)
	OnClose(event CloseEvent)
	OnError(err error)
}

// Channel is a timer-driven fake push connection. It is not safe for
// concurrent use; all calls must come from the event loop goroutine.
type Channel struct {
	scheduler     eventloop.Scheduler
	src           random.Source
	createMessage MessageFactory
	cfg           config
	listener      Listener
	logger        *slog.Logger

	state        State
	generation   uint64
	messageTimer eventloop.Timer
	dropTimer    eventloop.Timer
}

// New creates a closed channel. Call Connect to open it.
func New(scheduler eventloop.Scheduler, src random.Source, createMessage MessageFactory, opts ...Option) (*Channel, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	var problems []error
	if scheduler == nil {
		problems = append(problems, errs.NewValueIsRequiredError("scheduler"))
	}
	if src == nil {
		problems = append(problems, errs.NewValueIsRequiredError("random source"))
	}
	if createMessage == nil {
		problems = append(problems, errs.NewValueIsRequiredError("message factory"))
	}
	problems = append(problems, cfg.validate())
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	session := uuid.NewString()
	return &Channel{
		scheduler:     scheduler,
		src:           src,
		createMessage: createMessage,
		cfg:           cfg,
		listener:      noopListener{},
		logger:        cfg.logger.With("component", "feed_channel", "session", session),
		state:         Closed,
	}, nil
}

// SetListener replaces the notification target. A nil listener discards notifications.
func (c *Channel) SetListener(l Listener) {
	if l == nil {
		l = noopListener{}
	}
	c.listener = l
}

func (c *Channel) State() State {
	return c.state
}

// Connect opens the channel and arms the message and drop-check timers.
// It does nothing while the channel is connecting or open.
func (c *Channel) Connect() {
	if c.state == Connecting || c.state == Open {
		return
	}

	c.generation++
	gen := c.generation
	c.state = Connecting
	c.logger.Debug("Channel connecting", "open_period", gen)

	c.state = Open
	c.listener.OnOpen()

	// The listener may have closed the channel from OnOpen.
	if !c.isCurrent(gen) {
		return
	}
	c.scheduleNextMessage(gen)
	c.scheduleDropCheck(gen)
}

// Close cancels both timers and notifies the listener. It does nothing when
// the channel is already closed.
func (c *Channel) Close(code int, reason string) {
	if c.state == Closed {
		return
	}

	c.stopTimers()
	c.state = Closed
	c.logger.Info("Channel closed", "code", code, "reason", reason, "open_period", c.generation)
	c.listener.OnClose(CloseEvent{Code: code, Reason: reason})
}

// SimulateDrop closes the channel the same way a failed drop check does.
func (c *Channel) SimulateDrop() {
	c.Close(CodeAbnormalClosure, ReasonSimulatedDrop)
}

func (c *Channel) isCurrent(gen uint64) bool {
	return c.state == Open && c.generation == gen
}

func (c *Channel) scheduleNextMessage(gen uint64) {
	delay := random.DurationBetween(c.src, c.cfg.minInterval, c.cfg.maxInterval)
	c.messageTimer = c.scheduler.AfterFunc(delay, func() {
		if !c.isCurrent(gen) {
			return
		}
		c.emit()
		if c.isCurrent(gen) {
			c.scheduleNextMessage(gen)
		}
	})
}

func (c *Channel) emit() {
	msg, err := c.createMessage()
	if err != nil {
		c.logger.Warn("Message factory failed", "error", err)
		c.listener.OnError(err)
		return
	}

	data, err := c.cfg.encoder.Encode(msg)
	if err != nil {
		c.logger.Warn("Message encoding failed", "kind", msg.Kind(), "error", err)
		c.listener.OnError(err)
		return
	}

	c.logger.Debug("Message emitted", "kind", msg.Kind(), "bytes", len(data))
	c.listener.OnMessage(data)
}

func (c *Channel) scheduleDropCheck(gen uint64) {
	delay := random.DurationBetween(c.src, c.cfg.dropCheckMinInterval, c.cfg.dropCheckMaxInterval)
	c.dropTimer = c.scheduler.AfterFunc(delay, func() {
		if !c.isCurrent(gen) {
			return
		}
		if random.Chance(c.src, c.cfg.dropChance) {
			c.Close(CodeAbnormalClosure, ReasonSimulatedDrop)
			return
		}
		c.scheduleDropCheck(gen)
	})
}

func (c *Channel) stopTimers() {
	if c.messageTimer != nil {
		c.messageTimer.Stop()
		c.messageTimer = nil
	}
	if c.dropTimer != nil {
		c.dropTimer.Stop()
		c.dropTimer = nil
	}
}

type noopListener struct{}

func (noopListener) OnOpen()            {}
func (noopListener) OnMessage([]byte)   {}
func (noopListener) OnClose(CloseEvent) {}
func (noopListener) OnError(error)      {}

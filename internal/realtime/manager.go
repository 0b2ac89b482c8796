// Package realtime keeps the order collection in sync with the simulated feed.
//
// The Manager owns one channel for as long as it is active, reports a single
// ConnectionStatus and reconnects after every unexpected close with capped
// exponential backoff: min(1s * 2^attempt, 15s), retrying forever.
package realtime

import (
	"errors"
	"log/slog"
	"time"

	"dashboard/internal/core/domain/model/feed"
	"dashboard/internal/core/domain/model/order"
	"dashboard/internal/pkg/errs"
	"dashboard/internal/pkg/eventloop"
	"dashboard/internal/pkg/random"
	"dashboard/internal/realtime/channel"
	"dashboard/internal/realtime/codec"

	"github.com/cenkalti/backoff/v4"
)

const (
	reconnectBase       = time.Second
	reconnectMultiplier = 2
	reconnectCap        = 15 * time.Second
)

// Channel is the connection the manager drives. *channel.Channel implements it.
type Channel interface {
	SetListener(l channel.Listener)
	Connect()
	Close(code int, reason string)
	SimulateDrop()
}

// ChannelFactory builds the channel for one activation.
type ChannelFactory func(createMessage channel.MessageFactory) (Channel, error)

// Decoder parses channel payloads.
type Decoder interface {
	Decode(data []byte) (feed.Message, error)
}

// Sink receives decoded feed messages.
type Sink interface {
	Prepend(o *order.Order) error
	ApplyStatusUpdate(update order.StatusUpdate) bool
}

// Manager is not safe for concurrent use; every method and every channel
// notification runs on the event loop goroutine.
type Manager struct {
	scheduler      eventloop.Scheduler
	sink           Sink
	createMessage  channel.MessageFactory
	newChannel     ChannelFactory
	channelOpts    []channel.Option
	src            random.Source
	decoder        Decoder
	logger         *slog.Logger
	statusListener func(feed.ConnectionStatus)
	backoff        *backoff.ExponentialBackOff

	ch             Channel
	active         bool
	cleanup        bool
	status         feed.ConnectionStatus
	attempt        int
	reconnectTimer eventloop.Timer
}

// NewManager creates an inactive manager with status Disconnected.
// createMessage is called by the channel whenever it is about to emit.
func NewManager(
	scheduler eventloop.Scheduler,
	sink Sink,
	createMessage channel.MessageFactory,
	opts ...Option,
) (*Manager, error) {
	m := &Manager{
		scheduler:     scheduler,
		sink:          sink,
		createMessage: createMessage,
		decoder:       codec.JSON{},
		logger:        slog.Default(),
		status:        feed.Disconnected,
	}
	for _, opt := range opts {
		opt(m)
	}

	var problems []error
	if scheduler == nil {
		problems = append(problems, errs.NewValueIsRequiredError("scheduler"))
	}
	if sink == nil {
		problems = append(problems, errs.NewValueIsRequiredError("sink"))
	}
	if createMessage == nil {
		problems = append(problems, errs.NewValueIsRequiredError("message factory"))
	}
	if m.decoder == nil {
		problems = append(problems, errs.NewValueIsRequiredError("decoder"))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	base := m.logger
	if base == nil {
		base = slog.Default()
	}
	m.logger = base.With("component", "realtime_manager")
	if m.src == nil {
		m.src = random.New(0)
	}
	if m.newChannel == nil {
		m.newChannel = m.simulatorFactory(base)
	}
	m.backoff = newReconnectBackOff()

	return m, nil
}

func newReconnectBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = reconnectBase * reconnectMultiplier
	b.RandomizationFactor = 0
	b.Multiplier = reconnectMultiplier
	b.MaxInterval = reconnectCap
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

func (m *Manager) simulatorFactory(logger *slog.Logger) ChannelFactory {
	return func(createMessage channel.MessageFactory) (Channel, error) {
		opts := append([]channel.Option{channel.WithLogger(logger)}, m.channelOpts...)
		return channel.New(m.scheduler, m.src, createMessage, opts...)
	}
}

// Activate builds the channel and connects it. Calling it while active does nothing.
func (m *Manager) Activate() error {
	if m.active {
		return nil
	}

	ch, err := m.newChannel(m.createMessage)
	if err != nil {
		return err
	}

	m.ch = ch
	m.active = true
	m.cleanup = false
	m.attempt = 0
	m.backoff.Reset()
	ch.SetListener(listener{m})

	m.logger.Info("Realtime feed activated")
	ch.Connect()
	return nil
}

// Deactivate cancels any pending reconnect, closes the channel with a normal
// closure and reports Disconnected. It is idempotent. No timer owned by the
// manager or its channel acts after it returns.
func (m *Manager) Deactivate() {
	if !m.active {
		return
	}

	m.cleanup = true
	m.stopReconnect()
	m.ch.Close(channel.CodeNormalClosure, channel.ReasonClosedByClient)
	m.ch = nil
	m.active = false
	m.setStatus(feed.Disconnected)
	m.logger.Info("Realtime feed deactivated")
}

func (m *Manager) Status() feed.ConnectionStatus {
	return m.status
}

// Attempt returns the number of reconnects scheduled since the last open.
func (m *Manager) Attempt() int {
	return m.attempt
}

// SimulateDrop forces the channel closed as if the network had dropped.
func (m *Manager) SimulateDrop() {
	if m.ch == nil {
		return
	}
	m.logger.Info("Forcing simulated drop")
	m.ch.SimulateDrop()
}

func (m *Manager) handleOpen() {
	m.attempt = 0
	m.backoff.Reset()
	m.setStatus(feed.Connected)
}

func (m *Manager) handleMessage(data []byte) {
	msg, err := m.decoder.Decode(data)
	if err != nil {
		m.logger.Debug("Discarding malformed message", "error", err)
		return
	}

	switch msg := msg.(type) {
	case feed.NewOrder:
		if err := m.sink.Prepend(msg.Order); err != nil {
			m.logger.Debug("Discarding new order", "order_id", msg.Order.ID().String(), "error", err)
		}
	case feed.StatusUpdate:
		if !m.sink.ApplyStatusUpdate(msg.Update) {
			m.logger.Debug("Status update for unknown order", "order_id", msg.Update.OrderID.String())
		}
	}
}

func (m *Manager) handleClose(event channel.CloseEvent) {
	if m.cleanup {
		return
	}

	m.setStatus(feed.Reconnecting)
	m.attempt++
	delay := m.backoff.NextBackOff()
	m.logger.Warn("Feed closed, scheduling reconnect",
		"code", event.Code, "reason", event.Reason, "attempt", m.attempt, "delay", delay)

	m.stopReconnect()
	ch := m.ch
	m.reconnectTimer = m.scheduler.AfterFunc(delay, func() {
		m.reconnectTimer = nil
		if m.cleanup || m.ch != ch {
			return
		}
		ch.Connect()
	})
}

func (m *Manager) handleError(err error) {
	m.logger.Warn("Feed error", "error", err)
	m.setStatus(feed.Reconnecting)
}

func (m *Manager) stopReconnect() {
	if m.reconnectTimer != nil {
		m.reconnectTimer.Stop()
		m.reconnectTimer = nil
	}
}

func (m *Manager) setStatus(status feed.ConnectionStatus) {
	if m.status == status {
		return
	}
	m.logger.Info("Connection status changed", "from", m.status.String(), "to", status.String())
	m.status = status
	if m.statusListener != nil {
		m.statusListener(status)
	}
}

// listener adapts channel notifications to the manager without exporting
// the handler methods.
type listener struct{ m *Manager }

func (l listener) OnOpen()                          { l.m.handleOpen() }
func (l listener) OnMessage(data []byte)            { l.m.handleMessage(data) }
func (l listener) OnClose(event channel.CloseEvent) { l.m.handleClose(event) }
func (l listener) OnError(err error)                { l.m.handleError(err) }

// Package codec converts feed messages to and from the JSON text carried by
// the realtime channel:
//
//	{"type":"new_order","payload":{...order...}}
//	{"type":"order_status","payload":{"id":"ORD-0001","status":"processing","updatedAt":"..."}}
package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"dashboard/internal/core/domain/model/feed"
)

var (
	ErrMalformedMessage   = errors.New("malformed feed message")
	ErrUnknownMessageType = errors.New("unknown feed message type")
)

// JSON is the feed wire codec. The zero value is ready to use.
type JSON struct{}

type envelope struct {
	Type    feed.Kind       `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func (JSON) Encode(msg feed.Message) ([]byte, error) {
	if msg == nil {
		return nil, fmt.Errorf("%w: nil message", ErrMalformedMessage)
	}
	if err := msg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}

	var payload any
	switch m := msg.(type) {
	case feed.NewOrder:
		payload = FromOrder(m.Order)
	case feed.StatusUpdate:
		payload = FromStatusUpdate(m.Update)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMessageType, msg.Kind())
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Type: msg.Kind(), Payload: raw})
}

// Decode parses and validates a message. Every failure wraps ErrMalformedMessage.
func (JSON) Decode(data []byte) (feed.Message, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}

	switch env.Type {
	case feed.KindNewOrder:
		var dto OrderDTO
		if err := json.Unmarshal(env.Payload, &dto); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
		}
		o, err := dto.ToOrder()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
		}
		return feed.NewOrder{Order: o}, nil

	case feed.KindOrderStatus:
		var dto StatusUpdateDTO
		if err := json.Unmarshal(env.Payload, &dto); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
		}
		update, err := dto.ToStatusUpdate()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
		}
		return feed.StatusUpdate{Update: update}, nil

	default:
		return nil, fmt.Errorf("%w: %w: %q", ErrMalformedMessage, ErrUnknownMessageType, env.Type)
	}
}

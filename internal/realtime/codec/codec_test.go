package codec_test

import (
	"encoding/json"
	"testing"
	"time"

	"dashboard/internal/core/domain/model/feed"
	"dashboard/internal/core/domain/model/kernel"
	"dashboard/internal/core/domain/model/order"
	"dashboard/internal/realtime/codec"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const newOrderPayload = `{
  "type": "new_order",
  "payload": {
    "id": "ORD-0081",
    "customerName": "Mia Novak",
    "customerEmail": "mia.novak@mail.com",
    "status": "pending",
    "items": [
      {"id": "item-1", "productName": "Desk Lamp", "quantity": 3, "price": 11.99},
      {"id": "item-2", "productName": "Yoga Mat", "quantity": 1, "price": "0.10"}
    ],
    "totalAmount": 36.07,
    "currency": "USD",
    "createdAt": "2024-06-01T12:00:00.000Z",
    "updatedAt": "2024-06-01T12:00:00.000Z",
    "shippingAddress": {"street": "12 Kim Street", "city": "Oslo", "country": "Norway", "postalCode": "10101"}
  }
}`

func TestJSON_DecodeStatusUpdate(t *testing.T) {
	data := []byte(`{"type":"order_status","payload":{"id":"ORD-0001","status":"processing","updatedAt":"2024-06-01T12:00:00Z"}}`)

	msg, err := codec.JSON{}.Decode(data)

	require.NoError(t, err)
	update, ok := msg.(feed.StatusUpdate)
	require.True(t, ok)
	assert.Equal(t, "ORD-0001", update.Update.OrderID.String())
	assert.Equal(t, order.Processing, update.Update.Status)
	assert.True(t, update.Update.UpdatedAt.Equal(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)))
}

func TestJSON_DecodeNewOrder(t *testing.T) {
	msg, err := codec.JSON{}.Decode([]byte(newOrderPayload))

	require.NoError(t, err)
	created, ok := msg.(feed.NewOrder)
	require.True(t, ok)
	o := created.Order
	assert.Equal(t, "ORD-0081", o.ID().String())
	assert.Equal(t, "36.07", o.TotalAmount().StringFixed(2))
	assert.Len(t, o.Items(), 2)
	assert.Equal(t, "Norway", o.ShippingAddress().Country())
}

func TestJSON_DecodeRejectsMalformedInput(t *testing.T) {
	tests := map[string]string{
		"not json":           `{"type":`,
		"unknown type":       `{"type":"order_deleted","payload":{}}`,
		"payload not object": `{"type":"order_status","payload":[1,2]}`,
		"bad status":         `{"type":"order_status","payload":{"id":"ORD-0001","status":"lost","updatedAt":"2024-06-01T12:00:00Z"}}`,
		"bad time":           `{"type":"order_status","payload":{"id":"ORD-0001","status":"shipped","updatedAt":"yesterday"}}`,
		"blank id":           `{"type":"order_status","payload":{"id":" ","status":"shipped","updatedAt":"2024-06-01T12:00:00Z"}}`,
		"wrong total":        `{"type":"new_order","payload":{"id":"ORD-1","customerName":"A B","status":"pending","items":[{"id":"i","productName":"p","quantity":1,"price":10}],"totalAmount":11,"currency":"USD","createdAt":"2024-06-01T12:00:00Z","updatedAt":"2024-06-01T12:00:00Z"}}`,
		"no items":           `{"type":"new_order","payload":{"id":"ORD-1","customerName":"A B","status":"pending","items":[],"totalAmount":0,"currency":"USD","createdAt":"2024-06-01T12:00:00Z","updatedAt":"2024-06-01T12:00:00Z"}}`,
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			msg, err := codec.JSON{}.Decode([]byte(data))

			require.ErrorIs(t, err, codec.ErrMalformedMessage)
			assert.Nil(t, msg)
		})
	}
}

func TestJSON_EncodeNewOrder(t *testing.T) {
	item, err := order.NewItem("item-1", "Desk Lamp", 2, decimal.RequireFromString("24.5"))
	require.NoError(t, err)
	at := time.Date(2024, 6, 1, 14, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	o, err := order.NewOrder(order.Params{
		ID:              kernel.MustNewOrderID(7),
		CustomerName:    "Aria Santos",
		CustomerEmail:   "aria.santos@mail.com",
		Status:          order.Pending,
		Items:           []order.Item{item},
		Currency:        "USD",
		CreatedAt:       at,
		UpdatedAt:       at,
		ShippingAddress: kernel.NewAddress("40 Khan Street", "Lisbon", "Portugal", "12345"),
	})
	require.NoError(t, err)

	data, err := codec.JSON{}.Encode(feed.NewOrder{Order: o})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "new_order", raw["type"])
	payload := raw["payload"].(map[string]any)
	assert.Equal(t, "ORD-0007", payload["id"])
	assert.InDelta(t, 49.0, payload["totalAmount"], 1e-9, "money is a JSON number")
	assert.Equal(t, "2024-06-01T12:00:00.000Z", payload["createdAt"])
	assert.Contains(t, string(data), `"price":24.50`)
	assert.Contains(t, string(data), `"postalCode":"12345"`)
}

func TestJSON_EncodeStatusUpdate(t *testing.T) {
	update, err := order.NewStatusUpdate(kernel.MustNewOrderID(1), order.Shipped,
		time.Date(2024, 6, 1, 12, 0, 0, 500_000_000, time.UTC))
	require.NoError(t, err)

	data, err := codec.JSON{}.Encode(feed.StatusUpdate{Update: update})

	require.NoError(t, err)
	assert.JSONEq(t,
		`{"type":"order_status","payload":{"id":"ORD-0001","status":"shipped","updatedAt":"2024-06-01T12:00:00.500Z"}}`,
		string(data))
}

func TestJSON_EncodeRejectsInvalidMessage(t *testing.T) {
	_, err := codec.JSON{}.Encode(feed.NewOrder{})
	require.ErrorIs(t, err, codec.ErrMalformedMessage)

	_, err = codec.JSON{}.Encode(nil)
	require.ErrorIs(t, err, codec.ErrMalformedMessage)
}

func TestJSON_EncodedMessagesDecode(t *testing.T) {
	msg, err := codec.JSON{}.Decode([]byte(newOrderPayload))
	require.NoError(t, err)

	data, err := codec.JSON{}.Encode(msg)
	require.NoError(t, err)
	again, err := codec.JSON{}.Decode(data)
	require.NoError(t, err)

	first := msg.(feed.NewOrder).Order
	second := again.(feed.NewOrder).Order
	assert.True(t, first.TotalAmount().Equal(second.TotalAmount()))
	assert.True(t, first.CreatedAt().Equal(second.CreatedAt()))
	require.Len(t, second.Items(), len(first.Items()))
	for i, item := range first.Items() {
		assert.Equal(t, item.ID(), second.Items()[i].ID())
		assert.True(t, item.Price().Equal(second.Items()[i].Price()))
	}
}

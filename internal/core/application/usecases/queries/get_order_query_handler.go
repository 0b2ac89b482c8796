package queries

import (
	"context"

	"dashboard/internal/core/domain/model/order"
	"dashboard/internal/core/ports"
)

// GetOrderQueryHandler returns the current version of one order, or an
// errs.ObjectNotFoundError.
type GetOrderQueryHandler struct {
	reader ports.OrderReader
}

func NewGetOrderQueryHandler(reader ports.OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{reader: reader}
}

func (h GetOrderQueryHandler) Handle(_ context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.reader.Get(query.OrderID())
}

package queries

import (
	"context"
	"slices"
	"strings"

	"dashboard/internal/core/domain/model/order"
	"dashboard/internal/core/ports"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ListOrdersQueryHandler filters, sorts and pages the order collection the
// way the dashboard table does.
//
// Search matches the order id or customer name, case-insensitively.
// Text columns use locale-aware English collation; totalAmount and createdAt
// compare by value. Descending order is the exact reverse of ascending order,
// ties included.
type ListOrdersQueryHandler struct {
	reader ports.OrderReader
}

func NewListOrdersQueryHandler(reader ports.OrderReader) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{reader: reader}
}

func (h ListOrdersQueryHandler) Handle(_ context.Context, query ListOrdersQuery) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	filtered := filterOrders(h.reader.Snapshot(), query)
	sortOrders(filtered, query.SortBy())
	if query.Direction() == Desc {
		slices.Reverse(filtered)
	}

	// Compare by division so a huge page number cannot overflow the offset.
	start := len(filtered)
	if query.Page() <= len(filtered)/query.RowsPerPage() {
		start = query.Page() * query.RowsPerPage()
	}
	end := min(start+query.RowsPerPage(), len(filtered))

	return ListOrdersQueryResponse{
		Orders:      slices.Clone(filtered[start:end]),
		Total:       len(filtered),
		Page:        query.Page(),
		RowsPerPage: query.RowsPerPage(),
	}, nil
}

func filterOrders(orders []*order.Order, query ListOrdersQuery) []*order.Order {
	status, filterStatus := query.Status()
	search := query.Search()

	filtered := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if filterStatus && o.Status() != status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(o.CustomerName()), search) &&
			!strings.Contains(strings.ToLower(o.ID().String()), search) {
			continue
		}
		filtered = append(filtered, o)
	}
	return filtered
}

// sortOrders sorts ascending by key, keeping the relative order of ties.
func sortOrders(orders []*order.Order, key SortKey) {
	collator := collate.New(language.English)

	var cmp func(a, b *order.Order) int
	switch key {
	case SortByTotalAmount:
		cmp = func(a, b *order.Order) int { return a.TotalAmount().Cmp(b.TotalAmount()) }
	case SortByCreatedAt:
		cmp = func(a, b *order.Order) int { return a.CreatedAt().Compare(b.CreatedAt()) }
	case SortByCustomerName:
		cmp = func(a, b *order.Order) int { return collator.CompareString(a.CustomerName(), b.CustomerName()) }
	case SortByStatus:
		cmp = func(a, b *order.Order) int { return collator.CompareString(a.Status().String(), b.Status().String()) }
	default:
		cmp = func(a, b *order.Order) int { return collator.CompareString(a.ID().String(), b.ID().String()) }
	}

	slices.SortStableFunc(orders, cmp)
}

package queries

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"dashboard/internal/core/domain/model/order"
	"dashboard/internal/pkg/errs"
	"dashboard/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// SortKey names a sortable column of the orders table.
type SortKey string

const (
	SortByID           SortKey = "id"
	SortByCustomerName SortKey = "customerName"
	SortByStatus       SortKey = "status"
	SortByTotalAmount  SortKey = "totalAmount"
	SortByCreatedAt    SortKey = "createdAt"
)

// Direction is the sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// StatusFilterAll disables status filtering.
const StatusFilterAll = "all"

const (
	DefaultSortKey     = SortByCreatedAt
	DefaultDirection   = Desc
	DefaultRowsPerPage = 10
)

// RowsPerPageOptions lists the accepted page sizes.
func RowsPerPageOptions() []int {
	return []int{10, 25, 50}
}

func sortKeys() []SortKey {
	return []SortKey{SortByID, SortByCustomerName, SortByStatus, SortByTotalAmount, SortByCreatedAt}
}

// ListOrdersQuery selects one page of the orders table.
//
// Blank arguments fall back to the table defaults: every status, no search,
// newest first, 10 rows per page. Page numbers start at 0.
//
// Example:
//
//	query, err := NewListOrdersQuery("pending", "novak", "totalAmount", "asc", 0, 25)
//	page, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	status      *order.Status
	search      string
	sortBy      SortKey
	direction   Direction
	page        int
	rowsPerPage int

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(status, search, sortBy, direction string, page, rowsPerPage int) (ListOrdersQuery, error) {
	q := ListOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setStatus(status),
		q.setSearch(search),
		q.setSortBy(sortBy),
		q.setDirection(direction),
		q.setPage(page),
		q.setRowsPerPage(rowsPerPage),
	); err != nil {
		return ListOrdersQuery{}, err
	}

	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Status returns the filtered status and false when every status is listed.
func (q ListOrdersQuery) Status() (order.Status, bool) {
	if q.status == nil {
		return "", false
	}
	return *q.status, true
}

func (q ListOrdersQuery) Search() string       { return q.search }
func (q ListOrdersQuery) SortBy() SortKey      { return q.sortBy }
func (q ListOrdersQuery) Direction() Direction { return q.direction }
func (q ListOrdersQuery) Page() int            { return q.page }
func (q ListOrdersQuery) RowsPerPage() int     { return q.rowsPerPage }

func (q *ListOrdersQuery) setStatus(status string) error {
	if status == "" || status == StatusFilterAll {
		return nil
	}
	parsed, err := order.ParseStatus(status)
	if err != nil {
		return err
	}
	q.status = &parsed
	return nil
}

// setSearch stores the normalized search text.
func (q *ListOrdersQuery) setSearch(search string) error {
	q.search = strings.ToLower(strings.TrimSpace(search))
	return nil
}

func (q *ListOrdersQuery) setSortBy(sortBy string) error {
	if sortBy == "" {
		q.sortBy = DefaultSortKey
		return nil
	}
	if !slices.Contains(sortKeys(), SortKey(sortBy)) {
		return errs.NewValueIsInvalidErrorWithCause("sort", fmt.Errorf("%q is not a sortable column", sortBy))
	}
	q.sortBy = SortKey(sortBy)
	return nil
}

func (q *ListOrdersQuery) setDirection(direction string) error {
	switch Direction(direction) {
	case "":
		q.direction = DefaultDirection
	case Asc, Desc:
		q.direction = Direction(direction)
	default:
		return errs.NewValueIsInvalidErrorWithCause("direction", fmt.Errorf("%q is not asc or desc", direction))
	}
	return nil
}

func (q *ListOrdersQuery) setPage(page int) error {
	if page < 0 {
		return errs.NewValueIsInvalidErrorWithCause("page", fmt.Errorf("%d is negative", page))
	}
	q.page = page
	return nil
}

func (q *ListOrdersQuery) setRowsPerPage(rowsPerPage int) error {
	if rowsPerPage == 0 {
		q.rowsPerPage = DefaultRowsPerPage
		return nil
	}
	if !slices.Contains(RowsPerPageOptions(), rowsPerPage) {
		return errs.NewValueIsInvalidErrorWithCause("rowsPerPage",
			fmt.Errorf("%d is not one of %v", rowsPerPage, RowsPerPageOptions()))
	}
	q.rowsPerPage = rowsPerPage
	return nil
}

// ListOrdersQueryResponse is one page of the table.
type ListOrdersQueryResponse struct {
	Orders []*order.Order
	// Total counts the orders matching the filters across all pages.
	Total       int
	Page        int
	RowsPerPage int
}

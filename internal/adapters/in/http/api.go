package http

import (
	"fmt"
	"net/http"

	"dashboard/internal/realtime/codec"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OrderPage is one page of the orders table.
type OrderPage struct {
	Orders      []codec.OrderDTO `json:"orders"`
	Total       int              `json:"total"`
	Page        int              `json:"page"`
	RowsPerPage int              `json:"rowsPerPage"`
}

// Connection backs the connection indicator.
type Connection struct {
	Status  string `json:"status"`
	Attempt int    `json:"attempt"`
}

// StatusUpdateRequest is the body of PATCH /api/v1/orders/{id}/status.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// ListOrdersParams defines parameters for ListOrders.
type ListOrdersParams struct {
	Status      *string `form:"status,omitempty"      json:"status,omitempty"`
	Search      *string `form:"search,omitempty"      json:"search,omitempty"`
	Sort        *string `form:"sort,omitempty"        json:"sort,omitempty"`
	Direction   *string `form:"direction,omitempty"   json:"direction,omitempty"`
	Page        *int    `form:"page,omitempty"        json:"page,omitempty"`
	RowsPerPage *int    `form:"rowsPerPage,omitempty" json:"rowsPerPage,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List one page of the orders table
	// (GET /api/v1/orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// Get order detail
	// (GET /api/v1/orders/{id})
	GetOrder(ctx echo.Context, id string) error
	// Change the status of an order
	// (PATCH /api/v1/orders/{id}/status)
	UpdateOrderStatus(ctx echo.Context, id string) error
	// Realtime feed connection status
	// (GET /api/v1/connection)
	GetConnection(ctx echo.Context) error
	// Force a simulated network drop
	// (POST /api/v1/connection/drop)
	DropConnection(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// ListOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams

	bindings := []struct {
		name string
		dest any
	}{
		{"status", &params.Status},
		{"search", &params.Search},
		{"sort", &params.Sort},
		{"direction", &params.Direction},
		{"page", &params.Page},
		{"rowsPerPage", &params.RowsPerPage},
	}
	for _, b := range bindings {
		if err := runtime.BindQueryParameter("form", true, false, b.name, ctx.QueryParams(), b.dest); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", b.name, err))
		}
	}

	return w.Handler.ListOrders(ctx, params)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, id)
}

// UpdateOrderStatus converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateOrderStatus(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdateOrderStatus(ctx, id)
}

// GetConnection converts echo context to params.
func (w *ServerInterfaceWrapper) GetConnection(ctx echo.Context) error {
	return w.Handler.GetConnection(ctx)
}

// DropConnection converts echo context to params.
func (w *ServerInterfaceWrapper) DropConnection(ctx echo.Context) error {
	return w.Handler.DropConnection(ctx)
}

func bindOrderID(ctx echo.Context) (string, error) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}
	return id, nil
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the handlers under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/api/v1/orders", wrapper.ListOrders)
	router.GET(baseURL+"/api/v1/orders/:id", wrapper.GetOrder)
	router.PATCH(baseURL+"/api/v1/orders/:id/status", wrapper.UpdateOrderStatus)
	router.GET(baseURL+"/api/v1/connection", wrapper.GetConnection)
	router.POST(baseURL+"/api/v1/connection/drop", wrapper.DropConnection)
}

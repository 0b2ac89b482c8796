package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"dashboard/internal/core/application/usecases/commands"
	"dashboard/internal/core/application/usecases/queries"
	"dashboard/internal/core/domain/model/kernel"
	"dashboard/internal/core/domain/model/order"
	"dashboard/internal/core/ports"
	"dashboard/internal/pkg/errs"
	"dashboard/internal/pkg/eventloop"
	"dashboard/internal/realtime/codec"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
)

var _ ServerInterface = (*Server)(nil)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
//
// Every use case touches state owned by the event loop, so each call is made
// through the executor.
type Server struct {
	executor eventloop.Executor

	// Command handlers
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler

	// Query handlers
	listOrdersHandler          queries.ListOrdersQueryHandler
	getOrderHandler            queries.GetOrderQueryHandler
	getConnectionStatusHandler queries.GetConnectionStatusQueryHandler

	connection ports.ConnectionController

	statusUpdateSchema *openapi3.Schema
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	executor eventloop.Executor,
	api *OpenAPI,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	connection ports.ConnectionController,
) (*Server, error) {
	if executor == nil {
		return nil, errs.NewValueIsRequiredError("executor")
	}
	if api == nil {
		return nil, errs.NewValueIsRequiredError("openapi document")
	}
	if connection == nil {
		return nil, errs.NewValueIsRequiredError("connection")
	}

	schema, err := api.Schema("StatusUpdateRequest")
	if err != nil {
		return nil, err
	}

	return &Server{
		executor:                   executor,
		updateOrderStatusHandler:   updateOrderStatusHandler,
		listOrdersHandler:          listOrdersHandler,
		getOrderHandler:            getOrderHandler,
		getConnectionStatusHandler: queries.NewGetConnectionStatusQueryHandler(connection),
		connection:                 connection,
		statusUpdateSchema:         schema,
	}, nil
}

// ListOrders handles GET /api/v1/orders - one filtered, sorted page of the table.
func (s *Server) ListOrders(ctx echo.Context, params ListOrdersParams) error {
	query, err := queries.NewListOrdersQuery(
		deref(params.Status),
		deref(params.Search),
		deref(params.Sort),
		deref(params.Direction),
		deref(params.Page),
		deref(params.RowsPerPage),
	)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	var response queries.ListOrdersQueryResponse
	var handleErr error
	if err := s.executor.Do(ctx.Request().Context(), func() {
		response, handleErr = s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	}); err != nil {
		return executorFailure(ctx, err)
	}
	if handleErr != nil {
		return errorResponse(ctx, statusFor(handleErr), handleErr.Error())
	}

	page := OrderPage{
		Orders:      make([]codec.OrderDTO, len(response.Orders)),
		Total:       response.Total,
		Page:        response.Page,
		RowsPerPage: response.RowsPerPage,
	}
	for i, o := range response.Orders {
		page.Orders[i] = codec.FromOrder(o)
	}

	return ctx.JSON(http.StatusOK, page)
}

// GetOrder handles GET /api/v1/orders/{id} - the order detail view.
func (s *Server) GetOrder(ctx echo.Context, id string) error {
	orderID, err := kernel.ParseOrderID(id)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	var found *order.Order
	var handleErr error
	if err := s.executor.Do(ctx.Request().Context(), func() {
		found, handleErr = s.getOrderHandler.Handle(ctx.Request().Context(), query)
	}); err != nil {
		return executorFailure(ctx, err)
	}
	if handleErr != nil {
		return errorResponse(ctx, statusFor(handleErr), handleErr.Error())
	}

	return ctx.JSON(http.StatusOK, codec.FromOrder(found))
}

// UpdateOrderStatus handles PATCH /api/v1/orders/{id}/status.
//
// The edit is applied to the store before the remote write starts. The
// response waits for the write to settle: 200 with the updated order, or 409
// once a rejected write has been rolled back.
func (s *Server) UpdateOrderStatus(ctx echo.Context, id string) error {
	var body any
	if err := json.NewDecoder(ctx.Request().Body).Decode(&body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}
	if err := s.statusUpdateSchema.VisitJSON(body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}
	// The schema guarantees an object with a string status.
	request := StatusUpdateRequest{Status: body.(map[string]any)["status"].(string)}

	orderID, err := kernel.ParseOrderID(id)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}
	status, err := order.ParseStatus(request.Status)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}
	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, status)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	reqCtx := ctx.Request().Context()
	var pending commands.PendingStatusUpdate
	var handleErr error
	if err := s.executor.Do(reqCtx, func() {
		pending, handleErr = s.updateOrderStatusHandler.Handle(reqCtx, cmd)
	}); err != nil {
		return executorFailure(ctx, err)
	}
	if handleErr != nil {
		return errorResponse(ctx, statusFor(handleErr), handleErr.Error())
	}

	select {
	case writeErr := <-pending.Done:
		if writeErr != nil {
			return errorResponse(ctx, statusFor(writeErr), writeErr.Error())
		}
		return ctx.JSON(http.StatusOK, codec.FromOrder(pending.Order))
	case <-reqCtx.Done():
		// The client went away. The write still settles and rolls back on its own.
		return errorResponse(ctx, http.StatusGatewayTimeout, "Status update is still pending")
	}
}

// GetConnection handles GET /api/v1/connection - the connection indicator.
func (s *Server) GetConnection(ctx echo.Context) error {
	var response queries.GetConnectionStatusQueryResponse
	if err := s.executor.Do(ctx.Request().Context(), func() {
		response = s.getConnectionStatusHandler.Handle(ctx.Request().Context())
	}); err != nil {
		return executorFailure(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toConnection(response))
}

// DropConnection handles POST /api/v1/connection/drop - forces a simulated
// network drop so the reconnect path can be observed.
func (s *Server) DropConnection(ctx echo.Context) error {
	var response queries.GetConnectionStatusQueryResponse
	if err := s.executor.Do(ctx.Request().Context(), func() {
		s.connection.SimulateDrop()
		response = s.getConnectionStatusHandler.Handle(ctx.Request().Context())
	}); err != nil {
		return executorFailure(ctx, err)
	}

	return ctx.JSON(http.StatusAccepted, toConnection(response))
}

func toConnection(response queries.GetConnectionStatusQueryResponse) Connection {
	return Connection{
		Status:  response.Status.String(),
		Attempt: response.Attempt,
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, commands.ErrStatusUpdateRolledBack):
		return http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func errorResponse(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{
		Code:    code,
		Message: message,
	})
}

// executorFailure maps an error from Executor.Do. A cancelled request may
// already have been queued, so its effects can still land on the loop.
func executorFailure(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, eventloop.ErrLoopStopped):
		return errorResponse(ctx, http.StatusServiceUnavailable, "Dashboard is shutting down")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return errorResponse(ctx, http.StatusGatewayTimeout, "Request ended before the dashboard answered")
	default:
		return errorResponse(ctx, http.StatusInternalServerError, err.Error())
	}
}

func deref[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}

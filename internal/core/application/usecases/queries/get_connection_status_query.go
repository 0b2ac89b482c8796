package queries

import (
	"context"

	"dashboard/internal/core/domain/model/feed"
	"dashboard/internal/core/ports"
)

// GetConnectionStatusQueryResponse backs the connection indicator.
type GetConnectionStatusQueryResponse struct {
	Status  feed.ConnectionStatus
	Attempt int
}

// GetConnectionStatusQueryHandler reads the realtime manager's status. The
// query carries no parameters.
type GetConnectionStatusQueryHandler struct {
	monitor ports.ConnectionMonitor
}

func NewGetConnectionStatusQueryHandler(monitor ports.ConnectionMonitor) GetConnectionStatusQueryHandler {
	return GetConnectionStatusQueryHandler{monitor: monitor}
}

func (h GetConnectionStatusQueryHandler) Handle(_ context.Context) GetConnectionStatusQueryResponse {
	return GetConnectionStatusQueryResponse{
		Status:  h.monitor.Status(),
		Attempt: h.monitor.Attempt(),
	}
}

package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-service/internal/logger"
	"github.com/guttosm/cargo-service/internal/service"
)

// DefaultMaxUploadBytes caps the size of an import upload.
const DefaultMaxUploadBytes int64 = 10 << 20

// Services groups the services the HTTP handlers call.
type Services struct {
	Inventory  service.InventoryService
	Placement  service.PlacementService
	Waste      service.WasteService
	Simulation service.SimulationService
	Logs       service.LoggingService
}

// Handler provides HTTP handlers for the cargo API.
type Handler struct {
	inventory      service.InventoryService
	placement      service.PlacementService
	waste          service.WasteService
	simulation     service.SimulationService
	logs           service.LoggingService
	maxUploadBytes int64
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithMaxUploadBytes sets the largest accepted import file.
func WithMaxUploadBytes(n int64) HandlerOption {
	return func(h *Handler) {
		if n > 0 {
			h.maxUploadBytes = n
		}
	}
}

// NewHandler creates a new Handler instance.
func NewHandler(svc Services, opts ...HandlerOption) *Handler {
	h := &Handler{
		inventory:      svc.Inventory,
		placement:      svc.Placement,
		waste:          svc.Waste,
		simulation:     svc.Simulation,
		logs:           svc.Logs,
		maxUploadBytes: DefaultMaxUploadBytes,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// actor returns the request context attributed to userID. A user named in
// the body takes precedence over the X-User-ID header.
func actor(c *gin.Context, userID string) context.Context {
	ctx := c.Request.Context()
	if userID == "" {
		return ctx
	}
	return logger.WithUserID(ctx, userID)
}

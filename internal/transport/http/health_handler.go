package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"ctreport/internal/services"
)

// HealthHandler serves liveness probes
type HealthHandler struct {
	service *services.HealthService
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service *services.HealthService, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		logger:  logger.With(slog.String("component", "health_handler")),
	}
}

// Healthz handles GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	status := h.service.Check(r.Context())
	render.Status(r, http.StatusOK)
	render.JSON(w, r, status)
}

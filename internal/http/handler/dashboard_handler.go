package handler

import (
	"net/http"

	"github.com/polibest/kp-api/internal/service"
	"go.uber.org/zap"
)

// DashboardHandler handles HTTP requests for the dashboard view
type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
}

// NewDashboardHandler creates a new dashboard handler instance
func NewDashboardHandler(dashboardService *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// Metrics godoc
// @Summary Dashboard metrics
// @Description Aggregate counts, running total and recent activity across collections
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.DashboardMetricsDTO
// @Failure 500 {object} domain.APIError
// @Router /dashboard/metrics [get]
func (h *DashboardHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.dashboardService.Metrics(r.Context())
	if err != nil {
		h.logger.Error("failed to collect dashboard metrics", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to collect dashboard metrics")
		return
	}

	respondJSON(w, http.StatusOK, metrics)
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/polibest/kp-api/internal/domain"
	"github.com/polibest/kp-api/internal/service"
	"go.uber.org/zap"
)

// SettingsHandler handles HTTP requests for the settings singleton
type SettingsHandler struct {
	settingsService *service.SettingsService
	logger          *zap.Logger
}

// NewSettingsHandler creates a new settings handler instance
func NewSettingsHandler(settingsService *service.SettingsService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		logger:          logger,
	}
}

// Get godoc
// @Summary Get settings
// @Description Get current settings, falling back to factory defaults when none are stored
// @Tags Settings
// @Produce json
// @Success 200 {object} domain.SettingsDTO
// @Failure 500 {object} domain.APIError
// @Router /settings [get]
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.Get(r.Context())
	if err != nil {
		h.logger.Error("failed to get settings", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get settings")
		return
	}

	respondJSON(w, http.StatusOK, settings)
}

// Update godoc
// @Summary Update settings
// @Description Apply a partial settings update; omitted fields keep their values, prices replace wholesale
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body domain.UpdateSettingsRequest true "Fields to update"
// @Success 200 {object} domain.SettingsDTO
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /settings [put]
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	settings, err := h.settingsService.Update(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to update settings", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	respondJSON(w, http.StatusOK, settings)
}

// Reset godoc
// @Summary Reset settings to defaults
// @Tags Settings
// @Produce json
// @Success 200 {object} domain.SettingsDTO
// @Failure 500 {object} domain.APIError
// @Router /settings/reset [post]
func (h *SettingsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.Reset(r.Context())
	if err != nil {
		h.logger.Error("failed to reset settings", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to reset settings")
		return
	}

	respondJSON(w, http.StatusOK, settings)
}

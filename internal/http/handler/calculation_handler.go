package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/polibest/kp-api/internal/domain"
	"github.com/polibest/kp-api/internal/service"
	"go.uber.org/zap"
)

// CalculationHandler handles HTTP requests for saved calculations
type CalculationHandler struct {
	calculationService *service.CalculationService
	logger             *zap.Logger
}

// NewCalculationHandler creates a new calculation handler instance
func NewCalculationHandler(calculationService *service.CalculationService, logger *zap.Logger) *CalculationHandler {
	return &CalculationHandler{
		calculationService: calculationService,
		logger:             logger,
	}
}

// List godoc
// @Summary List calculations
// @Description Get paginated list of saved calculations
// @Tags Calculations
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param search query string false "Search by client name or source"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.CalculationDTO}
// @Failure 500 {object} domain.APIError
// @Router /calculations [get]
func (h *CalculationHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)
	search := r.URL.Query().Get("search")

	calcs, total, err := h.calculationService.List(r.Context(), page, pageSize, search)
	if err != nil {
		h.logger.Error("failed to list calculations", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list calculations")
		return
	}

	respondJSON(w, http.StatusOK, domain.NewPaginatedResponse(calcs, total, page, pageSize))
}

// Create godoc
// @Summary Save a calculation
// @Description Compute and save a calculator result; items and total are computed server side
// @Tags Calculations
// @Accept json
// @Produce json
// @Param request body domain.CreateCalculationRequest true "Calculation to save"
// @Success 201 {object} domain.CalculationDTO
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /calculations [post]
func (h *CalculationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCalculationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	calc, err := h.calculationService.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrNothingToCalculate) {
			respondWithError(w, http.StatusBadRequest, "Nothing to calculate for the given input")
			return
		}
		h.logger.Error("failed to create calculation", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to create calculation")
		return
	}

	respondJSON(w, http.StatusCreated, calc)
}

// GetByID godoc
// @Summary Get calculation by ID
// @Tags Calculations
// @Produce json
// @Param id path string true "Calculation ID" format(uuid)
// @Success 200 {object} domain.CalculationDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /calculations/{id} [get]
func (h *CalculationHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid calculation ID format")
		return
	}

	calc, err := h.calculationService.GetByID(r.Context(), id)
	if err != nil {
		h.respondCalculationError(w, err, "failed to get calculation")
		return
	}

	respondJSON(w, http.StatusOK, calc)
}

// Update godoc
// @Summary Update calculation
// @Description Update descriptive fields of a saved calculation; computed items stay frozen
// @Tags Calculations
// @Accept json
// @Produce json
// @Param id path string true "Calculation ID" format(uuid)
// @Param request body domain.UpdateCalculationRequest true "Fields to update"
// @Success 200 {object} domain.CalculationDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /calculations/{id} [put]
func (h *CalculationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid calculation ID format")
		return
	}

	var req domain.UpdateCalculationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	calc, err := h.calculationService.Update(r.Context(), id, &req)
	if err != nil {
		h.respondCalculationError(w, err, "failed to update calculation")
		return
	}

	respondJSON(w, http.StatusOK, calc)
}

// ToggleSum godoc
// @Summary Toggle inclusion in the running sum
// @Tags Calculations
// @Produce json
// @Param id path string true "Calculation ID" format(uuid)
// @Success 200 {object} domain.CalculationDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /calculations/{id}/toggle-sum [post]
func (h *CalculationHandler) ToggleSum(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid calculation ID format")
		return
	}

	calc, err := h.calculationService.ToggleIncluded(r.Context(), id)
	if err != nil {
		h.respondCalculationError(w, err, "failed to toggle calculation")
		return
	}

	respondJSON(w, http.StatusOK, calc)
}

// Delete godoc
// @Summary Delete calculation
// @Tags Calculations
// @Param id path string true "Calculation ID" format(uuid)
// @Success 204
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /calculations/{id} [delete]
func (h *CalculationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid calculation ID format")
		return
	}

	if err := h.calculationService.Delete(r.Context(), id); err != nil {
		h.respondCalculationError(w, err, "failed to delete calculation")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// Summary godoc
// @Summary Running total over included calculations
// @Tags Calculations
// @Produce json
// @Success 200 {object} domain.CalculationsSummaryDTO
// @Failure 500 {object} domain.APIError
// @Router /calculations/summary [get]
func (h *CalculationHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.calculationService.Summary(r.Context())
	if err != nil {
		h.logger.Error("failed to summarize calculations", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to summarize calculations")
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// Share godoc
// @Summary Build a messenger share link
// @Description Build a deep link carrying the calculation summary for telegram, viber or whatsapp
// @Tags Calculations
// @Produce json
// @Param id path string true "Calculation ID" format(uuid)
// @Param target query string true "Messenger" Enums(telegram, viber, whatsapp)
// @Success 200 {object} domain.ShareLinkDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /calculations/{id}/share [get]
func (h *CalculationHandler) Share(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid calculation ID format")
		return
	}

	target := domain.ShareTarget(r.URL.Query().Get("target"))
	link, err := h.calculationService.ShareLink(r.Context(), id, target)
	if err != nil {
		if errors.Is(err, service.ErrInvalidShareTarget) {
			respondWithError(w, http.StatusBadRequest, "Unknown share target")
			return
		}
		h.respondCalculationError(w, err, "failed to build share link")
		return
	}

	respondJSON(w, http.StatusOK, link)
}

func (h *CalculationHandler) respondCalculationError(w http.ResponseWriter, err error, logMsg string) {
	if errors.Is(err, service.ErrCalculationNotFound) {
		respondWithError(w, http.StatusNotFound, "Calculation not found")
		return
	}
	h.logger.Error(logMsg, zap.Error(err))
	respondWithError(w, http.StatusInternalServerError, "Internal server error")
}

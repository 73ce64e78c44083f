package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/polibest/kp-api/internal/domain"
	"github.com/polibest/kp-api/internal/service"
	"go.uber.org/zap"
)

// CalculatorHandler handles HTTP requests for price calculations
type CalculatorHandler struct {
	calculatorService *service.CalculatorService
	logger            *zap.Logger
}

// NewCalculatorHandler creates a new calculator handler instance
func NewCalculatorHandler(calculatorService *service.CalculatorService, logger *zap.Logger) *CalculatorHandler {
	return &CalculatorHandler{
		calculatorService: calculatorService,
		logger:            logger,
	}
}

// Price godoc
// @Summary Compute material prices
// @Description Compute the itemized material list and total for a product type and area using current settings prices
// @Tags Calculator
// @Accept json
// @Produce json
// @Param request body domain.PriceRequest true "Calculation input"
// @Success 200 {object} domain.PriceResultDTO
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /calculator/price [post]
func (h *CalculatorHandler) Price(w http.ResponseWriter, r *http.Request) {
	var req domain.PriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	result, err := h.calculatorService.Price(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrNothingToCalculate) {
			respondWithError(w, http.StatusBadRequest, "Nothing to calculate for the given input")
			return
		}
		h.logger.Error("failed to compute price", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to compute price")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

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

// ProposalHandler handles HTTP requests for commercial proposals
type ProposalHandler struct {
	proposalService *service.ProposalService
	logger          *zap.Logger
}

// NewProposalHandler creates a new proposal handler instance
func NewProposalHandler(proposalService *service.ProposalService, logger *zap.Logger) *ProposalHandler {
	return &ProposalHandler{
		proposalService: proposalService,
		logger:          logger,
	}
}

// List godoc
// @Summary List proposals
// @Description Get paginated list of proposals with optional filters
// @Tags Proposals
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param search query string false "Search by name or client"
// @Param status query string false "Filter by status" Enums(draft, sent, paid, cancelled)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.ProposalDTO}
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /proposals [get]
func (h *ProposalHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)
	search := r.URL.Query().Get("search")

	status := domain.ProposalStatus(r.URL.Query().Get("status"))
	if status != "" && !status.IsValid() {
		respondWithError(w, http.StatusBadRequest, "Invalid status filter")
		return
	}

	proposals, total, err := h.proposalService.List(r.Context(), page, pageSize, search, status)
	if err != nil {
		h.logger.Error("failed to list proposals", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list proposals")
		return
	}

	respondJSON(w, http.StatusOK, domain.NewPaginatedResponse(proposals, total, page, pageSize))
}

// Create godoc
// @Summary Create proposal
// @Description Create a proposal from the default scaffold; name and client override the placeholders
// @Tags Proposals
// @Accept json
// @Produce json
// @Param request body domain.CreateProposalRequest true "Proposal seed"
// @Success 201 {object} domain.ProposalDTO
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /proposals [post]
func (h *ProposalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	proposal, err := h.proposalService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create proposal", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to create proposal")
		return
	}

	respondJSON(w, http.StatusCreated, proposal)
}

// GetByID godoc
// @Summary Get proposal by ID
// @Tags Proposals
// @Produce json
// @Param id path string true "Proposal ID" format(uuid)
// @Success 200 {object} domain.ProposalDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /proposals/{id} [get]
func (h *ProposalHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid proposal ID format")
		return
	}

	proposal, err := h.proposalService.GetByID(r.Context(), id)
	if err != nil {
		h.respondProposalError(w, err, "failed to get proposal")
		return
	}

	respondJSON(w, http.StatusOK, proposal)
}

// Update godoc
// @Summary Update proposal
// @Description Replace the editable state of a proposal; the total is recomputed server side
// @Tags Proposals
// @Accept json
// @Produce json
// @Param id path string true "Proposal ID" format(uuid)
// @Param request body domain.UpdateProposalRequest true "New proposal state"
// @Success 200 {object} domain.ProposalDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /proposals/{id} [put]
func (h *ProposalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid proposal ID format")
		return
	}

	var req domain.UpdateProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	proposal, err := h.proposalService.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrTooManyPhotos) {
			respondWithError(w, http.StatusBadRequest, "A proposal may reference at most 3 photos")
			return
		}
		h.respondProposalError(w, err, "failed to update proposal")
		return
	}

	respondJSON(w, http.StatusOK, proposal)
}

// Delete godoc
// @Summary Delete proposal
// @Tags Proposals
// @Param id path string true "Proposal ID" format(uuid)
// @Success 204
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /proposals/{id} [delete]
func (h *ProposalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid proposal ID format")
		return
	}

	if err := h.proposalService.Delete(r.Context(), id); err != nil {
		h.respondProposalError(w, err, "failed to delete proposal")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (h *ProposalHandler) respondProposalError(w http.ResponseWriter, err error, logMsg string) {
	if errors.Is(err, service.ErrProposalNotFound) {
		respondWithError(w, http.StatusNotFound, "Proposal not found")
		return
	}
	h.logger.Error(logMsg, zap.Error(err))
	respondWithError(w, http.StatusInternalServerError, "Internal server error")
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/polibest/kp-api/internal/domain"
	"github.com/polibest/kp-api/internal/service"
)

// UpdateStatus godoc
// @Summary Update proposal status
// @Description Set the lifecycle status; any status may follow any other
// @Tags Proposals
// @Accept json
// @Produce json
// @Param id path string true "Proposal ID" format(uuid)
// @Param request body domain.UpdateProposalStatusRequest true "New status"
// @Success 200 {object} domain.ProposalDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /proposals/{id}/status [patch]
func (h *ProposalHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid proposal ID format")
		return
	}

	var req domain.UpdateProposalStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	proposal, err := h.proposalService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		h.respondProposalError(w, err, "failed to update proposal status")
		return
	}

	respondJSON(w, http.StatusOK, proposal)
}

// Clone godoc
// @Summary Clone proposal
// @Description Create a deep copy of a proposal as a new draft
// @Tags Proposals
// @Produce json
// @Param id path string true "Proposal ID" format(uuid)
// @Success 201 {object} domain.ProposalDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /proposals/{id}/clone [post]
func (h *ProposalHandler) Clone(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid proposal ID format")
		return
	}

	proposal, err := h.proposalService.Clone(r.Context(), id)
	if err != nil {
		h.respondProposalError(w, err, "failed to clone proposal")
		return
	}

	respondJSON(w, http.StatusCreated, proposal)
}

// Preview godoc
// @Summary Compose document preview
// @Description Compose the structured document layout, optionally restricted to selected rooms
// @Tags Proposals
// @Produce json
// @Param id path string true "Proposal ID" format(uuid)
// @Param rooms query string false "Comma-separated room IDs to include (all rooms when omitted)"
// @Success 200 {object} composer.Layout
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /proposals/{id}/preview [get]
func (h *ProposalHandler) Preview(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid proposal ID format")
		return
	}

	roomIDs, err := parseRoomIDs(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid room ID in rooms filter")
		return
	}

	layout, err := h.proposalService.Preview(r.Context(), id, roomIDs)
	if err != nil {
		h.respondProposalError(w, err, "failed to compose proposal preview")
		return
	}

	respondJSON(w, http.StatusOK, layout)
}

// Print godoc
// @Summary Printable document
// @Description Render the composed document as a self-contained HTML page for the print dialog
// @Tags Proposals
// @Produce html
// @Param id path string true "Proposal ID" format(uuid)
// @Param rooms query string false "Comma-separated room IDs to include (all rooms when omitted)"
// @Success 200 {string} string "HTML document"
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /proposals/{id}/print [get]
func (h *ProposalHandler) Print(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid proposal ID format")
		return
	}

	roomIDs, err := parseRoomIDs(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid room ID in rooms filter")
		return
	}

	html, err := h.proposalService.PrintHTML(r.Context(), id, roomIDs)
	if err != nil {
		h.respondProposalError(w, err, "failed to render proposal")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// Share godoc
// @Summary Build a messenger share link
// @Description Build a deep link carrying the proposal summary for telegram, viber or whatsapp
// @Tags Proposals
// @Produce json
// @Param id path string true "Proposal ID" format(uuid)
// @Param target query string true "Messenger" Enums(telegram, viber, whatsapp)
// @Success 200 {object} domain.ShareLinkDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /proposals/{id}/share [get]
func (h *ProposalHandler) Share(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid proposal ID format")
		return
	}

	target := domain.ShareTarget(r.URL.Query().Get("target"))
	link, err := h.proposalService.ShareLink(r.Context(), id, target)
	if err != nil {
		if errors.Is(err, service.ErrInvalidShareTarget) {
			respondWithError(w, http.StatusBadRequest, "Unknown share target")
			return
		}
		h.respondProposalError(w, err, "failed to build share link")
		return
	}

	respondJSON(w, http.StatusOK, link)
}

// parseRoomIDs reads the optional comma-separated rooms query parameter.
// A nil result means no filter was given and all rooms are included.
func parseRoomIDs(r *http.Request) ([]uuid.UUID, error) {
	raw := r.URL.Query().Get("rooms")
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

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

// DocumentHandler handles HTTP requests for document snapshots
type DocumentHandler struct {
	documentService *service.DocumentService
	logger          *zap.Logger
}

// NewDocumentHandler creates a new document handler instance
func NewDocumentHandler(documentService *service.DocumentService, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		logger:          logger,
	}
}

// List godoc
// @Summary List documents
// @Tags Documents
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param search query string false "Search by name or type"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.DocumentDTO}
// @Failure 500 {object} domain.APIError
// @Router /documents [get]
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)
	search := r.URL.Query().Get("search")

	docs, total, err := h.documentService.List(r.Context(), page, pageSize, search)
	if err != nil {
		h.logger.Error("failed to list documents", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list documents")
		return
	}

	respondJSON(w, http.StatusOK, domain.NewPaginatedResponse(docs, total, page, pageSize))
}

// Create godoc
// @Summary Create document
// @Description Save a write-once document snapshot
// @Tags Documents
// @Accept json
// @Produce json
// @Param request body domain.CreateDocumentRequest true "Document to save"
// @Success 201 {object} domain.DocumentDTO
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /documents [post]
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	doc, err := h.documentService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create document", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to create document")
		return
	}

	respondJSON(w, http.StatusCreated, doc)
}

// GetByID godoc
// @Summary Get document by ID
// @Tags Documents
// @Produce json
// @Param id path string true "Document ID" format(uuid)
// @Success 200 {object} domain.DocumentDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /documents/{id} [get]
func (h *DocumentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid document ID format")
		return
	}

	doc, err := h.documentService.GetByID(r.Context(), id)
	if err != nil {
		h.respondDocumentError(w, err, "failed to get document")
		return
	}

	respondJSON(w, http.StatusOK, doc)
}

// Delete godoc
// @Summary Delete document
// @Tags Documents
// @Param id path string true "Document ID" format(uuid)
// @Success 204
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid document ID format")
		return
	}

	if err := h.documentService.Delete(r.Context(), id); err != nil {
		h.respondDocumentError(w, err, "failed to delete document")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (h *DocumentHandler) respondDocumentError(w http.ResponseWriter, err error, logMsg string) {
	if errors.Is(err, service.ErrDocumentNotFound) {
		respondWithError(w, http.StatusNotFound, "Document not found")
		return
	}
	h.logger.Error(logMsg, zap.Error(err))
	respondWithError(w, http.StatusInternalServerError, "Internal server error")
}

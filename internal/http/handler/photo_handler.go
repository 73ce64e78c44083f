package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/polibest/kp-api/internal/domain"
	"github.com/polibest/kp-api/internal/service"
	"go.uber.org/zap"
)

// maxUploadBatchBytes bounds the whole multipart form held in memory
const maxUploadBatchBytes = 32 << 20

// PhotoHandler handles HTTP requests for the photo library
type PhotoHandler struct {
	photoService *service.PhotoService
	logger       *zap.Logger
}

// NewPhotoHandler creates a new photo handler instance
func NewPhotoHandler(photoService *service.PhotoService, logger *zap.Logger) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
		logger:       logger,
	}
}

// List godoc
// @Summary List photos
// @Tags Photos
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param search query string false "Search by name"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.PhotoDTO}
// @Failure 500 {object} domain.APIError
// @Router /photos [get]
func (h *PhotoHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)
	search := r.URL.Query().Get("search")

	photos, total, err := h.photoService.List(r.Context(), page, pageSize, search)
	if err != nil {
		h.logger.Error("failed to list photos", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list photos")
		return
	}

	respondJSON(w, http.StatusOK, domain.NewPaginatedResponse(photos, total, page, pageSize))
}

// Upload godoc
// @Summary Upload photos
// @Description Upload a batch of images under the multipart field "files"; rejected files are reported per file and never abort the batch
// @Tags Photos
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Image files"
// @Success 200 {object} domain.PhotoUploadResultDTO
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /photos [post]
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBatchBytes); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	fileHeaders := r.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		respondWithError(w, http.StatusBadRequest, "No files provided under the 'files' field")
		return
	}

	files := make([]service.UploadFile, 0, len(fileHeaders))
	opened := make([]io.Closer, 0, len(fileHeaders))
	defer func() {
		for _, c := range opened {
			c.Close()
		}
	}()

	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Failed to read uploaded file")
			return
		}
		opened = append(opened, f)
		files = append(files, service.UploadFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Data:        f,
		})
	}

	result, err := h.photoService.Upload(r.Context(), files)
	if err != nil {
		h.logger.Error("failed to process upload batch", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to process upload")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get photo metadata by ID
// @Tags Photos
// @Produce json
// @Param id path string true "Photo ID" format(uuid)
// @Success 200 {object} domain.PhotoDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /photos/{id} [get]
func (h *PhotoHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid photo ID format")
		return
	}

	photo, err := h.photoService.GetByID(r.Context(), id)
	if err != nil {
		h.respondPhotoError(w, err, "failed to get photo")
		return
	}

	respondJSON(w, http.StatusOK, photo)
}

// Download godoc
// @Summary Download original image
// @Tags Photos
// @Produce octet-stream
// @Param id path string true "Photo ID" format(uuid)
// @Success 200 {file} binary
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /photos/{id}/download [get]
func (h *PhotoHandler) Download(w http.ResponseWriter, r *http.Request) {
	h.stream(w, r, h.photoService.Download)
}

// Thumbnail godoc
// @Summary Download JPEG thumbnail
// @Tags Photos
// @Produce octet-stream
// @Param id path string true "Photo ID" format(uuid)
// @Success 200 {file} binary
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /photos/{id}/thumbnail [get]
func (h *PhotoHandler) Thumbnail(w http.ResponseWriter, r *http.Request) {
	h.stream(w, r, h.photoService.Thumbnail)
}

// Delete godoc
// @Summary Delete photo
// @Description Remove the library entry and its files; proposals keep dangling references that readers skip
// @Tags Photos
// @Param id path string true "Photo ID" format(uuid)
// @Success 204
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /photos/{id} [delete]
func (h *PhotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid photo ID format")
		return
	}

	if err := h.photoService.Delete(r.Context(), id); err != nil {
		h.respondPhotoError(w, err, "failed to delete photo")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (h *PhotoHandler) stream(w http.ResponseWriter, r *http.Request, open func(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, error)) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid photo ID format")
		return
	}

	reader, contentType, err := open(r.Context(), id)
	if err != nil {
		h.respondPhotoError(w, err, "failed to open photo")
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Warn("failed to stream photo", zap.Error(err))
	}
}

func (h *PhotoHandler) respondPhotoError(w http.ResponseWriter, err error, logMsg string) {
	if errors.Is(err, service.ErrPhotoNotFound) {
		respondWithError(w, http.StatusNotFound, "Photo not found")
		return
	}
	h.logger.Error(logMsg, zap.Error(err))
	respondWithError(w, http.StatusInternalServerError, "Internal server error")
}

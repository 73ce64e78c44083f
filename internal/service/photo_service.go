package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"path"
	"strings"

	_ "image/gif"
	_ "image/png"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
	"github.com/polibest/kp-api/internal/domain"
	"github.com/polibest/kp-api/internal/mapper"
	"github.com/polibest/kp-api/internal/repository"
	"github.com/polibest/kp-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ThumbnailMaxDimension bounds the longer side of generated thumbnails
const ThumbnailMaxDimension = 200

// UploadFile is one file of an upload batch
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Data        io.Reader
}

// PhotoService manages the photo library. Uploads are validated per
// file and a rejection never aborts the rest of the batch. Deleting a
// photo leaves any proposal references dangling; readers skip them.
type PhotoService struct {
	photoRepo     *repository.PhotoRepository
	store         storage.Storage
	maxUploadSize int64
	logger        *zap.Logger
}

func NewPhotoService(
	photoRepo *repository.PhotoRepository,
	store storage.Storage,
	maxUploadSize int64,
	logger *zap.Logger,
) *PhotoService {
	return &PhotoService{
		photoRepo:     photoRepo,
		store:         store,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

// Upload stores a batch of files. Each file must be an image and fit
// the size cap; failures are reported per file alongside the accepted
// entries.
func (s *PhotoService) Upload(ctx context.Context, files []UploadFile) (*domain.PhotoUploadResultDTO, error) {
	result := &domain.PhotoUploadResultDTO{
		Uploaded: []domain.PhotoDTO{},
		Rejected: []domain.PhotoRejectionDTO{},
	}

	for _, file := range files {
		dto, reason := s.uploadOne(ctx, file)
		if reason != "" {
			result.Rejected = append(result.Rejected, domain.PhotoRejectionDTO{
				Name:   file.Name,
				Reason: reason,
			})
			continue
		}
		result.Uploaded = append(result.Uploaded, *dto)
	}

	s.logger.Info("Photo batch processed",
		zap.Int("uploaded", len(result.Uploaded)),
		zap.Int("rejected", len(result.Rejected)),
	)

	return result, nil
}

func (s *PhotoService) uploadOne(ctx context.Context, file UploadFile) (*domain.PhotoDTO, string) {
	if !strings.HasPrefix(file.ContentType, "image/") {
		return nil, "not an image"
	}
	if file.Size > s.maxUploadSize {
		return nil, fmt.Sprintf("file exceeds %d MB limit", s.maxUploadSize/(1024*1024))
	}

	// The cap also bounds this read, so buffering the whole file is safe
	data, err := io.ReadAll(io.LimitReader(file.Data, s.maxUploadSize+1))
	if err != nil {
		return nil, "failed to read file"
	}
	if int64(len(data)) > s.maxUploadSize {
		return nil, fmt.Sprintf("file exceeds %d MB limit", s.maxUploadSize/(1024*1024))
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "unsupported image format"
	}

	thumb, err := encodeThumbnail(img)
	if err != nil {
		return nil, "failed to generate thumbnail"
	}

	photo := &domain.Photo{
		Name:        file.Name,
		ContentType: file.ContentType,
		Size:        int64(len(data)),
	}
	photo.ID = uuid.New()
	photo.StoragePath = photoKey(photo.ID, file.Name)
	photo.ThumbnailPath = thumbnailKey(photo.ID)

	if _, err := s.store.Save(ctx, photo.StoragePath, file.ContentType, bytes.NewReader(data)); err != nil {
		s.logger.Error("Failed to store photo", zap.String("name", file.Name), zap.Error(err))
		return nil, "storage failure"
	}
	if _, err := s.store.Save(ctx, photo.ThumbnailPath, "image/jpeg", bytes.NewReader(thumb)); err != nil {
		s.store.Remove(ctx, photo.StoragePath)
		s.logger.Error("Failed to store thumbnail", zap.String("name", file.Name), zap.Error(err))
		return nil, "storage failure"
	}

	if err := s.photoRepo.Create(ctx, photo); err != nil {
		s.store.Remove(ctx, photo.StoragePath)
		s.store.Remove(ctx, photo.ThumbnailPath)
		s.logger.Error("Failed to persist photo", zap.String("name", file.Name), zap.Error(err))
		return nil, "storage failure"
	}

	dto := mapper.ToPhotoDTO(photo)
	return &dto, ""
}

func (s *PhotoService) GetByID(ctx context.Context, id uuid.UUID) (*domain.PhotoDTO, error) {
	photo, err := s.getModel(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToPhotoDTO(photo)
	return &dto, nil
}

func (s *PhotoService) List(ctx context.Context, page, pageSize int, search string) ([]domain.PhotoDTO, int64, error) {
	photos, total, err := s.photoRepo.List(ctx, page, pageSize, search)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list photos: %w", err)
	}
	return mapper.ToPhotoDTOs(photos), total, nil
}

// Download streams the original image
func (s *PhotoService) Download(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, error) {
	photo, err := s.getModel(ctx, id)
	if err != nil {
		return nil, "", err
	}
	reader, err := s.store.Open(ctx, photo.StoragePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open photo: %w", err)
	}
	return reader, photo.ContentType, nil
}

// Thumbnail streams the JPEG thumbnail
func (s *PhotoService) Thumbnail(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, error) {
	photo, err := s.getModel(ctx, id)
	if err != nil {
		return nil, "", err
	}
	reader, err := s.store.Open(ctx, photo.ThumbnailPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open thumbnail: %w", err)
	}
	return reader, "image/jpeg", nil
}

// Delete removes the library entry and its stored files. Proposals
// referencing the photo keep their ids; the composer skips them.
func (s *PhotoService) Delete(ctx context.Context, id uuid.UUID) error {
	photo, err := s.getModel(ctx, id)
	if err != nil {
		return err
	}
	if err := s.photoRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	if err := s.store.Remove(ctx, photo.StoragePath); err != nil {
		s.logger.Warn("Failed to remove photo file", zap.String("key", photo.StoragePath), zap.Error(err))
	}
	if err := s.store.Remove(ctx, photo.ThumbnailPath); err != nil {
		s.logger.Warn("Failed to remove thumbnail file", zap.String("key", photo.ThumbnailPath), zap.Error(err))
	}
	s.logger.Info("Photo deleted", zap.String("photo_id", id.String()))
	return nil
}

func (s *PhotoService) getModel(ctx context.Context, id uuid.UUID) (*domain.Photo, error) {
	photo, err := s.photoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhotoNotFound
		}
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}
	return photo, nil
}

func encodeThumbnail(img image.Image) ([]byte, error) {
	thumb := resize.Thumbnail(ThumbnailMaxDimension, ThumbnailMaxDimension, img, resize.Lanczos3)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 80}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func photoKey(id uuid.UUID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".img"
	}
	return "photos/" + id.String() + ext
}

func thumbnailKey(id uuid.UUID) string {
	return "thumbs/" + id.String() + ".jpg"
}

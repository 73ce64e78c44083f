package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/polibest/kp-api/internal/domain"
	"github.com/polibest/kp-api/internal/mapper"
	"github.com/polibest/kp-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DocumentService manages write-once document snapshots. Documents are
// created and deleted, never edited; content is opaque to the server.
type DocumentService struct {
	documentRepo *repository.DocumentRepository
	logger       *zap.Logger
}

func NewDocumentService(documentRepo *repository.DocumentRepository, logger *zap.Logger) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		logger:       logger,
	}
}

func (s *DocumentService) Create(ctx context.Context, req *domain.CreateDocumentRequest) (*domain.DocumentDTO, error) {
	doc := &domain.Document{
		Name:    req.Name,
		Type:    req.Type,
		Area:    req.Area,
		Date:    time.Now().UTC().Format(time.RFC3339),
		Content: req.Content,
	}

	if err := s.documentRepo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	s.logger.Info("Document created",
		zap.String("document_id", doc.ID.String()),
		zap.String("type", doc.Type),
	)

	dto := mapper.ToDocumentDTO(doc)
	return &dto, nil
}

func (s *DocumentService) GetByID(ctx context.Context, id uuid.UUID) (*domain.DocumentDTO, error) {
	doc, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	dto := mapper.ToDocumentDTO(doc)
	return &dto, nil
}

func (s *DocumentService) List(ctx context.Context, page, pageSize int, search string) ([]domain.DocumentDTO, int64, error) {
	docs, total, err := s.documentRepo.List(ctx, page, pageSize, search)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list documents: %w", err)
	}
	return mapper.ToDocumentDTOs(docs), total, nil
}

func (s *DocumentService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.documentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	s.logger.Info("Document deleted", zap.String("document_id", id.String()))
	return nil
}

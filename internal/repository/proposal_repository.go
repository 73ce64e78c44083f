package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/polibest/kp-api/internal/domain"
	"gorm.io/gorm"
)

type ProposalRepository struct {
	db *gorm.DB
}

func NewProposalRepository(db *gorm.DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

func preloadRooms(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Rooms", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		}).
		Preload("Rooms.Materials", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		})
}

func (r *ProposalRepository) Create(ctx context.Context, proposal *domain.Proposal) error {
	return r.db.WithContext(ctx).Create(proposal).Error
}

func (r *ProposalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Proposal, error) {
	var proposal domain.Proposal
	err := preloadRooms(r.db.WithContext(ctx)).Where("id = ?", id).First(&proposal).Error
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}

// Update saves the proposal scalar fields and replaces its room tree in
// one transaction. Rooms and materials are always rewritten wholesale;
// diffing nested rows is not worth the complexity at this scale.
func (r *ProposalRepository) Update(ctx context.Context, proposal *domain.Proposal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.Material{}, "room_id IN (?)",
			tx.Session(&gorm.Session{NewDB: true}).Model(&domain.Room{}).Select("id").Where("proposal_id = ?", proposal.ID),
		).Error; err != nil {
			return err
		}
		if err := tx.Where("proposal_id = ?", proposal.ID).Delete(&domain.Room{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(proposal).Error
	})
}

// UpdateStatus sets only the status column
func (r *ProposalRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ProposalStatus) error {
	return r.db.WithContext(ctx).Model(&domain.Proposal{}).Where("id = ?", id).Update("status", status).Error
}

// UpdateTotal sets only the cached total column
func (r *ProposalRepository) UpdateTotal(ctx context.Context, id uuid.UUID, total float64) error {
	return r.db.WithContext(ctx).Model(&domain.Proposal{}).Where("id = ?", id).Update("total", total).Error
}

func (r *ProposalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.Material{}, "room_id IN (?)",
			tx.Session(&gorm.Session{NewDB: true}).Model(&domain.Room{}).Select("id").Where("proposal_id = ?", id),
		).Error; err != nil {
			return err
		}
		if err := tx.Where("proposal_id = ?", id).Delete(&domain.Room{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Proposal{}, "id = ?", id).Error
	})
}

func (r *ProposalRepository) List(ctx context.Context, page, pageSize int, search string, status domain.ProposalStatus) ([]domain.Proposal, int64, error) {
	var proposals []domain.Proposal
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Proposal{})

	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(client) LIKE ?", searchPattern, searchPattern)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := preloadRooms(query).Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&proposals).Error

	return proposals, total, err
}

func (r *ProposalRepository) ListRecent(ctx context.Context, limit int) ([]domain.Proposal, error) {
	var proposals []domain.Proposal
	err := preloadRooms(r.db.WithContext(ctx)).Order("created_at DESC").Limit(limit).Find(&proposals).Error
	return proposals, err
}

// ListAll returns every proposal with its room tree. Used by the totals
// reconciliation job.
func (r *ProposalRepository) ListAll(ctx context.Context) ([]domain.Proposal, error) {
	var proposals []domain.Proposal
	err := preloadRooms(r.db.WithContext(ctx)).Find(&proposals).Error
	return proposals, err
}

func (r *ProposalRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Proposal{}).Count(&count).Error
	return count, err
}

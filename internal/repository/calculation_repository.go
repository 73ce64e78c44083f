package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/polibest/kp-api/internal/domain"
	"gorm.io/gorm"
)

type CalculationRepository struct {
	db *gorm.DB
}

func NewCalculationRepository(db *gorm.DB) *CalculationRepository {
	return &CalculationRepository{db: db}
}

func (r *CalculationRepository) Create(ctx context.Context, calc *domain.Calculation) error {
	return r.db.WithContext(ctx).Create(calc).Error
}

func (r *CalculationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Calculation, error) {
	var calc domain.Calculation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&calc).Error
	if err != nil {
		return nil, err
	}
	return &calc, nil
}

func (r *CalculationRepository) Update(ctx context.Context, calc *domain.Calculation) error {
	return r.db.WithContext(ctx).Save(calc).Error
}

func (r *CalculationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Calculation{}, "id = ?", id).Error
}

func (r *CalculationRepository) List(ctx context.Context, page, pageSize int, search string) ([]domain.Calculation, int64, error) {
	var calcs []domain.Calculation
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Calculation{})

	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(client_name) LIKE ? OR LOWER(source) LIKE ?", searchPattern, searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&calcs).Error

	return calcs, total, err
}

func (r *CalculationRepository) ListRecent(ctx context.Context, limit int) ([]domain.Calculation, error) {
	var calcs []domain.Calculation
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&calcs).Error
	return calcs, err
}

func (r *CalculationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Calculation{}).Count(&count).Error
	return count, err
}

// Summary aggregates the running total over calculations flagged as
// included in the sum.
func (r *CalculationRepository) Summary(ctx context.Context) (total float64, includedCount int64, totalCount int64, err error) {
	if err = r.db.WithContext(ctx).Model(&domain.Calculation{}).Count(&totalCount).Error; err != nil {
		return 0, 0, 0, err
	}
	row := struct {
		Sum   float64
		Count int64
	}{}
	err = r.db.WithContext(ctx).Model(&domain.Calculation{}).
		Select("COALESCE(SUM(total), 0) AS sum, COUNT(*) AS count").
		Where("included_in_sum = ?", true).
		Scan(&row).Error
	if err != nil {
		return 0, 0, 0, err
	}
	return row.Sum, row.Count, totalCount, nil
}

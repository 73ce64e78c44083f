package repository

import (
	"context"
	"errors"

	"github.com/polibest/kp-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the settings singleton row. Callers decide how to handle
// a missing row; the service falls back to defaults.
func (r *SettingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	var settings domain.Settings
	err := r.db.WithContext(ctx).Where("id = ?", domain.SettingsRowID).First(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Save upserts the singleton row. The primary key is fixed so repeated
// saves always hit the same row.
func (r *SettingsRepository) Save(ctx context.Context, settings *domain.Settings) error {
	settings.ID = domain.SettingsRowID
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(settings).Error
}

// IsNotFound reports whether the error is a missing-row error
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

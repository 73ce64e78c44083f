package service_test

import (
	"path/filepath"
	"testing"

	"github.com/polibest/kp-api/internal/config"
	"github.com/polibest/kp-api/internal/database"
	"github.com/polibest/kp-api/internal/repository"
	"github.com/polibest/kp-api/internal/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "test.db"),
	}
	db, err := database.NewDatabase(cfg)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func newSettingsService(db *gorm.DB) *service.SettingsService {
	return service.NewSettingsService(repository.NewSettingsRepository(db), zap.NewNop())
}

func newCalculationService(db *gorm.DB) *service.CalculationService {
	return service.NewCalculationService(
		repository.NewCalculationRepository(db),
		newSettingsService(db),
		zap.NewNop(),
	)
}

func newProposalService(db *gorm.DB) *service.ProposalService {
	return service.NewProposalService(
		repository.NewProposalRepository(db),
		repository.NewPhotoRepository(db),
		newSettingsService(db),
		zap.NewNop(),
	)
}

package service

import (
	"context"
	"fmt"

	"github.com/polibest/kp-api/internal/domain"
	"github.com/polibest/kp-api/internal/mapper"
	"github.com/polibest/kp-api/internal/repository"
	"go.uber.org/zap"
)

// SettingsService manages the application settings singleton. Reads
// never fail on a missing row; they fall back to factory defaults.
type SettingsService struct {
	settingsRepo *repository.SettingsRepository
	logger       *zap.Logger
}

func NewSettingsService(settingsRepo *repository.SettingsRepository, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Get returns the current settings, defaulting when none are stored
func (s *SettingsService) Get(ctx context.Context) (*domain.SettingsDTO, error) {
	settings, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToSettingsDTO(settings)
	return &dto, nil
}

// Update applies a partial update and persists the merged settings.
// Concurrent updates are last-write-wins; there is no version check.
func (s *SettingsService) Update(ctx context.Context, req *domain.UpdateSettingsRequest) (*domain.SettingsDTO, error) {
	settings, err := s.current(ctx)
	if err != nil {
		return nil, err
	}

	if req.CompanyName != nil {
		settings.CompanyName = *req.CompanyName
	}
	if req.Currency != nil {
		settings.Currency = *req.Currency
	}
	if req.Units != nil {
		settings.Units = *req.Units
	}
	if req.Prices != nil {
		settings.Prices = *req.Prices
	}

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	s.logger.Info("Settings updated", zap.String("company_name", settings.CompanyName))

	dto := mapper.ToSettingsDTO(settings)
	return &dto, nil
}

// Reset restores factory defaults and persists them
func (s *SettingsService) Reset(ctx context.Context) (*domain.SettingsDTO, error) {
	settings := domain.DefaultSettings()
	if err := s.settingsRepo.Save(ctx, &settings); err != nil {
		return nil, fmt.Errorf("failed to reset settings: %w", err)
	}

	s.logger.Info("Settings reset to defaults")

	dto := mapper.ToSettingsDTO(&settings)
	return &dto, nil
}

// Current returns the settings model for internal callers such as the
// calculator, applying the same default fallback as Get.
func (s *SettingsService) Current(ctx context.Context) (*domain.Settings, error) {
	return s.current(ctx)
}

func (s *SettingsService) current(ctx context.Context) (*domain.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if repository.IsNotFound(err) {
			defaults := domain.DefaultSettings()
			return &defaults, nil
		}
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

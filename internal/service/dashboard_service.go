package service

import (
	"context"
	"fmt"

	"github.com/polibest/kp-api/internal/domain"
	"github.com/polibest/kp-api/internal/mapper"
	"github.com/polibest/kp-api/internal/repository"
	"go.uber.org/zap"
)

// recentLimit caps the recent-items lists on the dashboard
const recentLimit = 5

// DashboardService aggregates counts and recent activity across the
// collections for the landing view.
type DashboardService struct {
	calculationRepo *repository.CalculationRepository
	proposalRepo    *repository.ProposalRepository
	documentRepo    *repository.DocumentRepository
	photoRepo       *repository.PhotoRepository
	settingsService *SettingsService
	logger          *zap.Logger
}

func NewDashboardService(
	calculationRepo *repository.CalculationRepository,
	proposalRepo *repository.ProposalRepository,
	documentRepo *repository.DocumentRepository,
	photoRepo *repository.PhotoRepository,
	settingsService *SettingsService,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		calculationRepo: calculationRepo,
		proposalRepo:    proposalRepo,
		documentRepo:    documentRepo,
		photoRepo:       photoRepo,
		settingsService: settingsService,
		logger:          logger,
	}
}

func (s *DashboardService) Metrics(ctx context.Context) (*domain.DashboardMetricsDTO, error) {
	settings, err := s.settingsService.Current(ctx)
	if err != nil {
		return nil, err
	}

	calcCount, err := s.calculationRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count calculations: %w", err)
	}
	proposalCount, err := s.proposalRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count proposals: %w", err)
	}
	documentCount, err := s.documentRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count documents: %w", err)
	}
	photoCount, err := s.photoRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count photos: %w", err)
	}

	runningTotal, _, _, err := s.calculationRepo.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize calculations: %w", err)
	}

	recentCalcs, err := s.calculationRepo.ListRecent(ctx, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent calculations: %w", err)
	}
	recentProposals, err := s.proposalRepo.ListRecent(ctx, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent proposals: %w", err)
	}

	return &domain.DashboardMetricsDTO{
		Calculations:       calcCount,
		Proposals:          proposalCount,
		Documents:          documentCount,
		Photos:             photoCount,
		RunningTotal:       runningTotal,
		Currency:           settings.Currency,
		RecentCalculations: mapper.ToCalculationDTOs(recentCalcs),
		RecentProposals:    mapper.ToProposalDTOs(recentProposals),
	}, nil
}

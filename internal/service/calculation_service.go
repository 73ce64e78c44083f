package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/polibest/kp-api/internal/domain"
	"github.com/polibest/kp-api/internal/mapper"
	"github.com/polibest/kp-api/internal/pricing"
	"github.com/polibest/kp-api/internal/repository"
	"github.com/polibest/kp-api/internal/share"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CalculationService manages saved calculator results. Items and total
// are computed server side at save time and frozen afterwards.
type CalculationService struct {
	calculationRepo *repository.CalculationRepository
	settingsService *SettingsService
	logger          *zap.Logger
}

func NewCalculationService(
	calculationRepo *repository.CalculationRepository,
	settingsService *SettingsService,
	logger *zap.Logger,
) *CalculationService {
	return &CalculationService{
		calculationRepo: calculationRepo,
		settingsService: settingsService,
		logger:          logger,
	}
}

func (s *CalculationService) Create(ctx context.Context, req *domain.CreateCalculationRequest) (*domain.CalculationDTO, error) {
	settings, err := s.settingsService.Current(ctx)
	if err != nil {
		return nil, err
	}

	result := pricing.Calculate(req.ProductType, req.LacType, req.Area, settings.Prices)
	if result == nil {
		return nil, ErrNothingToCalculate
	}

	calc := &domain.Calculation{
		ClientName:    req.ClientName,
		ProductType:   req.ProductType,
		Area:          req.Area,
		Date:          req.Date,
		Source:        req.Source,
		Total:         result.Total,
		IncludedInSum: true,
		Items:         toCalculationItems(result),
	}
	if req.ProductType == domain.ProductFloki {
		lac := req.LacType
		if lac == "" {
			lac = domain.LacGlossy
		}
		calc.LacType = &lac
	}
	if calc.Date == "" {
		calc.Date = time.Now().UTC().Format("2006-01-02")
	}

	if err := s.calculationRepo.Create(ctx, calc); err != nil {
		return nil, fmt.Errorf("failed to create calculation: %w", err)
	}

	s.logger.Info("Calculation created",
		zap.String("calculation_id", calc.ID.String()),
		zap.String("product_type", string(calc.ProductType)),
		zap.Float64("total", calc.Total),
	)

	dto := mapper.ToCalculationDTO(calc)
	return &dto, nil
}

func (s *CalculationService) GetByID(ctx context.Context, id uuid.UUID) (*domain.CalculationDTO, error) {
	calc, err := s.getModel(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToCalculationDTO(calc)
	return &dto, nil
}

func (s *CalculationService) List(ctx context.Context, page, pageSize int, search string) ([]domain.CalculationDTO, int64, error) {
	calcs, total, err := s.calculationRepo.List(ctx, page, pageSize, search)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list calculations: %w", err)
	}
	return mapper.ToCalculationDTOs(calcs), total, nil
}

// Update changes descriptive fields only. Computed items and the total
// stay frozen; recomputation requires saving a new calculation.
func (s *CalculationService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateCalculationRequest) (*domain.CalculationDTO, error) {
	calc, err := s.getModel(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ClientName != nil {
		calc.ClientName = *req.ClientName
	}
	if req.Date != nil {
		calc.Date = *req.Date
	}
	if req.Source != nil {
		calc.Source = *req.Source
	}
	if req.IncludedInSum != nil {
		calc.IncludedInSum = *req.IncludedInSum
	}

	if err := s.calculationRepo.Update(ctx, calc); err != nil {
		return nil, fmt.Errorf("failed to update calculation: %w", err)
	}

	dto := mapper.ToCalculationDTO(calc)
	return &dto, nil
}

// ToggleIncluded flips the inclusion flag used by the running summary
func (s *CalculationService) ToggleIncluded(ctx context.Context, id uuid.UUID) (*domain.CalculationDTO, error) {
	calc, err := s.getModel(ctx, id)
	if err != nil {
		return nil, err
	}

	calc.IncludedInSum = !calc.IncludedInSum
	if err := s.calculationRepo.Update(ctx, calc); err != nil {
		return nil, fmt.Errorf("failed to toggle calculation: %w", err)
	}

	dto := mapper.ToCalculationDTO(calc)
	return &dto, nil
}

func (s *CalculationService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.getModel(ctx, id); err != nil {
		return err
	}
	if err := s.calculationRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete calculation: %w", err)
	}
	s.logger.Info("Calculation deleted", zap.String("calculation_id", id.String()))
	return nil
}

// Summary returns the running total over included calculations
func (s *CalculationService) Summary(ctx context.Context) (*domain.CalculationsSummaryDTO, error) {
	settings, err := s.settingsService.Current(ctx)
	if err != nil {
		return nil, err
	}

	total, includedCount, totalCount, err := s.calculationRepo.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize calculations: %w", err)
	}

	return &domain.CalculationsSummaryDTO{
		Total:         total,
		IncludedCount: int(includedCount),
		TotalCount:    int(totalCount),
		Currency:      settings.Currency,
	}, nil
}

// ShareLink builds a messenger deep link for one calculation
func (s *CalculationService) ShareLink(ctx context.Context, id uuid.UUID, target domain.ShareTarget) (*domain.ShareLinkDTO, error) {
	if !target.IsValid() {
		return nil, ErrInvalidShareTarget
	}

	calc, err := s.getModel(ctx, id)
	if err != nil {
		return nil, err
	}
	settings, err := s.settingsService.Current(ctx)
	if err != nil {
		return nil, err
	}

	text := share.SummaryText(share.SummaryParams{
		ClientName: calc.ClientName,
		Label:      calc.ProductType.Label(),
		Area:       calc.Area,
		Total:      calc.Total,
		Currency:   settings.Currency,
	})
	link := share.BuildLink(target, text)
	return &link, nil
}

func (s *CalculationService) getModel(ctx context.Context, id uuid.UUID) (*domain.Calculation, error) {
	calc, err := s.calculationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCalculationNotFound
		}
		return nil, fmt.Errorf("failed to get calculation: %w", err)
	}
	return calc, nil
}

func toCalculationItems(result *pricing.Result) []domain.CalculationItem {
	items := make([]domain.CalculationItem, 0, len(result.Items))
	for _, it := range result.Items {
		items = append(items, domain.CalculationItem{
			Name:       it.Name,
			Quantity:   it.Quantity,
			PricePerKg: it.PricePerKg,
			Total:      it.Total,
		})
	}
	return items
}

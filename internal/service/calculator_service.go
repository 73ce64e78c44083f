package service

import (
	"context"

	"github.com/polibest/kp-api/internal/domain"
	"github.com/polibest/kp-api/internal/pricing"
	"go.uber.org/zap"
)

// CalculatorService computes material quantities and costs from the
// product type, area and the current unit prices.
type CalculatorService struct {
	settingsService *SettingsService
	logger          *zap.Logger
}

func NewCalculatorService(settingsService *SettingsService, logger *zap.Logger) *CalculatorService {
	return &CalculatorService{
		settingsService: settingsService,
		logger:          logger,
	}
}

// Price computes the itemized material list for a request. Prices come
// from the settings singleton at call time.
func (s *CalculatorService) Price(ctx context.Context, req *domain.PriceRequest) (*domain.PriceResultDTO, error) {
	settings, err := s.settingsService.Current(ctx)
	if err != nil {
		return nil, err
	}

	result := pricing.Calculate(req.ProductType, req.LacType, req.Area, settings.Prices)
	if result == nil {
		return nil, ErrNothingToCalculate
	}

	return toPriceResultDTO(result, req.Area, settings.Currency), nil
}

func toPriceResultDTO(result *pricing.Result, area float64, currency string) *domain.PriceResultDTO {
	dto := &domain.PriceResultDTO{
		Items:    make([]domain.PriceLineDTO, 0, len(result.Items)),
		Total:    result.Total,
		Currency: currency,
	}
	for _, it := range result.Items {
		dto.Items = append(dto.Items, domain.PriceLineDTO{
			Name:       it.Name,
			Quantity:   it.Quantity,
			PricePerKg: it.PricePerKg,
			Total:      it.Total,
		})
	}
	if area > 0 {
		dto.PricePerM2 = result.Total / area
	}
	return dto
}

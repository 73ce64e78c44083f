package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/polibest/kp-api/internal/domain"
	"github.com/polibest/kp-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculationService_Create(t *testing.T) {
	db := setupTestDB(t)
	svc := newCalculationService(db)
	ctx := context.Background()

	t.Run("computes items and total server side", func(t *testing.T) {
		calc, err := svc.Create(ctx, &domain.CreateCalculationRequest{
			ClientName:  "Іван",
			ProductType: domain.ProductEmal,
			Area:        50,
		})
		require.NoError(t, err)

		// 50 m² × 0.30 kg/m² × 1512/kg
		require.Len(t, calc.Items, 1)
		assert.Equal(t, "Емаль", calc.Items[0].Name)
		assert.InDelta(t, 15.0, calc.Items[0].Quantity, 1e-9)
		assert.InDelta(t, 22680.0, calc.Total, 1e-9)
		assert.True(t, calc.IncludedInSum)
		assert.NotEmpty(t, calc.Date)
		assert.Nil(t, calc.LacType)
	})

	t.Run("floki defaults to glossy lacquer", func(t *testing.T) {
		calc, err := svc.Create(ctx, &domain.CreateCalculationRequest{
			ProductType: domain.ProductFloki,
			Area:        10,
		})
		require.NoError(t, err)

		require.Len(t, calc.Items, 3)
		assert.Equal(t, "Лак глянц.", calc.Items[2].Name)
		require.NotNil(t, calc.LacType)
		assert.Equal(t, domain.LacGlossy, *calc.LacType)
		// 2×1512 + 0.25×1620 + 1.2×1728
		assert.InDelta(t, 5502.6, calc.Total, 1e-9)
	})

	t.Run("rejects zero area", func(t *testing.T) {
		_, err := svc.Create(ctx, &domain.CreateCalculationRequest{
			ProductType: domain.ProductEmal,
			Area:        0,
		})
		assert.ErrorIs(t, err, service.ErrNothingToCalculate)
	})
}

func TestCalculationService_Update(t *testing.T) {
	db := setupTestDB(t)
	svc := newCalculationService(db)
	ctx := context.Background()

	calc, err := svc.Create(ctx, &domain.CreateCalculationRequest{
		ProductType: domain.ProductGrunt,
		Area:        20,
	})
	require.NoError(t, err)

	t.Run("updates descriptive fields only", func(t *testing.T) {
		name := "Петро"
		updated, err := svc.Update(ctx, calc.ID, &domain.UpdateCalculationRequest{
			ClientName: &name,
		})
		require.NoError(t, err)
		assert.Equal(t, "Петро", updated.ClientName)
		// Computed values stay frozen
		assert.Equal(t, calc.Total, updated.Total)
		assert.Equal(t, calc.Items, updated.Items)
	})

	t.Run("unknown id", func(t *testing.T) {
		name := "x"
		_, err := svc.Update(ctx, uuid.New(), &domain.UpdateCalculationRequest{ClientName: &name})
		assert.ErrorIs(t, err, service.ErrCalculationNotFound)
	})
}

func TestCalculationService_Summary(t *testing.T) {
	db := setupTestDB(t)
	svc := newCalculationService(db)
	ctx := context.Background()

	first, err := svc.Create(ctx, &domain.CreateCalculationRequest{
		ProductType: domain.ProductEmal,
		Area:        50,
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &domain.CreateCalculationRequest{
		ProductType: domain.ProductGrunt,
		Area:        100,
	})
	require.NoError(t, err)

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	// 22680 + 100×0.15×864
	assert.InDelta(t, 35640.0, summary.Total, 1e-9)
	assert.Equal(t, 2, summary.IncludedCount)
	assert.Equal(t, 2, summary.TotalCount)
	assert.Equal(t, "UAH", summary.Currency)

	t.Run("toggling exclusion shrinks the total", func(t *testing.T) {
		toggled, err := svc.ToggleIncluded(ctx, first.ID)
		require.NoError(t, err)
		assert.False(t, toggled.IncludedInSum)

		summary, err := svc.Summary(ctx)
		require.NoError(t, err)
		assert.InDelta(t, 12960.0, summary.Total, 1e-9)
		assert.Equal(t, 1, summary.IncludedCount)
		assert.Equal(t, 2, summary.TotalCount)
	})

	t.Run("toggling back restores it", func(t *testing.T) {
		toggled, err := svc.ToggleIncluded(ctx, first.ID)
		require.NoError(t, err)
		assert.True(t, toggled.IncludedInSum)

		summary, err := svc.Summary(ctx)
		require.NoError(t, err)
		assert.InDelta(t, 35640.0, summary.Total, 1e-9)
	})
}

func TestCalculationService_ShareLink(t *testing.T) {
	db := setupTestDB(t)
	svc := newCalculationService(db)
	ctx := context.Background()

	calc, err := svc.Create(ctx, &domain.CreateCalculationRequest{
		ClientName:  "Іван",
		ProductType: domain.ProductEmal,
		Area:        50,
	})
	require.NoError(t, err)

	t.Run("telegram link carries the summary text", func(t *testing.T) {
		link, err := svc.ShareLink(ctx, calc.ID, domain.ShareTelegram)
		require.NoError(t, err)
		assert.Equal(t, domain.ShareTelegram, link.Target)
		assert.Equal(t, "Іван\nЕМАЛЬ - 50 м²\nРАЗОМ: 22680 UAH", link.Text)
		assert.Contains(t, link.URL, "https://t.me/share/url")
	})

	t.Run("invalid target", func(t *testing.T) {
		_, err := svc.ShareLink(ctx, calc.ID, "signal")
		assert.ErrorIs(t, err, service.ErrInvalidShareTarget)
	})
}

func TestCalculationService_Delete(t *testing.T) {
	db := setupTestDB(t)
	svc := newCalculationService(db)
	ctx := context.Background()

	calc, err := svc.Create(ctx, &domain.CreateCalculationRequest{
		ProductType: domain.ProductFarba,
		Area:        10,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, calc.ID))

	_, err = svc.GetByID(ctx, calc.ID)
	assert.ErrorIs(t, err, service.ErrCalculationNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, calc.ID), service.ErrCalculationNotFound)
}

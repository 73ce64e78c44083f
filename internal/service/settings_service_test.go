package service_test

import (
	"context"
	"testing"

	"github.com/polibest/kp-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsService_Get(t *testing.T) {
	db := setupTestDB(t)
	svc := newSettingsService(db)
	ctx := context.Background()

	t.Run("returns defaults when nothing is stored", func(t *testing.T) {
		settings, err := svc.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "PoliBest 911", settings.CompanyName)
		assert.Equal(t, "UAH", settings.Currency)
		assert.Equal(t, "m²", settings.Units)
		assert.Equal(t, 864.0, settings.Prices.Gruntivka)
		assert.Equal(t, 1512.0, settings.Prices.Emal)
		assert.Equal(t, 2160.0, settings.Prices.LacMatte)
	})
}

func TestSettingsService_Update(t *testing.T) {
	db := setupTestDB(t)
	svc := newSettingsService(db)
	ctx := context.Background()

	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		name := "PoliBest Ukraine"
		updated, err := svc.Update(ctx, &domain.UpdateSettingsRequest{
			CompanyName: &name,
		})
		require.NoError(t, err)
		assert.Equal(t, "PoliBest Ukraine", updated.CompanyName)
		assert.Equal(t, "UAH", updated.Currency)
		assert.Equal(t, 864.0, updated.Prices.Gruntivka)
	})

	t.Run("prices block is replaced wholesale", func(t *testing.T) {
		prices := domain.PriceSettings{
			Gruntivka: 900,
			Farba:     1200,
			Emal:      1600,
			Floki:     1700,
			LacGlossy: 1800,
			LacMatte:  2200,
		}
		updated, err := svc.Update(ctx, &domain.UpdateSettingsRequest{
			Prices: &prices,
		})
		require.NoError(t, err)
		assert.Equal(t, 900.0, updated.Prices.Gruntivka)
		assert.Equal(t, 1600.0, updated.Prices.Emal)

		// Survives a fresh read
		reread, err := svc.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, prices, reread.Prices)
		assert.Equal(t, "PoliBest Ukraine", reread.CompanyName)
	})
}

func TestSettingsService_Reset(t *testing.T) {
	db := setupTestDB(t)
	svc := newSettingsService(db)
	ctx := context.Background()

	currency := "EUR"
	_, err := svc.Update(ctx, &domain.UpdateSettingsRequest{Currency: &currency})
	require.NoError(t, err)

	reset, err := svc.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, "UAH", reset.Currency)
	assert.Equal(t, "PoliBest 911", reset.CompanyName)

	reread, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "UAH", reread.Currency)
}

package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/polibest/kp-api/internal/config"
	"github.com/polibest/kp-api/internal/database"
	"github.com/polibest/kp-api/internal/domain"
	"github.com/polibest/kp-api/internal/http/handler"
	"github.com/polibest/kp-api/internal/repository"
	"github.com/polibest/kp-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupHandlerTestDB(t *testing.T) *gorm.DB {
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

func newCalculatorHandler(db *gorm.DB) *handler.CalculatorHandler {
	logger := zap.NewNop()
	settingsService := service.NewSettingsService(repository.NewSettingsRepository(db), logger)
	calculatorService := service.NewCalculatorService(settingsService, logger)
	return handler.NewCalculatorHandler(calculatorService, logger)
}

func TestCalculatorHandler_Price(t *testing.T) {
	db := setupHandlerTestDB(t)
	h := newCalculatorHandler(db)

	post := func(t *testing.T, body interface{}) *httptest.ResponseRecorder {
		t.Helper()
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/calculator/price", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.Price(rec, req)
		return rec
	}

	t.Run("computes price for emal", func(t *testing.T) {
		rec := post(t, domain.PriceRequest{ProductType: domain.ProductEmal, Area: 50})
		require.Equal(t, http.StatusOK, rec.Code)

		var result domain.PriceResultDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
		require.Len(t, result.Items, 1)
		assert.InDelta(t, 22680.0, result.Total, 1e-9)
		assert.InDelta(t, 453.6, result.PricePerM2, 1e-9)
		assert.Equal(t, "UAH", result.Currency)
	})

	t.Run("floki with matte lacquer", func(t *testing.T) {
		rec := post(t, domain.PriceRequest{
			ProductType: domain.ProductFloki,
			LacType:     domain.LacMatte,
			Area:        10,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var result domain.PriceResultDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
		require.Len(t, result.Items, 3)
		assert.Equal(t, "Лак матов.", result.Items[2].Name)
	})

	t.Run("missing area fails validation", func(t *testing.T) {
		rec := post(t, map[string]interface{}{"productType": "emal"})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var apiErr domain.APIError
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
		assert.Equal(t, domain.ErrorTypeValidation, apiErr.Type)
		assert.Contains(t, apiErr.Errors, "area")
	})

	t.Run("unknown product type fails validation", func(t *testing.T) {
		rec := post(t, map[string]interface{}{"productType": "lak", "area": 10})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/calculator/price", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		h.Price(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

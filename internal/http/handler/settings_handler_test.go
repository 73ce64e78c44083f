package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/polibest/kp-api/internal/domain"
	"github.com/polibest/kp-api/internal/http/handler"
	"github.com/polibest/kp-api/internal/repository"
	"github.com/polibest/kp-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newSettingsHandler(db *gorm.DB) *handler.SettingsHandler {
	logger := zap.NewNop()
	settingsService := service.NewSettingsService(repository.NewSettingsRepository(db), logger)
	return handler.NewSettingsHandler(settingsService, logger)
}

func TestSettingsHandler(t *testing.T) {
	db := setupHandlerTestDB(t)
	h := newSettingsHandler(db)

	t.Run("get returns defaults on a fresh database", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil)
		rec := httptest.NewRecorder()
		h.Get(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var settings domain.SettingsDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&settings))
		assert.Equal(t, "PoliBest 911", settings.CompanyName)
		assert.Equal(t, 1620.0, settings.Prices.Floki)
	})

	t.Run("put applies a partial update", func(t *testing.T) {
		payload, err := json.Marshal(map[string]interface{}{"currency": "EUR"})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPut, "/api/v1/settings", bytes.NewReader(payload))
		rec := httptest.NewRecorder()
		h.Update(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var settings domain.SettingsDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&settings))
		assert.Equal(t, "EUR", settings.Currency)
		assert.Equal(t, "PoliBest 911", settings.CompanyName)
	})

	t.Run("put rejects an overlong currency", func(t *testing.T) {
		payload, err := json.Marshal(map[string]interface{}{"currency": "MUCH-TOO-LONG"})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPut, "/api/v1/settings", bytes.NewReader(payload))
		rec := httptest.NewRecorder()
		h.Update(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var apiErr domain.APIError
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
		assert.Equal(t, domain.ErrorTypeValidation, apiErr.Type)
	})

	t.Run("reset restores factory defaults", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/settings/reset", nil)
		rec := httptest.NewRecorder()
		h.Reset(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var settings domain.SettingsDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&settings))
		assert.Equal(t, "UAH", settings.Currency)
	})
}

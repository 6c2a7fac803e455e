package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/qikpos/pos-platform/internal/api/middleware"
	models "github.com/qikpos/pos-platform/internal/models"
	service "github.com/qikpos/pos-platform/internal/services"
	"github.com/qikpos/pos-platform/internal/utils"
	"github.com/qikpos/pos-platform/internal/utils/response"
)

type SettingsHandler struct {
	settingsService *service.SettingsService
	validator       *validator.Validate
}

func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService, validator: validator.New()}
}

func (h *SettingsHandler) GetSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		settings, err := h.settingsService.GetSettings(r.Context())
		if err != nil {
			logger.Error("Failed to load settings", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, settings)
	}
}

func (h *SettingsHandler) UpdateSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.StoreSettings
		if !utils.ParseAndValidate(w, r, &req, h.validator) {
			logger.Warn("Invalid settings input")
			return
		}

		settings, err := h.settingsService.UpdateSettings(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to save settings", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Settings updated", slog.String("storeName", settings.StoreName))
		response.Success(w, http.StatusOK, settings)
	}
}

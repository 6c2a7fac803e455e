package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/qikpos/pos-platform/internal/api/middleware"
	"github.com/qikpos/pos-platform/internal/errors"
	models "github.com/qikpos/pos-platform/internal/models"
	service "github.com/qikpos/pos-platform/internal/services"
	"github.com/qikpos/pos-platform/internal/utils"
	"github.com/qikpos/pos-platform/internal/utils/response"
)

type BackupHandler struct {
	backupService *service.BackupService
	validator     *validator.Validate
}

func NewBackupHandler(backupService *service.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService, validator: validator.New()}
}

// ExportBackup returns the full store as one JSON document.
func (h *BackupHandler) ExportBackup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		backup, err := h.backupService.CreateBackup(r.Context())
		if err != nil {
			logger.Error("Failed to export backup", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Backup exported",
			slog.Int("products", len(backup.Products)),
			slog.Int("transactions", len(backup.Transactions)),
			slog.Int("customers", len(backup.Customers)),
			slog.Int("users", len(backup.Users)))
		response.Success(w, http.StatusOK, backup)
	}
}

// RestoreBackup replaces each collection present in the uploaded document.
func (h *BackupHandler) RestoreBackup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var backup models.Backup
		if err := utils.DecodeJSONBody(r, &backup); err != nil {
			logger.Warn("Invalid backup document", slog.Any("error", err))
			response.Error(w, errors.BadRequestError(err.Error()))

			return
		}

		if err := h.backupService.RestoreBackup(r.Context(), &backup); err != nil {
			logger.Error("Failed to restore backup", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Backup restored")
		response.Success(w, http.StatusOK, map[string]string{"status": "restored"})
	}
}

// FactoryReset wipes the store, optionally reloading demo data.
func (h *BackupHandler) FactoryReset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.ResetRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			logger.Warn("Invalid reset input", slog.Any("error", err))
			response.Error(w, errors.BadRequestError(err.Error()))

			return
		}

		if err := h.backupService.FactoryReset(r.Context(), req.IncludeDemoData); err != nil {
			logger.Error("Failed to reset the store", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Factory reset completed", slog.Bool("includeDemoData", req.IncludeDemoData))
		response.Success(w, http.StatusOK, map[string]string{"status": "reset"})
	}
}

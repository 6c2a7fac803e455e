package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/qikpos/pos-platform/internal/api/middleware"
	"github.com/qikpos/pos-platform/internal/errors"
	"github.com/qikpos/pos-platform/internal/models"
	service "github.com/qikpos/pos-platform/internal/services"
	"github.com/qikpos/pos-platform/internal/utils"
	"github.com/qikpos/pos-platform/internal/utils/response"
)

type TransactionHandler struct {
	transactionService *service.TransactionService
	validator          *validator.Validate
}

func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, validator: validator.New()}
}

func (h *TransactionHandler) ListTransactions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		transactions, err := h.transactionService.ListTransactions(r.Context())
		if err != nil {
			logger.Error("Failed to list transactions", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, transactions)
	}
}

func (h *TransactionHandler) GetTransaction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id := r.PathValue("id")
		if id == "" {
			response.Error(w, errors.BadRequestError("Transaction ID is required"))

			return
		}

		txn, err := h.transactionService.GetTransactionByID(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to get transaction", slog.String("transactionId", id), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, txn)
	}
}

// GetReceipt responds with the printable HTML receipt rather than the JSON
// envelope.
func (h *TransactionHandler) GetReceipt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id := r.PathValue("id")
		if id == "" {
			response.Error(w, errors.BadRequestError("Transaction ID is required"))

			return
		}

		html, err := h.transactionService.RenderReceipt(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to render receipt", slog.String("transactionId", id), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(html))
	}
}

func (h *TransactionHandler) EmailReceipt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id := r.PathValue("id")
		if id == "" {
			response.Error(w, errors.BadRequestError("Transaction ID is required"))

			return
		}

		var req models.EmailReceiptRequest
		if !utils.ParseAndValidate(w, r, &req, h.validator) {
			logger.Warn("Invalid email receipt input")
			return
		}

		if err := h.transactionService.EmailReceipt(r.Context(), id, req.To); err != nil {
			logger.Error("Failed to email receipt", slog.String("transactionId", id), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Receipt emailed", slog.String("transactionId", id), slog.String("to", req.To))
		response.Success(w, http.StatusOK, map[string]string{"status": "sent"})
	}
}

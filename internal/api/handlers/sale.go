package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/qikpos/pos-platform/internal/api/middleware"
	"github.com/qikpos/pos-platform/internal/models"
	service "github.com/qikpos/pos-platform/internal/services"
	"github.com/qikpos/pos-platform/internal/utils"
	"github.com/qikpos/pos-platform/internal/utils/response"
)

type SaleHandler struct {
	settlementService *service.SettlementService
	validator         *validator.Validate
}

func NewSaleHandler(settlementService *service.SettlementService) *SaleHandler {
	return &SaleHandler{settlementService: settlementService, validator: validator.New()}
}

// CompleteSale settles a cart: prices it, writes the ledger entry, and
// applies the stock, loyalty, and credit side effects.
func (h *SaleHandler) CompleteSale() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.CompleteSaleRequest
		if !utils.ParseAndValidate(w, r, &req, h.validator) {
			logger.Warn("Invalid sale input")
			return
		}

		txn, err := h.settlementService.CompleteSale(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to complete sale", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Sale completed", slog.String("transactionId", txn.ID),
			slog.Float64("total", txn.Total), slog.String("paymentMethod", string(txn.PaymentMethod)))
		response.Success(w, http.StatusCreated, txn)
	}
}

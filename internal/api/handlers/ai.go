package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/qikpos/pos-platform/internal/api/middleware"
	service "github.com/qikpos/pos-platform/internal/services"
	"github.com/qikpos/pos-platform/internal/utils"
	"github.com/qikpos/pos-platform/internal/utils/response"
)

type AIHandler struct {
	insightsService *service.InsightsService
	validator       *validator.Validate
}

func NewAIHandler(insightsService *service.InsightsService) *AIHandler {
	return &AIHandler{insightsService: insightsService, validator: validator.New()}
}

type suggestProductRequest struct {
	Name string `json:"name" validate:"required,min=2,max=200"`
}

type analyzeSalesRequest struct {
	Query string `json:"query" validate:"required,min=3,max=500"`
}

// SuggestProduct asks the assistant for category, price, SKU, and description
// suggestions for a product being added.
func (h *AIHandler) SuggestProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req suggestProductRequest
		if !utils.ParseAndValidate(w, r, &req, h.validator) {
			logger.Warn("Invalid suggestion input")
			return
		}

		suggestion, err := h.insightsService.SuggestProductDetails(r.Context(), req.Name)
		if err != nil {
			logger.Error("Product suggestion failed", slog.String("name", req.Name), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, suggestion)
	}
}

// AnalyzeSales answers a free-form question about the sales ledger.
func (h *AIHandler) AnalyzeSales() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req analyzeSalesRequest
		if !utils.ParseAndValidate(w, r, &req, h.validator) {
			logger.Warn("Invalid analysis input")
			return
		}

		answer, err := h.insightsService.AnalyzeSales(r.Context(), req.Query)
		if err != nil {
			logger.Error("Sales analysis failed", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]string{"answer": answer})
	}
}

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/qikpos/pos-platform/internal/api/middleware"
	service "github.com/qikpos/pos-platform/internal/services"
	"github.com/qikpos/pos-platform/internal/utils/response"
)

type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// SalesSummary aggregates the last N days of sales, for eg: GET /reports/summary?days=7
func (h *ReportHandler) SalesSummary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		days, _ := strconv.Atoi(r.URL.Query().Get("days"))

		summary, err := h.reportService.SalesSummary(r.Context(), days)
		if err != nil {
			logger.Error("Failed to build sales summary", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, summary)
	}
}

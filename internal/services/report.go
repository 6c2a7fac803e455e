package service

import (
	"context"
	"sort"
	"time"

	"github.com/qikpos/pos-platform/internal/errors"
	models "github.com/qikpos/pos-platform/internal/models"
	repository "github.com/qikpos/pos-platform/internal/repositories"
)

// ReportService aggregates the ledger into sales reports. Debt payments move
// money but sell nothing, so every figure here counts SALE records only.
type ReportService struct {
	transactionRepo repository.TransactionRepository
}

func NewReportService(transactionRepo repository.TransactionRepository) *ReportService {
	return &ReportService{transactionRepo: transactionRepo}
}

const (
	defaultSummaryDays = 30
	topProductLimit    = 5
)

func (s *ReportService) SalesSummary(ctx context.Context, days int) (*models.SalesSummary, error) {
	if days <= 0 {
		days = defaultSummaryDays
	}

	since := time.Now().UTC().AddDate(0, 0, -days)

	transactions, err := s.transactionRepo.ListTransactionsSince(ctx, since)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load transactions").WithError(err)
	}

	summary := &models.SalesSummary{
		DailySales:  []models.DailySales{},
		TopProducts: []models.TopProduct{},
	}

	salesByDate := make(map[string]float64)
	soldByProduct := make(map[string]int)

	for _, t := range transactions {
		if t.Type != models.TransactionTypeSale {
			continue
		}

		summary.TotalRevenue += t.Total
		summary.TotalOrders++

		day := t.Date.UTC().Format("2006-01-02")
		salesByDate[day] += t.Total

		for _, item := range t.Items {
			soldByProduct[item.Name] += item.Quantity
		}
	}

	for day, amount := range salesByDate {
		summary.DailySales = append(summary.DailySales, models.DailySales{Date: day, Amount: amount})
	}

	sort.Slice(summary.DailySales, func(i, j int) bool {
		return summary.DailySales[i].Date < summary.DailySales[j].Date
	})

	for name, sold := range soldByProduct {
		summary.TopProducts = append(summary.TopProducts, models.TopProduct{Name: name, Sold: sold})
	}

	// Ties break alphabetically so the order is stable.
	sort.Slice(summary.TopProducts, func(i, j int) bool {
		if summary.TopProducts[i].Sold != summary.TopProducts[j].Sold {
			return summary.TopProducts[i].Sold > summary.TopProducts[j].Sold
		}

		return summary.TopProducts[i].Name < summary.TopProducts[j].Name
	})

	if len(summary.TopProducts) > topProductLimit {
		summary.TopProducts = summary.TopProducts[:topProductLimit]
	}

	return summary, nil
}

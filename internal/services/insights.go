package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/qikpos/pos-platform/internal/errors"
	models "github.com/qikpos/pos-platform/internal/models"
	repository "github.com/qikpos/pos-platform/internal/repositories"
	"github.com/qikpos/pos-platform/pkg/gemini"
)

// InsightsService exposes the AI assistant: product detail suggestions when
// stocking new items, and natural-language questions over the sales ledger.
type InsightsService struct {
	gemini          gemini.Client
	transactionRepo repository.TransactionRepository
}

func NewInsightsService(geminiClient gemini.Client, transactionRepo repository.TransactionRepository) *InsightsService {
	return &InsightsService{gemini: geminiClient, transactionRepo: transactionRepo}
}

func (s *InsightsService) SuggestProductDetails(ctx context.Context, productName string) (*models.ProductSuggestion, error) {
	if s.gemini == nil {
		return nil, errors.BadRequestError("AI assistant is not configured")
	}

	if strings.TrimSpace(productName) == "" {
		return nil, errors.BadRequestError("Product name is required")
	}

	suggestion, err := s.gemini.SuggestProductDetails(ctx, productName)
	if err != nil {
		return nil, errors.ThirdPartyError("AI suggestion failed").WithError(err)
	}

	return suggestion, nil
}

const analysisSampleSize = 50

// AnalyzeSales condenses the most recent transactions into a compact summary
// and asks the model the user's question about them.
func (s *InsightsService) AnalyzeSales(ctx context.Context, userQuery string) (string, error) {
	if s.gemini == nil {
		return "", errors.BadRequestError("AI assistant is not configured")
	}

	if strings.TrimSpace(userQuery) == "" {
		return "", errors.BadRequestError("Query is required")
	}

	transactions, err := s.transactionRepo.ListTransactions(ctx)
	if err != nil {
		return "", errors.DatabaseError("Failed to load transactions").WithError(err)
	}

	if len(transactions) > analysisSampleSize {
		transactions = transactions[:analysisSampleSize]
	}

	type txnSummary struct {
		ID    string `json:"id"`
		Date  string `json:"date"`
		Total string `json:"total"`
		Items string `json:"items"`
	}

	summaries := make([]txnSummary, 0, len(transactions))

	for _, t := range transactions {
		lines := make([]string, 0, len(t.Items))
		for _, item := range t.Items {
			lines = append(lines, fmt.Sprintf("%dx %s", item.Quantity, item.Name))
		}

		summaries = append(summaries, txnSummary{
			ID:    t.ID,
			Date:  t.Date.UTC().Format("2006-01-02"),
			Total: fmt.Sprintf("%.2f", t.Total),
			Items: strings.Join(lines, ", "),
		})
	}

	summaryJSON, err := json.Marshal(summaries)
	if err != nil {
		return "", errors.InternalError("Failed to summarize transactions").WithError(err)
	}

	answer, err := s.gemini.AnalyzeSales(ctx, string(summaryJSON), userQuery)
	if err != nil {
		return "", errors.ThirdPartyError("AI analysis failed").WithError(err)
	}

	return answer, nil
}

package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	appErrors "github.com/qikpos/pos-platform/internal/errors"
	"github.com/qikpos/pos-platform/internal/models"
	"github.com/qikpos/pos-platform/internal/repositories/mocks"
	service "github.com/qikpos/pos-platform/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type geminiClientMock struct {
	mock.Mock
}

func (m *geminiClientMock) SuggestProductDetails(ctx context.Context, productName string) (*models.ProductSuggestion, error) {
	args := m.Called(ctx, productName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.ProductSuggestion), args.Error(1)
}

func (m *geminiClientMock) AnalyzeSales(ctx context.Context, salesSummary, userQuery string) (string, error) {
	args := m.Called(ctx, salesSummary, userQuery)

	return args.String(0), args.Error(1)
}

func (m *geminiClientMock) Close() error {
	args := m.Called()

	return args.Error(0)
}

func TestSuggestProductDetails(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		geminiMock := new(geminiClientMock)
		svc := service.NewInsightsService(geminiMock, new(mocks.TransactionRepository))

		geminiMock.On("SuggestProductDetails", mock.Anything, "Bamboo Cutting Board").Return(&models.ProductSuggestion{
			Category:    "Home & Kitchen",
			Price:       18.00,
			SKU:         "HOM-011",
			Description: "Durable bamboo cutting board",
		}, nil).Once()

		// Act
		suggestion, err := svc.SuggestProductDetails(ctx, "Bamboo Cutting Board")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Home & Kitchen", suggestion.Category)
		assert.InDelta(t, 18.00, suggestion.Price, 0.0001)
	})

	t.Run("Failure - Assistant Not Configured", func(t *testing.T) {
		// Arrange
		svc := service.NewInsightsService(nil, new(mocks.TransactionRepository))

		// Act
		suggestion, err := svc.SuggestProductDetails(ctx, "Bamboo Cutting Board")

		// Assert
		require.Error(t, err)
		assert.Nil(t, suggestion)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
	})

	t.Run("Failure - Blank Product Name", func(t *testing.T) {
		// Arrange
		svc := service.NewInsightsService(new(geminiClientMock), new(mocks.TransactionRepository))

		// Act
		_, err := svc.SuggestProductDetails(ctx, "   ")

		// Assert
		require.Error(t, err)
	})

	t.Run("Error - Upstream Failure", func(t *testing.T) {
		// Arrange
		geminiMock := new(geminiClientMock)
		svc := service.NewInsightsService(geminiMock, new(mocks.TransactionRepository))

		geminiMock.On("SuggestProductDetails", mock.Anything, mock.Anything).Return(nil, assert.AnError).Once()

		// Act
		_, err := svc.SuggestProductDetails(ctx, "Desk Lamp")

		// Assert
		require.Error(t, err)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeThirdPartyError, appErr.Code)
	})
}

func TestAnalyzeSales(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Summary Mentions Recent Items", func(t *testing.T) {
		// Arrange
		geminiMock := new(geminiClientMock)
		transactionRepo := new(mocks.TransactionRepository)
		svc := service.NewInsightsService(geminiMock, transactionRepo)

		transactionRepo.On("ListTransactions", mock.Anything).Return([]*models.Transaction{
			{
				ID:    "TXN-000001",
				Type:  models.TransactionTypeSale,
				Date:  time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC),
				Total: 64.78,
				Items: []models.LineItem{{Name: "Yoga Mat", Quantity: 2}},
			},
		}, nil).Once()

		geminiMock.On("AnalyzeSales", mock.Anything, mock.MatchedBy(func(summary string) bool {
			return strings.Contains(summary, "TXN-000001") &&
				strings.Contains(summary, "2x Yoga Mat") &&
				strings.Contains(summary, "64.78")
		}), "What sold best?").Return("Yoga mats sold best.", nil).Once()

		// Act
		answer, err := svc.AnalyzeSales(ctx, "What sold best?")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Yoga mats sold best.", answer)
	})

	t.Run("Failure - Assistant Not Configured", func(t *testing.T) {
		// Arrange
		svc := service.NewInsightsService(nil, new(mocks.TransactionRepository))

		// Act
		_, err := svc.AnalyzeSales(ctx, "What sold best?")

		// Assert
		require.Error(t, err)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
	})

	t.Run("Failure - Blank Query", func(t *testing.T) {
		// Arrange
		svc := service.NewInsightsService(new(geminiClientMock), new(mocks.TransactionRepository))

		// Act
		_, err := svc.AnalyzeSales(ctx, "")

		// Assert
		require.Error(t, err)
	})
}

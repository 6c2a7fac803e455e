package service_test

import (
	"context"
	"testing"

	appErrors "github.com/qikpos/pos-platform/internal/errors"
	"github.com/qikpos/pos-platform/internal/models"
	repository "github.com/qikpos/pos-platform/internal/repositories"
	"github.com/qikpos/pos-platform/internal/repositories/mocks"
	service "github.com/qikpos/pos-platform/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCustomerFixture() (*service.CustomerService, *mocks.CustomerRepository, *mocks.TransactionRepository) {
	customerRepo := new(mocks.CustomerRepository)
	transactionRepo := new(mocks.TransactionRepository)
	svc := service.NewCustomerService(customerRepo, transactionRepo)

	return svc, customerRepo, transactionRepo
}

func TestCreateCustomer(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		svc, customerRepo, _ := newCustomerFixture()

		customerRepo.On("CreateCustomer", mock.Anything, mock.AnythingOfType("*models.Customer")).Return(nil).Once()

		// Act
		customer, err := svc.CreateCustomer(context.Background(), &models.CreateCustomerRequest{
			FirstName:   "Alice",
			LastName:    "Johnson",
			Email:       "alice@example.com",
			CreditLimit: 500,
		})

		// Assert
		require.NoError(t, err)
		assert.NotEmpty(t, customer.ID)
		assert.False(t, customer.JoinDate.IsZero())
		assert.InDelta(t, 500, customer.CreditLimit, 0.0001)
		assert.Zero(t, customer.CurrentCredit)
		assert.Zero(t, customer.LoyaltyPoints)
	})
}

func TestUpdateCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Partial Merge", func(t *testing.T) {
		// Arrange
		svc, customerRepo, _ := newCustomerFixture()

		customerRepo.On("GetCustomerByID", mock.Anything, "c1").Return(&models.Customer{
			ID: "c1", FirstName: "Alice", LastName: "Johnson", Email: "alice@example.com",
			CreditLimit: 500, CurrentCredit: 120,
		}, nil).Once()
		customerRepo.On("UpdateCustomer", mock.Anything, mock.Anything).Return(nil).Once()

		// Act
		customer, err := svc.UpdateCustomer(ctx, "c1", &models.UpdateCustomerRequest{
			Phone:       strPtr("+233 24 555 0000"),
			CreditLimit: floatPtr(800),
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "+233 24 555 0000", customer.Phone)
		assert.InDelta(t, 800, customer.CreditLimit, 0.0001)
		assert.Equal(t, "Alice", customer.FirstName)
	})

	t.Run("Failure - Limit Below Outstanding Balance", func(t *testing.T) {
		// Arrange
		svc, customerRepo, _ := newCustomerFixture()

		customerRepo.On("GetCustomerByID", mock.Anything, "c1").Return(&models.Customer{
			ID: "c1", FirstName: "Alice", LastName: "Johnson",
			CreditLimit: 500, CurrentCredit: 120,
		}, nil).Once()

		// Act
		customer, err := svc.UpdateCustomer(ctx, "c1", &models.UpdateCustomerRequest{
			CreditLimit: floatPtr(100),
		})

		// Assert
		require.Error(t, err)
		assert.Nil(t, customer)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		assert.Contains(t, appErr.Message, "120.00")

		customerRepo.AssertNotCalled(t, "UpdateCustomer", mock.Anything, mock.Anything)
	})

	t.Run("Success - Limit Equal To Balance Allowed", func(t *testing.T) {
		// Arrange
		svc, customerRepo, _ := newCustomerFixture()

		customerRepo.On("GetCustomerByID", mock.Anything, "c1").Return(&models.Customer{
			ID: "c1", FirstName: "Alice", LastName: "Johnson",
			CreditLimit: 500, CurrentCredit: 120,
		}, nil).Once()
		customerRepo.On("UpdateCustomer", mock.Anything, mock.Anything).Return(nil).Once()

		// Act
		customer, err := svc.UpdateCustomer(ctx, "c1", &models.UpdateCustomerRequest{
			CreditLimit: floatPtr(120),
		})

		// Assert
		require.NoError(t, err)
		assert.InDelta(t, 120, customer.CreditLimit, 0.0001)
	})

	t.Run("Failure - Unknown Customer", func(t *testing.T) {
		// Arrange
		svc, customerRepo, _ := newCustomerFixture()

		customerRepo.On("GetCustomerByID", mock.Anything, "missing").Return(nil, repository.ErrNotFound).Once()

		// Act
		customer, err := svc.UpdateCustomer(ctx, "missing", &models.UpdateCustomerRequest{})

		// Assert
		require.Error(t, err)
		assert.Nil(t, customer)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestGetPurchaseHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Sales And Payments Returned", func(t *testing.T) {
		// Arrange
		svc, customerRepo, transactionRepo := newCustomerFixture()

		customerRepo.On("GetCustomerByID", mock.Anything, "c1").Return(&models.Customer{ID: "c1"}, nil).Once()
		transactionRepo.On("ListTransactionsByCustomer", mock.Anything, "c1").Return([]*models.Transaction{
			{ID: "TXN-000002", Type: models.TransactionTypeSale},
			{ID: "PAY-1", Type: models.TransactionTypePayment},
		}, nil).Once()

		// Act
		history, err := svc.GetPurchaseHistory(ctx, "c1")

		// Assert
		require.NoError(t, err)
		assert.Len(t, history, 2)
	})

	t.Run("Failure - Unknown Customer", func(t *testing.T) {
		// Arrange
		svc, customerRepo, transactionRepo := newCustomerFixture()

		customerRepo.On("GetCustomerByID", mock.Anything, "missing").Return(nil, repository.ErrNotFound).Once()

		// Act
		history, err := svc.GetPurchaseHistory(ctx, "missing")

		// Assert
		require.Error(t, err)
		assert.Nil(t, history)

		transactionRepo.AssertNotCalled(t, "ListTransactionsByCustomer", mock.Anything, mock.Anything)
	})
}

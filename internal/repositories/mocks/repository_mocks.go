// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/qikpos/pos-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

type ProductRepository struct {
	mock.Mock
}

func (m *ProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)

	return args.Error(0)
}

func (m *ProductRepository) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *ProductRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)

	return args.Error(0)
}

func (m *ProductRepository) ListProducts(ctx context.Context) ([]*models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Product), args.Error(1)
}

type CustomerRepository struct {
	mock.Mock
}

func (m *CustomerRepository) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)

	return args.Error(0)
}

func (m *CustomerRepository) GetCustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *CustomerRepository) UpdateCustomer(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)

	return args.Error(0)
}

func (m *CustomerRepository) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Customer), args.Error(1)
}

type TransactionRepository struct {
	mock.Mock
}

func (m *TransactionRepository) GetTransactionByID(ctx context.Context, id string) (*models.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *TransactionRepository) ListTransactions(ctx context.Context) ([]*models.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Transaction), args.Error(1)
}

func (m *TransactionRepository) ListTransactionsByCustomer(ctx context.Context, customerID string) ([]*models.Transaction, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Transaction), args.Error(1)
}

func (m *TransactionRepository) ListTransactionsSince(ctx context.Context, since time.Time) ([]*models.Transaction, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Transaction), args.Error(1)
}

type SettlementRepository struct {
	mock.Mock
}

func (m *SettlementRepository) SaveSettlement(ctx context.Context, txn *models.Transaction, products []*models.Product, customer *models.Customer) error {
	args := m.Called(ctx, txn, products, customer)

	return args.Error(0)
}

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *UserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *UserRepository) DeleteUser(ctx context.Context, id string) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *UserRepository) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *UserRepository) CountAdmins(ctx context.Context) (int, error) {
	args := m.Called(ctx)

	return args.Int(0), args.Error(1)
}

type RateLimitRepository struct {
	mock.Mock
}

func (m *RateLimitRepository) CheckLoginRateLimit(ctx context.Context, userID string) (bool, int, int, error) {
	args := m.Called(ctx, userID)

	return args.Bool(0), args.Int(1), args.Int(2), args.Error(3)
}

type SettingsRepository struct {
	mock.Mock
}

func (m *SettingsRepository) GetSettings(ctx context.Context) (*models.StoreSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.StoreSettings), args.Error(1)
}

func (m *SettingsRepository) SaveSettings(ctx context.Context, settings *models.StoreSettings) error {
	args := m.Called(ctx, settings)

	return args.Error(0)
}

type MaintenanceRepository struct {
	mock.Mock
}

func (m *MaintenanceRepository) RestoreBackup(ctx context.Context, backup *models.Backup) error {
	args := m.Called(ctx, backup)

	return args.Error(0)
}

func (m *MaintenanceRepository) ResetAll(ctx context.Context, state *models.Backup) error {
	args := m.Called(ctx, state)

	return args.Error(0)
}

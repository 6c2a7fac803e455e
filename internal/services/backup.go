package service

import (
	"context"
	"time"

	"github.com/qikpos/pos-platform/internal/errors"
	models "github.com/qikpos/pos-platform/internal/models"
	repository "github.com/qikpos/pos-platform/internal/repositories"
	"github.com/qikpos/pos-platform/internal/seed"
)

// BackupService exports and restores the whole store, and performs factory
// resets.
type BackupService struct {
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
	customerRepo    repository.CustomerRepository
	userRepo        repository.UserRepository
	settingsRepo    repository.SettingsRepository
	maintenanceRepo repository.MaintenanceRepository
}

func NewBackupService(
	productRepo repository.ProductRepository,
	transactionRepo repository.TransactionRepository,
	customerRepo repository.CustomerRepository,
	userRepo repository.UserRepository,
	settingsRepo repository.SettingsRepository,
	maintenanceRepo repository.MaintenanceRepository,
) *BackupService {
	return &BackupService{
		productRepo:     productRepo,
		transactionRepo: transactionRepo,
		customerRepo:    customerRepo,
		userRepo:        userRepo,
		settingsRepo:    settingsRepo,
		maintenanceRepo: maintenanceRepo,
	}
}

// CreateBackup exports every collection into one portable document. User PINs
// are included; a backup that cannot log anyone back in is useless.
func (s *BackupService) CreateBackup(ctx context.Context) (*models.Backup, error) {
	products, err := s.productRepo.ListProducts(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to export products").WithError(err)
	}

	transactions, err := s.transactionRepo.ListTransactions(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to export transactions").WithError(err)
	}

	customers, err := s.customerRepo.ListCustomers(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to export customers").WithError(err)
	}

	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to export users").WithError(err)
	}

	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		if err != repository.ErrNotFound {
			return nil, errors.DatabaseError("Failed to export settings").WithError(err)
		}

		defaults := models.DefaultStoreSettings()
		settings = &defaults
	}

	backup := &models.Backup{
		Products:     make([]models.Product, 0, len(products)),
		Transactions: make([]models.Transaction, 0, len(transactions)),
		Customers:    make([]models.Customer, 0, len(customers)),
		Users:        make([]models.BackupUser, 0, len(users)),
		Settings:     settings,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Version:      models.BackupVersion,
	}

	for _, p := range products {
		backup.Products = append(backup.Products, *p)
	}

	for _, t := range transactions {
		backup.Transactions = append(backup.Transactions, *t)
	}

	for _, c := range customers {
		backup.Customers = append(backup.Customers, *c)
	}

	for _, u := range users {
		backup.Users = append(backup.Users, models.BackupUser{
			ID:   u.ID,
			Name: u.Name,
			PIN:  u.PIN,
			Role: u.Role,
		})
	}

	return backup, nil
}

// RestoreBackup loads a previously exported document. Each collection present
// in the document replaces the stored one; absent collections are untouched.
func (s *BackupService) RestoreBackup(ctx context.Context, backup *models.Backup) error {
	if backup == nil {
		return errors.BadRequestError("Backup document is empty")
	}

	if backup.Version != "" && backup.Version != models.BackupVersion {
		return errors.BadRequestError("Unsupported backup version: " + backup.Version)
	}

	if backup.Products == nil && backup.Transactions == nil && backup.Customers == nil &&
		backup.Users == nil && backup.Settings == nil {
		return errors.BadRequestError("Backup document contains no collections")
	}

	if err := s.maintenanceRepo.RestoreBackup(ctx, backup); err != nil {
		return errors.DatabaseError("Failed to restore backup").WithError(err)
	}

	return nil
}

// FactoryReset wipes the store. With demo data it reloads the evaluation
// data set; without, it leaves default settings and a single admin account.
func (s *BackupService) FactoryReset(ctx context.Context, includeDemoData bool) error {
	state := seed.EmptyState()
	if includeDemoData {
		state = seed.DemoState()
	}

	if err := s.maintenanceRepo.ResetAll(ctx, state); err != nil {
		return errors.DatabaseError("Failed to reset the store").WithError(err)
	}

	return nil
}

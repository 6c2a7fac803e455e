package service

import (
	"context"

	"github.com/qikpos/pos-platform/internal/errors"
	models "github.com/qikpos/pos-platform/internal/models"
	"github.com/qikpos/pos-platform/internal/receipt"
	repository "github.com/qikpos/pos-platform/internal/repositories"
	"github.com/qikpos/pos-platform/pkg/sendGrid"
)

// TransactionService reads the ledger and produces receipts from it.
type TransactionService struct {
	repo         repository.TransactionRepository
	settingsRepo repository.SettingsRepository
	renderer     *receipt.Renderer
	email        sendGrid.EmailService
}

func NewTransactionService(repo repository.TransactionRepository, settingsRepo repository.SettingsRepository, renderer *receipt.Renderer, email sendGrid.EmailService) *TransactionService {
	return &TransactionService{
		repo:         repo,
		settingsRepo: settingsRepo,
		renderer:     renderer,
		email:        email,
	}
}

func (s *TransactionService) ListTransactions(ctx context.Context) ([]*models.Transaction, error) {
	transactions, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list transactions").WithError(err)
	}

	return transactions, nil
}

func (s *TransactionService) GetTransactionByID(ctx context.Context, id string) (*models.Transaction, error) {
	txn, err := s.repo.GetTransactionByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundError("Transaction not found: " + id)
		}

		return nil, errors.DatabaseError("Failed to load transaction").WithError(err)
	}

	return txn, nil
}

// RenderReceipt returns the printable HTML receipt for a ledger entry.
func (s *TransactionService) RenderReceipt(ctx context.Context, id string) (string, error) {
	txn, err := s.GetTransactionByID(ctx, id)
	if err != nil {
		return "", err
	}

	settings, err := s.storeSettings(ctx)
	if err != nil {
		return "", err
	}

	html, err := s.renderer.RenderHTML(txn, settings)
	if err != nil {
		return "", errors.InternalError("Failed to render receipt").WithError(err)
	}

	return html, nil
}

// EmailReceipt sends the receipt for a ledger entry to the given address.
func (s *TransactionService) EmailReceipt(ctx context.Context, id string, to string) error {
	if s.email == nil {
		return errors.BadRequestError("Email delivery is not configured")
	}

	txn, err := s.GetTransactionByID(ctx, id)
	if err != nil {
		return err
	}

	settings, err := s.storeSettings(ctx)
	if err != nil {
		return err
	}

	html, err := s.renderer.RenderHTML(txn, settings)
	if err != nil {
		return errors.InternalError("Failed to render receipt").WithError(err)
	}

	plain := s.renderer.RenderPlain(txn, settings)
	subject := "Your receipt from " + settings.StoreName

	if err := s.email.Send(ctx, to, subject, plain, html); err != nil {
		return errors.ThirdPartyError("Failed to send receipt email").WithError(err)
	}

	return nil
}

func (s *TransactionService) storeSettings(ctx context.Context) (*models.StoreSettings, error) {
	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		if err == repository.ErrNotFound {
			defaults := models.DefaultStoreSettings()

			return &defaults, nil
		}

		return nil, errors.DatabaseError("Failed to load store settings").WithError(err)
	}

	return settings, nil
}

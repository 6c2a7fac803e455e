package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/qikpos/pos-platform/internal/errors"
	models "github.com/qikpos/pos-platform/internal/models"
	repository "github.com/qikpos/pos-platform/internal/repositories"
)

// CustomerService manages the customer ledger: profiles, loyalty, and the
// store-credit limits the settlement engine enforces.
type CustomerService struct {
	repo            repository.CustomerRepository
	transactionRepo repository.TransactionRepository
}

func NewCustomerService(repo repository.CustomerRepository, transactionRepo repository.TransactionRepository) *CustomerService {
	return &CustomerService{repo: repo, transactionRepo: transactionRepo}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	customer := &models.Customer{
		ID:          uuid.NewString(),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Notes:       req.Notes,
		CreditLimit: req.CreditLimit,
		JoinDate:    time.Now().UTC(),
	}

	if err := s.repo.CreateCustomer(ctx, customer); err != nil {
		return nil, errors.DatabaseError("Failed to create customer").WithError(err)
	}

	return customer, nil
}

func (s *CustomerService) GetCustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	customer, err := s.repo.GetCustomerByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundError("Customer not found: " + id)
		}

		return nil, errors.DatabaseError("Failed to load customer").WithError(err)
	}

	return customer, nil
}

// UpdateCustomer merges profile edits. Lowering the credit limit below the
// balance already owed is rejected so the ledger can never show a customer
// over their own limit.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id string, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	customer, err := s.repo.GetCustomerByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundError("Customer not found: " + id)
		}

		return nil, errors.DatabaseError("Failed to load customer").WithError(err)
	}

	if req.CreditLimit != nil && *req.CreditLimit < customer.CurrentCredit {
		return nil, errors.ValidationError(fmt.Sprintf(
			"Credit limit %.2f cannot be below the outstanding balance %.2f",
			*req.CreditLimit, customer.CurrentCredit))
	}

	if req.FirstName != nil {
		customer.FirstName = *req.FirstName
	}

	if req.LastName != nil {
		customer.LastName = *req.LastName
	}

	if req.Email != nil {
		customer.Email = *req.Email
	}

	if req.Phone != nil {
		customer.Phone = *req.Phone
	}

	if req.Notes != nil {
		customer.Notes = *req.Notes
	}

	if req.CreditLimit != nil {
		customer.CreditLimit = *req.CreditLimit
	}

	if err := s.repo.UpdateCustomer(ctx, customer); err != nil {
		return nil, errors.DatabaseError("Failed to update customer").WithError(err)
	}

	return customer, nil
}

func (s *CustomerService) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	customers, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list customers").WithError(err)
	}

	return customers, nil
}

// GetPurchaseHistory returns the customer's ledger entries, newest first,
// sales and debt payments alike.
func (s *CustomerService) GetPurchaseHistory(ctx context.Context, id string) ([]*models.Transaction, error) {
	if _, err := s.repo.GetCustomerByID(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundError("Customer not found: " + id)
		}

		return nil, errors.DatabaseError("Failed to load customer").WithError(err)
	}

	transactions, err := s.transactionRepo.ListTransactionsByCustomer(ctx, id)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load purchase history").WithError(err)
	}

	return transactions, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/qikpos/pos-platform/internal/models"
	"github.com/qikpos/pos-platform/internal/utils"
)

type CustomerRepository interface {
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	GetCustomerByID(ctx context.Context, id string) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, customer *models.Customer) error
	ListCustomers(ctx context.Context) ([]*models.Customer, error)
}

type customerRepository struct {
	DB *sql.DB
}

func NewCustomerRepo(db *sql.DB) CustomerRepository {
	return &customerRepository{DB: db}
}

func (r *customerRepository) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO customers (id, first_name, last_name, email, phone, notes, loyalty_points, total_spent, join_date, credit_limit, current_credit)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			  RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		customer.ID, customer.FirstName, customer.LastName, customer.Email,
		customer.Phone, customer.Notes, customer.LoyaltyPoints, customer.TotalSpent,
		customer.JoinDate, customer.CreditLimit, customer.CurrentCredit).
		Scan(&customer.CreatedAt, &customer.UpdatedAt)
}

func (r *customerRepository) GetCustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	customer := &models.Customer{}

	query := `
		SELECT id, first_name, last_name, email, phone, notes, loyalty_points, total_spent, join_date, credit_limit, current_credit, created_at, updated_at
		FROM customers
		WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&customer.ID,
		&customer.FirstName, &customer.LastName, &customer.Email, &customer.Phone,
		&customer.Notes, &customer.LoyaltyPoints, &customer.TotalSpent,
		&customer.JoinDate, &customer.CreditLimit, &customer.CurrentCredit,
		&customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return customer, nil
}

func (r *customerRepository) UpdateCustomer(ctx context.Context, customer *models.Customer) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE customers SET first_name = $1, last_name = $2, email = $3, phone = $4, notes = $5, loyalty_points = $6, total_spent = $7, credit_limit = $8, current_credit = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, customer.FirstName, customer.LastName,
		customer.Email, customer.Phone, customer.Notes, customer.LoyaltyPoints,
		customer.TotalSpent, customer.CreditLimit, customer.CurrentCredit,
		customer.ID).Scan(&customer.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	return err
}

func (r *customerRepository) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, first_name, last_name, email, phone, notes, loyalty_points, total_spent, join_date, credit_limit, current_credit, created_at, updated_at
		FROM customers
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var customers []*models.Customer

	for rows.Next() {
		customer := &models.Customer{}

		err := rows.Scan(&customer.ID, &customer.FirstName, &customer.LastName,
			&customer.Email, &customer.Phone, &customer.Notes, &customer.LoyaltyPoints,
			&customer.TotalSpent, &customer.JoinDate, &customer.CreditLimit,
			&customer.CurrentCredit, &customer.CreatedAt, &customer.UpdatedAt)
		if err != nil {
			return nil, err
		}

		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return customers, nil
}

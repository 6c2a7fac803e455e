package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/qikpos/pos-platform/internal/models"
	"github.com/qikpos/pos-platform/internal/utils"
)

type TransactionRepository interface {
	GetTransactionByID(ctx context.Context, id string) (*models.Transaction, error)
	ListTransactions(ctx context.Context) ([]*models.Transaction, error)
	ListTransactionsByCustomer(ctx context.Context, customerID string) ([]*models.Transaction, error)
	ListTransactionsSince(ctx context.Context, since time.Time) ([]*models.Transaction, error)
}

type transactionRepository struct {
	DB *sql.DB
}

func NewTransactionRepo(db *sql.DB) TransactionRepository {
	return &transactionRepository{DB: db}
}

const transactionColumns = `id, type, date, items, subtotal, tax, total, payment_method, customer_id, customer_name`

func scanTransaction(scanner interface{ Scan(...any) error }) (*models.Transaction, error) {
	txn := &models.Transaction{}

	var items []byte

	err := scanner.Scan(&txn.ID, &txn.Type, &txn.Date, &items, &txn.Subtotal,
		&txn.Tax, &txn.Total, &txn.PaymentMethod, &txn.CustomerID, &txn.CustomerName)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &txn.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal line items: %w", err)
	}

	return txn, nil
}

func (r *transactionRepository) GetTransactionByID(ctx context.Context, id string) (*models.Transaction, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	txn, err := scanTransaction(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return txn, nil
}

func (r *transactionRepository) ListTransactions(ctx context.Context) ([]*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY date DESC`

	return r.list(ctx, query)
}

func (r *transactionRepository) ListTransactionsByCustomer(ctx context.Context, customerID string) ([]*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE customer_id = $1 ORDER BY date DESC`

	return r.list(ctx, query, customerID)
}

func (r *transactionRepository) ListTransactionsSince(ctx context.Context, since time.Time) ([]*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE date >= $1 ORDER BY date DESC`

	return r.list(ctx, query, since)
}

func (r *transactionRepository) list(ctx context.Context, query string, args ...any) ([]*models.Transaction, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	defer rows.Close()

	var transactions []*models.Transaction

	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}

		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return transactions, nil
}

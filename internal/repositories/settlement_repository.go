package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/qikpos/pos-platform/internal/models"
	"github.com/qikpos/pos-platform/internal/utils"
)

// SettlementRepository persists the record set produced by a settlement as
// one unit: the ledger insert and every dependent product/customer update
// commit together or not at all. A crash mid-settlement can therefore never
// leave stock, ledger, and credit disagreeing.
type SettlementRepository interface {
	SaveSettlement(ctx context.Context, txn *models.Transaction, products []*models.Product, customer *models.Customer) error
}

type settlementRepository struct {
	DB *sql.DB
}

func NewSettlementRepo(db *sql.DB) SettlementRepository {
	return &settlementRepository{DB: db}
}

func (r *settlementRepository) SaveSettlement(ctx context.Context, txn *models.Transaction, products []*models.Product, customer *models.Customer) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := insertTransaction(dbCtx, tx, txn); err != nil {
		return err
	}

	for _, product := range products {
		_, err := tx.ExecContext(dbCtx,
			`UPDATE products SET stock = $1, updated_at = NOW() WHERE id = $2`,
			product.Stock, product.ID)
		if err != nil {
			return fmt.Errorf("update product stock: %w", err)
		}
	}

	if customer != nil {
		_, err := tx.ExecContext(dbCtx,
			`UPDATE customers
			 SET loyalty_points = $1, total_spent = $2, current_credit = $3, updated_at = NOW()
			 WHERE id = $4`,
			customer.LoyaltyPoints, customer.TotalSpent, customer.CurrentCredit, customer.ID)
		if err != nil {
			return fmt.Errorf("update customer balance: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

func insertTransaction(ctx context.Context, tx *sql.Tx, txn *models.Transaction) error {
	items := txn.Items
	if items == nil {
		items = []models.LineItem{}
	}

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal line items: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO transactions (id, type, date, items, subtotal, tax, total, payment_method, customer_id, customer_name)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		txn.ID, txn.Type, txn.Date, itemsJSON, txn.Subtotal, txn.Tax, txn.Total,
		txn.PaymentMethod, txn.CustomerID, txn.CustomerName)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	return nil
}

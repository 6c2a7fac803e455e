package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/qikpos/pos-platform/internal/models"
	"github.com/qikpos/pos-platform/internal/utils"
)

// MaintenanceRepository performs the whole-collection operations behind
// backup restore and factory reset. Every call runs clear-then-repopulate
// inside a single transaction so an interrupted restore cannot leave the
// store half-loaded.
type MaintenanceRepository interface {
	// RestoreBackup replaces each collection for which the backup carries a
	// key; collections absent from the backup are left untouched.
	RestoreBackup(ctx context.Context, backup *models.Backup) error
	// ResetAll clears all five collections and loads the given state, which
	// may be the demo seed or the minimal empty-store state.
	ResetAll(ctx context.Context, state *models.Backup) error
}

type maintenanceRepository struct {
	DB *sql.DB
}

func NewMaintenanceRepo(db *sql.DB) MaintenanceRepository {
	return &maintenanceRepository{DB: db}
}

func (r *maintenanceRepository) RestoreBackup(ctx context.Context, backup *models.Backup) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if backup.Products != nil {
		if err := replaceProducts(dbCtx, tx, backup.Products); err != nil {
			return err
		}
	}

	if backup.Transactions != nil {
		if err := replaceTransactions(dbCtx, tx, backup.Transactions); err != nil {
			return err
		}
	}

	if backup.Customers != nil {
		if err := replaceCustomers(dbCtx, tx, backup.Customers); err != nil {
			return err
		}
	}

	if backup.Users != nil {
		if err := replaceUsers(dbCtx, tx, backup.Users); err != nil {
			return err
		}
	}

	if backup.Settings != nil {
		if err := replaceSettings(dbCtx, tx, backup.Settings); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

func (r *maintenanceRepository) ResetAll(ctx context.Context, state *models.Backup) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := replaceProducts(dbCtx, tx, state.Products); err != nil {
		return err
	}

	if err := replaceTransactions(dbCtx, tx, state.Transactions); err != nil {
		return err
	}

	if err := replaceCustomers(dbCtx, tx, state.Customers); err != nil {
		return err
	}

	if err := replaceUsers(dbCtx, tx, state.Users); err != nil {
		return err
	}

	settings := state.Settings
	if settings == nil {
		defaults := models.DefaultStoreSettings()
		settings = &defaults
	}

	if err := replaceSettings(dbCtx, tx, settings); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

func replaceProducts(ctx context.Context, tx *sql.Tx, products []models.Product) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("clear products: %w", err)
	}

	for _, p := range products {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO products (id, name, category, sku, price, cost, stock, low_stock_threshold, description, image_url)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			p.ID, p.Name, p.Category, p.SKU, p.Price, p.Cost, p.Stock,
			p.LowStockThreshold, p.Description, p.ImageURL)
		if err != nil {
			return fmt.Errorf("insert product %s: %w", p.ID, err)
		}
	}

	return nil
}

func replaceTransactions(ctx context.Context, tx *sql.Tx, transactions []models.Transaction) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}

	for _, t := range transactions {
		items := t.Items
		if items == nil {
			items = []models.LineItem{}
		}

		itemsJSON, err := json.Marshal(items)
		if err != nil {
			return fmt.Errorf("marshal line items for %s: %w", t.ID, err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO transactions (id, type, date, items, subtotal, tax, total, payment_method, customer_id, customer_name)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			t.ID, t.Type, t.Date, itemsJSON, t.Subtotal, t.Tax, t.Total,
			t.PaymentMethod, t.CustomerID, t.CustomerName)
		if err != nil {
			return fmt.Errorf("insert transaction %s: %w", t.ID, err)
		}
	}

	return nil
}

func replaceCustomers(ctx context.Context, tx *sql.Tx, customers []models.Customer) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM customers`); err != nil {
		return fmt.Errorf("clear customers: %w", err)
	}

	for _, c := range customers {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO customers (id, first_name, last_name, email, phone, notes, loyalty_points, total_spent, join_date, credit_limit, current_credit)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.Notes,
			c.LoyaltyPoints, c.TotalSpent, c.JoinDate, c.CreditLimit, c.CurrentCredit)
		if err != nil {
			return fmt.Errorf("insert customer %s: %w", c.ID, err)
		}
	}

	return nil
}

func replaceUsers(ctx context.Context, tx *sql.Tx, users []models.BackupUser) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("clear users: %w", err)
	}

	for _, u := range users {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO users (id, name, pin, role) VALUES ($1, $2, $3, $4)`,
			u.ID, u.Name, u.PIN, u.Role)
		if err != nil {
			return fmt.Errorf("insert user %s: %w", u.ID, err)
		}
	}

	return nil
}

func replaceSettings(ctx context.Context, tx *sql.Tx, settings *models.StoreSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO settings (id, data) VALUES (1, $1)
		 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data`, data)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	return nil
}

// Package seed builds the data sets used by factory reset: a populated demo
// store for evaluation and the minimal state a brand new deployment needs.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/qikpos/pos-platform/internal/models"
)

const demoTransactionCount = 50

// DemoState returns a fully populated store: the product catalog, customers,
// staff accounts, a month of generated sales history, and default settings.
func DemoState() *models.Backup {
	settings := models.DefaultStoreSettings()

	return &models.Backup{
		Products:     DemoProducts(),
		Transactions: demoTransactions(settings.TaxRate),
		Customers:    DemoCustomers(),
		Users:        DemoUsers(),
		Settings:     &settings,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Version:      models.BackupVersion,
	}
}

// EmptyState returns a cleared store with a single admin account so the
// terminal is still usable after the wipe.
func EmptyState() *models.Backup {
	settings := models.DefaultStoreSettings()

	return &models.Backup{
		Products:     []models.Product{},
		Transactions: []models.Transaction{},
		Customers:    []models.Customer{},
		Users: []models.BackupUser{
			{ID: "u1", Name: "Admin User", PIN: "1234", Role: models.RoleAdmin},
		},
		Settings:  &settings,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   models.BackupVersion,
	}
}

func DemoUsers() []models.BackupUser {
	return []models.BackupUser{
		{ID: "u1", Name: "Admin User", PIN: "1234", Role: models.RoleAdmin},
		{ID: "u2", Name: "John Doe", PIN: "0000", Role: models.RoleStaff},
		{ID: "u3", Name: "Jane Smith", PIN: "1111", Role: models.RoleStaff},
	}
}

func DemoProducts() []models.Product {
	return []models.Product{
		{ID: "1", Name: "Vintage Denim Jacket", Category: "Apparel", Price: 89.99, Cost: 45.00, Stock: 12, LowStockThreshold: 5, SKU: "APP-001", Description: "Classic blue denim jacket with brass buttons."},
		{ID: "2", Name: "Cotton Crew Neck Tee", Category: "Apparel", Price: 24.50, Cost: 8.50, Stock: 45, LowStockThreshold: 10, SKU: "APP-002", Description: "Soft cotton t-shirt available in multiple colors."},
		{ID: "3", Name: "Leather Crossbody Bag", Category: "Accessories", Price: 129.00, Cost: 60.00, Stock: 8, LowStockThreshold: 3, SKU: "ACC-003", Description: "Genuine leather bag with adjustable strap."},
		{ID: "4", Name: "Stainless Steel Water Bottle", Category: "Home", Price: 35.00, Cost: 12.00, Stock: 20, LowStockThreshold: 5, SKU: "HOM-004", Description: "Insulated bottle keeps drinks cold for 24 hours."},
		{ID: "5", Name: "Wireless Earbuds", Category: "Electronics", Price: 149.99, Cost: 85.00, Stock: 15, LowStockThreshold: 5, SKU: "ELE-005", Description: "Noise-cancelling earbuds with charging case."},
		{ID: "6", Name: "Ceramic Coffee Mug", Category: "Home", Price: 12.99, Cost: 4.50, Stock: 30, LowStockThreshold: 10, SKU: "HOM-006", Description: "Handcrafted ceramic mug, dishwasher safe."},
		{ID: "7", Name: "Running Shoes", Category: "Footwear", Price: 95.00, Cost: 45.00, Stock: 10, LowStockThreshold: 8, SKU: "FTW-007", Description: "Lightweight running shoes with foam cushioning."},
		{ID: "8", Name: "Wool Scarf", Category: "Accessories", Price: 45.00, Cost: 15.00, Stock: 25, LowStockThreshold: 5, SKU: "ACC-008", Description: "Merino wool scarf, perfect for winter."},
		{ID: "9", Name: "Smart Watch", Category: "Electronics", Price: 299.00, Cost: 180.00, Stock: 5, LowStockThreshold: 2, SKU: "ELE-009", Description: "Fitness tracker and smart watch hybrid."},
		{ID: "10", Name: "Yoga Mat", Category: "Fitness", Price: 29.99, Cost: 12.00, Stock: 18, LowStockThreshold: 5, SKU: "FIT-010", Description: "Non-slip eco-friendly yoga mat."},
	}
}

func DemoCustomers() []models.Customer {
	return []models.Customer{
		{ID: "c1", FirstName: "Alice", LastName: "Johnson", Email: "alice.j@example.com", Phone: "555-0101", LoyaltyPoints: 120, TotalSpent: 450.50, JoinDate: date(2023, 1, 15), Notes: "Prefers eco-friendly products", CreditLimit: 500, CurrentCredit: 0},
		{ID: "c2", FirstName: "Bob", LastName: "Smith", Email: "bob.smith@example.com", Phone: "555-0102", LoyaltyPoints: 45, TotalSpent: 125.00, JoinDate: date(2023, 3, 22), CreditLimit: 200, CurrentCredit: 50},
		{ID: "c3", FirstName: "Carol", LastName: "Davis", Email: "carol.d@example.com", Phone: "555-0103", LoyaltyPoints: 890, TotalSpent: 2350.75, JoinDate: date(2022, 11, 5), Notes: "VIP customer", CreditLimit: 2000, CurrentCredit: 120},
		{ID: "c4", FirstName: "David", LastName: "Wilson", Email: "david.w@example.com", Phone: "555-0104", LoyaltyPoints: 10, TotalSpent: 55.20, JoinDate: date(2023, 6, 10), CreditLimit: 100, CurrentCredit: 0},
		{ID: "c5", FirstName: "Eva", LastName: "Brown", Email: "eva.b@example.com", Phone: "555-0105", LoyaltyPoints: 230, TotalSpent: 890.00, JoinDate: date(2023, 2, 1), CreditLimit: 1000, CurrentCredit: 850},
	}
}

// demoTransactions generates a month of plausible sales history. The RNG is
// fixed-seed so repeated resets produce the same ledger.
func demoTransactions(taxRate float64) []models.Transaction {
	rng := rand.New(rand.NewSource(42))
	products := DemoProducts()
	customers := DemoCustomers()
	now := time.Now().UTC()

	transactions := make([]models.Transaction, 0, demoTransactionCount)

	for i := 0; i < demoTransactionCount; i++ {
		txnDate := now.AddDate(0, 0, -rng.Intn(30))

		itemCount := rng.Intn(3) + 1
		items := make([]models.LineItem, 0, itemCount)

		var subtotal float64

		for j := 0; j < itemCount; j++ {
			p := products[rng.Intn(len(products))]
			qty := rng.Intn(2) + 1

			items = append(items, models.LineItem{
				ProductID: p.ID,
				Name:      p.Name,
				Category:  p.Category,
				SKU:       p.SKU,
				Price:     p.Price,
				Cost:      p.Cost,
				Quantity:  qty,
			})

			subtotal += p.Price * float64(qty)
		}

		txn := models.Transaction{
			ID:            fmt.Sprintf("TXN-%d", 1000+i),
			Type:          models.TransactionTypeSale,
			Date:          txnDate,
			Items:         items,
			Subtotal:      subtotal,
			Tax:           subtotal * taxRate,
			Total:         subtotal * (1 + taxRate),
			PaymentMethod: models.PaymentMethodCash,
			CustomerName:  "Walk-in Customer",
		}

		if rng.Intn(10) > 6 {
			c := customers[rng.Intn(len(customers))]
			txn.CustomerID = c.ID
			txn.CustomerName = c.FullName()
			txn.PaymentMethod = models.PaymentMethodCard
		}

		transactions = append(transactions, txn)
	}

	return transactions
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

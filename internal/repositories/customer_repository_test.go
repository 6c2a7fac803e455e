package repository_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/qikpos/pos-platform/internal/models"
	repository "github.com/qikpos/pos-platform/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customerColumns() []string {
	return []string{"id", "first_name", "last_name", "email", "phone", "notes",
		"loyalty_points", "total_spent", "join_date", "credit_limit", "current_credit",
		"created_at", "updated_at"}
}

func TestCustomerRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewCustomerRepo(db)
	ctx := t.Context()
	now := time.Now()

	t.Run("CreateCustomer", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			customer := &models.Customer{
				ID:          "c1",
				FirstName:   "Alice",
				LastName:    "Johnson",
				Email:       "alice@example.com",
				CreditLimit: 500,
				JoinDate:    now,
			}

			mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO customers`)).
				WithArgs(customer.ID, customer.FirstName, customer.LastName,
					customer.Email, customer.Phone, customer.Notes, customer.LoyaltyPoints,
					customer.TotalSpent, customer.JoinDate, customer.CreditLimit,
					customer.CurrentCredit).
				WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

			// Act
			err := repo.CreateCustomer(ctx, customer)

			// Assert
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("GetCustomerByID", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(`SELECT (.+) FROM customers WHERE id = \$1`).
				WithArgs("c1").
				WillReturnRows(sqlmock.NewRows(customerColumns()).
					AddRow("c1", "Alice", "Johnson", "alice@example.com", "", "",
						45, 420.50, now, 500.0, 120.0, now, now))

			// Act
			customer, err := repo.GetCustomerByID(ctx, "c1")

			// Assert
			require.NoError(t, err)
			assert.Equal(t, "Alice Johnson", customer.FullName())
			assert.InDelta(t, 380.0, customer.AvailableCredit(), 0.0001)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Error - Not Found", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(`SELECT (.+) FROM customers WHERE id = \$1`).
				WithArgs("missing").
				WillReturnRows(sqlmock.NewRows(customerColumns()))

			// Act
			customer, err := repo.GetCustomerByID(ctx, "missing")

			// Assert
			require.ErrorIs(t, err, repository.ErrNotFound)
			assert.Nil(t, customer)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("UpdateCustomer", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			customer := &models.Customer{
				ID: "c1", FirstName: "Alice", LastName: "Johnson",
				Email: "alice@example.com", LoyaltyPoints: 55, TotalSpent: 465.50,
				CreditLimit: 500, CurrentCredit: 165,
			}

			mock.ExpectQuery(regexp.QuoteMeta(`UPDATE customers SET`)).
				WithArgs(customer.FirstName, customer.LastName, customer.Email,
					customer.Phone, customer.Notes, customer.LoyaltyPoints,
					customer.TotalSpent, customer.CreditLimit, customer.CurrentCredit,
					customer.ID).
				WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

			// Act
			err := repo.UpdateCustomer(ctx, customer)

			// Assert
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Error - Not Found", func(t *testing.T) {
			// Arrange
			customer := &models.Customer{ID: "missing", FirstName: "Ghost"}

			mock.ExpectQuery(regexp.QuoteMeta(`UPDATE customers SET`)).
				WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))

			// Act
			err := repo.UpdateCustomer(ctx, customer)

			// Assert
			require.ErrorIs(t, err, repository.ErrNotFound)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("ListCustomers", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(`SELECT (.+) FROM customers ORDER BY created_at DESC`).
				WillReturnRows(sqlmock.NewRows(customerColumns()).
					AddRow("c1", "Alice", "Johnson", "alice@example.com", "", "",
						45, 420.50, now, 500.0, 120.0, now, now).
					AddRow("c2", "Bob", "Smith", "bob@example.com", "", "",
						12, 95.00, now, 200.0, 50.0, now, now))

			// Act
			customers, err := repo.ListCustomers(ctx)

			// Assert
			require.NoError(t, err)
			require.Len(t, customers, 2)
			assert.Equal(t, "Bob", customers[1].FirstName)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})
}

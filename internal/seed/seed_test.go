package seed_test

import (
	"testing"

	"github.com/qikpos/pos-platform/internal/models"
	"github.com/qikpos/pos-platform/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoState(t *testing.T) {
	state := seed.DemoState()

	t.Run("Populates Every Collection", func(t *testing.T) {
		assert.Len(t, state.Products, 10)
		assert.Len(t, state.Customers, 5)
		assert.Len(t, state.Users, 3)
		assert.Len(t, state.Transactions, 50)
		require.NotNil(t, state.Settings)
		assert.Equal(t, models.BackupVersion, state.Version)
		assert.NotEmpty(t, state.Timestamp)
	})

	t.Run("Includes An Admin Account", func(t *testing.T) {
		var admins int

		for _, u := range state.Users {
			if u.Role == models.RoleAdmin {
				admins++
			}
		}

		assert.GreaterOrEqual(t, admins, 1)
	})

	t.Run("Transaction Totals Are Consistent", func(t *testing.T) {
		for _, txn := range state.Transactions {
			assert.Equal(t, models.TransactionTypeSale, txn.Type)
			assert.NotEmpty(t, txn.Items)

			var subtotal float64
			for _, item := range txn.Items {
				subtotal += item.LineTotal()
			}

			assert.InDelta(t, subtotal, txn.Subtotal, 0.0001)
			assert.InDelta(t, subtotal*state.Settings.TaxRate, txn.Tax, 0.0001)
			assert.InDelta(t, txn.Subtotal+txn.Tax, txn.Total, 0.0001)
		}
	})

	t.Run("History Is Deterministic", func(t *testing.T) {
		again := seed.DemoState()

		require.Len(t, again.Transactions, len(state.Transactions))

		for i, txn := range state.Transactions {
			assert.Equal(t, txn.ID, again.Transactions[i].ID)
			assert.Equal(t, txn.Items, again.Transactions[i].Items)
			assert.InDelta(t, txn.Total, again.Transactions[i].Total, 0.0001)
		}
	})
}

func TestEmptyState(t *testing.T) {
	state := seed.EmptyState()

	assert.Empty(t, state.Products)
	assert.Empty(t, state.Transactions)
	assert.Empty(t, state.Customers)

	require.Len(t, state.Users, 1)
	assert.Equal(t, "u1", state.Users[0].ID)
	assert.Equal(t, "1234", state.Users[0].PIN)
	assert.Equal(t, models.RoleAdmin, state.Users[0].Role)

	require.NotNil(t, state.Settings)
	assert.Equal(t, models.DefaultStoreSettings(), *state.Settings)
	assert.Equal(t, models.BackupVersion, state.Version)
}

package receipt_test

import (
	"testing"
	"time"

	"github.com/qikpos/pos-platform/internal/models"
	"github.com/qikpos/pos-platform/internal/receipt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saleTxn() *models.Transaction {
	return &models.Transaction{
		ID:   "TXN-123456",
		Type: models.TransactionTypeSale,
		Date: time.Date(2024, 5, 17, 14, 30, 0, 0, time.UTC),
		Items: []models.LineItem{
			{ProductID: "p1", Name: "Yoga Mat", Price: 29.99, Quantity: 2},
			{ProductID: "p2", Name: "Wool Scarf", Price: 45.00, Quantity: 1},
		},
		Subtotal:      104.98,
		Tax:           8.40,
		Total:         113.38,
		PaymentMethod: models.PaymentMethodCash,
		CustomerName:  "Walk-in",
	}
}

func paymentTxn() *models.Transaction {
	return &models.Transaction{
		ID:            "PAY-1715954400000",
		Type:          models.TransactionTypePayment,
		Date:          time.Date(2024, 5, 17, 15, 0, 0, 0, time.UTC),
		Total:         20.00,
		PaymentMethod: models.PaymentMethodCash,
		CustomerName:  "Eva Brown",
	}
}

func TestRenderHTML(t *testing.T) {
	renderer := receipt.NewRenderer()
	settings := models.DefaultStoreSettings()
	settings.ReceiptHeader = "Welcome!"
	settings.ReceiptFooter = "See you soon"

	t.Run("Success - Sale Receipt", func(t *testing.T) {
		// Act
		html, err := renderer.RenderHTML(saleTxn(), &settings)

		// Assert
		require.NoError(t, err)
		assert.Contains(t, html, settings.StoreName)
		assert.Contains(t, html, "TXN-123456")
		assert.Contains(t, html, "Welcome!")
		assert.Contains(t, html, "See you soon")
		assert.Contains(t, html, "Yoga Mat")
		assert.Contains(t, html, settings.CurrencySymbol+"59.98")
		assert.Contains(t, html, settings.CurrencySymbol+"113.38")
		assert.Contains(t, html, "2024-05-17 14:30")
		assert.Contains(t, html, "Walk-in")
	})

	t.Run("Success - Payment Receipt Omits Line Items", func(t *testing.T) {
		// Act
		html, err := renderer.RenderHTML(paymentTxn(), &settings)

		// Assert
		require.NoError(t, err)
		assert.Contains(t, html, "Debt Payment")
		assert.Contains(t, html, settings.CurrencySymbol+"20.00")
		assert.Contains(t, html, "Eva Brown")
		assert.NotContains(t, html, "Subtotal")
		assert.NotContains(t, html, "<th>Item</th>")
	})

	t.Run("Success - Optional Fields Hidden When Blank", func(t *testing.T) {
		// Arrange
		bare := models.DefaultStoreSettings()
		bare.Address = ""
		bare.Phone = ""
		bare.ReceiptHeader = ""
		bare.ReceiptFooter = ""

		txn := saleTxn()
		txn.CustomerName = ""

		// Act
		html, err := renderer.RenderHTML(txn, &bare)

		// Assert
		require.NoError(t, err)
		assert.NotContains(t, html, "Customer:")
		assert.NotContains(t, html, "Accra")
	})

	t.Run("Success - HTML In Settings Is Escaped", func(t *testing.T) {
		// Arrange
		hostile := models.DefaultStoreSettings()
		hostile.StoreName = `<script>alert("x")</script>`

		// Act
		html, err := renderer.RenderHTML(saleTxn(), &hostile)

		// Assert
		require.NoError(t, err)
		assert.NotContains(t, html, "<script>")
	})
}

func TestRenderPlain(t *testing.T) {
	renderer := receipt.NewRenderer()
	settings := models.DefaultStoreSettings()

	t.Run("Success - Sale Receipt", func(t *testing.T) {
		// Act
		plain := renderer.RenderPlain(saleTxn(), &settings)

		// Assert
		assert.Contains(t, plain, settings.StoreName)
		assert.Contains(t, plain, "Receipt: TXN-123456")
		assert.Contains(t, plain, "2x Yoga Mat")
		assert.Contains(t, plain, "1x Wool Scarf")
		assert.Contains(t, plain, "Subtotal: "+settings.CurrencySymbol+"104.98")
		assert.Contains(t, plain, "Total: "+settings.CurrencySymbol+"113.38")
	})

	t.Run("Success - Payment Receipt", func(t *testing.T) {
		// Act
		plain := renderer.RenderPlain(paymentTxn(), &settings)

		// Assert
		assert.Contains(t, plain, "Debt Payment")
		assert.Contains(t, plain, "Amount Paid: "+settings.CurrencySymbol+"20.00")
		assert.NotContains(t, plain, "Subtotal")
	})
}

// Package receipt renders ledger entries into printable and mailable
// receipts.
package receipt

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/qikpos/pos-platform/internal/models"
)

const receiptTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Receipt {{.Txn.ID}}</title></head>
<body style="font-family: monospace; max-width: 380px; margin: 0 auto;">
  <div style="text-align: center;">
    <h2 style="margin-bottom: 0;">{{.Settings.StoreName}}</h2>
    {{if .Settings.Address}}<p style="margin: 2px;">{{.Settings.Address}}</p>{{end}}
    {{if .Settings.Phone}}<p style="margin: 2px;">{{.Settings.Phone}}</p>{{end}}
    {{if .Settings.ReceiptHeader}}<p style="margin: 8px 2px;">{{.Settings.ReceiptHeader}}</p>{{end}}
  </div>
  <hr>
  <p>
    Receipt: {{.Txn.ID}}<br>
    Date: {{.Txn.Date.Format "2006-01-02 15:04"}}<br>
    {{if .Txn.CustomerName}}Customer: {{.Txn.CustomerName}}<br>{{end}}
    Payment: {{.Txn.PaymentMethod}}
  </p>
  {{if .IsPayment}}
  <hr>
  <p><strong>Debt Payment</strong></p>
  <p>Amount Paid: {{.Currency}}{{printf "%.2f" .Txn.Total}}</p>
  {{else}}
  <table style="width: 100%; border-collapse: collapse;">
    <thead>
      <tr style="text-align: left; border-bottom: 1px solid #000;">
        <th>Item</th><th>Qty</th><th style="text-align: right;">Amount</th>
      </tr>
    </thead>
    <tbody>
      {{range .Txn.Items}}
      <tr>
        <td>{{.Name}}</td>
        <td>{{.Quantity}}</td>
        <td style="text-align: right;">{{$.Currency}}{{printf "%.2f" .LineTotal}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>
  <hr>
  <p style="text-align: right;">
    Subtotal: {{.Currency}}{{printf "%.2f" .Txn.Subtotal}}<br>
    Tax: {{.Currency}}{{printf "%.2f" .Txn.Tax}}<br>
    <strong>Total: {{.Currency}}{{printf "%.2f" .Txn.Total}}</strong>
  </p>
  {{end}}
  <hr>
  <div style="text-align: center;">
    {{if .Settings.ReceiptFooter}}<p>{{.Settings.ReceiptFooter}}</p>{{end}}
    <p>Thank you for shopping with us!</p>
  </div>
</body>
</html>
`

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{
		tmpl: template.Must(template.New("receipt").Parse(receiptTemplate)),
	}
}

type receiptData struct {
	Txn       *models.Transaction
	Settings  *models.StoreSettings
	Currency  string
	IsPayment bool
}

// RenderHTML produces the printable receipt for a ledger entry.
func (r *Renderer) RenderHTML(txn *models.Transaction, settings *models.StoreSettings) (string, error) {
	var buf strings.Builder

	data := receiptData{
		Txn:       txn,
		Settings:  settings,
		Currency:  settings.CurrencySymbol,
		IsPayment: txn.Type == models.TransactionTypePayment,
	}

	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render receipt: %w", err)
	}

	return buf.String(), nil
}

// RenderPlain is the text alternative that accompanies emailed receipts.
func (r *Renderer) RenderPlain(txn *models.Transaction, settings *models.StoreSettings) string {
	var b strings.Builder

	cur := settings.CurrencySymbol

	fmt.Fprintf(&b, "%s\n", settings.StoreName)

	if settings.Address != "" {
		fmt.Fprintf(&b, "%s\n", settings.Address)
	}

	fmt.Fprintf(&b, "\nReceipt: %s\nDate: %s\n", txn.ID, txn.Date.Format("2006-01-02 15:04"))

	if txn.CustomerName != "" {
		fmt.Fprintf(&b, "Customer: %s\n", txn.CustomerName)
	}

	fmt.Fprintf(&b, "Payment: %s\n\n", txn.PaymentMethod)

	if txn.Type == models.TransactionTypePayment {
		fmt.Fprintf(&b, "Debt Payment\nAmount Paid: %s%.2f\n", cur, txn.Total)

		return b.String()
	}

	for _, item := range txn.Items {
		fmt.Fprintf(&b, "%dx %s  %s%.2f\n", item.Quantity, item.Name, cur, item.LineTotal())
	}

	fmt.Fprintf(&b, "\nSubtotal: %s%.2f\nTax: %s%.2f\nTotal: %s%.2f\n",
		cur, txn.Subtotal, cur, txn.Tax, cur, txn.Total)

	return b.String()
}

package models

import "time"

type TransactionType string

const (
	TransactionTypeSale    TransactionType = "SALE"
	TransactionTypePayment TransactionType = "PAYMENT"
)

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "Cash"
	PaymentMethodCard   PaymentMethod = "Card"
	PaymentMethodOnline PaymentMethod = "Online"
	PaymentMethodCredit PaymentMethod = "Credit"
)

// ValidPaymentMethod reports whether m is one of the four accepted tenders.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodOnline, PaymentMethodCredit:
		return true
	}

	return false
}

// LineItem is a snapshot of a product at the moment of sale plus the quantity
// sold. It is a copy, not a reference: later product edits never alter a
// recorded transaction.
type LineItem struct {
	ProductID string  `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	SKU       string  `json:"sku"`
	Price     float64 `json:"price"`
	Cost      float64 `json:"cost"`
	Quantity  int     `json:"quantity"`
}

// LineTotal is the extended price of the line.
func (li LineItem) LineTotal() float64 {
	return li.Price * float64(li.Quantity)
}

// Transaction is one entry in the append-only ledger. Records are never
// updated or deleted after creation.
type Transaction struct {
	ID            string          `json:"id"`
	Type          TransactionType `json:"type"`
	Date          time.Time       `json:"date"`
	Items         []LineItem      `json:"items"`
	Subtotal      float64         `json:"subtotal"`
	Tax           float64         `json:"tax"`
	Total         float64         `json:"total"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	CustomerID    string          `json:"customerId,omitempty"`
	CustomerName  string          `json:"customerName,omitempty"`
}

type CartLine struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type CompleteSaleRequest struct {
	Items         []CartLine    `json:"items" validate:"required,min=1,dive"`
	PaymentMethod PaymentMethod `json:"paymentMethod" validate:"required,oneof=Cash Card Online Credit"`
	CustomerID    string        `json:"customerId,omitempty"`
}

type EmailReceiptRequest struct {
	To string `json:"to" validate:"required,email"`
}

type SalesSummary struct {
	TotalRevenue float64      `json:"totalRevenue"`
	TotalOrders  int          `json:"totalOrders"`
	DailySales   []DailySales `json:"dailySales"`
	TopProducts  []TopProduct `json:"topProducts"`
}

type DailySales struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

type TopProduct struct {
	Name string `json:"name"`
	Sold int    `json:"sold"`
}

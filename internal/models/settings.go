package models

// StoreSettings is the singleton configuration record for the deployment.
// It is created with defaults and replaced wholesale on save.
type StoreSettings struct {
	StoreName      string  `json:"storeName" validate:"required,min=1,max=200"`
	CurrencySymbol string  `json:"currencySymbol" validate:"required,max=8"`
	TaxRate        float64 `json:"taxRate" validate:"gte=0,lt=1"`
	Address        string  `json:"address,omitempty"`
	Phone          string  `json:"phone,omitempty"`
	ReceiptHeader  string  `json:"receiptHeader,omitempty"`
	ReceiptFooter  string  `json:"receiptFooter,omitempty"`
}

// DefaultStoreSettings is what a fresh or factory-reset deployment starts with.
func DefaultStoreSettings() StoreSettings {
	return StoreSettings{
		StoreName:      "QikPOS AI",
		CurrencySymbol: "GH₵",
		TaxRate:        0.08,
		Address:        "123 Main Street, Accra, Ghana",
		Phone:          "+233 55 123 4567",
	}
}

package models

import "time"

type Product struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Category          string    `json:"category"`
	SKU               string    `json:"sku"`
	Price             float64   `json:"price"`
	Cost              float64   `json:"cost"`
	Stock             int       `json:"stock"`
	LowStockThreshold int       `json:"lowStockThreshold"`
	Description       string    `json:"description,omitempty"`
	ImageURL          string    `json:"image,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// IsLowStock reports whether the product should raise a restock alert.
func (p *Product) IsLowStock() bool {
	threshold := p.LowStockThreshold
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}

	return p.Stock <= threshold
}

// Margin returns the gross margin percentage derived from price and cost.
func (p *Product) Margin() float64 {
	if p.Price <= 0 {
		return 0
	}

	return (p.Price - p.Cost) / p.Price * 100
}

const DefaultLowStockThreshold = 5

type CreateProductRequest struct {
	Name              string  `json:"name" validate:"required,min=2,max=200"`
	Category          string  `json:"category,omitempty"`
	SKU               string  `json:"sku,omitempty" validate:"omitempty,max=50"`
	Price             float64 `json:"price" validate:"required,gt=0"`
	Cost              float64 `json:"cost,omitempty" validate:"omitempty,gte=0"`
	Stock             int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
	LowStockThreshold int     `json:"lowStockThreshold,omitempty" validate:"omitempty,gte=0"`
	Description       string  `json:"description,omitempty"`
	ImageURL          string  `json:"image,omitempty"`
}

type UpdateProductRequest struct {
	Name              *string  `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Category          *string  `json:"category,omitempty"`
	SKU               *string  `json:"sku,omitempty" validate:"omitempty,max=50"`
	Price             *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Cost              *float64 `json:"cost,omitempty" validate:"omitempty,gte=0"`
	Stock             *int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
	LowStockThreshold *int     `json:"lowStockThreshold,omitempty" validate:"omitempty,gte=0"`
	Description       *string  `json:"description,omitempty"`
	ImageURL          *string  `json:"image,omitempty"`
}

// ProductSuggestion is what the AI assistant proposes for a new product.
type ProductSuggestion struct {
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	SKU         string  `json:"sku"`
	Description string  `json:"description"`
}

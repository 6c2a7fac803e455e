package models

import "time"

type Customer struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Notes         string    `json:"notes,omitempty"`
	LoyaltyPoints int       `json:"loyaltyPoints"`
	TotalSpent    float64   `json:"totalSpent"`
	JoinDate      time.Time `json:"joinDate"`
	CreditLimit   float64   `json:"creditLimit"`
	CurrentCredit float64   `json:"currentCredit"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FullName is the display-name snapshot recorded on transactions.
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// AvailableCredit is how much more the customer may buy on credit.
func (c *Customer) AvailableCredit() float64 {
	return c.CreditLimit - c.CurrentCredit
}

type CreateCustomerRequest struct {
	FirstName   string  `json:"firstName" validate:"required,min=1,max=100"`
	LastName    string  `json:"lastName" validate:"required,min=1,max=100"`
	Email       string  `json:"email" validate:"required,email"`
	Phone       string  `json:"phone,omitempty"`
	Notes       string  `json:"notes,omitempty"`
	CreditLimit float64 `json:"creditLimit,omitempty" validate:"omitempty,gte=0"`
}

type UpdateCustomerRequest struct {
	FirstName   *string  `json:"firstName,omitempty" validate:"omitempty,min=1,max=100"`
	LastName    *string  `json:"lastName,omitempty" validate:"omitempty,min=1,max=100"`
	Email       *string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone       *string  `json:"phone,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
	CreditLimit *float64 `json:"creditLimit,omitempty" validate:"omitempty,gte=0"`
}

type DebtPaymentRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

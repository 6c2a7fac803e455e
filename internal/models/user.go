package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleStaff UserRole = "STAFF"
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required"`
	PIN       string    `json:"-"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateUserRequest struct {
	Name string   `json:"name" validate:"required,min=1,max=100"`
	PIN  string   `json:"pin" validate:"required,numeric,min=4,max=6"`
	Role UserRole `json:"role" validate:"required,oneof=ADMIN STAFF"`
}

type UpdateUserRequest struct {
	Name *string   `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	PIN  *string   `json:"pin,omitempty" validate:"omitempty,numeric,min=4,max=6"`
	Role *UserRole `json:"role,omitempty" validate:"omitempty,oneof=ADMIN STAFF"`
}

type LoginRequest struct {
	UserID string `json:"userId" validate:"required"`
	PIN    string `json:"pin" validate:"required"`
}

type LoginResponse struct {
	Success    bool   `json:"success"`
	Token      string `json:"token,omitempty"`
	ExpiresIn  int    `json:"expires_in,omitempty"`
	User       *User  `json:"user,omitempty"`
	RetryAfter int    `json:"retry_after,omitempty"`
	Message    string `json:"message,omitempty"`
}

// Claims is the JWT payload issued after a successful PIN login.
type Claims struct {
	UserID string   `json:"user_id"`
	Name   string   `json:"name"`
	Role   UserRole `json:"role"`
	jwt.RegisteredClaims
}

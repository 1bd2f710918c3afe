package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterRequest entrada para registro (auth).
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"omitempty,max=200"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ProfileDTO perfil financiero usado para generar presupuestos.
type ProfileDTO struct {
	MonthlyIncome decimal.Decimal `json:"monthly_income"`
	City          string          `json:"city"`
	FamilySize    int             `json:"family_size"`
	Age           int             `json:"age"`
}

// UpdateProfileRequest actualización parcial del perfil.
type UpdateProfileRequest struct {
	Name          *string          `json:"name"`
	MonthlyIncome *decimal.Decimal `json:"monthly_income"`
	City          *string          `json:"city"`
	FamilySize    *int             `json:"family_size"`
	Age           *int             `json:"age"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	Role          string     `json:"role"`
	Status        string     `json:"status"`
	EmailVerified bool       `json:"email_verified"`
	Profile       ProfileDTO `json:"profile"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios (admin).
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// SetStatusRequest cambio de estado de un usuario (admin).
type SetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active suspended"`
}

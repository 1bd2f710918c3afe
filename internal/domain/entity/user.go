package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Roles válidos para User.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Estados de User.
const (
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)

// User representa un usuario con su perfil financiero.
type User struct {
	ID            string
	Email         string
	PasswordHash  string // bcrypt hash, nunca plano en dominio después de persistir
	Name          string
	Role          string // user, admin
	Status        string // active, suspended
	EmailVerified bool

	// Perfil financiero (entrada del motor de presupuesto)
	MonthlyIncome decimal.Decimal
	City          string
	FamilySize    int
	Age           int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasProfile informa si el perfil tiene los datos mínimos para generar un presupuesto.
func (u *User) HasProfile() bool {
	return u.MonthlyIncome.IsPositive() && u.FamilySize > 0 && u.Age > 0
}

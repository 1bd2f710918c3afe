package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense gasto registrado por el usuario.
type Expense struct {
	ID          string
	UserID      string
	Amount      decimal.Decimal
	Category    string
	Description string
	SpentAt     time.Time
	CreatedAt   time.Time
}

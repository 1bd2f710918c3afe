package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CategorySpend total gastado en una categoría durante un período.
type CategorySpend struct {
	Category string
	Total    decimal.Decimal
	Count    int
}

// SpendingRepository consultas de solo lectura sobre gastos.
type SpendingRepository interface {
	// SumByCategory agrupa los gastos del período [from, to) por categoría.
	SumByCategory(ctx context.Context, userID string, from, to time.Time) ([]CategorySpend, error)
	// SumForCategory total del período [from, to) para una sola categoría.
	SumForCategory(ctx context.Context, userID, category string, from, to time.Time) (decimal.Decimal, error)
}

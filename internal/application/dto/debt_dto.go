package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDebtRequest entrada para registrar una deuda.
type CreateDebtRequest struct {
	Name               string          `json:"name" validate:"required,max=200"`
	Principal          decimal.Decimal `json:"principal" validate:"required"`
	AnnualInterestRate decimal.Decimal `json:"annual_interest_rate"`
	MinimumPayment     decimal.Decimal `json:"minimum_payment" validate:"required"`
}

// DebtResponse salida de una deuda.
type DebtResponse struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	Principal             decimal.Decimal `json:"principal"`
	Balance               decimal.Decimal `json:"balance"`
	AnnualInterestRate    decimal.Decimal `json:"annual_interest_rate"`
	MinimumPayment        decimal.Decimal `json:"minimum_payment"`
	EstimatedPayoffMonths int             `json:"estimated_payoff_months"` // -1 = el mínimo no cubre intereses
	Status                string          `json:"status"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateGoalRequest entrada para crear una meta de ahorro.
type CreateGoalRequest struct {
	Name         string          `json:"name" validate:"required,max=200"`
	TargetAmount decimal.Decimal `json:"target_amount" validate:"required"`
	Deadline     *time.Time      `json:"deadline"`
}

// AmountRequest aporte o pago.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

// GoalResponse salida de una meta.
type GoalResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	SavedAmount  decimal.Decimal `json:"saved_amount"`
	Progress     float64         `json:"progress"`
	Deadline     *time.Time      `json:"deadline,omitempty"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

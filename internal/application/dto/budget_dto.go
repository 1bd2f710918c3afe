package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// GenerateBudgetRequest entrada de POST /api/budgets/generate.
// Los campos del perfil son opcionales: si faltan se usan los del perfil guardado.
type GenerateBudgetRequest struct {
	Month         string           `json:"month"` // YYYY-MM, por defecto el mes actual
	MonthlyIncome *decimal.Decimal `json:"monthly_income"`
	City          *string          `json:"city"`
	FamilySize    *int             `json:"family_size"`
	Age           *int             `json:"age"`
	IncludeAdvice bool             `json:"include_advice"`
}

// CustomizeBudgetRequest montos por categoría que reemplazan los calculados.
type CustomizeBudgetRequest struct {
	Items map[string]decimal.Decimal `json:"items"`
}

// BudgetItemDTO asignación de una categoría.
type BudgetItemDTO struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage float64         `json:"percentage"`
}

// BudgetResponse presupuesto mensual.
type BudgetResponse struct {
	ID                string          `json:"id"`
	Month             string          `json:"month"`
	Profile           ProfileDTO      `json:"profile"`
	Items             []BudgetItemDTO `json:"items"`
	TotalBudget       decimal.Decimal `json:"total_budget"`
	SavingsAmount     decimal.Decimal `json:"savings_amount"`
	SavingsPercentage float64         `json:"savings_percentage"`
	Customized        bool            `json:"customized"`
	Advice            string          `json:"advice,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// CategoryDTO categoría de la tabla base.
type CategoryDTO struct {
	ID             string  `json:"id"`
	BasePercentage float64 `json:"base_percentage"`
	Description    string  `json:"description"`
}

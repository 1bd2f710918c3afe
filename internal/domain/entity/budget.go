package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetItem monto asignado a una categoría dentro de un presupuesto mensual.
type BudgetItem struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage float64         `json:"percentage"`
}

// Budget presupuesto mensual de un usuario. Documento desnormalizado: se
// sobrescribe al regenerar o personalizar; no hay historial de versiones.
type Budget struct {
	ID                string
	UserID            string
	Month             string // YYYY-MM
	MonthlyIncome     decimal.Decimal
	City              string
	FamilySize        int
	Age               int
	Items             []BudgetItem
	TotalBudget       decimal.Decimal
	SavingsAmount     decimal.Decimal
	SavingsPercentage float64
	Customized        bool
	Advice            string // consejos generados por IA (opcional)
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Item devuelve la asignación de una categoría.
func (b *Budget) Item(category string) (BudgetItem, bool) {
	for _, it := range b.Items {
		if it.Category == category {
			return it, true
		}
	}
	return BudgetItem{}, false
}

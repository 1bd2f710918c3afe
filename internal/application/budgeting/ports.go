package budgeting

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/finanzas-api/internal/domain/entity"
)

// ReportLine fila del reporte: asignado vs gastado de una categoría.
type ReportLine struct {
	Category   string
	Allocated  decimal.Decimal
	Spent      decimal.Decimal
	Percentage float64
}

// Remaining saldo de la categoría (negativo si se excedió).
func (l ReportLine) Remaining() decimal.Decimal {
	return l.Allocated.Sub(l.Spent)
}

// BudgetReport datos que necesita el generador de PDF.
type BudgetReport struct {
	UserName   string
	Email      string
	Budget     *entity.Budget
	Lines      []ReportLine
	TotalSpent decimal.Decimal
}

// ReportGenerator genera el PDF del presupuesto mensual.
type ReportGenerator interface {
	GenerateBudgetReport(ctx context.Context, report *BudgetReport) ([]byte, error)
}

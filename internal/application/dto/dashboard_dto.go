package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	Month      string `json:"month"`
	MonthLabel string `json:"month_label"` // ej: "Octubre 2026"
	HasBudget  bool   `json:"has_budget"`

	TotalBudget decimal.Decimal `json:"total_budget"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
	Remaining   decimal.Decimal `json:"remaining"`

	// Una fila por categoría del presupuesto, más las categorías con gasto sin asignación.
	Categories []CategoryStatusDTO `json:"categories"`

	Goals               []GoalProgressDTO `json:"goals"`
	OutstandingDebt     decimal.Decimal   `json:"outstanding_debt"`
	UnreadNotifications int               `json:"unread_notifications"`
}

// CategoryStatusDTO asignado vs gastado de una categoría.
type CategoryStatusDTO struct {
	Category  string          `json:"category"`
	Allocated decimal.Decimal `json:"allocated"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
	UsedPct   float64         `json:"used_pct"` // spent / allocated; 0 si no hay asignación
}

// GoalProgressDTO resumen de una meta para el dashboard.
type GoalProgressDTO struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Progress float64 `json:"progress"`
	Status   string  `json:"status"`
}

package dto

import "github.com/shopspring/decimal"

// SpendingReportRequest parámetros de GET /api/analytics/spending.
type SpendingReportRequest struct {
	StartDate string `query:"start_date"` // YYYY-MM-DD, por defecto inicio del mes actual
	EndDate   string `query:"end_date"`   // YYYY-MM-DD inclusive, por defecto hoy
}

// PeriodDTO rango de fechas del reporte.
type PeriodDTO struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// SpendingReportDTO gasto por categoría en el período, comparado con el período anterior
// de igual duración.
type SpendingReportDTO struct {
	Period         PeriodDTO          `json:"period"`
	PreviousPeriod PeriodDTO          `json:"previous_period"`
	TotalSpent     decimal.Decimal    `json:"total_spent"`
	PreviousTotal  decimal.Decimal    `json:"previous_total"`
	ChangePct      decimal.Decimal    `json:"change_pct"` // 0 si no hubo gasto en el período anterior
	Categories     []CategorySpendDTO `json:"categories"`
	// TopCategories categorías que concentran ~80 % del gasto (Pareto).
	TopCategories []string `json:"top_categories"`
}

// CategorySpendDTO fila del ranking de categorías por gasto.
type CategorySpendDTO struct {
	Rank          int             `json:"rank"`
	Category      string          `json:"category"`
	Spent         decimal.Decimal `json:"spent"`
	Count         int             `json:"count"`
	SharePct      decimal.Decimal `json:"share_pct"`
	CumulativePct decimal.Decimal `json:"cumulative_pct"`
	PreviousSpent decimal.Decimal `json:"previous_spent"`
	ChangePct     decimal.Decimal `json:"change_pct"`
	IsTopPareto   bool            `json:"is_top_pareto"`
}

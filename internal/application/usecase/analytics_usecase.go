package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/finanzas-api/internal/application/dto"
	"github.com/jhoicas/finanzas-api/internal/domain"
	"github.com/jhoicas/finanzas-api/internal/domain/repository"
)

const paretoThreshold = 80 // Principio de Pareto: pocas categorías concentran el 80% del gasto

var (
	hundred  = decimal.NewFromInt(100)
	pareto80 = decimal.NewFromInt(paretoThreshold)
)

// AnalyticsUseCase reporte de gasto por categoría:
//   - Participación de cada categoría en el total.
//   - Ranking por gasto descendente con acumulado (curva Pareto).
//   - Variación contra el período anterior de igual duración.
type AnalyticsUseCase struct {
	spendingRepo repository.SpendingRepository
	now          func() time.Time
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(spendingRepo repository.SpendingRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{spendingRepo: spendingRepo, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *AnalyticsUseCase) WithClock(now func() time.Time) *AnalyticsUseCase {
	uc.now = now
	return uc
}

// GetSpendingReport genera el reporte del período.
func (uc *AnalyticsUseCase) GetSpendingReport(
	ctx context.Context,
	userID string,
	req dto.SpendingReportRequest,
) (*dto.SpendingReportDTO, error) {
	start, end, err := parsePeriod(uc.now(), req.StartDate, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	length := end.Sub(start)
	prevStart, prevEnd := start.Add(-length), start

	// 1) Consultar período actual y anterior en paralelo (llamadas independientes)
	type result struct {
		rows []repository.CategorySpend
		err  error
	}
	curChan := make(chan result, 1)
	prevChan := make(chan result, 1)

	go func() {
		rows, err := uc.spendingRepo.SumByCategory(ctx, userID, start, end)
		curChan <- result{rows, err}
	}()
	go func() {
		rows, err := uc.spendingRepo.SumByCategory(ctx, userID, prevStart, prevEnd)
		prevChan <- result{rows, err}
	}()

	cur := <-curChan
	prev := <-prevChan
	if cur.err != nil {
		return nil, fmt.Errorf("analytics: período actual: %w", cur.err)
	}
	if prev.err != nil {
		return nil, fmt.Errorf("analytics: período anterior: %w", prev.err)
	}

	// 2) Ranking con análisis Pareto
	ranking := buildCategoryRanking(cur.rows, prev.rows)

	totalSpent := decimal.Zero
	for _, r := range cur.rows {
		totalSpent = totalSpent.Add(r.Total)
	}
	previousTotal := decimal.Zero
	for _, r := range prev.rows {
		previousTotal = previousTotal.Add(r.Total)
	}

	top := make([]string, 0)
	for _, c := range ranking {
		if c.IsTopPareto {
			top = append(top, c.Category)
		}
	}

	// end es exclusivo; el reporte muestra el último día incluido.
	return &dto.SpendingReportDTO{
		Period:         dto.PeriodDTO{StartDate: start.Format("2006-01-02"), EndDate: end.Add(-time.Nanosecond).Format("2006-01-02")},
		PreviousPeriod: dto.PeriodDTO{StartDate: prevStart.Format("2006-01-02"), EndDate: prevEnd.Add(-time.Nanosecond).Format("2006-01-02")},
		TotalSpent:     totalSpent.Round(2),
		PreviousTotal:  previousTotal.Round(2),
		ChangePct:      changePct(previousTotal, totalSpent),
		Categories:     ranking,
		TopCategories:  top,
	}, nil
}

// buildCategoryRanking ordena por gasto descendente (empate: nombre) y marca las categorías
// dentro del primer 80 % acumulado. La primera categoría siempre es Pareto.
func buildCategoryRanking(current, previous []repository.CategorySpend) []dto.CategorySpendDTO {
	if len(current) == 0 {
		return []dto.CategorySpendDTO{}
	}
	rows := append([]repository.CategorySpend(nil), current...)
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Total.Equal(rows[j].Total) {
			return rows[i].Total.GreaterThan(rows[j].Total)
		}
		return rows[i].Category < rows[j].Category
	})

	prevByCat := make(map[string]decimal.Decimal, len(previous))
	for _, p := range previous {
		prevByCat[p.Category] = p.Total
	}

	var total decimal.Decimal
	for _, r := range rows {
		total = total.Add(r.Total)
	}

	ranking := make([]dto.CategorySpendDTO, 0, len(rows))
	var cumulative decimal.Decimal
	for i, r := range rows {
		share := decimal.Zero
		if total.IsPositive() {
			share = r.Total.Div(total).Mul(hundred).Round(2)
		}
		// El acumulado antes de sumar la categoría decide: se incluye la que cruza el umbral.
		isPareto := i == 0 || cumulative.LessThan(pareto80)
		cumulative = cumulative.Add(share)

		prev := prevByCat[r.Category]
		ranking = append(ranking, dto.CategorySpendDTO{
			Rank:          i + 1,
			Category:      r.Category,
			Spent:         r.Total.Round(2),
			Count:         r.Count,
			SharePct:      share,
			CumulativePct: cumulative.Round(2),
			PreviousSpent: prev.Round(2),
			ChangePct:     changePct(prev, r.Total),
			IsTopPareto:   isPareto,
		})
	}
	return ranking
}

// changePct variación porcentual; 0 si no hay base.
func changePct(before, after decimal.Decimal) decimal.Decimal {
	if !before.IsPositive() {
		return decimal.Zero
	}
	return after.Sub(before).Div(before).Mul(hundred).Round(2)
}

// parsePeriod convierte los strings de fecha en [start, end); aplica valores por defecto si están vacíos.
func parsePeriod(now time.Time, startStr, endStr string) (start, end time.Time, err error) {
	now = now.UTC()
	if endStr == "" {
		end = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	} else {
		end, err = time.Parse("2006-01-02", endStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("end_date inválido: %w", err)
		}
		end = end.AddDate(0, 0, 1) // inclusive hasta el final del día
	}

	if startStr == "" {
		// Primer día del mes actual
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	} else {
		start, err = time.Parse("2006-01-02", startStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("start_date inválido: %w", err)
		}
	}

	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date no puede ser posterior a end_date")
	}
	return start, end, nil
}

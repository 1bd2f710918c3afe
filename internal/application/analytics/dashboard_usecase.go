// Package analytics contiene el resumen mensual del Dashboard financiero personal.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/finanzas-api/internal/application/dto"
	"github.com/jhoicas/finanzas-api/internal/domain"
	"github.com/jhoicas/finanzas-api/internal/domain/budget"
	"github.com/jhoicas/finanzas-api/internal/domain/entity"
	"github.com/jhoicas/finanzas-api/internal/domain/repository"
)

const unreadLimit = 100 // tope del contador de no leídas en el widget

// DashboardUseCase genera el resumen del mes: presupuesto vs gasto, metas, deuda
// pendiente y notificaciones sin leer.
//
// Solo lectura: delega todas las consultas en los repositorios.
type DashboardUseCase struct {
	budgets       repository.BudgetRepository
	spending      repository.SpendingRepository
	goals         repository.GoalRepository
	debts         repository.DebtRepository
	notifications repository.NotificationRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	budgets repository.BudgetRepository,
	spending repository.SpendingRepository,
	goals repository.GoalRepository,
	debts repository.DebtRepository,
	notifications repository.NotificationRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		budgets:       budgets,
		spending:      spending,
		goals:         goals,
		debts:         debts,
		notifications: notifications,
		now:           time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary construye el DashboardSummaryDTO del mes indicado (vacío = mes actual).
//
// Cinco llamadas en paralelo:
//  1. GetByMonth          → asignaciones
//  2. SumByCategory(mes)  → gasto por categoría
//  3. Goals ListByUser    → progreso de metas
//  4. Debts ListByUser    → deuda pendiente
//  5. Notifications       → no leídas
func (uc *DashboardUseCase) GetSummary(ctx context.Context, userID, month string) (*dto.DashboardSummaryDTO, error) {
	if month == "" {
		month = budget.MonthOf(uc.now().UTC())
	}
	from, to, err := budget.MonthRange(month)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	// ── Goroutines para paralelizar las consultas DB ──────────────────────────
	type budgetResult struct {
		b   *entity.Budget
		err error
	}
	type spendResult struct {
		rows []repository.CategorySpend
		err  error
	}
	type goalsResult struct {
		goals []*entity.Goal
		err   error
	}
	type debtsResult struct {
		debts []*entity.Debt
		err   error
	}
	type unreadResult struct {
		items []*entity.Notification
		err   error
	}

	budgetCh := make(chan budgetResult, 1)
	spendCh := make(chan spendResult, 1)
	goalsCh := make(chan goalsResult, 1)
	debtsCh := make(chan debtsResult, 1)
	unreadCh := make(chan unreadResult, 1)

	go func() {
		b, err := uc.budgets.GetByMonth(ctx, userID, month)
		budgetCh <- budgetResult{b, err}
	}()
	go func() {
		rows, err := uc.spending.SumByCategory(ctx, userID, from, to)
		spendCh <- spendResult{rows, err}
	}()
	go func() {
		goals, err := uc.goals.ListByUser(ctx, userID)
		goalsCh <- goalsResult{goals, err}
	}()
	go func() {
		debts, err := uc.debts.ListByUser(ctx, userID)
		debtsCh <- debtsResult{debts, err}
	}()
	go func() {
		items, err := uc.notifications.ListByUser(ctx, userID, true, unreadLimit)
		unreadCh <- unreadResult{items, err}
	}()

	bRes := <-budgetCh
	sRes := <-spendCh
	gRes := <-goalsCh
	dRes := <-debtsCh
	nRes := <-unreadCh

	if bRes.err != nil {
		return nil, fmt.Errorf("dashboard: presupuesto: %w", bRes.err)
	}
	if sRes.err != nil {
		return nil, fmt.Errorf("dashboard: gasto por categoría: %w", sRes.err)
	}
	if gRes.err != nil {
		return nil, fmt.Errorf("dashboard: metas: %w", gRes.err)
	}
	if dRes.err != nil {
		return nil, fmt.Errorf("dashboard: deudas: %w", dRes.err)
	}
	if nRes.err != nil {
		return nil, fmt.Errorf("dashboard: notificaciones: %w", nRes.err)
	}

	// ── Construir DTO ──────────────────────────────────────────────────────────
	out := &dto.DashboardSummaryDTO{
		Month:               month,
		MonthLabel:          monthLabel(from),
		HasBudget:           bRes.b != nil,
		TotalBudget:         decimal.Zero,
		Categories:          buildCategoryStatus(bRes.b, sRes.rows),
		Goals:               make([]dto.GoalProgressDTO, 0, len(gRes.goals)),
		OutstandingDebt:     decimal.Zero,
		UnreadNotifications: len(nRes.items),
	}
	if bRes.b != nil {
		out.TotalBudget = bRes.b.TotalBudget
	}
	out.TotalSpent = decimal.Zero
	for _, s := range sRes.rows {
		out.TotalSpent = out.TotalSpent.Add(s.Total)
	}
	out.Remaining = out.TotalBudget.Sub(out.TotalSpent)

	for _, g := range gRes.goals {
		out.Goals = append(out.Goals, dto.GoalProgressDTO{ID: g.ID, Name: g.Name, Progress: g.Progress(), Status: g.Status})
	}
	for _, d := range dRes.debts {
		if d.Status == entity.DebtStatusOpen {
			out.OutstandingDebt = out.OutstandingDebt.Add(d.Balance)
		}
	}
	return out, nil
}

// buildCategoryStatus una fila por categoría del presupuesto y luego las categorías
// con gasto sin asignación.
func buildCategoryStatus(b *entity.Budget, spent []repository.CategorySpend) []dto.CategoryStatusDTO {
	byCat := make(map[string]decimal.Decimal, len(spent))
	for _, s := range spent {
		byCat[s.Category] = s.Total
	}
	out := make([]dto.CategoryStatusDTO, 0, len(spent))
	if b != nil {
		for _, it := range b.Items {
			s, ok := byCat[it.Category]
			if !ok {
				s = decimal.Zero
			}
			delete(byCat, it.Category)
			out = append(out, categoryStatus(it.Category, it.Amount, s))
		}
	}
	for _, s := range spent {
		if total, ok := byCat[s.Category]; ok {
			out = append(out, categoryStatus(s.Category, decimal.Zero, total))
		}
	}
	return out
}

func categoryStatus(category string, allocated, spent decimal.Decimal) dto.CategoryStatusDTO {
	var used float64
	if allocated.IsPositive() {
		used = spent.Div(allocated).InexactFloat64()
	}
	return dto.CategoryStatusDTO{
		Category:  category,
		Allocated: allocated,
		Spent:     spent,
		Remaining: allocated.Sub(spent),
		UsedPct:   used,
	}
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}

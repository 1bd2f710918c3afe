package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/finanzas-api/internal/application/analytics"
	"github.com/jhoicas/finanzas-api/internal/domain"
	"github.com/jhoicas/finanzas-api/internal/domain/entity"
	"github.com/jhoicas/finanzas-api/internal/testutil/memstore"
)

const testUserID = "u-1"

func newDashboard(store *memstore.Store, now time.Time) *analytics.DashboardUseCase {
	return analytics.NewDashboardUseCase(store.Budgets, store.Expenses, store.Goals, store.Debts, store.Notifications).
		WithClock(func() time.Time { return now })
}

func TestGetSummary_PresupuestoVsGasto(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	now := time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)

	require.NoError(t, store.Budgets.Upsert(ctx, &entity.Budget{
		ID: "b-1", UserID: testUserID, Month: "2026-10",
		Items: []entity.BudgetItem{
			{Category: "housing", Amount: decimal.NewFromInt(12000)},
			{Category: "food", Amount: decimal.NewFromInt(8000)},
		},
		TotalBudget: decimal.NewFromInt(20000),
	}))
	for _, e := range []*entity.Expense{
		{ID: "e1", UserID: testUserID, Category: "food", Amount: decimal.NewFromInt(6000), SpentAt: now},
		{ID: "e2", UserID: testUserID, Category: "shopping", Amount: decimal.NewFromInt(1500), SpentAt: now},
		{ID: "e3", UserID: testUserID, Category: "food", Amount: decimal.NewFromInt(9000), SpentAt: now.AddDate(0, -1, 0)},
	} {
		require.NoError(t, store.Expenses.Create(ctx, e))
	}
	require.NoError(t, store.Goals.Create(ctx, &entity.Goal{
		ID: "g-1", UserID: testUserID, Name: "Fondo", TargetAmount: decimal.NewFromInt(1000), SavedAmount: decimal.NewFromInt(250), Status: entity.GoalStatusActive,
	}))
	require.NoError(t, store.Debts.Create(ctx, &entity.Debt{ID: "d-1", UserID: testUserID, Balance: decimal.NewFromInt(3000), Status: entity.DebtStatusOpen}))
	require.NoError(t, store.Debts.Create(ctx, &entity.Debt{ID: "d-2", UserID: testUserID, Balance: decimal.Zero, Status: entity.DebtStatusClosed}))
	require.NoError(t, store.Notifications.Create(ctx, &entity.Notification{ID: "n-1", UserID: testUserID}))
	require.NoError(t, store.Notifications.Create(ctx, &entity.Notification{ID: "n-2", UserID: testUserID, Read: true}))

	out, err := newDashboard(store, now).GetSummary(ctx, testUserID, "")
	require.NoError(t, err)

	assert.Equal(t, "2026-10", out.Month)
	assert.Equal(t, "Octubre 2026", out.MonthLabel)
	assert.True(t, out.HasBudget)
	assert.True(t, out.TotalSpent.Equal(decimal.NewFromInt(7500)))
	assert.True(t, out.Remaining.Equal(decimal.NewFromInt(12500)))
	assert.True(t, out.OutstandingDebt.Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, 1, out.UnreadNotifications)

	require.Len(t, out.Categories, 3)
	assert.Equal(t, "housing", out.Categories[0].Category)
	assert.True(t, out.Categories[0].Spent.IsZero())
	assert.Equal(t, "food", out.Categories[1].Category)
	assert.InDelta(t, 0.75, out.Categories[1].UsedPct, 1e-9)
	assert.Equal(t, "shopping", out.Categories[2].Category)
	assert.True(t, out.Categories[2].Allocated.IsZero())
	assert.True(t, out.Categories[2].Remaining.Equal(decimal.NewFromInt(-1500)))

	require.Len(t, out.Goals, 1)
	assert.InDelta(t, 0.25, out.Goals[0].Progress, 1e-9)
}

func TestGetSummary_SinPresupuesto(t *testing.T) {
	store := memstore.New()

	out, err := newDashboard(store, time.Now()).GetSummary(context.Background(), testUserID, "2026-02")
	require.NoError(t, err)
	assert.False(t, out.HasBudget)
	assert.Equal(t, "Febrero 2026", out.MonthLabel)
	assert.True(t, out.TotalBudget.IsZero())
	assert.Empty(t, out.Categories)

	_, err = newDashboard(store, time.Now()).GetSummary(context.Background(), testUserID, "febrero")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

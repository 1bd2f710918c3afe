package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/finanzas-api/internal/application/dto"
	"github.com/jhoicas/finanzas-api/internal/application/usecase"
	"github.com/jhoicas/finanzas-api/internal/domain"
	"github.com/jhoicas/finanzas-api/internal/domain/entity"
	"github.com/jhoicas/finanzas-api/internal/testutil/memstore"
)

const testUserID = "u-1"

// ──────────────────────────────────────────────────────────────────────────────
// Metas
// ──────────────────────────────────────────────────────────────────────────────

func TestGoal_AporteCompletaYNotificaUnaVez(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewGoalUseCase(store.Goals, store.Notifications)
	ctx := context.Background()

	g, err := uc.Create(ctx, testUserID, dto.CreateGoalRequest{Name: " Viaje ", TargetAmount: decimal.NewFromInt(1000)})
	require.NoError(t, err)
	assert.Equal(t, "Viaje", g.Name)
	assert.Equal(t, entity.GoalStatusActive, g.Status)

	g, err = uc.Contribute(ctx, testUserID, g.ID, dto.AmountRequest{Amount: decimal.NewFromInt(400)})
	require.NoError(t, err)
	assert.InDelta(t, 0.4, g.Progress, 1e-9)
	assert.Equal(t, entity.GoalStatusActive, g.Status)

	g, err = uc.Contribute(ctx, testUserID, g.ID, dto.AmountRequest{Amount: decimal.NewFromInt(700)})
	require.NoError(t, err)
	assert.Equal(t, entity.GoalStatusCompleted, g.Status)
	assert.InDelta(t, 1.1, g.Progress, 1e-9)

	_, err = uc.Contribute(ctx, testUserID, g.ID, dto.AmountRequest{Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrConflict)

	notifs, err := store.Notifications.ListByUser(ctx, testUserID, false, 10)
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.Equal(t, entity.NotificationGoalCompleted, notifs[0].Type)
}

func TestGoal_Validaciones(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewGoalUseCase(store.Goals, store.Notifications)
	ctx := context.Background()

	_, err := uc.Create(ctx, testUserID, dto.CreateGoalRequest{Name: "", TargetAmount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, testUserID, dto.CreateGoalRequest{Name: "x", TargetAmount: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	g, err := uc.Create(ctx, testUserID, dto.CreateGoalRequest{Name: "x", TargetAmount: decimal.NewFromInt(10)})
	require.NoError(t, err)
	_, err = uc.Contribute(ctx, testUserID, g.ID, dto.AmountRequest{Amount: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Contribute(ctx, "otro", g.ID, dto.AmountRequest{Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, uc.Delete(ctx, testUserID, g.ID))
	list, err := uc.List(ctx, testUserID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

// ──────────────────────────────────────────────────────────────────────────────
// Deudas
// ──────────────────────────────────────────────────────────────────────────────

func TestDebt_PagoHastaCerrar(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewDebtUseCase(store.Debts, store.Notifications)
	ctx := context.Background()

	d, err := uc.Create(ctx, testUserID, dto.CreateDebtRequest{
		Name:               "Tarjeta",
		Principal:          decimal.NewFromInt(1000),
		AnnualInterestRate: decimal.Zero,
		MinimumPayment:     decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.True(t, d.Balance.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, 10, d.EstimatedPayoffMonths)

	d, err = uc.Pay(ctx, testUserID, d.ID, dto.AmountRequest{Amount: decimal.NewFromInt(250)})
	require.NoError(t, err)
	assert.True(t, d.Balance.Equal(decimal.NewFromInt(750)))
	assert.Equal(t, entity.DebtStatusOpen, d.Status)

	d, err = uc.Pay(ctx, testUserID, d.ID, dto.AmountRequest{Amount: decimal.NewFromInt(5000)})
	require.NoError(t, err)
	assert.True(t, d.Balance.IsZero(), "el saldo no baja de 0")
	assert.Equal(t, entity.DebtStatusClosed, d.Status)
	assert.Equal(t, 0, d.EstimatedPayoffMonths)

	_, err = uc.Pay(ctx, testUserID, d.ID, dto.AmountRequest{Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrConflict)

	notifs, err := store.Notifications.ListByUser(ctx, testUserID, true, 10)
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.Equal(t, entity.NotificationDebtClosed, notifs[0].Type)
}

func TestDebt_PagoMinimoNoCubreIntereses(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewDebtUseCase(store.Debts, store.Notifications)

	d, err := uc.Create(context.Background(), testUserID, dto.CreateDebtRequest{
		Name:               "Préstamo",
		Principal:          decimal.NewFromInt(100000),
		AnnualInterestRate: decimal.NewFromInt(24),
		MinimumPayment:     decimal.NewFromInt(1500),
	})
	require.NoError(t, err)
	assert.Equal(t, -1, d.EstimatedPayoffMonths)
}

func TestDebt_Validaciones(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewDebtUseCase(store.Debts, store.Notifications)
	ctx := context.Background()
	base := dto.CreateDebtRequest{Name: "x", Principal: decimal.NewFromInt(10), MinimumPayment: decimal.NewFromInt(1)}

	bad := base
	bad.Principal = decimal.Zero
	_, err := uc.Create(ctx, testUserID, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad = base
	bad.AnnualInterestRate = decimal.NewFromInt(-1)
	_, err = uc.Create(ctx, testUserID, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad = base
	bad.MinimumPayment = decimal.Zero
	_, err = uc.Create(ctx, testUserID, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Pay(ctx, testUserID, "no-existe", dto.AmountRequest{Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Notificaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestNotifications_ListarYMarcar(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewNotificationUseCase(store.Notifications)
	ctx := context.Background()
	for _, id := range []string{"n-1", "n-2", "n-3"} {
		require.NoError(t, store.Notifications.Create(ctx, &entity.Notification{ID: id, UserID: testUserID, Type: entity.NotificationBudgetWarning}))
	}

	require.NoError(t, uc.MarkRead(ctx, testUserID, "n-1"))
	assert.ErrorIs(t, uc.MarkRead(ctx, "otro", "n-2"), domain.ErrNotFound)

	all, err := uc.List(ctx, testUserID, false)
	require.NoError(t, err)
	assert.Len(t, all.Items, 3)
	assert.Equal(t, 2, all.Unread)
	assert.Equal(t, "n-3", all.Items[0].ID, "más recientes primero")

	n, err := uc.MarkAllRead(ctx, testUserID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	unread, err := uc.List(ctx, testUserID, true)
	require.NoError(t, err)
	assert.Empty(t, unread.Items)
}

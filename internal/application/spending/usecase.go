// Package spending registra gastos y avisa cuando una categoría se acerca o supera
// lo asignado en el presupuesto del mes.
package spending

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/finanzas-api/internal/application/dto"
	"github.com/jhoicas/finanzas-api/internal/application/usecase"
	"github.com/jhoicas/finanzas-api/internal/domain"
	"github.com/jhoicas/finanzas-api/internal/domain/budget"
	"github.com/jhoicas/finanzas-api/internal/domain/entity"
	"github.com/jhoicas/finanzas-api/internal/domain/repository"
	"github.com/jhoicas/finanzas-api/pkg/logger"
	"github.com/jhoicas/finanzas-api/pkg/money"
)

// WarningRatio fracción de lo asignado a partir de la cual se emite el aviso preventivo.
var WarningRatio = decimal.NewFromFloat(0.9)

// UseCase casos de uso de gastos.
type UseCase struct {
	tx       TxRunner
	expenses repository.ExpenseRepository
	tables   budget.Tables
	log      *logger.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx TxRunner, expenses repository.ExpenseRepository, tables budget.Tables, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, expenses: expenses, tables: tables, log: log, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Create registra el gasto y, en la misma transacción, evalúa el umbral de la categoría
// contra el presupuesto del mes del gasto.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	category := strings.ToLower(strings.TrimSpace(in.Category))
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount debe ser mayor que 0", domain.ErrInvalidInput)
	}
	if !uc.tables.HasCategory(category) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCategory, in.Category)
	}

	now := uc.now()
	spentAt := now
	if in.SpentAt != nil {
		spentAt = *in.SpentAt
	}
	spentAt = spentAt.UTC()
	month := budget.MonthOf(spentAt)
	from, to, _ := budget.MonthRange(month)

	e := &entity.Expense{
		ID:          uuid.New().String(),
		UserID:      userID,
		Amount:      in.Amount,
		Category:    category,
		Description: strings.TrimSpace(in.Description),
		SpentAt:     spentAt,
		CreatedAt:   now,
	}

	var alert *entity.Notification
	err := uc.tx.RunSpending(ctx, func(
		expenseRepo repository.ExpenseRepository,
		spendingRepo repository.SpendingRepository,
		budgetRepo repository.BudgetRepository,
		notificationRepo repository.NotificationRepository,
	) error {
		if err := expenseRepo.Create(ctx, e); err != nil {
			return fmt.Errorf("registrar gasto: %w", err)
		}
		b, err := budgetRepo.GetByMonth(ctx, userID, month)
		if err != nil {
			return fmt.Errorf("presupuesto del mes: %w", err)
		}
		if b == nil {
			return nil
		}
		item, ok := b.Item(category)
		if !ok {
			return nil
		}
		after, err := spendingRepo.SumForCategory(ctx, userID, category, from, to)
		if err != nil {
			return fmt.Errorf("gasto de la categoría: %w", err)
		}
		alert = thresholdAlert(userID, month, category, item.Amount, after.Sub(e.Amount), after, now)
		if alert == nil {
			return nil
		}
		return notificationRepo.Create(ctx, alert)
	})
	if err != nil {
		return nil, err
	}

	out := toExpenseResponse(e)
	if alert != nil {
		uc.log.Info().Str("user_id", userID).Str("category", category).Str("type", alert.Type).Msg("alerta de presupuesto")
		out.BudgetAlert = usecase.ToNotificationResponse(alert)
	}
	return out, nil
}

// thresholdAlert devuelve la notificación si el gasto cruzó el 100 % (exceeded) o el
// 90 % (warning) de lo asignado. Cruzar ambos en un solo gasto emite solo exceeded.
func thresholdAlert(userID, month, category string, allocated, before, after decimal.Decimal, now time.Time) *entity.Notification {
	if !allocated.IsPositive() {
		return nil
	}
	n := &entity.Notification{ID: uuid.New().String(), UserID: userID, CreatedAt: now}
	warning := allocated.Mul(WarningRatio)
	switch {
	case before.LessThanOrEqual(allocated) && after.GreaterThan(allocated):
		n.Type = entity.NotificationBudgetExceeded
		n.Title = "Presupuesto excedido en " + category
	case before.LessThan(warning) && after.GreaterThanOrEqual(warning):
		n.Type = entity.NotificationBudgetWarning
		n.Title = "Presupuesto casi agotado en " + category
	default:
		return nil
	}
	n.Message = fmt.Sprintf("Llevas %s de %s asignados para %s (%s).",
		money.FormatINR(after),
		money.FormatINR(allocated),
		month,
		money.FormatPercent(after.Div(allocated).InexactFloat64()),
	)
	return n
}

// List gastos del mes (YYYY-MM), del más reciente al más antiguo.
func (uc *UseCase) List(ctx context.Context, userID, month string, page dto.PageRequest) (*dto.ExpenseListResponse, error) {
	if month == "" {
		month = budget.MonthOf(uc.now().UTC())
	}
	from, to, err := budget.MonthRange(month)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	page.DefaultPage()
	list, err := uc.expenses.ListByPeriod(ctx, userID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toExpenseResponse(e))
	}
	return &dto.ExpenseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un gasto del usuario.
func (uc *UseCase) Delete(ctx context.Context, userID, id string) error {
	e, err := uc.expenses.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if e == nil {
		return domain.ErrNotFound
	}
	return uc.expenses.Delete(ctx, userID, id)
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:          e.ID,
		Amount:      e.Amount,
		Category:    e.Category,
		Description: e.Description,
		SpentAt:     e.SpentAt,
		CreatedAt:   e.CreatedAt,
	}
}

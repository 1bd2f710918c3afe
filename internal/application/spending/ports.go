package spending

import (
	"context"

	"github.com/jhoicas/finanzas-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que el gasto y la alerta de presupuesto se registren juntos.
type TxRunner interface {
	RunSpending(ctx context.Context, fn func(
		expenseRepo repository.ExpenseRepository,
		spendingRepo repository.SpendingRepository,
		budgetRepo repository.BudgetRepository,
		notificationRepo repository.NotificationRepository,
	) error) error
}

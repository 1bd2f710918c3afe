package repository

import (
	"context"

	"github.com/jhoicas/finanzas-api/internal/domain/entity"
)

// BudgetRepository persistencia de presupuestos mensuales (uno por usuario y mes).
type BudgetRepository interface {
	// Upsert inserta o sobrescribe el presupuesto de (UserID, Month).
	Upsert(ctx context.Context, b *entity.Budget) error
	// GetByMonth devuelve nil, nil si no existe.
	GetByMonth(ctx context.Context, userID, month string) (*entity.Budget, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Budget, error)
}

package repository

import (
	"context"
	"time"

	"github.com/jhoicas/finanzas-api/internal/domain/entity"
)

// ExpenseRepository persistencia de gastos.
type ExpenseRepository interface {
	Create(ctx context.Context, e *entity.Expense) error
	GetByID(ctx context.Context, userID, id string) (*entity.Expense, error)
	ListByPeriod(ctx context.Context, userID string, from, to time.Time, limit, offset int) ([]*entity.Expense, error)
	Delete(ctx context.Context, userID, id string) error
}

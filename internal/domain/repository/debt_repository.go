package repository

import (
	"context"

	"github.com/jhoicas/finanzas-api/internal/domain/entity"
)

// DebtRepository persistencia de deudas.
type DebtRepository interface {
	Create(ctx context.Context, d *entity.Debt) error
	GetByID(ctx context.Context, userID, id string) (*entity.Debt, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Debt, error)
	Update(ctx context.Context, d *entity.Debt) error
	Delete(ctx context.Context, userID, id string) error
}

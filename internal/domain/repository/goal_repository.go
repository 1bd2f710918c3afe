package repository

import (
	"context"

	"github.com/jhoicas/finanzas-api/internal/domain/entity"
)

// GoalRepository persistencia de metas de ahorro.
type GoalRepository interface {
	Create(ctx context.Context, g *entity.Goal) error
	GetByID(ctx context.Context, userID, id string) (*entity.Goal, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Goal, error)
	Update(ctx context.Context, g *entity.Goal) error
	Delete(ctx context.Context, userID, id string) error
}

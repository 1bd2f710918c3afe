package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/finanzas-api/internal/application/dto"
	"github.com/jhoicas/finanzas-api/internal/domain"
	"github.com/jhoicas/finanzas-api/internal/domain/entity"
	"github.com/jhoicas/finanzas-api/internal/domain/repository"
	"github.com/jhoicas/finanzas-api/pkg/money"
)

// GoalUseCase metas de ahorro. Al completar una meta se emite una notificación.
type GoalUseCase struct {
	repo          repository.GoalRepository
	notifications repository.NotificationRepository
}

// NewGoalUseCase construye el caso de uso.
func NewGoalUseCase(repo repository.GoalRepository, notifications repository.NotificationRepository) *GoalUseCase {
	return &GoalUseCase{repo: repo, notifications: notifications}
}

// Create registra una meta nueva.
func (uc *GoalUseCase) Create(ctx context.Context, userID string, in dto.CreateGoalRequest) (*dto.GoalResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	if !in.TargetAmount.IsPositive() {
		return nil, fmt.Errorf("%w: target_amount debe ser mayor que 0", domain.ErrInvalidInput)
	}
	now := time.Now()
	g := &entity.Goal{
		ID:           uuid.New().String(),
		UserID:       userID,
		Name:         name,
		TargetAmount: in.TargetAmount,
		SavedAmount:  decimal.Zero,
		Deadline:     in.Deadline,
		Status:       entity.GoalStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	return toGoalResponse(g), nil
}

// List metas del usuario.
func (uc *GoalUseCase) List(ctx context.Context, userID string) ([]dto.GoalResponse, error) {
	goals, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GoalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, *toGoalResponse(g))
	}
	return out, nil
}

// Contribute suma un aporte. Cuando lo ahorrado alcanza el objetivo la meta pasa a
// completed y se notifica una sola vez.
func (uc *GoalUseCase) Contribute(ctx context.Context, userID, id string, in dto.AmountRequest) (*dto.GoalResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount debe ser mayor que 0", domain.ErrInvalidInput)
	}
	g, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domain.ErrNotFound
	}
	if g.Status == entity.GoalStatusCompleted {
		return nil, fmt.Errorf("%w: la meta ya está completada", domain.ErrConflict)
	}

	now := time.Now()
	g.SavedAmount = g.SavedAmount.Add(in.Amount)
	g.UpdatedAt = now
	completed := g.SavedAmount.GreaterThanOrEqual(g.TargetAmount)
	if completed {
		g.Status = entity.GoalStatusCompleted
	}
	if err := uc.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	if completed {
		n := &entity.Notification{
			ID:        uuid.New().String(),
			UserID:    userID,
			Type:      entity.NotificationGoalCompleted,
			Title:     "Meta cumplida: " + g.Name,
			Message:   fmt.Sprintf("Ahorraste %s de %s.", money.FormatINR(g.SavedAmount), money.FormatINR(g.TargetAmount)),
			CreatedAt: now,
		}
		if err := uc.notifications.Create(ctx, n); err != nil {
			return nil, fmt.Errorf("notificar meta: %w", err)
		}
	}
	return toGoalResponse(g), nil
}

// Delete elimina una meta.
func (uc *GoalUseCase) Delete(ctx context.Context, userID, id string) error {
	return uc.repo.Delete(ctx, userID, id)
}

func toGoalResponse(g *entity.Goal) *dto.GoalResponse {
	return &dto.GoalResponse{
		ID:           g.ID,
		Name:         g.Name,
		TargetAmount: g.TargetAmount,
		SavedAmount:  g.SavedAmount,
		Progress:     g.Progress(),
		Deadline:     g.Deadline,
		Status:       g.Status,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

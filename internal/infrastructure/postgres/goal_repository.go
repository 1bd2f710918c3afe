package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/finanzas-api/internal/domain"
	"github.com/jhoicas/finanzas-api/internal/domain/entity"
	"github.com/jhoicas/finanzas-api/internal/domain/repository"
)

var _ repository.GoalRepository = (*GoalRepo)(nil)

const goalColumns = `id, user_id, name, target_amount, saved_amount, deadline, status, created_at, updated_at`

// GoalRepo implementación del puerto GoalRepository sobre PostgreSQL.
type GoalRepo struct {
	q Querier
}

// NewGoalRepository construye el repositorio de metas sobre pool o tx.
func NewGoalRepository(q Querier) *GoalRepo {
	return &GoalRepo{q: q}
}

func (r *GoalRepo) Create(ctx context.Context, g *entity.Goal) error {
	_, err := r.q.Exec(ctx, `INSERT INTO goals (`+goalColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		g.ID, g.UserID, g.Name, g.TargetAmount, g.SavedAmount, g.Deadline, g.Status, g.CreatedAt, g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert goal: %w", err)
	}
	return nil
}

func (r *GoalRepo) GetByID(ctx context.Context, userID, id string) (*entity.Goal, error) {
	g, err := scanGoal(r.q.QueryRow(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = $1 AND user_id = $2`, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get goal: %w", err)
	}
	return g, nil
}

func (r *GoalRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Goal, error) {
	rows, err := r.q.Query(ctx, `SELECT `+goalColumns+` FROM goals WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()
	var list []*entity.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		list = append(list, g)
	}
	return list, rows.Err()
}

func (r *GoalRepo) Update(ctx context.Context, g *entity.Goal) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE goals SET name = $3, target_amount = $4, saved_amount = $5, deadline = $6, status = $7, updated_at = $8
		WHERE id = $1 AND user_id = $2`,
		g.ID, g.UserID, g.Name, g.TargetAmount, g.SavedAmount, g.Deadline, g.Status, g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GoalRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanGoal(row pgx.Row) (*entity.Goal, error) {
	var g entity.Goal
	if err := row.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.SavedAmount, &g.Deadline, &g.Status, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}
	return &g, nil
}

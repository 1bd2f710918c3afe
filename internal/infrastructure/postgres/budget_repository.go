package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/finanzas-api/internal/domain/entity"
	"github.com/jhoicas/finanzas-api/internal/domain/repository"
)

var _ repository.BudgetRepository = (*BudgetRepo)(nil)

const budgetColumns = `id, user_id, month, monthly_income, city, family_size, age, items,
	total_budget, savings_amount, savings_percentage, customized, advice, created_at, updated_at`

// BudgetRepo implementación del puerto BudgetRepository sobre PostgreSQL.
// Las partidas se guardan como JSONB en la misma fila.
type BudgetRepo struct {
	q Querier
}

// NewBudgetRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBudgetRepository(q Querier) *BudgetRepo {
	return &BudgetRepo{q: q}
}

// Upsert inserta o sobrescribe el presupuesto del mes. Conserva id y created_at
// de la fila existente y los devuelve en b.
func (r *BudgetRepo) Upsert(ctx context.Context, b *entity.Budget) error {
	items, err := json.Marshal(b.Items)
	if err != nil {
		return fmt.Errorf("marshal budget items: %w", err)
	}
	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (user_id, month) DO UPDATE SET
			monthly_income = EXCLUDED.monthly_income,
			city = EXCLUDED.city,
			family_size = EXCLUDED.family_size,
			age = EXCLUDED.age,
			items = EXCLUDED.items,
			total_budget = EXCLUDED.total_budget,
			savings_amount = EXCLUDED.savings_amount,
			savings_percentage = EXCLUDED.savings_percentage,
			customized = EXCLUDED.customized,
			advice = EXCLUDED.advice,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`
	err = r.q.QueryRow(ctx, query,
		b.ID, b.UserID, b.Month, b.MonthlyIncome, b.City, b.FamilySize, b.Age, items,
		b.TotalBudget, b.SavingsAmount, b.SavingsPercentage, b.Customized, b.Advice, b.CreatedAt, b.UpdatedAt,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert budget: %w", err)
	}
	return nil
}

// GetByMonth devuelve nil, nil si el usuario no tiene presupuesto para el mes.
func (r *BudgetRepo) GetByMonth(ctx context.Context, userID, month string) (*entity.Budget, error) {
	b, err := scanBudget(r.q.QueryRow(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE user_id = $1 AND month = $2`, userID, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get budget: %w", err)
	}
	return b, nil
}

// ListByUser presupuestos del usuario, del mes más reciente al más antiguo.
func (r *BudgetRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Budget, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE user_id = $1 ORDER BY month DESC LIMIT $2`,
		userID, clampLimit(limit, 12, 24))
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()
	var list []*entity.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func scanBudget(row pgx.Row) (*entity.Budget, error) {
	var (
		b     entity.Budget
		items []byte
	)
	err := row.Scan(
		&b.ID, &b.UserID, &b.Month, &b.MonthlyIncome, &b.City, &b.FamilySize, &b.Age, &items,
		&b.TotalBudget, &b.SavingsAmount, &b.SavingsPercentage, &b.Customized, &b.Advice, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &b.Items); err != nil {
		return nil, fmt.Errorf("unmarshal budget items: %w", err)
	}
	return &b, nil
}

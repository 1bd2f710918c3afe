package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/finanzas-api/internal/domain/repository"
)

var _ repository.SpendingRepository = (*SpendingRepo)(nil)

// SpendingRepo consultas de solo lectura para agregados de gasto.
type SpendingRepo struct {
	q Querier
}

// NewSpendingRepository construye el adaptador de agregados.
func NewSpendingRepository(q Querier) *SpendingRepo {
	return &SpendingRepo{q: q}
}

// SumByCategory agrupa el gasto del período [from, to) por categoría, de mayor a menor.
func (r *SpendingRepo) SumByCategory(ctx context.Context, userID string, from, to time.Time) ([]repository.CategorySpend, error) {
	const query = `
	SELECT
	    category,
	    SUM(amount)  AS total,
	    COUNT(*)     AS expense_count
	FROM expenses
	WHERE user_id = $1
	  AND spent_at >= $2
	  AND spent_at <  $3
	GROUP BY category
	ORDER BY total DESC, category`

	rows, err := r.q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("spending.SumByCategory: %w", err)
	}
	defer rows.Close()

	var results []repository.CategorySpend
	for rows.Next() {
		var row repository.CategorySpend
		if err := rows.Scan(&row.Category, &row.Total, &row.Count); err != nil {
			return nil, fmt.Errorf("spending.SumByCategory scan: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("spending.SumByCategory rows: %w", err)
	}
	return results, nil
}

// SumForCategory total del período [from, to) para una categoría (cero si no hay gastos).
func (r *SpendingRepo) SumForCategory(ctx context.Context, userID, category string, from, to time.Time) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(amount), 0)
	FROM expenses
	WHERE user_id = $1
	  AND category = $2
	  AND spent_at >= $3
	  AND spent_at <  $4`

	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, userID, category, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("spending.SumForCategory: %w", err)
	}
	return total, nil
}

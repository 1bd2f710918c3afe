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

var _ repository.DebtRepository = (*DebtRepo)(nil)

const debtColumns = `id, user_id, name, principal, balance, annual_interest_rate, minimum_payment, status, created_at, updated_at`

// DebtRepo implementación del puerto DebtRepository sobre PostgreSQL.
type DebtRepo struct {
	q Querier
}

// NewDebtRepository construye el repositorio de deudas sobre pool o tx.
func NewDebtRepository(q Querier) *DebtRepo {
	return &DebtRepo{q: q}
}

func (r *DebtRepo) Create(ctx context.Context, d *entity.Debt) error {
	_, err := r.q.Exec(ctx, `INSERT INTO debts (`+debtColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		d.ID, d.UserID, d.Name, d.Principal, d.Balance, d.AnnualInterestRate, d.MinimumPayment, d.Status, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert debt: %w", err)
	}
	return nil
}

func (r *DebtRepo) GetByID(ctx context.Context, userID, id string) (*entity.Debt, error) {
	d, err := scanDebt(r.q.QueryRow(ctx, `SELECT `+debtColumns+` FROM debts WHERE id = $1 AND user_id = $2`, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get debt: %w", err)
	}
	return d, nil
}

// ListByUser deudas abiertas primero, luego por fecha de alta.
func (r *DebtRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Debt, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+debtColumns+` FROM debts WHERE user_id = $1 ORDER BY status = 'closed', created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Debt
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan debt: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func (r *DebtRepo) Update(ctx context.Context, d *entity.Debt) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE debts SET name = $3, balance = $4, annual_interest_rate = $5, minimum_payment = $6, status = $7, updated_at = $8
		WHERE id = $1 AND user_id = $2`,
		d.ID, d.UserID, d.Name, d.Balance, d.AnnualInterestRate, d.MinimumPayment, d.Status, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update debt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DebtRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM debts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete debt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanDebt(row pgx.Row) (*entity.Debt, error) {
	var d entity.Debt
	err := row.Scan(&d.ID, &d.UserID, &d.Name, &d.Principal, &d.Balance, &d.AnnualInterestRate,
		&d.MinimumPayment, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

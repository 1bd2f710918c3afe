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

// DebtUseCase deudas y pagos.
type DebtUseCase struct {
	repo          repository.DebtRepository
	notifications repository.NotificationRepository
}

// NewDebtUseCase construye el caso de uso.
func NewDebtUseCase(repo repository.DebtRepository, notifications repository.NotificationRepository) *DebtUseCase {
	return &DebtUseCase{repo: repo, notifications: notifications}
}

// Create registra una deuda; el saldo inicial es el principal.
func (uc *DebtUseCase) Create(ctx context.Context, userID string, in dto.CreateDebtRequest) (*dto.DebtResponse, error) {
	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	case !in.Principal.IsPositive():
		return nil, fmt.Errorf("%w: principal debe ser mayor que 0", domain.ErrInvalidInput)
	case in.AnnualInterestRate.IsNegative():
		return nil, fmt.Errorf("%w: annual_interest_rate no puede ser negativo", domain.ErrInvalidInput)
	case !in.MinimumPayment.IsPositive():
		return nil, fmt.Errorf("%w: minimum_payment debe ser mayor que 0", domain.ErrInvalidInput)
	}
	now := time.Now()
	d := &entity.Debt{
		ID:                 uuid.New().String(),
		UserID:             userID,
		Name:               name,
		Principal:          in.Principal,
		Balance:            in.Principal,
		AnnualInterestRate: in.AnnualInterestRate,
		MinimumPayment:     in.MinimumPayment,
		Status:             entity.DebtStatusOpen,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return toDebtResponse(d), nil
}

// List deudas del usuario.
func (uc *DebtUseCase) List(ctx context.Context, userID string) ([]dto.DebtResponse, error) {
	debts, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DebtResponse, 0, len(debts))
	for _, d := range debts {
		out = append(out, *toDebtResponse(d))
	}
	return out, nil
}

// Pay descuenta un pago del saldo. El saldo no baja de 0; al llegar a 0 la deuda se cierra.
func (uc *DebtUseCase) Pay(ctx context.Context, userID, id string, in dto.AmountRequest) (*dto.DebtResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount debe ser mayor que 0", domain.ErrInvalidInput)
	}
	d, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	if d.Status == entity.DebtStatusClosed {
		return nil, fmt.Errorf("%w: la deuda ya está saldada", domain.ErrConflict)
	}

	now := time.Now()
	d.Balance = decimal.Max(d.Balance.Sub(in.Amount), decimal.Zero)
	d.UpdatedAt = now
	closed := d.Balance.IsZero()
	if closed {
		d.Status = entity.DebtStatusClosed
	}
	if err := uc.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	if closed {
		n := &entity.Notification{
			ID:        uuid.New().String(),
			UserID:    userID,
			Type:      entity.NotificationDebtClosed,
			Title:     "Deuda saldada: " + d.Name,
			Message:   fmt.Sprintf("Terminaste de pagar %s.", money.FormatINR(d.Principal)),
			CreatedAt: now,
		}
		if err := uc.notifications.Create(ctx, n); err != nil {
			return nil, fmt.Errorf("notificar deuda: %w", err)
		}
	}
	return toDebtResponse(d), nil
}

// Delete elimina una deuda.
func (uc *DebtUseCase) Delete(ctx context.Context, userID, id string) error {
	return uc.repo.Delete(ctx, userID, id)
}

func toDebtResponse(d *entity.Debt) *dto.DebtResponse {
	return &dto.DebtResponse{
		ID:                    d.ID,
		Name:                  d.Name,
		Principal:             d.Principal,
		Balance:               d.Balance,
		AnnualInterestRate:    d.AnnualInterestRate,
		MinimumPayment:        d.MinimumPayment,
		EstimatedPayoffMonths: d.EstimatedPayoffMonths(),
		Status:                d.Status,
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
	}
}

package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/finanzas-api/internal/domain/entity"
)

func debt(balance, rate, payment int64) *entity.Debt {
	return &entity.Debt{
		Balance:            decimal.NewFromInt(balance),
		AnnualInterestRate: decimal.NewFromInt(rate),
		MinimumPayment:     decimal.NewFromInt(payment),
	}
}

func TestEstimatedPayoffMonths_SinIntereses(t *testing.T) {
	assert.Equal(t, 10, debt(10000, 0, 1000).EstimatedPayoffMonths())
	assert.Equal(t, 11, debt(10001, 0, 1000).EstimatedPayoffMonths())
}

func TestEstimatedPayoffMonths_ConIntereses(t *testing.T) {
	// r = 1 % mensual: n = -ln(0.9)/ln(1.01) ≈ 10.59
	assert.Equal(t, 11, debt(10000, 12, 1000).EstimatedPayoffMonths())
}

func TestEstimatedPayoffMonths_PagoNoCubreIntereses(t *testing.T) {
	// 2 % mensual sobre 100000 = 2000 > 1500
	assert.Equal(t, -1, debt(100000, 24, 1500).EstimatedPayoffMonths())
}

func TestEstimatedPayoffMonths_Saldada(t *testing.T) {
	assert.Equal(t, 0, debt(0, 12, 1000).EstimatedPayoffMonths())
}

func TestGoalProgress(t *testing.T) {
	g := &entity.Goal{TargetAmount: decimal.NewFromInt(200), SavedAmount: decimal.NewFromInt(50)}
	assert.InDelta(t, 0.25, g.Progress(), 1e-9)

	g.TargetAmount = decimal.Zero
	assert.Equal(t, 0.0, g.Progress())
}

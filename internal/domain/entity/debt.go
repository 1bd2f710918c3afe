package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Debt.
const (
	DebtStatusOpen   = "open"
	DebtStatusClosed = "closed"
)

// Debt deuda que el usuario está pagando.
type Debt struct {
	ID                 string
	UserID             string
	Name               string
	Principal          decimal.Decimal
	Balance            decimal.Decimal
	AnnualInterestRate decimal.Decimal // porcentaje, ej: 12.5
	MinimumPayment     decimal.Decimal
	Status             string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// EstimatedPayoffMonths meses para saldar la deuda pagando solo el mínimo.
// Devuelve -1 si el pago mínimo no cubre los intereses del mes.
func (d *Debt) EstimatedPayoffMonths() int {
	if !d.Balance.IsPositive() {
		return 0
	}
	if !d.MinimumPayment.IsPositive() {
		return -1
	}
	balance, _ := d.Balance.Float64()
	payment, _ := d.MinimumPayment.Float64()
	annual, _ := d.AnnualInterestRate.Float64()

	r := annual / 1200
	if r <= 0 {
		return int(math.Ceil(balance / payment))
	}
	if payment <= r*balance {
		return -1
	}
	n := -math.Log(1-r*balance/payment) / math.Log(1+r)
	return int(math.Ceil(n - 1e-9))
}

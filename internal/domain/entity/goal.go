package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Goal.
const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
)

// Goal meta de ahorro.
type Goal struct {
	ID           string
	UserID       string
	Name         string
	TargetAmount decimal.Decimal
	SavedAmount  decimal.Decimal
	Deadline     *time.Time // nil = sin fecha límite
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Progress fracción ahorrada 0–1 (puede superar 1 si se aportó de más).
func (g *Goal) Progress() float64 {
	if !g.TargetAmount.IsPositive() {
		return 0
	}
	f, _ := g.SavedAmount.Div(g.TargetAmount).Float64()
	return f
}

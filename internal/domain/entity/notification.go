package entity

import "time"

// Tipos de notificación.
const (
	NotificationBudgetWarning  = "budget_warning"  // categoría al 90 % del presupuesto
	NotificationBudgetExceeded = "budget_exceeded" // categoría por encima del 100 %
	NotificationGoalCompleted  = "goal_completed"
	NotificationDebtClosed     = "debt_closed"
)

// Notification aviso dentro de la aplicación.
type Notification struct {
	ID        string
	UserID    string
	Type      string
	Title     string
	Message   string
	Read      bool
	CreatedAt time.Time
}

package ports

import (
	"context"

	"github.com/jhoicas/finanzas-api/internal/domain/budget"
)

// BudgetAdvisor define el puerto de salida hacia el LLM que redacta consejos de presupuesto.
// Cualquier adaptador (Anthropic, Gemini, mock) debe implementar esta interfaz; la
// aplicación solo conoce este contrato.
type BudgetAdvisor interface {
	// GenerateBudgetAdvice devuelve un texto breve con recomendaciones para la asignación
	// calculada. El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	GenerateBudgetAdvice(
		ctx context.Context,
		profile budget.Profile,
		allocation *budget.Allocation,
	) (string, error)
}

package ai

import (
	"fmt"

	"github.com/jhoicas/finanzas-api/internal/application/ports"
	"github.com/jhoicas/finanzas-api/pkg/config"
)

// NewAdvisor elige el adaptador según AI_PROVIDER. Devuelve nil (sin consejos)
// cuando el proveedor es "none" o falta la API key.
func NewAdvisor(cfg config.AIConfig) (ports.BudgetAdvisor, error) {
	switch cfg.Provider {
	case "", "none":
		return nil, nil
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			return nil, nil
		}
		return NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel), nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, nil
		}
		return NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel), nil
	default:
		return nil, fmt.Errorf("AI_PROVIDER desconocido: %q", cfg.Provider)
	}
}

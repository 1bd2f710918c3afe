package ai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/finanzas-api/internal/domain/budget"
	"github.com/jhoicas/finanzas-api/internal/infrastructure/ai"
	"github.com/jhoicas/finanzas-api/pkg/config"
)

func sampleAllocation(t *testing.T) (budget.Profile, *budget.Allocation) {
	t.Helper()
	p := budget.Profile{MonthlyIncome: decimal.NewFromInt(50000), City: "Mumbai", FamilySize: 1, Age: 28}
	a, err := budget.NewDefaultEngine().Allocate(p, nil)
	require.NoError(t, err)
	return p, a
}

// ─── Anthropic ───────────────────────────────────────────────────────────────

func TestAnthropic_DevuelveTextoLimpio(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"` + "```" + `\n- Ahorra primero\n` + "```" + `"}]}`))
	}))
	defer srv.Close()

	p, a := sampleAllocation(t)
	out, err := ai.NewAnthropicService("test-key", "claude-test").WithBaseURL(srv.URL).
		GenerateBudgetAdvice(context.Background(), p, a)
	require.NoError(t, err)
	assert.Equal(t, "- Ahorra primero", out)

	assert.Equal(t, "claude-test", got["model"])
	msgs := got["messages"].([]any)
	content := msgs[0].(map[string]any)["content"].(string)
	assert.Contains(t, content, "Mumbai")
	assert.Contains(t, content, "housing")
}

func TestAnthropic_ErrorDeAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"type":"rate_limit_error","message":"slow down"}}`))
	}))
	defer srv.Close()

	p, a := sampleAllocation(t)
	_, err := ai.NewAnthropicService("k", "m").WithBaseURL(srv.URL).GenerateBudgetAdvice(context.Background(), p, a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate_limit_error")
}

func TestAnthropic_SinAPIKey(t *testing.T) {
	p, a := sampleAllocation(t)
	_, err := ai.NewAnthropicService("", "m").GenerateBudgetAdvice(context.Background(), p, a)
	assert.Error(t, err)
}

// ─── Gemini ──────────────────────────────────────────────────────────────────

func TestGemini_UneLasPartes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/gemini-test:generateContent"))
		assert.Equal(t, "g-key", r.Header.Get("x-goog-api-key"))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"- uno"},{"text":"- dos"}]}}]}`))
	}))
	defer srv.Close()

	p, a := sampleAllocation(t)
	out, err := ai.NewGeminiService("g-key", "gemini-test").WithBaseURL(srv.URL+"/").
		GenerateBudgetAdvice(context.Background(), p, a)
	require.NoError(t, err)
	assert.Equal(t, "- uno\n- dos", out)
}

func TestGemini_RespuestaVacia(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	p, a := sampleAllocation(t)
	_, err := ai.NewGeminiService("k", "m").WithBaseURL(srv.URL).GenerateBudgetAdvice(context.Background(), p, a)
	assert.Error(t, err)
}

// ─── Selección de proveedor ──────────────────────────────────────────────────

func TestNewAdvisor(t *testing.T) {
	adv, err := ai.NewAdvisor(config.AIConfig{Provider: "none"})
	require.NoError(t, err)
	assert.Nil(t, adv)

	adv, err = ai.NewAdvisor(config.AIConfig{Provider: "anthropic"})
	require.NoError(t, err)
	assert.Nil(t, adv, "sin API key no hay consejos")

	adv, err = ai.NewAdvisor(config.AIConfig{Provider: "gemini", GeminiAPIKey: "k", GeminiModel: "m"})
	require.NoError(t, err)
	assert.IsType(t, &ai.GeminiService{}, adv)

	_, err = ai.NewAdvisor(config.AIConfig{Provider: "openai"})
	assert.Error(t, err)
}

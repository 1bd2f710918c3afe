package ai

import (
	"fmt"
	"strings"

	"github.com/jhoicas/finanzas-api/internal/domain/budget"
	"github.com/jhoicas/finanzas-api/pkg/money"
)

const (
	adviceSystemPrompt = `Eres un asesor financiero personal para hogares en India.
Recibes el perfil del usuario y el presupuesto mensual ya calculado (montos en rupias).
Responde en español con 3 a 5 consejos prácticos y concretos, uno por línea, empezando cada línea con "- ".
No cambies los montos ni propongas una asignación distinta; comenta la que recibes.
No incluyas títulos, saludos ni texto fuera de la lista.`

	maxAdviceChars = 1500
)

// buildAdvicePrompt describe el perfil y la asignación para el modelo.
func buildAdvicePrompt(p budget.Profile, a *budget.Allocation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Ingreso mensual: %s\n", money.FormatINR(p.MonthlyIncome))
	fmt.Fprintf(&b, "Ciudad: %s (%s)\n", p.City, a.CityKey)
	fmt.Fprintf(&b, "Tamaño del hogar: %d\n", p.FamilySize)
	fmt.Fprintf(&b, "Edad: %d (tramo %s)\n", p.Age, a.AgeBracket)
	fmt.Fprintf(&b, "Tramo de ingreso: %s\n\nPresupuesto:\n", a.IncomeBracket)
	for _, it := range a.Items {
		fmt.Fprintf(&b, "- %s: %s (%s)\n", it.Category, money.FormatINR(it.Amount), money.FormatPercent(it.Percentage))
	}
	fmt.Fprintf(&b, "Ahorro: %s (%s)\n", money.FormatINR(a.SavingsAmount), money.FormatPercent(a.SavingsPercentage))
	return b.String()
}

// cleanAdvice normaliza la respuesta del modelo: quita bloques markdown y recorta.
func cleanAdvice(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)
	if r := []rune(text); len(r) > maxAdviceChars {
		text = strings.TrimSpace(string(r[:maxAdviceChars]))
	}
	return text
}

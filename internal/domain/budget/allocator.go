// Package budget contiene el motor de asignación de presupuesto mensual.
//
// El cálculo es una función pura sobre tablas estáticas: no hace I/O, no guarda
// estado y con la misma entrada devuelve siempre la misma salida.
package budget

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Errores del motor. ErrZeroTotalWeight y ErrNegativeBasePercentage indican tablas mal
// configuradas; no tiene sentido reintentar.
var (
	ErrZeroTotalWeight        = errors.New("budget: la suma de pesos efectivos es cero")
	ErrNegativeBasePercentage = errors.New("budget: porcentaje base negativo")
	ErrInvalidProfile         = errors.New("budget: perfil inválido")
)

// Límites de validación del perfil (responsabilidad del caller).
const (
	MinFamilySize = 1
	MinAge        = 18
	MaxAge        = 120
)

// Profile resumen del perfil financiero usado para asignar el presupuesto.
type Profile struct {
	MonthlyIncome decimal.Decimal
	City          string
	FamilySize    int
	Age           int
}

// CategoryAllocation resultado de una categoría.
type CategoryAllocation struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage float64         `json:"percentage"` // 0–1
}

// Allocation presupuesto calculado. Items respeta el orden de la tabla de categorías.
type Allocation struct {
	Items             []CategoryAllocation `json:"items"`
	TotalBudget       decimal.Decimal      `json:"total_budget"`
	SavingsAmount     decimal.Decimal      `json:"savings_amount"`
	SavingsPercentage float64              `json:"savings_percentage"`
	CityKey           string               `json:"city_key"`
	IncomeBracket     string               `json:"income_bracket"`
	AgeBracket        string               `json:"age_bracket"`
}

// Get devuelve la asignación de una categoría.
func (a *Allocation) Get(category string) (CategoryAllocation, bool) {
	for _, it := range a.Items {
		if it.Category == category {
			return it, true
		}
	}
	return CategoryAllocation{}, false
}

// AllocatedTotal suma de los montos redondeados.
func (a *Allocation) AllocatedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range a.Items {
		total = total.Add(it.Amount)
	}
	return total
}

// ValidateProfile verifica el dominio de entrada del motor.
func ValidateProfile(p Profile) error {
	if !p.MonthlyIncome.IsPositive() {
		return fmt.Errorf("%w: monthly_income debe ser mayor que 0", ErrInvalidProfile)
	}
	if p.FamilySize < MinFamilySize {
		return fmt.Errorf("%w: family_size debe ser al menos %d", ErrInvalidProfile, MinFamilySize)
	}
	if p.Age < MinAge || p.Age > MaxAge {
		return fmt.Errorf("%w: age debe estar entre %d y %d", ErrInvalidProfile, MinAge, MaxAge)
	}
	return nil
}

// Engine aplica un conjunto de tablas. Es inmutable tras construirse.
type Engine struct {
	tables Tables
}

// NewEngine construye el motor con las tablas dadas.
func NewEngine(tables Tables) *Engine {
	return &Engine{tables: tables}
}

// NewDefaultEngine construye el motor con DefaultTables.
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultTables())
}

// Tables devuelve las tablas del motor.
func (e *Engine) Tables() Tables {
	return e.tables
}

// Allocate calcula la asignación por categoría.
//
// peso efectivo = base × ciudad × familia × ingreso × edad; cada porcentaje es
// peso / Σpesos y el monto es round(porcentaje × ingreso) en rupias enteras.
// Si base es nil o vacío se usa la tabla de categorías por defecto.
func (e *Engine) Allocate(p Profile, base map[string]float64) (*Allocation, error) {
	order := e.categoryOrder(base)
	if len(base) == 0 {
		base = e.tables.BasePercentages()
	}

	income, _ := p.MonthlyIncome.Float64()
	city := e.tables.CityFactors(p.City)
	incomeBracket := e.tables.IncomeBracketFor(income)
	ageBracket := e.tables.AgeBracketFor(p.Age)

	weights := make([]float64, len(order))
	var sum float64
	for i, cat := range order {
		pct := base[cat]
		if pct < 0 {
			return nil, fmt.Errorf("%w: %s", ErrNegativeBasePercentage, cat)
		}
		w := pct *
			city.Of(cat) *
			e.tables.FamilySizeFactor(p.FamilySize, cat) *
			incomeBracket.Factors.Of(cat) *
			ageBracket.Factors.Of(cat)
		weights[i] = w
		sum += w
	}
	if sum <= 0 {
		return nil, ErrZeroTotalWeight
	}

	out := &Allocation{
		Items:         make([]CategoryAllocation, 0, len(order)),
		TotalBudget:   p.MonthlyIncome,
		SavingsAmount: decimal.Zero,
		CityKey:       e.tables.CityKey(p.City),
		IncomeBracket: incomeBracket.Name,
		AgeBracket:    ageBracket.Name,
	}
	for i, cat := range order {
		pct := weights[i] / sum
		amount := p.MonthlyIncome.Mul(decimal.NewFromFloat(pct)).Round(0)
		out.Items = append(out.Items, CategoryAllocation{Category: cat, Amount: amount, Percentage: pct})
		if cat == CategorySavings {
			out.SavingsAmount = amount
			out.SavingsPercentage = pct
		}
	}
	return out, nil
}

// categoryOrder fija el orden de salida: primero las categorías de la tabla, luego
// las categorías extra de base en orden alfabético.
func (e *Engine) categoryOrder(base map[string]float64) []string {
	if len(base) == 0 {
		return e.tables.CategoryIDs()
	}
	order := make([]string, 0, len(base))
	seen := make(map[string]bool, len(base))
	for _, id := range e.tables.CategoryIDs() {
		if _, ok := base[id]; ok {
			order = append(order, id)
			seen[id] = true
		}
	}
	extra := make([]string, 0)
	for id := range base {
		if !seen[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	return append(order, extra...)
}

// Allocate calcula con las tablas por defecto.
func Allocate(p Profile, base map[string]float64) (*Allocation, error) {
	return NewDefaultEngine().Allocate(p, base)
}

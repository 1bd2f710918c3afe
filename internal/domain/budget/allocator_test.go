package budget_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/finanzas-api/internal/domain/budget"
)

func profile(income int64, city string, family, age int) budget.Profile {
	return budget.Profile{
		MonthlyIncome: decimal.NewFromInt(income),
		City:          city,
		FamilySize:    family,
		Age:           age,
	}
}

func sumPercentages(a *budget.Allocation) float64 {
	var s float64
	for _, it := range a.Items {
		s += it.Percentage
	}
	return s
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedades de la asignación
// ──────────────────────────────────────────────────────────────────────────────

func TestAllocate_PorcentajesSumanUno(t *testing.T) {
	cases := []budget.Profile{
		profile(50000, "Mumbai", 1, 28),
		profile(12000, "Kolkata", 3, 22),
		profile(350000, "Bangalore", 6, 45),
		profile(80000, "Springfield", 2, 70),
		profile(1, "Delhi", 12, 18),
	}
	for _, p := range cases {
		a, err := budget.Allocate(p, nil)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, sumPercentages(a), 1e-6, "perfil %+v", p)
	}
}

func TestAllocate_MontosNoNegativosYCercanosAlIngreso(t *testing.T) {
	p := profile(73457, "Pune", 5, 39)
	a, err := budget.Allocate(p, nil)
	require.NoError(t, err)

	for _, it := range a.Items {
		assert.False(t, it.Amount.IsNegative(), "monto negativo en %s", it.Category)
	}
	diff := a.AllocatedTotal().Sub(p.MonthlyIncome).Abs()
	maxErr := decimal.NewFromFloat(0.5 * float64(len(a.Items)))
	assert.True(t, diff.LessThanOrEqual(maxErr), "diferencia de redondeo %s", diff)
	assert.True(t, a.TotalBudget.Equal(p.MonthlyIncome))
}

func TestAllocate_CiudadDesconocidaUsaDefault(t *testing.T) {
	unknown, err := budget.Allocate(profile(60000, "Atlantis", 2, 30), nil)
	require.NoError(t, err)
	def, err := budget.Allocate(profile(60000, budget.DefaultCity, 2, 30), nil)
	require.NoError(t, err)

	assert.Equal(t, budget.DefaultCity, unknown.CityKey)
	assert.Equal(t, def.Items, unknown.Items)
}

func TestAllocate_CiudadInsensibleAMayusculasYAlias(t *testing.T) {
	a, err := budget.Allocate(profile(60000, "  bengaluru ", 2, 30), nil)
	require.NoError(t, err)
	b, err := budget.Allocate(profile(60000, "BANGALORE", 2, 30), nil)
	require.NoError(t, err)

	assert.Equal(t, "bangalore", a.CityKey)
	assert.Equal(t, a.Items, b.Items)
}

func TestAllocate_EjemploMumbaiAhorroMayorSinFamilia(t *testing.T) {
	single, err := budget.Allocate(profile(50000, "Mumbai", 1, 28), nil)
	require.NoError(t, err)
	family, err := budget.Allocate(profile(50000, "Mumbai", 4, 28), nil)
	require.NoError(t, err)

	assert.Greater(t, single.SavingsPercentage, family.SavingsPercentage)
	assert.True(t, single.SavingsAmount.GreaterThan(family.SavingsAmount))
}

func TestAllocate_Idempotente(t *testing.T) {
	p := profile(91000, "Chennai", 7, 55)
	a, err := budget.Allocate(p, nil)
	require.NoError(t, err)
	b, err := budget.Allocate(p, nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestAllocate_FamiliaGrandeSeEstabilizaEnElTope(t *testing.T) {
	ten, err := budget.Allocate(profile(90000, "Delhi", 10, 40), nil)
	require.NoError(t, err)
	twentyFive, err := budget.Allocate(profile(90000, "Delhi", 25, 40), nil)
	require.NoError(t, err)
	assert.Equal(t, ten.Items, twentyFive.Items)
}

func TestAllocate_AhorroNoCreceConLaFamilia(t *testing.T) {
	prev := 1.0
	for size := 4; size <= 12; size++ {
		a, err := budget.Allocate(profile(50000, "Mumbai", size, 28), nil)
		require.NoError(t, err)
		assert.LessOrEqual(t, a.SavingsPercentage, prev+1e-12, "family_size=%d", size)
		prev = a.SavingsPercentage
	}
}

func TestAllocate_SumaCeroFallaExplicitamente(t *testing.T) {
	base := map[string]float64{budget.CategoryFood: 0, budget.CategorySavings: 0}
	_, err := budget.Allocate(profile(50000, "Mumbai", 2, 30), base)
	assert.ErrorIs(t, err, budget.ErrZeroTotalWeight)
}

func TestAllocate_PorcentajeBaseNegativo(t *testing.T) {
	base := map[string]float64{budget.CategoryFood: -0.1, budget.CategorySavings: 0.5}
	_, err := budget.Allocate(profile(50000, "Mumbai", 2, 30), base)
	assert.ErrorIs(t, err, budget.ErrNegativeBasePercentage)
}

func TestAllocate_BasePersonalizadaConCategoriaExtra(t *testing.T) {
	base := map[string]float64{
		budget.CategorySavings: 0.5,
		"pets":                 0.25,
		budget.CategoryFood:    0.25,
	}
	a, err := budget.Allocate(profile(40000, budget.DefaultCity, 2, 30), base)
	require.NoError(t, err)

	require.Len(t, a.Items, 3)
	assert.Equal(t, budget.CategoryFood, a.Items[0].Category)
	assert.Equal(t, budget.CategorySavings, a.Items[1].Category)
	assert.Equal(t, "pets", a.Items[2].Category)
	assert.InDelta(t, 1.0, sumPercentages(a), 1e-6)

	pets, ok := a.Get("pets")
	require.True(t, ok)
	assert.True(t, pets.Amount.IsPositive())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tablas y validación
// ──────────────────────────────────────────────────────────────────────────────

func TestDefaultTables_PorcentajesBaseSumanUno(t *testing.T) {
	var s float64
	for _, c := range budget.DefaultTables().Categories {
		s += c.BasePercentage
	}
	assert.InDelta(t, 1.0, s, 1e-9)
}

func TestFamilySizeFactor_TablaExplicitaYExtrapolacion(t *testing.T) {
	tables := budget.DefaultTables()

	assert.Equal(t, 1.3, tables.FamilySizeFactor(1, budget.CategorySavings))
	assert.Equal(t, 0.7, tables.FamilySizeFactor(4, budget.CategorySavings))
	assert.InDelta(t, 0.55, tables.FamilySizeFactor(5, budget.CategorySavings), 1e-9)
	assert.Equal(t, 0.4, tables.FamilySizeFactor(9, budget.CategorySavings), "recortado al mínimo")

	assert.InDelta(t, 1.65, tables.FamilySizeFactor(6, budget.CategoryFood), 1e-9)
	assert.Equal(t, 2.0, tables.FamilySizeFactor(30, budget.CategoryFood), "recortado al máximo")
}

func TestFamilySizeFactor_MonotonoPorEncimaDeCuatro(t *testing.T) {
	tables := budget.DefaultTables()
	for _, cat := range tables.CategoryIDs() {
		slope := tables.FamilySize[4].Of(cat) - tables.FamilySize[3].Of(cat)
		prev := tables.FamilySizeFactor(4, cat)
		for size := 5; size <= 20; size++ {
			cur := tables.FamilySizeFactor(size, cat)
			if slope >= 0 {
				assert.GreaterOrEqual(t, cur, prev, "%s size=%d", cat, size)
			} else {
				assert.LessOrEqual(t, cur, prev, "%s size=%d", cat, size)
			}
			prev = cur
		}
	}
}

func TestFamilySizeFactor_SinLimitesNoBajaDeCero(t *testing.T) {
	tables := budget.DefaultTables()
	tables.FamilyBounds = map[string]budget.Bounds{}

	assert.Equal(t, 0.0, tables.FamilySizeFactor(20, budget.CategorySavings))
	assert.Equal(t, 0.0, tables.FamilySizeFactor(20, budget.CategoryEntertainment))

	a, err := budget.NewEngine(tables).Allocate(profile(50000, "Mumbai", 20, 30), nil)
	require.NoError(t, err)
	for _, it := range a.Items {
		assert.False(t, it.Amount.IsNegative(), it.Category)
		assert.GreaterOrEqual(t, it.Percentage, 0.0, it.Category)
	}
	assert.InDelta(t, 1.0, sumPercentages(a), 1e-9)
}

func TestBrackets(t *testing.T) {
	tables := budget.DefaultTables()

	assert.Equal(t, "low", tables.IncomeBracketFor(24999).Name)
	assert.Equal(t, "lower_middle", tables.IncomeBracketFor(25000).Name)
	assert.Equal(t, "middle", tables.IncomeBracketFor(50000).Name)
	assert.Equal(t, "high", tables.IncomeBracketFor(5_000_000).Name)

	assert.Equal(t, "18-25", tables.AgeBracketFor(18).Name)
	assert.Equal(t, "26-35", tables.AgeBracketFor(28).Name)
	assert.Equal(t, "60+", tables.AgeBracketFor(95).Name)
}

func TestValidateProfile(t *testing.T) {
	assert.NoError(t, budget.ValidateProfile(profile(50000, "Mumbai", 1, 18)))
	assert.ErrorIs(t, budget.ValidateProfile(profile(0, "Mumbai", 1, 30)), budget.ErrInvalidProfile)
	assert.ErrorIs(t, budget.ValidateProfile(profile(-5, "Mumbai", 1, 30)), budget.ErrInvalidProfile)
	assert.ErrorIs(t, budget.ValidateProfile(profile(50000, "Mumbai", 0, 30)), budget.ErrInvalidProfile)
	assert.ErrorIs(t, budget.ValidateProfile(profile(50000, "Mumbai", 2, 17)), budget.ErrInvalidProfile)
}

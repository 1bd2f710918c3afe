package tables_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/finanzas-api/internal/domain/budget"
	"github.com/jhoicas/finanzas-api/internal/infrastructure/tables"
)

const override = `
[[categories]]
id = "housing"
base_percentage = 0.5
description = "Vivienda"

[[categories]]
id = "savings"
base_percentage = 0.5
description = "Ahorro"

[cities.Goa]
housing = 1.2

[city_aliases]
panaji = "goa"
`

func TestParse_SuperponeSoloLasSeccionesPresentes(t *testing.T) {
	tb, err := tables.Parse([]byte(override))
	require.NoError(t, err)

	assert.Equal(t, []string{"housing", "savings"}, tb.CategoryIDs())
	assert.Equal(t, "goa", tb.CityKey("Panaji"))
	assert.Equal(t, budget.DefaultCity, tb.CityKey("Mumbai"), "cities reemplaza la tabla completa")
	assert.Equal(t, budget.DefaultTables().IncomeBrackets, tb.IncomeBrackets, "secciones ausentes conservan el default")

	a, err := budget.NewEngine(tb).Allocate(budget.Profile{
		MonthlyIncome: decimal.NewFromInt(40000), City: "Goa", FamilySize: 2, Age: 30,
	}, nil)
	require.NoError(t, err)
	assert.Len(t, a.Items, 2)
}

func TestParse_Errores(t *testing.T) {
	cases := map[string]string{
		"clave desconocida":      "[foo]\nbar = 1\n",
		"porcentaje negativo":    "[[categories]]\nid = \"x\"\nbase_percentage = -0.1\n",
		"suma cero":              "[[categories]]\nid = \"x\"\nbase_percentage = 0.0\n",
		"alias huérfano":         "[city_aliases]\nfoo = \"atlantis\"\n",
		"family_size no int":     "[family_size.uno]\nhousing = 1.0\n",
		"family_size incompleto": "[family_size.1]\nhousing = 1.0\n",
		"family_size negativo":   "[family_size.1]\nsavings = -2.0\n[family_size.2]\n[family_size.3]\n[family_size.4]\n",
		"ciudad negativa":        "[cities.goa]\nhousing = -1.0\n",
		"tramo ingreso negativo": "[[income_brackets]]\nname = \"x\"\nmin = 0.0\n[income_brackets.factors]\nfood = -0.5\n",
		"tramo edad negativo":    "[[age_brackets]]\nname = \"x\"\nmin_age = 18\n[age_brackets.factors]\nfood = -0.5\n",
		"límite min negativo":    "[family_bounds.savings]\nmin = -1.0\nmax = 1.3\n",
		"límites incompletos":    "[family_bounds.housing]\nmin = 0.8\nmax = 1.6\n",
		"toml inválido":          "[[categories]\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := tables.Parse([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestLoad_RutaVaciaYArchivo(t *testing.T) {
	tb, err := tables.Load("")
	require.NoError(t, err)
	assert.Equal(t, budget.DefaultTables().CategoryIDs(), tb.CategoryIDs())

	path := filepath.Join(t.TempDir(), "tables.toml")
	require.NoError(t, os.WriteFile(path, []byte(override), 0o600))
	tb, err = tables.Load(path)
	require.NoError(t, err)
	assert.Len(t, tb.Categories, 2)

	_, err = tables.Load(filepath.Join(t.TempDir(), "no-existe.toml"))
	assert.Error(t, err)
}

func TestParse_LimitesCompletosParaFamiliasGrandes(t *testing.T) {
	// Mismas categorías por defecto; basta con que cada una que varía entre 3 y 4 tenga límites.
	tb, err := tables.Parse([]byte(`
[family_bounds]
housing        = { min = 0.8, max = 1.6 }
food           = { min = 0.8, max = 2.0 }
transportation = { min = 0.8, max = 1.3 }
utilities      = { min = 0.8, max = 1.6 }
healthcare     = { min = 0.8, max = 1.9 }
education      = { min = 0.5, max = 2.0 }
entertainment  = { min = 0.5, max = 1.2 }
shopping       = { min = 0.7, max = 1.1 }
savings        = { min = 0.4, max = 1.3 }
`))
	require.NoError(t, err)
	_, ok := tb.FamilyBounds["personal_care"]
	assert.False(t, ok, "personal_care no varía y no necesita límites")

	a, err := budget.NewEngine(tb).Allocate(budget.Profile{
		MonthlyIncome: decimal.NewFromInt(50000), City: "Mumbai", FamilySize: 20, Age: 30,
	}, nil)
	require.NoError(t, err)
	for _, it := range a.Items {
		assert.False(t, it.Amount.IsNegative(), it.Category)
	}
}

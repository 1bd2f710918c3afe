package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/finanzas-api/internal/domain/budget"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAllocate_JSONCoincideConElMotor(t *testing.T) {
	out, err := run(t, "allocate", "--income", "85000", "--city", "Pune", "--family-size", "3", "--age", "34", "--json")
	require.NoError(t, err)

	var got budget.Allocation
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	want, err := budget.Allocate(budget.Profile{
		MonthlyIncome: decimal.NewFromInt(85000), City: "Pune", FamilySize: 3, Age: 34,
	}, nil)
	require.NoError(t, err)
	require.Len(t, got.Items, len(want.Items))
	for i := range want.Items {
		assert.Equal(t, want.Items[i].Category, got.Items[i].Category)
		assert.True(t, want.Items[i].Amount.Equal(got.Items[i].Amount), want.Items[i].Category)
	}
}

func TestAllocate_Tabla(t *testing.T) {
	out, err := run(t, "allocate", "--income", "50000", "--city", "Delhi", "--family-size", "2", "--age", "29")
	require.NoError(t, err)
	assert.Contains(t, out, "housing")
	assert.Contains(t, out, "savings")
	assert.Contains(t, out, "Total")
}

func TestAllocate_Errores(t *testing.T) {
	_, err := run(t, "allocate", "--income", "mucho")
	assert.Error(t, err)

	_, err = run(t, "allocate", "--income", "50000", "--age", "10")
	assert.ErrorIs(t, err, budget.ErrInvalidProfile)

	_, err = run(t, "allocate", "--city", "Delhi")
	assert.Error(t, err, "--income es obligatorio")
}

func TestCategories_ConTablasPropias(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[categories]]
id = "rent"
base_percentage = 0.6
description = "Arriendo"

[[categories]]
id = "savings"
base_percentage = 0.4
description = "Ahorro"
`), 0o600))

	out, err := run(t, "categories", "--tables", path)
	require.NoError(t, err)
	assert.Contains(t, out, "rent")
	assert.Contains(t, out, "Arriendo")
	assert.NotContains(t, out, "housing")
}

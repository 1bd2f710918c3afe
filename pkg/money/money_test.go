package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/finanzas-api/pkg/money"
)

func TestFormatINR(t *testing.T) {
	assert.Equal(t, "₹0", money.FormatINR(decimal.Zero))
	assert.Equal(t, "₹999", money.FormatINR(decimal.NewFromInt(999)))
	assert.Contains(t, money.FormatINR(decimal.NewFromInt(1234)), "1,234")
	assert.Equal(t, "₹13", money.FormatINR(decimal.RequireFromString("12.6")))
	assert.Equal(t, "-₹500", money.FormatINR(decimal.NewFromInt(-500)))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "23.5%", money.FormatPercent(0.235))
	assert.Equal(t, "0.0%", money.FormatPercent(0))
}

// Package money formatea montos en rupias con agrupación india (1,00,000).
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR formatea un monto redondeado a rupias enteras, ej: "₹1,25,000".
func FormatINR(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	return sign + "₹" + printer.Sprint(number.Decimal(rounded.IntPart()))
}

// FormatPercent formatea una fracción 0–1 como porcentaje con un decimal, ej: "23.5%".
func FormatPercent(fraction float64) string {
	return printer.Sprintf("%.1f%%", fraction*100)
}

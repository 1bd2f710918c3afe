package budget

import (
	"fmt"
	"time"
)

// MonthLayout formato de los meses de presupuesto.
const MonthLayout = "2006-01"

// MonthOf devuelve el mes (YYYY-MM) de t.
func MonthOf(t time.Time) string {
	return t.Format(MonthLayout)
}

// MonthRange devuelve [inicio, fin) del mes en UTC.
func MonthRange(month string) (time.Time, time.Time, error) {
	start, err := time.Parse(MonthLayout, month)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("mes inválido %q (formato YYYY-MM): %w", month, err)
	}
	return start, start.AddDate(0, 1, 0), nil
}

// Package pdf genera el reporte mensual de presupuesto en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Usuario + email     │  Mes + fecha de emisión      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PERFIL: ingreso / ciudad / hogar / edad                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Categoría | % | Asignado | Gastado | Saldo          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Presupuesto / Gastado / Ahorro                    │
//	│  CONSEJOS (si hay)                                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/finanzas-api/internal/application/budgeting"
	"github.com/jhoicas/finanzas-api/pkg/money"
)

var _ budgeting.ReportGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa budgeting.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	now func() time.Time
}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator {
	return &MarotoReportGenerator{now: time.Now}
}

// GenerateBudgetReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateBudgetReport(_ context.Context, r *budgeting.BudgetReport) ([]byte, error) {
	if r == nil || r.Budget == nil {
		return nil, fmt.Errorf("pdf: reporte sin presupuesto")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Presupuesto "+r.Budget.Month, true).
		WithAuthor(r.UserName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(profileRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(r.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(r))

	if advice := strings.TrimSpace(r.Budget.Advice); advice != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(adviceRows(advice)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r *budgeting.BudgetReport, now time.Time) core.Row {
	title := "Presupuesto " + r.Budget.Month
	if r.Budget.Customized {
		title += " (personalizado)"
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(r.UserName, "—"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(r.Email, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido: "+now.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func profileRow(r *budgeting.BudgetReport) core.Row {
	b := r.Budget
	return row.New(12).Add(
		col.New(12).Add(
			text.New("PERFIL", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("Ingreso mensual: %s   |   Ciudad: %s   |   Hogar: %d   |   Edad: %d",
				money.FormatINR(b.MonthlyIncome), nonEmpty(b.City, "—"), b.FamilySize, b.Age,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Categoría", 4, align.Left),
		h("%", 1, align.Right),
		h("Asignado", 2, align.Right),
		h("Gastado", 2, align.Right),
		h("Saldo", 3, align.Right),
	)
}

// tableRows una fila por categoría; saldo negativo en rojo.
func tableRows(lines []budgeting.ReportLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		remaining := l.Remaining()
		remainingProps := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
		if remaining.IsNegative() {
			remainingProps.Color = colorRed
			remainingProps.Style = fontstyle.Bold
		}
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(l.Category, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(money.FormatPercent(l.Percentage), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(money.FormatINR(l.Allocated), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(money.FormatINR(l.Spent), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(money.FormatINR(remaining), remainingProps)),
		))
	}
	return result
}

func totalsRow(r *budgeting.BudgetReport) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	b := r.Budget
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Presupuesto:"),
			label("Gastado:"),
			label("Ahorro:"),
		),
		col.New(3).Add(
			value(money.FormatINR(b.TotalBudget)),
			value(money.FormatINR(r.TotalSpent)),
			value(fmt.Sprintf("%s (%s)", money.FormatINR(b.SavingsAmount), money.FormatPercent(b.SavingsPercentage))),
		),
	)
}

func adviceRows(advice string) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("CONSEJOS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
	}
	for _, l := range strings.Split(advice, "\n") {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New(l, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 2}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/finanzas-api/internal/domain/budget"
	"github.com/jhoicas/finanzas-api/internal/infrastructure/tables"
	"github.com/jhoicas/finanzas-api/pkg/money"
)

func allocateCmd() *cobra.Command {
	var (
		income     string
		city       string
		familySize int
		age        int
		asJSON     bool
	)
	cmd := &cobra.Command{
		Use:   "allocate",
		Short: "Calcula la asignación por categoría para un perfil",
		Example: `  budgetctl allocate --income 85000 --city Pune --family-size 3 --age 34
  budgetctl allocate --income 40000 --city Mumbai --family-size 1 --age 25 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			amount, err := decimal.NewFromString(strings.TrimSpace(income))
			if err != nil {
				return fmt.Errorf("--income inválido: %q", income)
			}
			profile := budget.Profile{MonthlyIncome: amount, City: city, FamilySize: familySize, Age: age}
			if err := budget.ValidateProfile(profile); err != nil {
				return err
			}

			path, _ := cmd.Flags().GetString("tables")
			tbl, err := tables.Load(path)
			if err != nil {
				return err
			}
			alloc, err := budget.NewEngine(tbl).Allocate(profile, nil)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(alloc)
			}
			fmt.Fprintln(out, renderAllocation(profile, alloc))
			return nil
		},
	}
	cmd.Flags().StringVar(&income, "income", "", "ingreso mensual en INR")
	cmd.Flags().StringVar(&city, "city", "", "ciudad de residencia")
	cmd.Flags().IntVar(&familySize, "family-size", 1, "personas en el hogar")
	cmd.Flags().IntVar(&age, "age", 30, "edad")
	cmd.Flags().BoolVar(&asJSON, "json", false, "salida en JSON")
	_ = cmd.MarkFlagRequired("income")
	return cmd
}

func renderAllocation(p budget.Profile, a *budget.Allocation) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Presupuesto mensual " + money.FormatINR(a.TotalBudget)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s (%s)  %s %d  %s %d\n",
		labelStyle.Render("Ciudad:"), p.City, a.CityKey,
		labelStyle.Render("Familia:"), p.FamilySize,
		labelStyle.Render("Edad:"), p.Age)
	fmt.Fprintf(&b, "%s %s  %s %s\n\n",
		labelStyle.Render("Tramo ingreso:"), a.IncomeBracket,
		labelStyle.Render("Tramo edad:"), a.AgeBracket)

	widths := []int{18, 10, 16}
	lines := []string{headerStyle.Render(row(widths, "Categoría", "%", "Monto"))}
	for _, it := range a.Items {
		lines = append(lines, row(widths, it.Category, money.FormatPercent(it.Percentage), money.FormatINR(it.Amount)))
	}
	lines = append(lines, headerStyle.Render(row(widths, "Total", "", money.FormatINR(a.AllocatedTotal()))))
	b.WriteString(boxStyle.Render(strings.Join(lines, "\n")))
	if a.SavingsAmount.IsPositive() {
		fmt.Fprintf(&b, "\n%s %s (%s)", labelStyle.Render("Ahorro:"),
			money.FormatINR(a.SavingsAmount), money.FormatPercent(a.SavingsPercentage))
	}
	return b.String()
}

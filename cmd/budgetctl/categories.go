package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/finanzas-api/internal/infrastructure/tables"
	"github.com/jhoicas/finanzas-api/pkg/money"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Lista las categorías y su porcentaje base",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("tables")
			tbl, err := tables.Load(path)
			if err != nil {
				return err
			}
			widths := []int{18, 8}
			lines := []string{headerStyle.Render(row(widths, "Categoría", "Base")) + "  " + headerStyle.Render("Descripción")}
			for _, c := range tbl.Categories {
				lines = append(lines, row(widths, c.ID, money.FormatPercent(c.BasePercentage))+"  "+labelStyle.Render(c.Description))
			}
			fmt.Fprintln(cmd.OutOrStdout(), boxStyle.Render(strings.Join(lines, "\n")))
			return nil
		},
	}
}

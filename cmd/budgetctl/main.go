// budgetctl calcula presupuestos desde la terminal con las mismas tablas que usa la API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "budgetctl",
		Short:         "Asignación de presupuesto mensual por categoría",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("tables", "", "archivo TOML que reemplaza las tablas por defecto")
	root.AddCommand(allocateCmd())
	root.AddCommand(categoriesCmd())
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		stop()
		os.Exit(1)
	}
}

package cli

import (
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tabula/internal/sqlite"
	"github.com/mesh-intelligence/tabula/pkg/functions"
	"github.com/mesh-intelligence/tabula/pkg/tabulated"
)

func newTabulateCmd(a *app) *cobra.Command {
	var (
		fn          string
		left, right float64
		count       int
		force       bool
	)
	cmd := &cobra.Command{
		Use:   "tabulate <name>",
		Short: "Sample a function into a new table",
		Long: "Tabulate samples a named function at evenly spaced x over [left, right]\n" +
			"and stores the result. Functions: " + strings.Join(functions.Names(), ", ") +
			" (log takes a base, as in log:2).",
		Example: "  tabula tabulate cosine --fn cos --left 0 --right 3.14159 --count 11",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := functions.Lookup(fn)
			if err != nil {
				return userError(err)
			}
			return a.withStore(func(s *sqlite.Store) error {
				t, err := tabulated.TabulateWith(a.factory, f, left, right, count)
				if err != nil {
					return err
				}
				info, err := saveNew(s, args[0], t, force)
				if err != nil {
					return err
				}
				return a.printTable(cmd.OutOrStdout(), info, t)
			})
		},
	}
	cmd.Flags().StringVar(&fn, "fn", "sin", "function to sample")
	cmd.Flags().Float64Var(&left, "left", 0, "left bound of the domain")
	cmd.Flags().Float64Var(&right, "right", math.Pi, "right bound of the domain")
	cmd.Flags().IntVar(&count, "count", 11, "number of points, at least 2")
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing table")
	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tabula/internal/sqlite"
	"github.com/mesh-intelligence/tabula/pkg/tabulated"
	"github.com/mesh-intelligence/tabula/pkg/types"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Display a table and its points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *sqlite.Store) error {
				info, err := s.Info(args[0])
				if err != nil {
					return err
				}
				t, err := s.Load(args[0], a.loadFactory())
				if err != nil {
					return err
				}
				if b := tabulated.BackendOf(t); b != "" {
					info.Backend = b
				}
				return a.printTable(cmd.OutOrStdout(), info, t)
			})
		},
	}
}

func newEvalCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <name> <x>...",
		Short: "Evaluate a table at one or more x",
		Long: "Eval prints the stored y for an exact x and the linear interpolation\n" +
			"between neighbours otherwise. Outside the domain the result is NaN.",
		Example: "  tabula eval cosine 0.5 1.5\n  tabula eval cosine -- -0.5",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			xs := make([]float64, 0, len(args)-1)
			for _, arg := range args[1:] {
				x, err := parseFloat("x", arg)
				if err != nil {
					return err
				}
				xs = append(xs, x)
			}
			return a.withStore(func(s *sqlite.Store) error {
				t, err := s.Load(args[0], a.loadFactory())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if a.flags.jsonMode {
					results := make([]pointView, 0, len(xs))
					for _, x := range xs {
						results = append(results, newPointView(types.NewPoint(x, t.Value(x))))
					}
					return printJSON(out, results)
				}
				for _, x := range xs {
					fmt.Fprintf(out, "%s\t%s\n", types.FormatFloat(x), types.FormatFloat(t.Value(x)))
				}
				return nil
			})
		},
	}
}

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "add <name> <x> <y>",
		Short:   "Insert a point at its ordered position",
		Example: "  tabula add cosine 0.05 0.9987\n  tabula add cosine -- -1 0.54",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := parseFloat("x", args[1])
			if err != nil {
				return err
			}
			y, err := parseFloat("y", args[2])
			if err != nil {
				return err
			}
			return a.withStore(func(s *sqlite.Store) error {
				info, t, err := a.editTable(s, args[0], func(t types.TabulatedFunction) error {
					return t.AddPoint(types.NewPoint(x, y))
				})
				if err != nil {
					return err
				}
				return a.printTable(cmd.OutOrStdout(), info, t)
			})
		},
	}
}

func newSetCmd(a *app) *cobra.Command {
	var x, y float64
	cmd := &cobra.Command{
		Use:   "set <name> <index> [--x X] [--y Y]",
		Short: "Overwrite the coordinates of one point",
		Long: "Set replaces x, y, or both at an index. A new x must stay strictly\n" +
			"between the neighbouring x values.",
		Example: "  tabula set cosine 3 --y 0.5\n  tabula set cosine 3 --x 0.95 --y -0.2",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			setX, setY := cmd.Flags().Changed("x"), cmd.Flags().Changed("y")
			if !setX && !setY {
				return userError(fmt.Errorf("nothing to set: pass --x, --y, or both"))
			}
			return a.withStore(func(s *sqlite.Store) error {
				info, t, err := a.editTable(s, args[0], func(t types.TabulatedFunction) error {
					switch {
					case setX && setY:
						return t.SetPoint(i, types.NewPoint(x, y))
					case setX:
						return t.SetX(i, x)
					default:
						return t.SetY(i, y)
					}
				})
				if err != nil {
					return err
				}
				return a.printTable(cmd.OutOrStdout(), info, t)
			})
		},
	}
	cmd.Flags().Float64Var(&x, "x", 0, "new x-coordinate")
	cmd.Flags().Float64Var(&y, "y", 0, "new y-coordinate")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name> <index>",
		Short: "Remove the point at an index",
		Long:  "Delete removes one point. A table keeps at least two points, so\ndeleting from a table of two fails.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			return a.withStore(func(s *sqlite.Store) error {
				info, t, err := a.editTable(s, args[0], func(t types.TabulatedFunction) error {
					return t.DeletePoint(i)
				})
				if err != nil {
					return err
				}
				return a.printTable(cmd.OutOrStdout(), info, t)
			})
		},
	}
}

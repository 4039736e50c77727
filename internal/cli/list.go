package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tabula/internal/sqlite"
	"github.com/mesh-intelligence/tabula/pkg/types"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *sqlite.Store) error {
				infos, err := s.List()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if a.flags.jsonMode {
					if infos == nil {
						infos = []types.TableInfo{}
					}
					return printJSON(out, infos)
				}
				if len(infos) == 0 {
					fmt.Fprintln(out, "no tables")
					return nil
				}
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "NAME\tBACKEND\tPOINTS\tUPDATED")
				for _, info := range infos {
					fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
						info.Name, info.Backend, info.Count, info.UpdatedAt.Local().Format(time.DateTime))
				}
				return tw.Flush()
			})
		},
	}
}

func newDropCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "drop <name>",
		Short: "Delete a stored table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *sqlite.Store) error {
				if err := s.Delete(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "dropped %s\n", args[0])
				return nil
			})
		},
	}
}

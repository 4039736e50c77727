package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tabula/internal/paths"
	"github.com/mesh-intelligence/tabula/internal/sqlite"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize tabula storage",
		Long:  "Create the configuration file and the data directory, then initialize the table store.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.withStore(func(*sqlite.Store) error { return nil }); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "config: %s\n", paths.ConfigFile(a.configDir))
			fmt.Fprintf(out, "data:   %s\n", a.config.DataDir)
			fmt.Fprintln(out, "tabula initialized successfully")
			return nil
		},
	}
}

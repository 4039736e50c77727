package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tabula/pkg/tabulated"
)

const modulePath = "github.com/mesh-intelligence/tabula"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the tabula version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "tabula v%s\nmodule: %s\n", tabulated.Version, modulePath)
			return nil
		},
	}
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/tabula/internal/codec"
	"github.com/mesh-intelligence/tabula/internal/sqlite"
)

func formatNames() string {
	names := make([]string, 0, len(codec.Formats()))
	for _, f := range codec.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

func newExportCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export <name> <file>",
		Short: "Write a table to a file",
		Long:  "Export writes a stored table to a file. Formats: " + formatNames() + ".",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := codec.ParseFormat(format)
			if err != nil {
				return userError(err)
			}
			return a.withStore(func(s *sqlite.Store) error {
				t, err := s.Load(args[0], a.loadFactory())
				if err != nil {
					return err
				}
				if err := codec.WriteFile(args[1], t, f); err != nil {
					return err
				}
				a.logger.Debug("table exported",
					zap.String("name", args[0]),
					zap.String("file", args[1]),
					zap.String("format", string(f)),
				)
				fmt.Fprintf(cmd.OutOrStdout(), "exported %s (%d points) to %s\n", args[0], t.Count(), args[1])
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", string(codec.FormatText), "file format")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	var (
		format string
		force  bool
	)
	cmd := &cobra.Command{
		Use:   "import <name> <file>",
		Short: "Read a table from a file",
		Long:  "Import reads a table from a file and stores it. Formats: " + formatNames() + ".",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := codec.ParseFormat(format)
			if err != nil {
				return userError(err)
			}
			t, err := codec.ReadFile(args[1], f, a.factory)
			if err != nil {
				return classify(err)
			}
			return a.withStore(func(s *sqlite.Store) error {
				info, err := saveNew(s, args[0], t, force)
				if err != nil {
					return err
				}
				return a.printTable(cmd.OutOrStdout(), info, t)
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", string(codec.FormatText), "file format")
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing table")
	return cmd
}

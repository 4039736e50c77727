// Package cli implements the tabula command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/tabula/internal/paths"
	"github.com/mesh-intelligence/tabula/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	backend   string
	logLevel  string
	jsonMode  bool
}

// app is the state shared by one invocation of the root command.
type app struct {
	flags     rootFlags
	configDir string
	config    types.Config
	factory   types.Factory
	logger    *zap.Logger
}

// NewRootCmd creates the top-level "tabula" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "tabula",
		Short: "Store and query tabulated functions",
		Long: "Tabula keeps named tables of (x, y) samples, answers point queries by\n" +
			"exact lookup or linear interpolation, and edits tables point by point.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/"+paths.DefaultDataDirName+")")
	pf.StringVar(&a.flags.backend, "backend", "", "table backend: array or linked (default: from config)")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error (default: from config)")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newTabulateCmd(a),
		newShowCmd(a),
		newEvalCmd(a),
		newAddCmd(a),
		newSetCmd(a),
		newDeleteCmd(a),
		newListCmd(a),
		newDropCmd(a),
		newExportCmd(a),
		newImportCmd(a),
	)
	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(NewRootCmd(), os.Args[1:], os.Stderr))
}

// run executes root with args and returns the process exit code.
func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(stderr, "Error:", err)
	return exitCode(err)
}

// setup loads the configuration, then builds the logger and factory.
func (a *app) setup(cmd *cobra.Command) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}

	cfg := types.Config{
		Backend:  firstNonEmpty(a.flags.backend, v.GetString(cfgKeyBackend)),
		LogLevel: firstNonEmpty(a.flags.logLevel, v.GetString(cfgKeyLogLevel)),
	}
	cfg.DataDir, err = paths.ResolveDataDir(a.flags.dataDir, v.GetString(cfgKeyDataDir), configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	if err := cfg.Validate(); err != nil {
		return userError(fmt.Errorf("invalid configuration: %w", err))
	}

	if a.logger == nil {
		a.logger, err = newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
		if err != nil {
			return userError(err)
		}
	}
	if a.factory, err = factoryFor(cfg.Backend); err != nil {
		return userError(err)
	}
	a.configDir = configDir
	a.config = cfg
	a.logger.Debug("configuration loaded",
		zap.String("config_dir", configDir),
		zap.String("data_dir", cfg.DataDir),
		zap.String("backend", cfg.Backend),
	)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// exitErr carries an exit code through cobra's error return.
type exitErr struct {
	code int
	err  error
}

func (e *exitErr) Error() string { return e.err.Error() }
func (e *exitErr) Unwrap() error { return e.err }

func userError(err error) error { return &exitErr{code: exitUserError, err: err} }
func sysError(err error) error  { return &exitErr{code: exitSysError, err: err} }

// exitCode maps an error to a process exit code. Errors without an explicit
// code are usage errors from cobra and count as user errors.
func exitCode(err error) int {
	var e *exitErr
	if errors.As(err, &e) {
		return e.code
	}
	return exitUserError
}

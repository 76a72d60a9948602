// Package cli implements the recipecost command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/recipecost/internal/logging"
	"github.com/mesh-intelligence/recipecost/internal/memory"
	"github.com/mesh-intelligence/recipecost/internal/paths"
	"github.com/mesh-intelligence/recipecost/pkg/store"
	"github.com/mesh-intelligence/recipecost/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// errUsage marks command-line mistakes so they exit with exitUserError.
var errUsage = errors.New("usage error")

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	backend   string
	jsonMode  bool
}

// app carries the state shared by one command invocation.
type app struct {
	flags     rootFlags
	configDir string
	v         *viper.Viper
	log       *zap.Logger
}

// NewRootCmd creates the top-level "recipecost" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "recipecost",
		Short: "Recipe costing for kitchens and bars",
		Long: "recipecost keeps an ingredient catalogue and a recipe book, and derives\n" +
			"each recipe's total cost, cost per serving and profit margin.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", errUsage, err)
	})

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/"+paths.DefaultDataDirName+")")
	root.PersistentFlags().StringVar(&a.flags.backend, "backend", "", "storage backend: memory, sqlite or postgres")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(
		newVersionCmd(),
		a.newInitCmd(),
		a.newServeCmd(),
		a.newSeedCmd(),
		a.newReportCmd(),
		a.newExportCmd(),
		a.newImportCmd(),
		a.newIngredientCmd(),
		a.newRecipeCmd(),
	)
	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	err := root.ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, "recipecost:", err)
	}
	os.Exit(exitCode(err))
}

// exitCode maps a command error to a process exit code. Bad input and
// missing entities are the user's problem; everything else is ours.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, errUsage),
		errors.Is(err, types.ErrInvalidData),
		errors.Is(err, types.ErrInvalidID),
		errors.Is(err, types.ErrNotFound),
		errors.Is(err, types.ErrIngredientInUse):
		return exitUserError
	default:
		return exitSysError
	}
}

// setup resolves the config directory, loads config.yaml and builds the
// logger before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" {
		return nil
	}
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	log, err := logging.New(v.GetString(cfgKeyLogLevel), v.GetBool(cfgKeyLogJSON))
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	a.configDir = configDir
	a.v = v
	a.log = log
	return nil
}

// storeConfig assembles the backend configuration: flags win over
// config.yaml and RECIPECOST_ environment variables.
func (a *app) storeConfig() (types.Config, error) {
	backend := a.v.GetString(cfgKeyBackend)
	if a.flags.backend != "" {
		backend = a.flags.backend
	}
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.v.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	cfg := types.Config{Backend: backend, DataDir: dataDir, DSN: a.v.GetString(cfgKeyDSN)}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%w: %w", errUsage, err)
	}
	return cfg, nil
}

// openStore opens the configured store, seeding it when seed is enabled.
// The caller must Close it.
func (a *app) openStore() (types.Store, error) {
	cfg, err := a.storeConfig()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(cfg, a.log)
	if err != nil {
		return nil, err
	}
	if a.v.GetBool(cfgKeySeed) {
		n, err := memory.Seed(st)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("seed store: %w", err)
		}
		if n > 0 {
			a.log.Info("seeded sample ingredients", zap.Int("count", n))
		}
	}
	return st, nil
}

// withStore opens the store, runs fn and closes the store.
func (a *app) withStore(fn func(st types.Store) error) error {
	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

// out is the command's standard output.
func out(cmd *cobra.Command) io.Writer { return cmd.OutOrStdout() }

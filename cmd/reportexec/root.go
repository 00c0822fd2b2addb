package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kiln-build/reportexec/internal/config"
	"github.com/kiln-build/reportexec/internal/observability"
)

var (
	configFile string
	pluginsDir string
	verbose    bool

	appConfig *config.Config
	appLogger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "reportexec",
	Short: "reportexec - report execution resolver for kiln builds",
	Long: `reportexec resolves, configures, and prepares report plugin
executions: it determines plugin versions, expands report sets into
goals, merges configuration across its three levels, filters goals down
to report-capable ones, and runs declared forked executions, producing
the ordered execution plan the rendering stage consumes.`,
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: $HOME/.reportexec/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&pluginsDir, "plugins-dir", "", "plugin repository directory (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(goalsCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command with signal handling.
func Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

// loadConfig runs before any command to load configuration and build
// the logger.
func loadConfig(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" || cmd.Name() == "help" {
		return nil
	}

	path := configFile
	if path == "" {
		path = config.DefaultConfigPath(config.DefaultHomeDir())
	}

	loader := config.NewLoader(config.NewValidator())
	cfg, err := loader.LoadWithDefaults(path)
	if err != nil {
		return err
	}

	if pluginsDir != "" {
		cfg.Plugins.RepositoryDir = pluginsDir
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	appConfig = cfg
	appLogger = observability.NewLogger(cfg.Logging, os.Stderr)
	return nil
}

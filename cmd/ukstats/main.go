package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ukstats/internal/config"
	"ukstats/internal/store"
)

var (
	verbose bool
	dataDir string

	logger *zap.SugaredLogger
	cfg    *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "ukstats",
	Short: "UK mortality, population and fiscal statistics pipeline",
	Long: `ukstats compiles two centuries of UK mortality and population
statistics from ONS source workbooks, harmonizes cause-of-death codes
across ICD revisions, and publishes rates, dashboards and fiscal series.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapCfg := zap.NewProductionConfig()
		zapCfg.Encoding = "console"
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		base, err := zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = base.Sugar()

		cfg, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if dataDir != "" {
			cfg.Data.DataDir = dataDir
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// openStore resolves the data directory and opens the database.
func openStore() (*store.Store, string, error) {
	dir, err := config.EnsureDataDir(cfg)
	if err != nil {
		return nil, "", fmt.Errorf("ensure data directory: %w", err)
	}
	st, err := store.New(config.DatabasePath(cfg, dir))
	if err != nil {
		return nil, "", err
	}
	return st, dir, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (overrides config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

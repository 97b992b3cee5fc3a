package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"odebench/internal/config"
	"odebench/internal/dataset"
)

var (
	// Global flags
	verbose    bool
	configPath string
	dataPath   string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "odebench",
	Short: "ODE parameter estimation benchmark toolchain",
	Long: `odebench recomputes the metrics behind the ODE parameter estimation
benchmark, audits the published LaTeX tables against the dataset, and
regenerates the paper's tables, figures and summary statistics.

Every number flows through a single metrics package, so the audit, the
tables and the figures cannot disagree with each other.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (YAML, merged over defaults)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Dataset CSV (overrides config)")

	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(figuresCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(buildCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dataPath != "" {
		cfg.Dataset.CSV = dataPath
	}
	return cfg, nil
}

// loadTable loads the dataset, going through the sqlite trial cache when
// one is configured: a populated cache is read directly, otherwise the
// CSV is parsed and the cache filled for next time.
func loadTable(cfg *config.Config) (dataset.Table, error) {
	if cfg.Dataset.Cache != "" {
		if _, err := os.Stat(cfg.Dataset.Cache); err == nil {
			cache, err := dataset.OpenCache(cfg.Dataset.Cache)
			if err != nil {
				return nil, fmt.Errorf("open trial cache: %w", err)
			}
			defer cache.Close()
			t, err := cache.Load()
			if err != nil {
				return nil, fmt.Errorf("read trial cache: %w", err)
			}
			logger.Info("dataset loaded from cache",
				zap.String("cache", cfg.Dataset.Cache),
				zap.Int("rows", len(t)))
			return t, nil
		}
	}

	t, report, err := dataset.Load(cfg.Dataset.CSV)
	if err != nil {
		return nil, err
	}
	logger.Info("dataset loaded",
		zap.String("csv", cfg.Dataset.CSV),
		zap.Int("rows", report.Rows),
		zap.Int("skipped", report.Skipped))

	if cfg.Dataset.Cache != "" {
		cache, err := dataset.OpenCache(cfg.Dataset.Cache)
		if err != nil {
			logger.Warn("trial cache unavailable", zap.Error(err))
			return t, nil
		}
		defer cache.Close()
		if err := cache.Put(t); err != nil {
			logger.Warn("trial cache write failed", zap.Error(err))
		}
	}
	return t, nil
}

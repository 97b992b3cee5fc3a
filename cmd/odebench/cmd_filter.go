package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"odebench/internal/dataset"
)

// filterCmd removes non-identifiable parameters from the raw dataset
var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter non-identifiable parameters from the raw dataset",
	Long: `Reads the raw combined results, strips structurally non-identifiable
quantities from each trial's estimate and true states, and writes the
filtered CSV every other command consumes.`,
	RunE: runFilter,
}

func runFilter(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Dataset.RawCSV == "" {
		return fmt.Errorf("dataset.raw_csv is not configured")
	}

	t, report, err := dataset.Load(cfg.Dataset.RawCSV)
	if err != nil {
		return err
	}
	logger.Info("raw dataset loaded",
		zap.String("csv", cfg.Dataset.RawCSV),
		zap.Int("rows", report.Rows),
		zap.Int("skipped", report.Skipped))

	filtered, changed := dataset.FilterNonIdentifiable(t, dataset.NonIdentifiable)
	if err := dataset.Save(cfg.Dataset.CSV, filtered); err != nil {
		return err
	}

	fmt.Printf("filtered %d rows (%d modified) -> %s\n", len(filtered), changed, cfg.Dataset.CSV)
	return nil
}

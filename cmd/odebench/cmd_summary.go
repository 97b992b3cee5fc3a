package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"odebench/internal/summary"
)

// summaryCmd regenerates the summary statistics
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Generate summary statistics",
	Long: `Computes overall performance per method, mean error per system, and
mean error per noise level, writing three CSVs and a markdown digest.`,
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	t, err := loadTable(cfg)
	if err != nil {
		return err
	}

	paths, err := summary.WriteAll(t, cfg)
	if err != nil {
		return err
	}
	for _, path := range paths {
		fmt.Printf("wrote %s\n", path)
	}
	return nil
}

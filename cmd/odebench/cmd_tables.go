package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"odebench/internal/latex"
)

// tablesCmd regenerates the paper tables
var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Regenerate the paper's LaTeX tables",
	Long: `Recomputes all four tables from the dataset with run-level
aggregation and writes them to the configured tables directory.`,
	RunE: runTables,
}

func runTables(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	t, err := loadTable(cfg)
	if err != nil {
		return err
	}

	paths, err := latex.WriteAll(t, cfg)
	if err != nil {
		return err
	}
	for _, path := range paths {
		fmt.Printf("wrote %s\n", path)
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"odebench/internal/figures"
)

// figuresCmd regenerates the paper figures
var figuresCmd = &cobra.Command{
	Use:   "figures",
	Short: "Regenerate the paper's figures",
	Long: `Renders the pareto frontier, noise degradation curves, per-system
heatmap and success rate curves from the dataset, each as PNG and PDF.`,
	RunE: runFigures,
}

func runFigures(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	t, err := loadTable(cfg)
	if err != nil {
		return err
	}

	paths, err := figures.WriteAll(t, cfg)
	if err != nil {
		return err
	}
	for _, path := range paths {
		fmt.Printf("wrote %s\n", path)
	}
	return nil
}

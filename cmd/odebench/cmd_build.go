package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"odebench/internal/paper"
)

// buildCmd runs the full data-to-PDF pipeline
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Run the full build pipeline to a compiled paper",
	Long: `Runs every step in order: filter the raw dataset, regenerate tables
and figures, copy them into the paper tree, and compile the LaTeX
sources with pdflatex and bibtex.

Presentation-only failures are reported as warnings; the build succeeds
when paper.pdf comes out the other end.`,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	result, err := paper.New(cfg, logger).Run(cmd.Context())
	for _, warning := range result.Warnings {
		fmt.Printf("warning: %s\n", warning)
	}
	if err != nil {
		return err
	}

	fmt.Printf("build %s complete: %s\n", result.BuildID, result.PDF)
	return nil
}

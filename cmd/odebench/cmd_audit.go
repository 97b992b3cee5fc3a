package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"odebench/internal/audit"
)

// auditCmd checks the published tables against recomputed metrics
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit the published tables against the dataset",
	Long: `Recomputes every value of the four published LaTeX tables from the
dataset and reports cell-by-cell agreement.

Percent metrics must match within 0.1, wall times within 1.0 seconds.
Exits non-zero when any cell disagrees.`,
	RunE: runAudit,
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	t, err := loadTable(cfg)
	if err != nil {
		return err
	}

	report, err := audit.Run(t, cfg)
	if err != nil {
		return err
	}
	audit.Render(os.Stdout, report, audit.DefaultStyles())

	if !report.Pass() {
		return fmt.Errorf("audit found %d discrepancies", report.Failures())
	}
	return nil
}

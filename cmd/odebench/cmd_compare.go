package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"odebench/internal/metrics"
)

// compareCmd decides which aggregation method produced the paper values
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare aggregation methods against the paper's inline values",
	Long: `Evaluates both candidate aggregation rules for every method and
compares them to the median errors quoted inline in the paper:

  Method A: mean error per trial, then the median across trials
  Method B: median of the pooled per-parameter error distribution

Failed trials carry the 10^6 penalty under both rules.`,
	RunE: runCompare,
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	t, err := loadTable(cfg)
	if err != nil {
		return err
	}

	var comparisons []metrics.Comparison
	for _, run := range cfg.Labels.MethodOrder {
		paper, ok := cfg.Compare.PaperMedians[run]
		if !ok {
			continue
		}
		c := metrics.Compare(t, run, paper)
		comparisons = append(comparisons, c)

		fmt.Printf("\n%s\n", cfg.Labels.MethodName(run))
		fmt.Printf("  Method A (per-run median):       %10.6f%%  (%d values)\n", c.MethodA, c.NValuesA)
		fmt.Printf("  Method B (per-parameter pooled): %10.6f%%  (%d values)\n", c.MethodB, c.NValuesB)
		fmt.Printf("  Paper value:                     %10.2f%%\n", c.PaperValue)
		fmt.Printf("  Closer: Method %s\n", c.Closer)
	}

	allA, allB := true, true
	for _, c := range comparisons {
		allA = allA && c.Closer == "A"
		allB = allB && c.Closer == "B"
	}
	fmt.Println()
	switch {
	case len(comparisons) == 0:
		return fmt.Errorf("no paper values configured under compare.paper_medians")
	case allA:
		fmt.Println("Method A (per-run median) matches all paper values.")
	case allB:
		fmt.Println("Method B (per-parameter pooling) matches all paper values.")
	default:
		fmt.Println("Mixed results: neither method consistently matches the paper values.")
	}
	return nil
}

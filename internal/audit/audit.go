// Package audit recomputes every table value from the dataset and checks
// it against the numbers published in the paper's LaTeX tables. The
// published tables used pooled aggregation, so the audit does too.
package audit

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"odebench/internal/config"
	"odebench/internal/dataset"
	"odebench/internal/latex"
	"odebench/internal/metrics"
)

// Published table file names under the paper's tables directory.
const (
	PublishedTable1      = "table_1_overall_performance.tex"
	PublishedTable2      = "table_2_performance_by_noise.tex"
	PublishedLowNoise    = "system_performance_low_noise.tex"
	PublishedHighNoise   = "system_performance_high_noise.tex"
	systemTableLowNoise  = 1e-6
	systemTableHighNoise = 1e-2
)

// Tolerances: percent metrics must agree to a tenth of a point, wall
// times to a second. A check passes when the difference is strictly
// below the tolerance.
const (
	TolerancePct  = 0.1
	ToleranceTime = 1.0
)

// Check compares one published cell against its recomputed value.
type Check struct {
	Label     string
	Published float64
	Computed  float64
	Diff      float64
	Tolerance float64
	Match     bool
}

// Group is the set of checks sharing one table row heading, usually a
// method or a system.
type Group struct {
	Heading string
	Checks  []Check
}

// TableResult holds the audit outcome of one table.
type TableResult struct {
	Title  string
	Groups []Group
}

// Pass reports whether every check of the table matched.
func (r TableResult) Pass() bool {
	for _, g := range r.Groups {
		for _, c := range g.Checks {
			if !c.Match {
				return false
			}
		}
	}
	return true
}

// Failures counts the checks that did not match.
func (r TableResult) Failures() int {
	n := 0
	for _, g := range r.Groups {
		for _, c := range g.Checks {
			if !c.Match {
				n++
			}
		}
	}
	return n
}

// Report is the audit outcome over all four tables.
type Report struct {
	Tables []TableResult
}

// Pass reports whether every table passed.
func (r Report) Pass() bool {
	for _, t := range r.Tables {
		if !t.Pass() {
			return false
		}
	}
	return true
}

// Failures counts failed checks across all tables.
func (r Report) Failures() int {
	n := 0
	for _, t := range r.Tables {
		n += t.Failures()
	}
	return n
}

// Run audits all four published tables against the dataset.
func Run(t dataset.Table, cfg *config.Config) (Report, error) {
	table1, err := Table1(t, cfg)
	if err != nil {
		return Report{}, err
	}
	table2, err := Table2(t, cfg)
	if err != nil {
		return Report{}, err
	}
	lowNoise, err := SystemTable(t, cfg, systemTableLowNoise,
		PublishedLowNoise, "Table 3 (System Performance Low Noise)")
	if err != nil {
		return Report{}, err
	}
	highNoise, err := SystemTable(t, cfg, systemTableHighNoise,
		PublishedHighNoise, "Table 4 (System Performance High Noise)")
	if err != nil {
		return Report{}, err
	}
	return Report{Tables: []TableResult{table1, table2, lowNoise, highNoise}}, nil
}

// Table1 audits the overall-performance table: pooled success rates,
// pooled median error, and mean wall time per method.
func Table1(t dataset.Table, cfg *config.Config) (TableResult, error) {
	path := filepath.Join(cfg.Paper.Tables, PublishedTable1)
	published, err := latex.ExtractTable1(path, cfg.Labels.MethodNames)
	if err != nil {
		return TableResult{}, fmt.Errorf("audit: table 1: %w", err)
	}

	result := TableResult{Title: "Table 1 (Overall Performance)"}
	for _, run := range cfg.Labels.MethodOrder {
		computed := metrics.Summarize(t, run)
		pub, ok := published[run]
		if !ok {
			nan := math.NaN()
			pub = latex.Table1Values{SR1: nan, SR10: nan, SR50: nan, MedianError: nan, MeanTime: nan}
		}
		result.Groups = append(result.Groups, Group{
			Heading: cfg.Labels.MethodName(run),
			Checks: []Check{
				check("sr_1", pub.SR1, computed.SR1, TolerancePct),
				check("sr_10", pub.SR10, computed.SR10, TolerancePct),
				check("sr_50", pub.SR50, computed.SR50, TolerancePct),
				check("median_error", pub.MedianError, computed.MedianErrorPct, TolerancePct),
				check("mean_time", pub.MeanTime, computed.MeanTime, ToleranceTime),
			},
		})
	}
	return result, nil
}

// Table2 audits the by-noise table: pooled median error per method at
// each noise level.
func Table2(t dataset.Table, cfg *config.Config) (TableResult, error) {
	path := filepath.Join(cfg.Paper.Tables, PublishedTable2)
	published, err := latex.ExtractTable2(path, cfg.Labels.MethodNames)
	if err != nil {
		return TableResult{}, fmt.Errorf("audit: table 2: %w", err)
	}

	noiseLevels := t.NoiseLevels()
	result := TableResult{Title: "Table 2 (Performance by Noise)"}
	for _, run := range cfg.Labels.MethodOrder {
		computed := metrics.MedianPctByNoise(t, run)
		pubRow := published[run]
		group := Group{Heading: cfg.Labels.MethodName(run)}
		for i, noise := range noiseLevels {
			pub := math.NaN()
			if i < len(pubRow) {
				pub = pubRow[i]
			}
			group.Checks = append(group.Checks,
				check(cfg.Labels.NoiseLabel(noise), pub, computed[noise], TolerancePct))
		}
		result.Groups = append(result.Groups, group)
	}
	return result, nil
}

// SystemTable audits one per-system table at the given noise level. The
// published column order follows cfg.Labels.SystemTableMethods.
func SystemTable(t dataset.Table, cfg *config.Config, noise float64, file, title string) (TableResult, error) {
	path := filepath.Join(cfg.Paper.Tables, file)
	systems := t.Systems()
	displays := make([]string, len(systems))
	for i, system := range systems {
		displays[i] = cfg.Labels.SystemName(system)
	}
	published, err := latex.ExtractSystemTable(path, displays)
	if err != nil {
		return TableResult{}, fmt.Errorf("audit: %s: %w", file, err)
	}

	computed := make(map[string]map[string]float64, len(cfg.Labels.SystemTableMethods))
	for _, run := range cfg.Labels.SystemTableMethods {
		computed[run] = metrics.MedianPctBySystem(t, run, noise)
	}

	result := TableResult{Title: title}
	for i, system := range systems {
		pubRow := published[displays[i]]
		group := Group{Heading: displays[i]}
		for j, run := range cfg.Labels.SystemTableMethods {
			pub := math.NaN()
			if j < len(pubRow) {
				pub = pubRow[j]
			}
			group.Checks = append(group.Checks,
				check(cfg.Labels.MethodName(run), pub, computed[run][system], TolerancePct))
		}
		result.Groups = append(result.Groups, group)
	}
	return result, nil
}

// check builds one comparison. Two NaNs count as a match so a published
// sentinel cell agrees with a recomputed empty subset.
func check(label string, published, computed, tolerance float64) Check {
	diff := math.Abs(published - computed)
	match := diff < tolerance ||
		cmp.Equal(published, computed, cmpopts.EquateNaNs())
	return Check{
		Label:     label,
		Published: published,
		Computed:  computed,
		Diff:      diff,
		Tolerance: tolerance,
		Match:     match,
	}
}

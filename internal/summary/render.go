package summary

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"odebench/internal/config"
	"odebench/internal/dataset"
)

// File names written into the summary output directory.
const (
	OverallFile  = "overall_performance.csv"
	BySystemFile = "performance_by_system.csv"
	ByNoiseFile  = "performance_by_noise.csv"
	MarkdownFile = "SUMMARY.md"
)

// WriteAll computes all three summaries and writes the CSVs plus the
// markdown digest into cfg.Output.Summary. Returns the paths written.
func WriteAll(t dataset.Table, cfg *config.Config) ([]string, error) {
	dir := cfg.Output.Summary
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("summary: create output dir: %w", err)
	}

	overall := Overall(t)
	bySystem := BySystem(t)
	byNoise := ByNoise(t)

	paths := make([]string, 0, 4)
	writes := []struct {
		name string
		fn   func(string) error
	}{
		{OverallFile, func(p string) error { return writeOverallCSV(p, overall) }},
		{BySystemFile, func(p string) error { return writePivotCSV(p, "name", bySystem) }},
		{ByNoiseFile, func(p string) error { return writePivotCSV(p, "noise", byNoise) }},
		{MarkdownFile, func(p string) error {
			return os.WriteFile(p, []byte(Markdown(overall, bySystem, byNoise)), 0o644)
		}},
	}
	for _, w := range writes {
		path := filepath.Join(dir, w.name)
		if err := w.fn(path); err != nil {
			return nil, fmt.Errorf("summary: write %s: %w", w.name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeOverallCSV(path string, rows []OverallRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"software", "success_count", "total_experiments",
		"success_rate_%", "mean_error", "median_error", "mean_time_sec",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.Software,
			strconv.Itoa(row.SuccessCount),
			strconv.Itoa(row.Total),
			csvFloat(row.SuccessRate),
			csvFloat(row.MeanError),
			csvFloat(row.MedianError),
			csvFloat(row.MeanTimeSec),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writePivotCSV(path, indexName string, p Pivot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(append([]string{indexName}, p.Columns...)); err != nil {
		return err
	}
	for i, label := range p.Index {
		record := make([]string, 0, len(p.Columns)+1)
		record = append(record, label)
		for _, v := range p.Cells[i] {
			record = append(record, csvFloat(v))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// csvFloat renders a value for CSV output, empty for NaN the way the
// rest of the data package does.
func csvFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Markdown assembles the human-readable SUMMARY.md document.
func Markdown(overall []OverallRow, bySystem, byNoise Pivot) string {
	var sb strings.Builder
	sb.WriteString("# Summary Statistics\n\n")
	sb.WriteString("**Generated from**: `combined_results_filtered.csv`\n\n")
	sb.WriteString("This document provides high-level summary statistics for the benchmark results.\n\n")
	sb.WriteString("---\n\n")

	writeMarkdownTable(&sb, "Overall Performance by Software", overallTable(overall))
	sb.WriteString("**Interpretation**:\n")
	sb.WriteString("- `success_rate_%`: Percentage of experiments that completed successfully\n")
	sb.WriteString("- `mean_error`: Mean relative error (lower is better)\n")
	sb.WriteString("- `median_error`: Median relative error (lower is better, less sensitive to outliers)\n")
	sb.WriteString("- `mean_time_sec`: Average computation time in seconds\n\n")
	sb.WriteString("---\n\n")

	writeMarkdownTable(&sb, "Mean Error by System", pivotTable("name", bySystem))
	sb.WriteString("**Interpretation**:\n")
	sb.WriteString("- Each cell shows mean relative error for that system-software combination\n")
	sb.WriteString("- Systems sorted by difficulty (hardest systems first)\n")
	sb.WriteString("- Lower values indicate better performance\n\n")
	sb.WriteString("---\n\n")

	writeMarkdownTable(&sb, "Mean Error by Noise Level", pivotTable("noise", byNoise))
	sb.WriteString("**Interpretation**:\n")
	sb.WriteString("- Each cell shows mean relative error for that noise level-software combination\n")
	sb.WriteString("- Noise levels: 0.0 (no noise) to 1e-2 (high noise)\n")
	sb.WriteString("- Shows how robust each software is to measurement noise\n\n")
	sb.WriteString("---\n\n")

	sb.WriteString("**Files**:\n")
	sb.WriteString("- `overall_performance.csv` - Overall statistics by software\n")
	sb.WriteString("- `performance_by_system.csv` - Mean error by system\n")
	sb.WriteString("- `performance_by_noise.csv` - Mean error by noise level\n")
	sb.WriteString("- `SUMMARY.md` - This document (human-readable version)\n")
	return sb.String()
}

type mdTable struct {
	headers []string
	rows    [][]string
}

func overallTable(rows []OverallRow) mdTable {
	t := mdTable{headers: []string{
		"software", "success_count", "total_experiments",
		"success_rate_%", "mean_error", "median_error", "mean_time_sec",
	}}
	for _, row := range rows {
		t.rows = append(t.rows, []string{
			row.Software,
			strconv.Itoa(row.SuccessCount),
			strconv.Itoa(row.Total),
			mdFloat(row.SuccessRate),
			mdFloat(row.MeanError),
			mdFloat(row.MedianError),
			mdFloat(row.MeanTimeSec),
		})
	}
	return t
}

func pivotTable(indexName string, p Pivot) mdTable {
	t := mdTable{headers: append([]string{indexName}, p.Columns...)}
	for i, label := range p.Index {
		row := make([]string, 0, len(p.Columns)+1)
		row = append(row, label)
		for _, v := range p.Cells[i] {
			row = append(row, mdFloat(v))
		}
		t.rows = append(t.rows, row)
	}
	return t
}

func writeMarkdownTable(sb *strings.Builder, title string, t mdTable) {
	fmt.Fprintf(sb, "### %s\n\n", title)
	sb.WriteString("| " + strings.Join(t.headers, " | ") + " |\n")
	sb.WriteString("|")
	for _, h := range t.headers {
		sb.WriteString(strings.Repeat("-", len(h)+2) + "|")
	}
	sb.WriteString("\n")
	for _, row := range t.rows {
		sb.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
	sb.WriteString("\n")
}

// mdFloat picks the precision by magnitude: scientific for very small
// values, otherwise four decimals with trailing zeros trimmed.
func mdFloat(v float64) string {
	if math.IsNaN(v) {
		return "N/A"
	}
	if math.Abs(v) < 0.001 && v != 0 {
		return fmt.Sprintf("%.2e", v)
	}
	s := fmt.Sprintf("%.4f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// formatNoise renders a noise level the way the data files do.
func formatNoise(noise float64) string {
	return strconv.FormatFloat(noise, 'g', -1, 64)
}

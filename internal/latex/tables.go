// Package latex renders the paper's tables and reads published numbers
// back out of them. Layouts are fixed: the audit depends on rendering and
// extraction agreeing cell for cell.
package latex

import (
	"fmt"
	"math"
	"strings"
)

// Table1Row is one method row of the overall-performance table. Success
// rates and errors are percentages.
type Table1Row struct {
	Method       string
	Success1     float64
	Success10    float64
	Success50    float64
	MedianMaxPct float64
	P90MaxPct    float64
}

// RenderTable1 renders the overall-performance table (run-level
// aggregation, timing column omitted to keep the layout within the page).
func RenderTable1(rows []Table1Row) string {
	var sb strings.Builder
	sb.WriteString(`\begin{table}[ht]
\centering
\caption{Overall performance with run-level aggregation. Success@X\%: fraction of runs where \emph{all} parameters have relative error $<$X\%. Median/P90 Max Error: For each run, the maximum parameter error is computed; the median and 90th percentile across all runs are reported. Failed runs are assigned $10^6$ penalty.}
\label{tab:overall_performance}
\begin{tabular}{lccccc}
\toprule
Method & Success@1\% & Success@10\% & Success@50\% & Median Max (\%) & P90 Max (\%) \\
\midrule
`)
	for _, row := range rows {
		fmt.Fprintf(&sb, "%s & %.1f & %.1f & %.1f & %.2f & %.1f \\\\\n",
			row.Method, row.Success1, row.Success10, row.Success50,
			row.MedianMaxPct, row.P90MaxPct)
	}
	sb.WriteString(`\bottomrule
\end{tabular}
\end{table}
`)
	return sb.String()
}

// Table2Row is one method row of the by-noise table; Values are median
// worst-parameter errors in percent, one per noise level, NaN for an
// empty slice.
type Table2Row struct {
	Method string
	Values []float64
}

// RenderTable2 renders the performance-by-noise table.
func RenderTable2(rows []Table2Row, noiseLevels []float64) string {
	var sb strings.Builder
	sb.WriteString(`\begin{table}[ht]
\centering
\caption{Median worst-parameter error (\%) by noise level using run-level aggregation. For each run, the maximum parameter error is computed; the median across runs at each noise level is reported. Failed runs are assigned $10^6$ penalty.}
\label{tab:noise_performance}
\begin{tabular}{l`)
	sb.WriteString(strings.Repeat("c", len(noiseLevels)))
	sb.WriteString("}\n\\toprule\nMethod")
	for _, noise := range noiseLevels {
		sb.WriteString(" & ")
		sb.WriteString(noiseHeader(noise))
	}
	sb.WriteString(" \\\\\n\\midrule\n")
	for _, row := range rows {
		sb.WriteString(row.Method)
		for _, v := range row.Values {
			if math.IsNaN(v) {
				sb.WriteString(" & ---")
			} else {
				fmt.Fprintf(&sb, " & %.2f", v)
			}
		}
		sb.WriteString(" \\\\\n")
	}
	sb.WriteString(`\bottomrule
\end{tabular}
\end{table}
`)
	return sb.String()
}

func noiseHeader(noise float64) string {
	if noise == 0 {
		return "0"
	}
	return fmt.Sprintf("$10^{%d}$", int(math.Round(math.Log10(noise))))
}

// SystemRow is one system row of a per-system table; Values are median
// worst-parameter errors in percent, one per method column.
type SystemRow struct {
	System string
	Values []float64
}

// RenderSystemTable renders a per-system performance table with the
// magnitude-dependent cell formatting the paper uses.
func RenderSystemTable(rows []SystemRow, methods []string, caption, label string) string {
	var sb strings.Builder
	sb.WriteString("\\begin{table}[H]\n\\centering\n")
	fmt.Fprintf(&sb, "\\caption{%s}\n", caption)
	if label != "" {
		fmt.Fprintf(&sb, "\\label{%s}\n", label)
	}
	sb.WriteString("\\small\n\\begin{tabular}{l")
	sb.WriteString(strings.Repeat("c", len(methods)))
	sb.WriteString("}\n\\toprule\n")
	sb.WriteString("System & ")
	sb.WriteString(strings.Join(methods, " & "))
	sb.WriteString(" \\\\\n\\midrule\n")
	for _, row := range rows {
		sb.WriteString(row.System)
		for _, v := range row.Values {
			sb.WriteString(" & ")
			sb.WriteString(formatSystemCell(v))
		}
		sb.WriteString(" \\\\\n")
	}
	sb.WriteString("\\bottomrule\n\\end{tabular}\n\\end{table}\n")
	return sb.String()
}

// formatSystemCell picks the precision by magnitude, with sentinel text
// for missing and runaway values.
func formatSystemCell(pct float64) string {
	switch {
	case math.IsNaN(pct):
		return "N/A"
	case pct > 1000:
		return "$>1000$"
	case pct > 10:
		return fmt.Sprintf("%.1f", pct)
	case pct > 0.1:
		return fmt.Sprintf("%.2f", pct)
	default:
		return fmt.Sprintf("%.3f", pct)
	}
}

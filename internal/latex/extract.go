package latex

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// Table1Values are the published headline numbers of one method as read
// back from the overall-performance table.
type Table1Values struct {
	SR1         float64
	SR10        float64
	SR50        float64
	MedianError float64
	MeanTime    float64
}

// ExtractTable1 reads a rendered overall-performance table and returns
// the numeric cells keyed by method run name. methods maps run name to
// the display name that appears in the first column.
func ExtractTable1(path string, methods map[string]string) (map[string]Table1Values, error) {
	rows, err := tableRows(path)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Table1Values)
	for _, cells := range rows {
		run, ok := runForDisplay(methods, cells[0])
		if !ok {
			continue
		}
		if len(cells) < 6 {
			return nil, fmt.Errorf("latex: %s: row for %q has %d cells, want at least 6", path, cells[0], len(cells))
		}
		vals := make([]float64, 5)
		for i := 0; i < 5; i++ {
			v, err := parseCell(cells[i+1])
			if err != nil {
				return nil, fmt.Errorf("latex: %s: row for %q: %w", path, cells[0], err)
			}
			vals[i] = v
		}
		out[run] = Table1Values{
			SR1:         vals[0],
			SR10:        vals[1],
			SR50:        vals[2],
			MedianError: vals[3],
			MeanTime:    vals[4],
		}
	}
	return out, nil
}

// ExtractTable2 reads a rendered by-noise table and returns the numeric
// cells of each method row in column order, keyed by run name. "---"
// cells come back as NaN.
func ExtractTable2(path string, methods map[string]string) (map[string][]float64, error) {
	rows, err := tableRows(path)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]float64)
	for _, cells := range rows {
		run, ok := runForDisplay(methods, cells[0])
		if !ok {
			continue
		}
		vals := make([]float64, 0, len(cells)-1)
		for _, cell := range cells[1:] {
			v, err := parseCell(cell)
			if err != nil {
				return nil, fmt.Errorf("latex: %s: row for %q: %w", path, cells[0], err)
			}
			vals = append(vals, v)
		}
		out[run] = vals
	}
	return out, nil
}

// ExtractSystemTable reads a rendered per-system table and returns the
// numeric cells of each system row in column order, keyed by the system
// display name. Sentinel cells map to NaN (N/A) or 1000 ($>1000$).
func ExtractSystemTable(path string, systems []string) (map[string][]float64, error) {
	rows, err := tableRows(path)
	if err != nil {
		return nil, err
	}
	wanted := make(map[string]bool, len(systems))
	for _, s := range systems {
		wanted[s] = true
	}
	out := make(map[string][]float64)
	for _, cells := range rows {
		if !wanted[cells[0]] {
			continue
		}
		vals := make([]float64, 0, len(cells)-1)
		for _, cell := range cells[1:] {
			v, err := parseCell(cell)
			if err != nil {
				return nil, fmt.Errorf("latex: %s: row for %q: %w", path, cells[0], err)
			}
			vals = append(vals, v)
		}
		out[cells[0]] = vals
	}
	return out, nil
}

// tableRows returns every line of the file that contains an '&', split
// into trimmed cells with the trailing row terminator removed.
func tableRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("latex: open table: %w", err)
	}
	defer f.Close()

	var rows [][]string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if !strings.Contains(line, "&") {
			continue
		}
		parts := strings.Split(line, "&")
		cells := make([]string, len(parts))
		for i, p := range parts {
			cells[i] = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(p), `\\`))
		}
		rows = append(rows, cells)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("latex: read table: %w", err)
	}
	return rows, nil
}

func runForDisplay(methods map[string]string, display string) (string, bool) {
	for run, name := range methods {
		if name == display {
			return run, true
		}
	}
	return "", false
}

// parseCell turns one table cell back into a number, undoing the
// sentinel formatting the renderers apply.
func parseCell(cell string) (float64, error) {
	switch cell {
	case "---", "N/A":
		return math.NaN(), nil
	case "$>1000$":
		return 1000, nil
	}
	v, err := strconv.ParseFloat(strings.Trim(cell, "$"), 64)
	if err != nil {
		return 0, fmt.Errorf("cell %q is not numeric", cell)
	}
	return v, nil
}

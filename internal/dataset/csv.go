package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadReport describes the outcome of reading a CSV.
type LoadReport struct {
	Rows    int // trials loaded
	Skipped int // rows dropped because a numeric field failed to parse
}

var requiredColumns = []string{
	"run", "name", "noise", "has_result", "result",
	"true_parameters", "true_states", "time",
}

// Load reads a combined results CSV. Columns are resolved through the
// header, so the variant with a leading id column works unchanged. Rows
// whose noise or time field fails to parse are skipped and counted, not
// fatal; a missing required column is.
func Load(path string) (Table, LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadReport{}, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, LoadReport{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, LoadReport{}, fmt.Errorf("%s is empty", path)
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, LoadReport{}, fmt.Errorf("%s is missing required column %q", path, name)
		}
	}
	idCol, hasID := col["id"]

	var report LoadReport
	table := make(Table, 0, len(records)-1)
	for _, rec := range records[1:] {
		field := func(name string) string {
			i := col[name]
			if i >= len(rec) {
				return ""
			}
			return rec[i]
		}
		noise, err := strconv.ParseFloat(strings.TrimSpace(field("noise")), 64)
		if err != nil {
			report.Skipped++
			continue
		}
		elapsed, err := strconv.ParseFloat(strings.TrimSpace(field("time")), 64)
		if err != nil {
			report.Skipped++
			continue
		}
		trial := Trial{
			Run:            field("run"),
			System:         field("name"),
			Noise:          noise,
			HasResult:      parseBool(field("has_result")),
			Result:         field("result"),
			TrueParameters: field("true_parameters"),
			TrueStates:     field("true_states"),
			Time:           elapsed,
		}
		if hasID && idCol < len(rec) {
			trial.ID = rec[idCol]
		}
		table = append(table, trial)
	}
	report.Rows = len(table)
	return table, report, nil
}

// parseBool accepts the boolean spellings that occur in the dataset
// exports ("True"/"False" plus the usual lowercase and numeric forms).
func parseBool(s string) bool {
	switch strings.TrimSpace(s) {
	case "True", "true", "TRUE", "1":
		return true
	}
	return false
}

// Save writes a table back in the canonical column order. The id column
// is emitted only when at least one trial carries one.
func Save(path string, t Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	withID := false
	for _, trial := range t {
		if trial.ID != "" {
			withID = true
			break
		}
	}

	w := csv.NewWriter(f)
	header := requiredColumns
	if withID {
		header = append([]string{"id"}, requiredColumns...)
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, trial := range t {
		row := []string{
			trial.Run,
			trial.System,
			strconv.FormatFloat(trial.Noise, 'g', -1, 64),
			formatBool(trial.HasResult),
			trial.Result,
			trial.TrueParameters,
			trial.TrueStates,
			strconv.FormatFloat(trial.Time, 'g', -1, 64),
		}
		if withID {
			row = append([]string{trial.ID}, row...)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

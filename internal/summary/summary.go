// Package summary produces the dataset-level statistics tables: overall
// performance per method, mean error per system, and mean error per
// noise level. Unlike the paper tables these use the simple row-level
// error (mean relative error over matched parameters, states excluded)
// and skip failed trials instead of penalizing them.
package summary

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"odebench/internal/dataset"
	"odebench/internal/metrics"
)

// RowError is the mean relative error of one trial over the parameter
// keys shared by the estimate and the true parameters. True states are
// excluded here. NaN when the trial decodes to nothing or no keys match.
func RowError(trial dataset.Trial) float64 {
	estimated, err := dataset.PairsMap(trial.Result)
	if err != nil || len(estimated) == 0 {
		return math.NaN()
	}
	trueParams, err := dataset.DictMap(trial.TrueParameters)
	if err != nil || len(trueParams) == 0 {
		return math.NaN()
	}
	errs := metrics.ParamErrors(estimated, trueParams, nil)
	if len(errs) == 0 {
		return math.NaN()
	}
	return stat.Mean(errs, nil)
}

// OverallRow is one method's line of the overall-performance summary.
type OverallRow struct {
	Software     string
	SuccessCount int
	Total        int
	SuccessRate  float64 // percent, rounded to 1 decimal
	MeanError    float64 // rounded to 4 decimals
	MedianError  float64 // rounded to 6 decimals
	MeanTimeSec  float64 // over successful trials, rounded to 1 decimal
}

// Overall summarizes every method in the table, sorted by method name.
// Error statistics cover successful trials only, with NaN and infinite
// row errors dropped.
func Overall(t dataset.Table) []OverallRow {
	rows := make([]OverallRow, 0, len(t.Runs()))
	for _, run := range t.Runs() {
		subset := t.ByRun(run)
		var successes dataset.Table
		for _, trial := range subset {
			if trial.HasResult {
				successes = append(successes, trial)
			}
		}

		var errs, times []float64
		for _, trial := range successes {
			times = append(times, trial.Time)
			e := RowError(trial)
			if math.IsNaN(e) || math.IsInf(e, 0) {
				continue
			}
			errs = append(errs, e)
		}

		row := OverallRow{
			Software:     run,
			SuccessCount: len(successes),
			Total:        len(subset),
			SuccessRate:  round(float64(len(successes))/float64(len(subset))*100, 1),
			MeanError:    math.NaN(),
			MedianError:  math.NaN(),
			MeanTimeSec:  math.NaN(),
		}
		if len(errs) > 0 {
			row.MeanError = round(stat.Mean(errs, nil), 4)
			row.MedianError = round(metrics.Median(errs), 6)
		}
		if len(times) > 0 {
			row.MeanTimeSec = round(stat.Mean(times, nil), 1)
		}
		rows = append(rows, row)
	}
	return rows
}

// Pivot is a labeled matrix of mean row errors: one row per index label,
// one column per method.
type Pivot struct {
	Index   []string
	Columns []string
	Cells   [][]float64
}

// BySystem pivots mean row error by system and method, hardest systems
// first. Cells are rounded to 4 decimals; a combination with no valid
// errors is NaN.
func BySystem(t dataset.Table) Pivot {
	runs := t.Runs()
	systems := t.Systems()

	cells := make([][]float64, len(systems))
	for i, system := range systems {
		cells[i] = make([]float64, len(runs))
		for j, run := range runs {
			cells[i][j] = round(meanRowError(t.BySystem(system).ByRun(run)), 4)
		}
	}

	order := make([]int, len(systems))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ma, mb := finiteMean(cells[order[a]]), finiteMean(cells[order[b]])
		if math.IsNaN(mb) {
			return !math.IsNaN(ma)
		}
		if math.IsNaN(ma) {
			return false
		}
		return ma > mb
	})

	p := Pivot{Columns: runs}
	for _, idx := range order {
		p.Index = append(p.Index, systems[idx])
		p.Cells = append(p.Cells, cells[idx])
	}
	return p
}

// ByNoise pivots mean row error by noise level and method, noise
// ascending. Cells are rounded to 4 decimals.
func ByNoise(t dataset.Table) Pivot {
	runs := t.Runs()
	p := Pivot{Columns: runs}
	for _, noise := range t.NoiseLevels() {
		row := make([]float64, len(runs))
		for j, run := range runs {
			row[j] = round(meanRowError(t.ByNoise(noise).ByRun(run)), 4)
		}
		p.Index = append(p.Index, formatNoise(noise))
		p.Cells = append(p.Cells, row)
	}
	return p
}

// meanRowError averages the row errors of successful trials, skipping
// NaN. NaN when nothing contributes.
func meanRowError(t dataset.Table) float64 {
	var errs []float64
	for _, trial := range t {
		if !trial.HasResult {
			continue
		}
		e := RowError(trial)
		if math.IsNaN(e) {
			continue
		}
		errs = append(errs, e)
	}
	if len(errs) == 0 {
		return math.NaN()
	}
	return stat.Mean(errs, nil)
}

func finiteMean(row []float64) float64 {
	sum, n := 0.0, 0
	for _, v := range row {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

func round(v float64, decimals int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}

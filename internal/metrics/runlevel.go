package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"odebench/internal/dataset"
)

// RunRecord is the run-level view of one trial: aggregates over that
// trial's own parameter errors. A trial with no result, or whose estimate
// matched zero true keys, carries the Penalty in all three aggregates and
// Failed=true.
type RunRecord struct {
	System string
	Noise  float64
	Max    float64
	Median float64
	Mean   float64
	Failed bool
}

// RunLevel produces one RunRecord per trial of the given method within
// the trials handed in.
func RunLevel(t dataset.Table, run string) []RunRecord {
	trials := t.ByRun(run)
	records := make([]RunRecord, 0, len(trials))
	for _, trial := range trials {
		rec := RunRecord{System: trial.System, Noise: trial.Noise}
		if trial.HasResult {
			errs := trialErrors(trial)
			if len(errs) > 0 {
				rec.Max = max64(errs)
				rec.Median = Median(errs)
				rec.Mean = stat.Mean(errs, nil)
				records = append(records, rec)
				continue
			}
		}
		rec.Max = Penalty
		rec.Median = Penalty
		rec.Mean = Penalty
		rec.Failed = true
		records = append(records, rec)
	}
	return records
}

// Maxima extracts the worst-parameter error of each record, failures
// included as Penalty.
func Maxima(records []RunRecord) []float64 {
	out := make([]float64, len(records))
	for i, rec := range records {
		out[i] = rec.Max
	}
	return out
}

// RunSuccessRate is the percentage of trials whose worst parameter error
// is strictly below the threshold, i.e. the "all parameters meet X%" reading.
// NaN when there are no records.
func RunSuccessRate(records []RunRecord, threshold float64) float64 {
	if len(records) == 0 {
		return math.NaN()
	}
	count := 0
	for _, rec := range records {
		if rec.Max < threshold {
			count++
		}
	}
	return float64(count) / float64(len(records)) * 100
}

// MedianMax is the median worst-parameter error across trials, as a
// fraction. NaN when there are no records.
func MedianMax(records []RunRecord) float64 {
	return Median(Maxima(records))
}

// P90Max is the 90th percentile of worst-parameter errors across trials,
// as a fraction. NaN when there are no records.
func P90Max(records []RunRecord) float64 {
	return Percentile(Maxima(records), 90)
}

func max64(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

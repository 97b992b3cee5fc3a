package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"odebench/internal/dataset"
)

// The benchmark paper's tables were generated before this toolchain
// existed, and two plausible aggregation rules were in circulation.
// PerRunMedian and PooledMedian reproduce both so the compare command can
// decide which one the published numbers came from.

// PerRunMedian is aggregation method A: mean error per trial (Penalty for
// failed trials and trials with no matched parameters), then the median
// across trials. Returned as a fraction alongside the per-trial values.
func PerRunMedian(t dataset.Table, run string) (float64, []float64) {
	trials := t.ByRun(run)
	perRun := make([]float64, 0, len(trials))
	for _, trial := range trials {
		if !trial.HasResult {
			perRun = append(perRun, Penalty)
			continue
		}
		errs := trialErrors(trial)
		mean := stat.Mean(errs, nil)
		if len(errs) == 0 || math.IsNaN(mean) {
			mean = Penalty
		}
		perRun = append(perRun, mean)
	}
	return Median(perRun), perRun
}

// PooledMedian is aggregation method B: the median of the pooled
// per-parameter error distribution. Returned as a fraction alongside the
// pool.
func PooledMedian(t dataset.Table, run string) (float64, []float64) {
	pool := PooledErrors(t.ByRun(run))
	return Median(pool), pool
}

// Comparison relates both aggregation methods to a published median
// error (all three in percent).
type Comparison struct {
	Run        string
	PaperValue float64
	MethodA    float64
	MethodB    float64
	NValuesA   int
	NValuesB   int
	// Closer is "A" or "B", whichever lands nearer the published value.
	Closer string
}

// Compare evaluates both aggregation methods for a run against the
// paper's inline value (percent).
func Compare(t dataset.Table, run string, paperPct float64) Comparison {
	medianA, perRun := PerRunMedian(t, run)
	medianB, pool := PooledMedian(t, run)
	c := Comparison{
		Run:        run,
		PaperValue: paperPct,
		MethodA:    medianA * 100,
		MethodB:    medianB * 100,
		NValuesA:   len(perRun),
		NValuesB:   len(pool),
	}
	diffA := math.Abs(c.MethodA - paperPct)
	diffB := math.Abs(c.MethodB - paperPct)
	if diffA < diffB {
		c.Closer = "A"
	} else {
		c.Closer = "B"
	}
	return c
}

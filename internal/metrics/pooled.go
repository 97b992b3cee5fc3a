package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"odebench/internal/dataset"
)

// PooledErrors builds the Option B error pool over the trials handed in:
// successful trials contribute one entry per matched parameter, failed
// trials contribute Penalty once per quantity they should have estimated.
// A successful trial whose estimate matches zero true keys contributes
// nothing here even though the run-level view flags it as failed; the two
// views are deliberately kept as-is (see RunLevel).
func PooledErrors(t dataset.Table) []float64 {
	var pool []float64
	for _, trial := range t {
		if trial.HasResult {
			pool = append(pool, trialErrors(trial)...)
			continue
		}
		n := trueKeyCount(trial)
		for i := 0; i < n; i++ {
			pool = append(pool, Penalty)
		}
	}
	return pool
}

// Median returns the sample median, NaN for an empty input.
func Median(xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return math.NaN()
	}
	sorted := make([]float64, n)
	copy(sorted, xs)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// MedianPct is the median expressed in percent.
func MedianPct(xs []float64) float64 {
	return Median(xs) * 100
}

// Percentile returns the p-th percentile (0..100) with linear
// interpolation between order statistics, NaN for an empty input.
func Percentile(xs []float64, p float64) float64 {
	n := len(xs)
	if n == 0 {
		return math.NaN()
	}
	sorted := make([]float64, n)
	copy(sorted, xs)
	sort.Float64s(sorted)
	if n == 1 {
		return sorted[0]
	}
	pos := p / 100 * float64(n-1)
	lo := int(math.Floor(pos))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// Rates are pooled success rates in percent: the share of pooled
// parameter errors strictly below 1%, 10% and 50%.
type Rates struct {
	SR1  float64
	SR10 float64
	SR50 float64
}

// SuccessRates computes the pooled success rates; all NaN when the pool
// is empty.
func SuccessRates(pool []float64) Rates {
	if len(pool) == 0 {
		nan := math.NaN()
		return Rates{SR1: nan, SR10: nan, SR50: nan}
	}
	var out [3]float64
	for i, threshold := range SuccessThresholds {
		count := 0
		for _, e := range pool {
			if e < threshold {
				count++
			}
		}
		out[i] = float64(count) / float64(len(pool)) * 100
	}
	return Rates{SR1: out[0], SR10: out[1], SR50: out[2]}
}

// MethodSummary is the pooled headline row of one estimation method.
type MethodSummary struct {
	Rates
	MedianErrorPct float64 // pooled median error, percent
	MeanTime       float64 // mean wall time over the method's trials, seconds
	Trials         int
}

// Summarize computes the pooled metrics of one method over the trials
// handed in.
func Summarize(t dataset.Table, run string) MethodSummary {
	trials := t.ByRun(run)
	pool := PooledErrors(trials)
	times := make([]float64, len(trials))
	for i, trial := range trials {
		times[i] = trial.Time
	}
	return MethodSummary{
		Rates:          SuccessRates(pool),
		MedianErrorPct: MedianPct(pool),
		MeanTime:       stat.Mean(times, nil),
		Trials:         len(trials),
	}
}

// MedianPctByNoise computes the pooled median error (percent) of a
// method at every noise level present in the table.
func MedianPctByNoise(t dataset.Table, run string) map[float64]float64 {
	out := make(map[float64]float64)
	for _, noise := range t.NoiseLevels() {
		out[noise] = MedianPct(PooledErrors(t.ByRun(run).ByNoise(noise)))
	}
	return out
}

// MedianPctBySystem computes the pooled median error (percent) of a
// method for every system at one noise level. Systems absent at that
// noise level map to NaN rather than being dropped.
func MedianPctBySystem(t dataset.Table, run string, noise float64) map[string]float64 {
	out := make(map[string]float64)
	for _, system := range t.Systems() {
		out[system] = MedianPct(PooledErrors(t.ByRun(run).ByNoise(noise).BySystem(system)))
	}
	return out
}

package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"odebench/internal/dataset"
)

func TestParamErrors(t *testing.T) {
	t.Run("relative and absolute split", func(t *testing.T) {
		errs := ParamErrors(
			map[string]float64{"a": 1.1, "b": 0.05, "c": 3},
			map[string]float64{"a": 1.0, "b": 0},
			map[string]float64{"c": 2},
		)
		require.Len(t, errs, 3)
		// Sorted by key: a, b, c.
		assert.InDelta(t, 0.1, errs[0], 1e-12)  // relative: |1.1-1.0|/1.0
		assert.InDelta(t, 0.05, errs[1], 1e-12) // absolute: true value inside zero guard
		assert.InDelta(t, 0.5, errs[2], 1e-12)  // relative: |3-2|/2
	})

	t.Run("unestimated keys are dropped", func(t *testing.T) {
		errs := ParamErrors(
			map[string]float64{"a": 1},
			map[string]float64{"a": 1, "b": 2, "c": 3},
			nil,
		)
		assert.Len(t, errs, 1)
	})

	t.Run("states override parameters on duplicate key", func(t *testing.T) {
		errs := ParamErrors(
			map[string]float64{"a": 4},
			map[string]float64{"a": 1},
			map[string]float64{"a": 2},
		)
		require.Len(t, errs, 1)
		assert.InDelta(t, 1.0, errs[0], 1e-12) // |4-2|/2, not |4-1|/1
	})
}

func TestPooledErrors(t *testing.T) {
	table := dataset.Table{
		{Run: "m", HasResult: true,
			Result:         "[('a', 1.1), ('b', 2.1)]",
			TrueParameters: "{'a': 1, 'b': 2}",
			TrueStates:     "{}"},
		{Run: "m", HasResult: false,
			Result:         "[]",
			TrueParameters: "{'a': 1, 'b': 2, 'c': 3}",
			TrueStates:     "{'s1': 0.5, 's2': 0.5}"},
	}

	pool := PooledErrors(table)
	// Two matched errors plus one penalty per quantity of the failed trial.
	require.Len(t, pool, 7)
	penalties := 0
	for _, e := range pool {
		if e == Penalty {
			penalties++
		}
	}
	assert.Equal(t, 5, penalties)
}

func TestPooledErrorsZeroMatchSuccess(t *testing.T) {
	// A successful trial whose estimate matches no true key contributes
	// nothing to the pool, while the run-level view penalizes it.
	table := dataset.Table{{Run: "m", HasResult: true,
		Result: "[('z', 1)]", TrueParameters: "{'a': 1}", TrueStates: "{}"}}

	assert.Empty(t, PooledErrors(table))

	records := RunLevel(table, "m")
	require.Len(t, records, 1)
	assert.True(t, records[0].Failed)
	assert.Equal(t, Penalty, records[0].Max)
}

func TestMedian(t *testing.T) {
	assert.True(t, math.IsNaN(Median(nil)))
	assert.Equal(t, 2.0, Median([]float64{3, 1, 2}))
	assert.Equal(t, 2.5, Median([]float64{4, 1, 2, 3}))
	assert.Equal(t, 250.0, MedianPct([]float64{3, 2, 1, 4}))
}

func TestPercentile(t *testing.T) {
	assert.True(t, math.IsNaN(Percentile(nil, 90)))
	assert.Equal(t, 5.0, Percentile([]float64{5}, 90))

	xs := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	assert.InDelta(t, 9.1, Percentile(xs, 90), 1e-9)
	assert.InDelta(t, 5.5, Percentile(xs, 50), 1e-9)
	assert.Equal(t, 10.0, Percentile(xs, 100))
	assert.Equal(t, 1.0, Percentile(xs, 0))
}

func TestSuccessRates(t *testing.T) {
	t.Run("empty pool is NaN", func(t *testing.T) {
		rates := SuccessRates(nil)
		assert.True(t, math.IsNaN(rates.SR1))
		assert.True(t, math.IsNaN(rates.SR50))
	})

	t.Run("strict threshold", func(t *testing.T) {
		pool := make([]float64, 100)
		for i := range pool {
			pool[i] = 1.0 // well above every threshold
		}
		for i := 0; i < 7; i++ {
			pool[i] = 0.05 // below 0.10 only
		}
		rates := SuccessRates(pool)
		assert.Equal(t, 0.0, rates.SR1)
		assert.Equal(t, 7.0, rates.SR10)
		assert.Equal(t, 7.0, rates.SR50)
	})

	t.Run("boundary values do not count", func(t *testing.T) {
		rates := SuccessRates([]float64{0.10})
		assert.Equal(t, 0.0, rates.SR10)
	})
}

func TestSummarize(t *testing.T) {
	table := dataset.Table{
		{Run: "m", HasResult: true, Time: 2,
			Result: "[('a', 1.1)]", TrueParameters: "{'a': 1}", TrueStates: "{}"},
		{Run: "m", HasResult: true, Time: 4,
			Result: "[('a', 1.05)]", TrueParameters: "{'a': 1}", TrueStates: "{}"},
		{Run: "other", HasResult: true, Time: 100,
			Result: "[('a', 1)]", TrueParameters: "{'a': 1}", TrueStates: "{}"},
	}

	s := Summarize(table, "m")
	assert.Equal(t, 2, s.Trials)
	assert.Equal(t, 3.0, s.MeanTime)
	// Pool is [0.1, 0.05]; median 0.075 -> 7.5%.
	assert.InDelta(t, 7.5, s.MedianErrorPct, 1e-9)
	assert.Equal(t, 100.0, s.SR50)
}

func TestRunLevel(t *testing.T) {
	table := dataset.Table{
		{Run: "m", System: "seir", Noise: 1e-06, HasResult: true,
			Result:         "[('a', 1.1), ('b', 2.4)]",
			TrueParameters: "{'a': 1, 'b': 2}",
			TrueStates:     "{}"},
		{Run: "m", System: "hiv", Noise: 1e-06, HasResult: false,
			Result: "[]", TrueParameters: "{'a': 1}", TrueStates: "{}"},
	}

	records := RunLevel(table, "m")
	require.Len(t, records, 2)

	ok := records[0]
	assert.Equal(t, "seir", ok.System)
	assert.False(t, ok.Failed)
	assert.InDelta(t, 0.2, ok.Max, 1e-12)
	assert.InDelta(t, 0.15, ok.Median, 1e-12)
	assert.InDelta(t, 0.15, ok.Mean, 1e-12)
	assert.GreaterOrEqual(t, ok.Max, ok.Median)
	assert.GreaterOrEqual(t, ok.Max, ok.Mean)

	failed := records[1]
	assert.True(t, failed.Failed)
	assert.Equal(t, Penalty, failed.Max)
	assert.Equal(t, Penalty, failed.Median)

	assert.Equal(t, []float64{ok.Max, Penalty}, Maxima(records))
	assert.Equal(t, 50.0, RunSuccessRate(records, 0.5))
	assert.True(t, math.IsNaN(RunSuccessRate(nil, 0.5)))
	assert.InDelta(t, (0.2+Penalty)/2, MedianMax(records), 1e-6)
}

func TestCompare(t *testing.T) {
	table := dataset.Table{
		{Run: "m", HasResult: true,
			Result:         "[('a', 1.1), ('b', 2.1)]",
			TrueParameters: "{'a': 1, 'b': 2}",
			TrueStates:     "{}"},
		{Run: "m", HasResult: true,
			Result:         "[('a', 1.02)]",
			TrueParameters: "{'a': 1}",
			TrueStates:     "{}"},
		{Run: "m", HasResult: true,
			Result:         "[('a', 1.3)]",
			TrueParameters: "{'a': 1}",
			TrueStates:     "{}"},
	}

	// Method A per-trial means: 0.075, 0.02, 0.3 -> median 0.075 -> 7.5%.
	medianA, perRun := PerRunMedian(table, "m")
	assert.InDelta(t, 0.075, medianA, 1e-9)
	assert.Len(t, perRun, 3)

	// Method B pool: [0.1, 0.05, 0.02, 0.3] -> median 0.075 -> 7.5%.
	medianB, pool := PooledMedian(table, "m")
	assert.InDelta(t, 0.075, medianB, 1e-9)
	assert.Len(t, pool, 4)

	c := Compare(table, "m", 7.5)
	assert.InDelta(t, 7.5, c.MethodA, 1e-9)
	assert.InDelta(t, 7.5, c.MethodB, 1e-9)
	assert.Equal(t, "B", c.Closer) // ties go to B
	assert.Equal(t, 3, c.NValuesA)
	assert.Equal(t, 4, c.NValuesB)
}

func TestCompareFailedTrialPenalty(t *testing.T) {
	table := dataset.Table{
		{Run: "m", HasResult: false, Result: "[]",
			TrueParameters: "{'a': 1, 'b': 2}", TrueStates: "{}"},
	}
	_, perRun := PerRunMedian(table, "m")
	require.Equal(t, []float64{Penalty}, perRun)

	_, pool := PooledMedian(table, "m")
	assert.Equal(t, []float64{Penalty, Penalty}, pool)
}

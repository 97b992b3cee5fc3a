// Package metrics is the single source of truth for every accuracy and
// timing statistic in the benchmark. Tables, figures, the audit, and the
// summary all go through these functions so the numbers cannot drift
// apart. Two aggregation granularities coexist and are intentionally
// different statistics:
//
//   - pooled ("Option B"): every per-parameter error of every trial of a
//     method merged into one distribution; success rates count parameter
//     observations.
//   - run-level: one aggregate per trial (max/median/mean over its own
//     parameter errors); success rates count trials whose WORST parameter
//     meets the threshold.
//
// Failed trials are not excluded: each parameter they should have
// estimated contributes the Penalty sentinel, inflating both
// distributions.
package metrics

import (
	"sort"

	"odebench/internal/dataset"
)

// Penalty is the sentinel error assigned to every parameter a failed
// trial should have estimated.
const Penalty = 1e6

// zeroGuard switches the relative error to an absolute error when the
// true value is too close to zero to divide by.
const zeroGuard = 1e-10

// SuccessThresholds are the error thresholds of the SR-1, SR-10 and
// SR-50 success rates.
var SuccessThresholds = [3]float64{0.01, 0.10, 0.50}

// ParamErrors computes one error per key present in both the estimate and
// the combined truth (parameters ∪ states): relative when the true value
// is safely nonzero, absolute otherwise. Keys the estimate omitted are
// dropped, not penalized. The result is ordered by key name so repeated
// calls are deterministic.
func ParamErrors(estimated, trueParams, trueStates map[string]float64) []float64 {
	allTrue := make(map[string]float64, len(trueParams)+len(trueStates))
	for k, v := range trueParams {
		allTrue[k] = v
	}
	for k, v := range trueStates {
		allTrue[k] = v
	}
	keys := make([]string, 0, len(allTrue))
	for k := range allTrue {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errors []float64
	for _, key := range keys {
		est, ok := estimated[key]
		if !ok {
			continue
		}
		errors = append(errors, paramError(est, allTrue[key]))
	}
	return errors
}

func paramError(est, truth float64) float64 {
	diff := est - truth
	if diff < 0 {
		diff = -diff
	}
	abs := truth
	if abs < 0 {
		abs = -abs
	}
	if abs < zeroGuard {
		return diff
	}
	return diff / abs
}

// trialErrors decodes a trial's cells and scores the estimate. Decode
// failures degrade to an empty mapping, which surfaces downstream as zero
// matched errors.
func trialErrors(trial dataset.Trial) []float64 {
	estimated, _ := dataset.PairsMap(trial.Result)
	trueParams, _ := dataset.DictMap(trial.TrueParameters)
	trueStates, _ := dataset.DictMap(trial.TrueStates)
	return ParamErrors(estimated, trueParams, trueStates)
}

// trueKeyCount is the number of quantities the trial should have
// estimated, used to size the penalty contribution of a failed trial.
func trueKeyCount(trial dataset.Trial) int {
	trueParams, _ := dataset.DictMap(trial.TrueParameters)
	trueStates, _ := dataset.DictMap(trial.TrueStates)
	return len(trueParams) + len(trueStates)
}

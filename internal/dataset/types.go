// Package dataset loads the benchmark results CSV and models its rows.
// One Trial is one (method, system, noise) experiment; a Table is any
// slice of trials, and every aggregation downstream is a pure function of
// the table handed to it, so slicing helpers here compose freely.
package dataset

import "sort"

// Trial is one experiment row from the combined results CSV.
type Trial struct {
	// ID is the optional per-instance identifier some dataset variants
	// carry. Empty when the CSV has no id column.
	ID string

	// Run identifies the estimation method/tool configuration.
	Run string

	// System is the ODE system identifier (CSV column "name").
	System string

	// Noise is the measurement noise level of the experiment.
	Noise float64

	// HasResult reports whether the estimation produced any output.
	HasResult bool

	// Result is the serialized list of (parameter, estimate) pairs.
	Result string

	// TrueParameters and TrueStates are serialized name->value maps of
	// the ground truth the estimate is scored against.
	TrueParameters string
	TrueStates     string

	// Time is the wall-clock estimation time in seconds.
	Time float64
}

// Table is a slice of trials. Filter methods return sub-slices backed by
// fresh storage, so chained filters never alias.
type Table []Trial

// ByRun returns the trials of one estimation method.
func (t Table) ByRun(run string) Table {
	out := make(Table, 0, len(t))
	for _, trial := range t {
		if trial.Run == run {
			out = append(out, trial)
		}
	}
	return out
}

// ByNoise returns the trials at one noise level.
func (t Table) ByNoise(noise float64) Table {
	out := make(Table, 0, len(t))
	for _, trial := range t {
		if trial.Noise == noise {
			out = append(out, trial)
		}
	}
	return out
}

// BySystem returns the trials of one ODE system.
func (t Table) BySystem(system string) Table {
	out := make(Table, 0, len(t))
	for _, trial := range t {
		if trial.System == system {
			out = append(out, trial)
		}
	}
	return out
}

// Runs returns the distinct method identifiers, sorted.
func (t Table) Runs() []string {
	return t.distinct(func(tr Trial) string { return tr.Run })
}

// Systems returns the distinct system identifiers, sorted.
func (t Table) Systems() []string {
	return t.distinct(func(tr Trial) string { return tr.System })
}

// NoiseLevels returns the distinct noise levels, ascending.
func (t Table) NoiseLevels() []float64 {
	seen := make(map[float64]bool)
	var out []float64
	for _, trial := range t {
		if !seen[trial.Noise] {
			seen[trial.Noise] = true
			out = append(out, trial.Noise)
		}
	}
	sort.Float64s(out)
	return out
}

func (t Table) distinct(key func(Trial) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, trial := range t {
		k := key(trial)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

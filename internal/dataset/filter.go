package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// NonIdentifiable lists the parameters/states with no identifiable value
// per system. They are stripped from the dataset before any metric is
// computed so estimators are not scored on quantities the data cannot
// determine.
var NonIdentifiable = map[string][]string{
	"biohydrogenation": {"x7"},
}

// FilterNonIdentifiable rewrites the Result and TrueStates cells of every
// trial whose system has entries in rules, dropping those names. Cells
// that fail to decode are left untouched, matching the permissive
// behavior of the dataset packaging step. The returned count is the
// number of trials rewritten.
func FilterNonIdentifiable(t Table, rules map[string][]string) (Table, int) {
	out := make(Table, len(t))
	copy(out, t)
	changed := 0
	for i := range out {
		drop := rules[out[i].System]
		if len(drop) == 0 {
			continue
		}
		res, okRes := filterPairs(out[i].Result, drop)
		states, okStates := filterDict(out[i].TrueStates, drop)
		if okRes {
			out[i].Result = res
		}
		if okStates {
			out[i].TrueStates = states
		}
		if okRes || okStates {
			changed++
		}
	}
	return out, changed
}

func filterPairs(cell string, drop []string) (string, bool) {
	if isEmptyLiteral(cell) {
		return cell, false
	}
	pairs, err := ParsePairs(cell)
	if err != nil {
		return cell, false
	}
	kept := keep(pairs, drop)
	if len(kept) == len(pairs) {
		return cell, false
	}
	return renderPairs(kept), true
}

func filterDict(cell string, drop []string) (string, bool) {
	if isEmptyLiteral(cell) {
		return cell, false
	}
	pairs, err := ParseDict(cell)
	if err != nil {
		return cell, false
	}
	kept := keep(pairs, drop)
	if len(kept) == len(pairs) {
		return cell, false
	}
	return renderDict(kept), true
}

func keep(pairs []Pair, drop []string) []Pair {
	kept := make([]Pair, 0, len(pairs))
	for _, p := range pairs {
		dropped := false
		for _, name := range drop {
			if p.Name == name {
				dropped = true
				break
			}
		}
		if !dropped {
			kept = append(kept, p)
		}
	}
	return kept
}

func renderPairs(pairs []Pair) string {
	if len(pairs) == 0 {
		return "[]"
	}
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = fmt.Sprintf("('%s', %s)", p.Name, formatValue(p.Value))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func renderDict(pairs []Pair) string {
	if len(pairs) == 0 {
		return "{}"
	}
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = fmt.Sprintf("'%s': %s", p.Name, formatValue(p.Value))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

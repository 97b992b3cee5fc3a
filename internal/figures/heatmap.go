package figures

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"

	"odebench/internal/config"
	"odebench/internal/dataset"
	"odebench/internal/metrics"
)

// errorGrid adapts a systems-by-methods error matrix to the heat map
// plotter. Row r, column c addresses cells[r][c].
type errorGrid struct {
	cells [][]float64
}

func (g errorGrid) Dims() (c, r int) {
	if len(g.cells) == 0 {
		return 0, 0
	}
	return len(g.cells[0]), len(g.cells)
}

func (g errorGrid) Z(c, r int) float64 { return g.cells[r][c] }
func (g errorGrid) X(c int) float64    { return float64(c) }
func (g errorGrid) Y(r int) float64    { return float64(r) }

// Heatmap renders the per-system error matrix: run-level median
// worst-parameter error in percent, capped at 100, methods across and
// systems down, systems ordered by mean difficulty.
func Heatmap(t dataset.Table, cfg *config.Config) (*plot.Plot, error) {
	systems := t.Systems()
	methods := cfg.Labels.MethodOrder
	if len(systems) == 0 || len(methods) == 0 {
		return nil, fmt.Errorf("empty dataset")
	}

	cells := make([][]float64, len(systems))
	for i, system := range systems {
		row := make([]float64, len(methods))
		for j, run := range methods {
			records := metrics.RunLevel(t.BySystem(system), run)
			pct := metrics.MedianMax(records) * 100
			if pct > errorCapPercent {
				pct = errorCapPercent
			}
			row[j] = pct
		}
		cells[i] = row
	}

	// Order systems by mean error over methods, easiest first.
	order := make([]int, len(systems))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return rowMean(cells[order[a]]) < rowMean(cells[order[b]])
	})
	ordered := make([][]float64, len(systems))
	names := make([]string, len(systems))
	for pos, idx := range order {
		ordered[pos] = cells[idx]
		names[pos] = cfg.Labels.SystemName(systems[idx])
	}

	hm := plotter.NewHeatMap(errorGrid{cells: ordered}, moreland.SmoothBlueRed().Palette(255))
	hm.Min = 0
	hm.Max = errorCapPercent

	p := plot.New()
	p.Title.Text = "Performance Heatmap: Median Max Error (%)"
	p.X.Label.Text = "Method"
	p.Y.Label.Text = "System"

	xTicks := make([]plot.Tick, len(methods))
	for j, run := range methods {
		xTicks[j] = plot.Tick{Value: float64(j), Label: cfg.Labels.MethodName(run)}
	}
	yTicks := make([]plot.Tick, len(names))
	for i, name := range names {
		yTicks[i] = plot.Tick{Value: float64(i), Label: name}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xTicks)
	p.Y.Tick.Marker = plot.ConstantTicks(yTicks)

	p.Add(hm)
	return p, nil
}

// rowMean averages the finite entries of a row, NaN when none are.
func rowMean(row []float64) float64 {
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

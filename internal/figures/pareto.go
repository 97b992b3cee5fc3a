package figures

import (
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"odebench/internal/config"
	"odebench/internal/dataset"
	"odebench/internal/metrics"
)

// Pareto builds the accuracy-versus-speed scatter: mean wall time on a
// log x axis against run-level median worst-parameter error on a log y
// axis, one labeled point per method.
func Pareto(t dataset.Table, cfg *config.Config) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Pareto Frontier: Accuracy vs Speed"
	p.X.Label.Text = "Mean Computation Time (seconds)"
	p.Y.Label.Text = "Median Max Error (per run, failures penalized)"
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, 0, len(cfg.Labels.MethodOrder))
	names := make([]string, 0, len(cfg.Labels.MethodOrder))
	runs := make([]string, 0, len(cfg.Labels.MethodOrder))
	for _, run := range cfg.Labels.MethodOrder {
		trials := t.ByRun(run)
		if len(trials) == 0 {
			continue
		}
		times := make([]float64, len(trials))
		for i, trial := range trials {
			times[i] = trial.Time
		}
		records := metrics.RunLevel(trials, run)
		pts = append(pts, plotter.XY{
			X: stat.Mean(times, nil),
			Y: metrics.MedianMax(records),
		})
		names = append(names, cfg.Labels.MethodName(run))
		runs = append(runs, run)
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		s := styleFor(runs[i])
		return draw.GlyphStyle{Color: s.color, Radius: vg.Points(6), Shape: s.shape}
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: names})
	if err != nil {
		return nil, err
	}
	labels.Offset = vg.Point{X: vg.Points(8), Y: vg.Points(4)}

	p.Add(scatter, labels)
	return p, nil
}

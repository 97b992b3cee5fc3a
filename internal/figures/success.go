package figures

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"odebench/internal/config"
	"odebench/internal/dataset"
	"odebench/internal/metrics"
)

// SuccessRateCurves plots the run-level success rate of each method at
// the three thresholds: the share of trials whose worst parameter error
// stays below 1%, 10% and 50%.
func SuccessRateCurves(t dataset.Table, cfg *config.Config) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Success Rate Curves Across Error Thresholds"
	p.X.Label.Text = "Success Threshold"
	p.Y.Label.Text = "Success Rate (% of runs)"
	p.Y.Min = 0
	p.Y.Max = 100

	ticks := make([]plot.Tick, len(metrics.SuccessThresholds))
	for i, threshold := range metrics.SuccessThresholds {
		ticks[i] = plot.Tick{
			Value: float64(i),
			Label: fmt.Sprintf("Success@%.0f%%", threshold*100),
		}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.Add(plotter.NewGrid())

	for _, run := range cfg.Labels.MethodOrder {
		records := metrics.RunLevel(t, run)
		xys := make(plotter.XYs, 0, len(metrics.SuccessThresholds))
		for i, threshold := range metrics.SuccessThresholds {
			xys = append(xys, plotter.XY{
				X: float64(i),
				Y: metrics.RunSuccessRate(records, threshold),
			})
		}

		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, err
		}
		s := styleFor(run)
		line.Color = s.color
		line.Width = vg.Points(2)
		line.Dashes = s.dashes
		points.GlyphStyle = draw.GlyphStyle{Color: s.color, Radius: vg.Points(4), Shape: s.shape}

		p.Add(line, points)
		p.Legend.Add(cfg.Labels.MethodName(run), line, points)
	}

	p.Legend.Top = false
	p.Legend.Left = false
	return p, nil
}

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

// NoiseDegradation plots the run-level median worst-parameter error (in
// percent, log scale) of each method against the noise level. Noise
// levels sit at evenly spaced positions with their display labels so the
// zero level fits on the axis.
func NoiseDegradation(t dataset.Table, cfg *config.Config) (*plot.Plot, error) {
	noiseLevels := t.NoiseLevels()
	if len(noiseLevels) == 0 {
		return nil, fmt.Errorf("no noise levels in dataset")
	}

	p := plot.New()
	p.Title.Text = "Performance Degradation with Noise"
	p.X.Label.Text = "Noise Level"
	p.Y.Label.Text = "Median Max Error (% per run)"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	ticks := make([]plot.Tick, len(noiseLevels))
	for i, noise := range noiseLevels {
		ticks[i] = plot.Tick{Value: float64(i), Label: cfg.Labels.NoiseLabel(noise)}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.Add(plotter.NewGrid())

	for _, run := range cfg.Labels.MethodOrder {
		xys := make(plotter.XYs, 0, len(noiseLevels))
		for i, noise := range noiseLevels {
			records := metrics.RunLevel(t.ByNoise(noise), run)
			xys = append(xys, plotter.XY{
				X: float64(i),
				Y: metrics.MedianMax(records) * 100,
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

	p.Legend.Top = true
	p.Legend.Left = true
	return p, nil
}

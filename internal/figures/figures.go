// Package figures regenerates the paper's four figures from the dataset
// using run-level aggregation: pareto frontier, noise degradation,
// per-system heatmap, and success rate curves. Each figure is written as
// both PNG and PDF.
package figures

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"odebench/internal/config"
	"odebench/internal/dataset"
)

// Base file names of the generated figures.
const (
	ParetoFile      = "pareto_frontier"
	NoiseFile       = "noise_degradation"
	HeatmapFile     = "performance_heatmap"
	SuccessFile     = "success_rate_curves"
	errorCapPercent = 100.0
)

type methodStyle struct {
	color  color.RGBA
	shape  draw.GlyphDrawer
	dashes []vg.Length
}

// Per-method colors and markers, matched to the published figures.
var methodStyles = map[string]methodStyle{
	"sciml": {
		color: color.RGBA{R: 0x2E, G: 0x86, B: 0xAB, A: 0xFF},
		shape: draw.CircleGlyph{},
	},
	"odepe": {
		color:  color.RGBA{R: 0xA2, G: 0x3B, B: 0x72, A: 0xFF},
		shape:  draw.SquareGlyph{},
		dashes: []vg.Length{vg.Points(6), vg.Points(3)},
	},
	"odepe_polish": {
		color:  color.RGBA{R: 0xF1, G: 0x8F, B: 0x01, A: 0xFF},
		shape:  draw.TriangleGlyph{},
		dashes: []vg.Length{vg.Points(6), vg.Points(2), vg.Points(2), vg.Points(2)},
	},
	"amigo2_0_10": {
		color:  color.RGBA{R: 0xC7, G: 0x3E, B: 0x1D, A: 0xFF},
		shape:  draw.PlusGlyph{},
		dashes: []vg.Length{vg.Points(2), vg.Points(2)},
	},
	"amigo2_0_100": {
		color: color.RGBA{R: 0x6A, G: 0x99, B: 0x4E, A: 0xFF},
		shape: draw.PyramidGlyph{},
	},
}

func styleFor(run string) methodStyle {
	if s, ok := methodStyles[run]; ok {
		return s
	}
	return methodStyle{
		color: color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF},
		shape: draw.CircleGlyph{},
	}
}

// WriteAll renders all four figures into cfg.Output.Figures and returns
// the paths written.
func WriteAll(t dataset.Table, cfg *config.Config) ([]string, error) {
	dir := cfg.Output.Figures
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("figures: create output dir: %w", err)
	}

	jobs := []struct {
		name   string
		width  vg.Length
		height vg.Length
		render func(dataset.Table, *config.Config) (*plot.Plot, error)
	}{
		{ParetoFile, 7 * vg.Inch, 5.5 * vg.Inch, Pareto},
		{NoiseFile, 8 * vg.Inch, 5.5 * vg.Inch, NoiseDegradation},
		{HeatmapFile, 8 * vg.Inch, 6.5 * vg.Inch, Heatmap},
		{SuccessFile, 7 * vg.Inch, 5.5 * vg.Inch, SuccessRateCurves},
	}

	var paths []string
	for _, job := range jobs {
		p, err := job.render(t, cfg)
		if err != nil {
			return nil, fmt.Errorf("figures: %s: %w", job.name, err)
		}
		for _, ext := range []string{".png", ".pdf"} {
			path := filepath.Join(dir, job.name+ext)
			if err := p.Save(job.width, job.height, path); err != nil {
				return nil, fmt.Errorf("figures: save %s: %w", path, err)
			}
			paths = append(paths, path)
		}
	}
	return paths, nil
}

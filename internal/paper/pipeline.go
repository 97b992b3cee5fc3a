// Package paper drives the full build: filter the raw dataset, regenerate
// tables and figures, copy them into the paper tree, and compile the
// LaTeX sources. Steps that only affect presentation warn and continue;
// steps the paper cannot be built without stop the pipeline.
package paper

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"odebench/internal/config"
	"odebench/internal/dataset"
	"odebench/internal/figures"
	"odebench/internal/latex"
)

// Pipeline executes the build steps in order.
type Pipeline struct {
	cfg *config.Config
	log *zap.Logger
}

// New returns a pipeline over the given configuration.
func New(cfg *config.Config, log *zap.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, log: log}
}

// Result summarizes one build.
type Result struct {
	BuildID  string
	PDF      string
	Success  bool
	Warnings []string
}

// Table outputs renamed while copying into the paper tree: the
// "_corrected" suffix is dropped so the manuscript's \input lines keep
// working.
var tableCopies = map[string]string{
	latex.Table1File:       "table_1_overall_performance.tex",
	latex.Table2File:       "table_2_performance_by_noise.tex",
	latex.LowNoiseSystems:  latex.LowNoiseSystems,
	latex.HighNoiseSystems: latex.HighNoiseSystems,
}

// Run executes the whole pipeline. A non-nil error means a required step
// failed; cosmetic failures are collected in Result.Warnings instead.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	result := Result{BuildID: uuid.NewString()}
	log := p.log.With(zap.String("build_id", result.BuildID))
	log.Info("starting paper build")

	p.filterData(log, &result)

	t, report, err := dataset.Load(p.cfg.Dataset.CSV)
	if err != nil {
		return result, fmt.Errorf("paper: load dataset: %w", err)
	}
	log.Info("dataset loaded",
		zap.Int("rows", report.Rows),
		zap.Int("skipped", report.Skipped))

	tables, err := latex.WriteAll(t, p.cfg)
	if err != nil {
		return result, fmt.Errorf("paper: generate tables: %w", err)
	}
	log.Info("tables generated", zap.Int("count", len(tables)))

	if figs, err := figures.WriteAll(t, p.cfg); err != nil {
		p.warn(log, &result, "figure generation failed", err)
	} else {
		log.Info("figures generated", zap.Int("count", len(figs)))
	}

	p.copyOutputs(log, &result)
	p.compile(ctx, log, &result)

	result.PDF = filepath.Join(p.cfg.Paper.Dir, "paper.pdf")
	if _, err := os.Stat(result.PDF); err != nil {
		log.Error("paper.pdf was not produced")
		return result, fmt.Errorf("paper: compile did not produce %s", result.PDF)
	}
	result.Success = true
	log.Info("paper build complete", zap.String("pdf", result.PDF))
	return result, nil
}

// filterData rewrites the raw dataset with non-identifiable parameters
// removed. A missing raw CSV is not fatal: the filtered file is assumed
// to exist already.
func (p *Pipeline) filterData(log *zap.Logger, result *Result) {
	raw := p.cfg.Dataset.RawCSV
	if raw == "" {
		return
	}
	if _, err := os.Stat(raw); err != nil {
		p.warn(log, result, "raw dataset not found, assuming filtered data exists",
			fmt.Errorf("%s: %w", raw, err))
		return
	}
	t, _, err := dataset.Load(raw)
	if err != nil {
		p.warn(log, result, "raw dataset unreadable, assuming filtered data exists", err)
		return
	}
	filtered, changed := dataset.FilterNonIdentifiable(t, dataset.NonIdentifiable)
	if err := dataset.Save(p.cfg.Dataset.CSV, filtered); err != nil {
		p.warn(log, result, "writing filtered dataset failed", err)
		return
	}
	log.Info("dataset filtered",
		zap.Int("rows", len(filtered)),
		zap.Int("changed", changed))
}

// copyOutputs places the regenerated tables and the PDF figures into the
// paper tree. Missing sources warn rather than stop.
func (p *Pipeline) copyOutputs(log *zap.Logger, result *Result) {
	for src, dst := range tableCopies {
		srcPath := filepath.Join(p.cfg.Output.Tables, src)
		dstPath := filepath.Join(p.cfg.Paper.Tables, dst)
		if err := copyFile(srcPath, dstPath); err != nil {
			p.warn(log, result, "table copy failed", err)
			continue
		}
		log.Info("table copied", zap.String("file", dst))
	}

	pdfs, err := filepath.Glob(filepath.Join(p.cfg.Output.Figures, "*.pdf"))
	if err != nil {
		p.warn(log, result, "figure glob failed", err)
		return
	}
	for _, src := range pdfs {
		dst := filepath.Join(p.cfg.Paper.Figures, filepath.Base(src))
		if err := copyFile(src, dst); err != nil {
			p.warn(log, result, "figure copy failed", err)
			continue
		}
		log.Info("figure copied", zap.String("file", filepath.Base(src)))
	}
}

// compile runs pdflatex three times with a bibtex pass after the first
// so cross-references and citations settle. Individual pass failures
// warn; the caller checks for the PDF afterwards.
func (p *Pipeline) compile(ctx context.Context, log *zap.Logger, result *Result) {
	passes := []struct {
		name string
		args []string
	}{
		{"pdflatex", []string{"-interaction=nonstopmode", "paper.tex"}},
		{"bibtex", []string{"paper"}},
		{"pdflatex", []string{"-interaction=nonstopmode", "paper.tex"}},
		{"pdflatex", []string{"-interaction=nonstopmode", "paper.tex"}},
	}
	for i, pass := range passes {
		cmd := exec.CommandContext(ctx, pass.name, pass.args...)
		cmd.Dir = p.cfg.Paper.Dir
		out, err := cmd.CombinedOutput()
		if err != nil {
			p.warn(log, result,
				fmt.Sprintf("%s pass %d failed", pass.name, i+1),
				fmt.Errorf("%w: %s", err, lastLines(string(out), 5)))
			continue
		}
		log.Info("latex pass complete",
			zap.String("command", pass.name),
			zap.Int("pass", i+1))
	}
}

func (p *Pipeline) warn(log *zap.Logger, result *Result, msg string, err error) {
	log.Warn(msg, zap.Error(err))
	result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", msg, err))
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// lastLines keeps the tail of a command's output for error messages.
func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, " | ")
}

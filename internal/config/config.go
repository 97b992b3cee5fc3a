// Package config holds the benchmark toolchain configuration: display
// labels for methods, systems and noise levels, and the file locations of
// the dataset, generated artifacts, and the paper tree. Everything that was
// previously scattered across scripts as module-level constants lives here
// so callers receive an explicit Config instead of reaching for globals.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the full toolchain configuration.
type Config struct {
	Dataset DatasetConfig `yaml:"dataset"`
	Output  OutputConfig  `yaml:"output"`
	Paper   PaperConfig   `yaml:"paper"`
	Labels  LabelsConfig  `yaml:"labels"`
	Compare CompareConfig `yaml:"compare"`
}

// DatasetConfig locates the benchmark CSVs and the optional trial cache.
type DatasetConfig struct {
	// CSV is the filtered dataset every metric is computed from.
	CSV string `yaml:"csv"`
	// RawCSV is the unfiltered dataset consumed by the filter step.
	RawCSV string `yaml:"raw_csv"`
	// Cache is an optional sqlite file holding parsed trials. Empty
	// disables caching.
	Cache string `yaml:"cache"`
}

// OutputConfig holds the directories generated artifacts are written to.
type OutputConfig struct {
	Tables  string `yaml:"tables"`
	Figures string `yaml:"figures"`
	Summary string `yaml:"summary"`
}

// PaperConfig locates the LaTeX paper tree.
type PaperConfig struct {
	Dir     string `yaml:"dir"`
	Tables  string `yaml:"tables"`
	Figures string `yaml:"figures"`
}

// LabelsConfig maps dataset identifiers to the display names used in
// tables and figures.
type LabelsConfig struct {
	// MethodOrder fixes the row order of every table and the series
	// order of every figure.
	MethodOrder []string `yaml:"method_order"`
	// SystemTableMethods selects the column methods of the per-system
	// tables.
	SystemTableMethods []string          `yaml:"system_table_methods"`
	MethodNames        map[string]string `yaml:"method_names"`
	SystemNames        map[string]string `yaml:"system_names"`
	// NoiseLabels is keyed by the shortest decimal form of the noise
	// level (strconv 'g' formatting), e.g. "1e-06".
	NoiseLabels map[string]string `yaml:"noise_labels"`
}

// CompareConfig carries the inline table values printed in the paper body,
// used by the compare command to decide which aggregation method produced
// them. Values are median errors in percent.
type CompareConfig struct {
	PaperMedians map[string]float64 `yaml:"paper_medians"`
}

// MethodName returns the display name for a run identifier, falling back
// to the identifier itself.
func (l LabelsConfig) MethodName(run string) string {
	if name, ok := l.MethodNames[run]; ok {
		return name
	}
	return run
}

// SystemName returns the display name for a system identifier, falling
// back to the identifier itself.
func (l LabelsConfig) SystemName(system string) string {
	if name, ok := l.SystemNames[system]; ok {
		return name
	}
	return system
}

// NoiseLabel returns the display label for a noise level, falling back to
// scientific notation.
func (l LabelsConfig) NoiseLabel(noise float64) string {
	key := strconv.FormatFloat(noise, 'g', -1, 64)
	if label, ok := l.NoiseLabels[key]; ok {
		return label
	}
	return fmt.Sprintf("%.0e", noise)
}

// Default returns the configuration for the published benchmark: five
// estimation methods, eleven ODE systems, five noise levels.
func Default() *Config {
	return &Config{
		Dataset: DatasetConfig{
			CSV:    "dataset_package/combined_results_filtered.csv",
			RawCSV: "dataset_package/combined_results.csv",
		},
		Output: OutputConfig{
			Tables:  "outputs/tables",
			Figures: "outputs/figures/corrected",
			Summary: "summary_statistics",
		},
		Paper: PaperConfig{
			Dir:     "paper",
			Tables:  "paper/tables",
			Figures: "paper/figures",
		},
		Labels: LabelsConfig{
			MethodOrder: []string{
				"odepe", "odepe_polish", "sciml", "amigo2_0_10", "amigo2_0_100",
			},
			SystemTableMethods: []string{"odepe_polish", "sciml", "amigo2_0_10"},
			MethodNames: map[string]string{
				"odepe":        "ODEPE-GPR",
				"odepe_polish": "ODEPE-GPR (polished)",
				"sciml":        "SciML",
				"amigo2_0_10":  "AMIGO2 [0,10]",
				"amigo2_0_100": "AMIGO2 [0,100]",
			},
			SystemNames: map[string]string{
				"biohydrogenation": "Biohydrogenation",
				"crauste":          "Crauste",
				"daisy_mamil3":     "DAISY MaMil3",
				"daisy_mamil4":     "DAISY MaMil4",
				"fitzhugh_nagumo":  "FitzHugh-Nagumo",
				"harmonic":         "Harmonic Oscillator",
				"hiv":              "HIV",
				"lotka_volterra":   "Lotka-Volterra",
				"seir":             "SEIR",
				"slowfast":         "Slow-Fast",
				"vanderpol":        "Van der Pol",
			},
			NoiseLabels: map[string]string{
				"0":      "0",
				"1e-08":  "10^-8",
				"1e-06":  "10^-6",
				"0.0001": "10^-4",
				"0.01":   "10^-2",
			},
		},
		Compare: CompareConfig{
			PaperMedians: map[string]float64{
				"odepe":        0.26,
				"odepe_polish": 0.13,
				"sciml":        0.44,
				"amigo2_0_10":  0.15,
				"amigo2_0_100": 0.38,
			},
		},
	}
}

// Load reads a yaml config file and merges it over the defaults. An empty
// path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the parts every command depends on are present.
func (c *Config) Validate() error {
	if c.Dataset.CSV == "" {
		return fmt.Errorf("dataset.csv is required")
	}
	if len(c.Labels.MethodOrder) == 0 {
		return fmt.Errorf("labels.method_order must name at least one method")
	}
	for _, run := range c.Labels.SystemTableMethods {
		if _, ok := c.Labels.MethodNames[run]; !ok {
			return fmt.Errorf("labels.system_table_methods entry %q has no display name", run)
		}
	}
	return nil
}

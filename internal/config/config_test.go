package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "dataset_package/combined_results_filtered.csv", cfg.Dataset.CSV)
	assert.Len(t, cfg.Labels.MethodOrder, 5)
	assert.Len(t, cfg.Labels.SystemNames, 11)
	assert.Equal(t, "ODEPE-GPR (polished)", cfg.Labels.MethodName("odepe_polish"))
	assert.Equal(t, "Van der Pol", cfg.Labels.SystemName("vanderpol"))
	assert.Equal(t, 0.26, cfg.Compare.PaperMedians["odepe"])
}

func TestLabelFallbacks(t *testing.T) {
	labels := Default().Labels
	assert.Equal(t, "mystery_method", labels.MethodName("mystery_method"))
	assert.Equal(t, "mystery_system", labels.SystemName("mystery_system"))
	assert.Equal(t, "10^-6", labels.NoiseLabel(1e-06))
	assert.Equal(t, "10^-2", labels.NoiseLabel(0.01))
	assert.Equal(t, "0", labels.NoiseLabel(0))
	assert.Equal(t, "3e-05", labels.NoiseLabel(3e-05))
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
dataset:
  csv: custom/data.csv
  cache: custom/trials.db
output:
  tables: custom/tables
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "custom/data.csv", cfg.Dataset.CSV)
	assert.Equal(t, "custom/trials.db", cfg.Dataset.Cache)
	assert.Equal(t, "custom/tables", cfg.Output.Tables)
	// Untouched sections keep their defaults.
	assert.Equal(t, "paper", cfg.Paper.Dir)
	assert.Len(t, cfg.Labels.MethodOrder, 5)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Dataset.CSV, cfg.Dataset.CSV)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dataset:\n  csv: \"\"\n"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestValidateSystemTableMethods(t *testing.T) {
	cfg := Default()
	cfg.Labels.SystemTableMethods = append(cfg.Labels.SystemTableMethods, "unknown")
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

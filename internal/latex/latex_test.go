package latex

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMethods = map[string]string{
	"odepe":        "ODEPE-GPR",
	"odepe_polish": "ODEPE-GPR (polished)",
	"sciml":        "SciML",
}

func writeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.tex")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRenderExtractTable1RoundTrip(t *testing.T) {
	rows := []Table1Row{
		{Method: "ODEPE-GPR", Success1: 12.3, Success10: 45.6, Success50: 78.9, MedianMaxPct: 0.26, P90MaxPct: 99.9},
		{Method: "SciML", Success1: 1.0, Success10: 2.0, Success50: 3.0, MedianMaxPct: 0.44, P90MaxPct: 10.0},
	}
	rendered := RenderTable1(rows)
	assert.Contains(t, rendered, `\label{tab:overall_performance}`)
	assert.Contains(t, rendered, `\begin{tabular}{lccccc}`)

	path := writeTable(t, rendered)
	values, err := ExtractTable1(path, testMethods)
	require.NoError(t, err)

	odepe, ok := values["odepe"]
	require.True(t, ok)
	assert.Equal(t, 12.3, odepe.SR1)
	assert.Equal(t, 45.6, odepe.SR10)
	assert.Equal(t, 78.9, odepe.SR50)
	assert.Equal(t, 0.26, odepe.MedianError)
	assert.Equal(t, 99.9, odepe.MeanTime)

	sciml := values["sciml"]
	assert.Equal(t, 0.44, sciml.MedianError)
}

func TestRenderExtractTable2RoundTrip(t *testing.T) {
	noiseLevels := []float64{0, 1e-08, 1e-06, 1e-04, 1e-02}
	rows := []Table2Row{
		{Method: "ODEPE-GPR", Values: []float64{0.01, 0.02, 0.26, 1.5, math.NaN()}},
	}
	rendered := RenderTable2(rows, noiseLevels)
	assert.Contains(t, rendered, `\label{tab:noise_performance}`)
	assert.Contains(t, rendered, "Method & 0 & $10^{-8}$ & $10^{-6}$ & $10^{-4}$ & $10^{-2}$")
	assert.Contains(t, rendered, "---")

	path := writeTable(t, rendered)
	values, err := ExtractTable2(path, testMethods)
	require.NoError(t, err)

	row := values["odepe"]
	require.Len(t, row, 5)
	assert.Equal(t, 0.26, row[2])
	assert.True(t, math.IsNaN(row[4]))
}

func TestRenderExtractSystemTableRoundTrip(t *testing.T) {
	rows := []SystemRow{
		{System: "SEIR", Values: []float64{0.003, 5.5, 2000}},
		{System: "HIV", Values: []float64{math.NaN(), 0.25, 99.9}},
	}
	rendered := RenderSystemTable(rows,
		[]string{"ODEPE-GPR (polished)", "SciML", "AMIGO2 [0,10]"},
		"Per-system error.", "tab:low_noise_systems")
	assert.Contains(t, rendered, `\begin{table}[H]`)
	assert.Contains(t, rendered, `\small`)
	assert.Contains(t, rendered, `\label{tab:low_noise_systems}`)

	path := writeTable(t, rendered)
	values, err := ExtractSystemTable(path, []string{"SEIR", "HIV"})
	require.NoError(t, err)

	seir := values["SEIR"]
	require.Len(t, seir, 3)
	assert.Equal(t, 0.003, seir[0])
	assert.Equal(t, 5.5, seir[1])
	assert.Equal(t, 1000.0, seir[2]) // $>1000$ sentinel reads back as 1000

	hiv := values["HIV"]
	assert.True(t, math.IsNaN(hiv[0]))
	assert.Equal(t, 0.25, hiv[1])
	assert.Equal(t, 99.9, hiv[2])
}

func TestFormatSystemCellLadder(t *testing.T) {
	assert.Equal(t, "N/A", formatSystemCell(math.NaN()))
	assert.Equal(t, "$>1000$", formatSystemCell(1000.1))
	assert.Equal(t, "999.9", formatSystemCell(999.93))
	assert.Equal(t, "10.5", formatSystemCell(10.5))
	assert.Equal(t, "0.25", formatSystemCell(0.25))
	assert.Equal(t, "0.050", formatSystemCell(0.05))
}

func TestNoiseHeader(t *testing.T) {
	assert.Equal(t, "0", noiseHeader(0))
	assert.Equal(t, "$10^{-8}$", noiseHeader(1e-08))
	assert.Equal(t, "$10^{-2}$", noiseHeader(1e-02))
}

func TestExtractMissingFile(t *testing.T) {
	_, err := ExtractTable1(filepath.Join(t.TempDir(), "absent.tex"), testMethods)
	require.Error(t, err)
}

func TestExtractRejectsNonNumericCell(t *testing.T) {
	path := writeTable(t, "SciML & 1.0 & 2.0 & 3.0 & oops & 5.0 \\\\\n")
	_, err := ExtractTable1(path, testMethods)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oops")
}

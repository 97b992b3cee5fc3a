package latex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"odebench/internal/config"
	"odebench/internal/dataset"
)

func TestWriteAll(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Tables = filepath.Join(t.TempDir(), "tables")
	cfg.Labels.MethodOrder = []string{"odepe", "sciml"}
	cfg.Labels.SystemTableMethods = []string{"odepe", "sciml"}

	table := dataset.Table{
		{Run: "odepe", System: "seir", Noise: 1e-06, HasResult: true, Time: 10,
			Result: "[('a', 1.001)]", TrueParameters: "{'a': 1}", TrueStates: "{}"},
		{Run: "odepe", System: "seir", Noise: 0.01, HasResult: true, Time: 12,
			Result: "[('a', 1.2)]", TrueParameters: "{'a': 1}", TrueStates: "{}"},
		{Run: "sciml", System: "seir", Noise: 1e-06, HasResult: true, Time: 2,
			Result: "[('a', 1.4)]", TrueParameters: "{'a': 1}", TrueStates: "{}"},
		{Run: "sciml", System: "seir", Noise: 0.01, HasResult: false,
			Result: "[]", TrueParameters: "{'a': 1}", TrueStates: "{}", Time: 1},
	}

	paths, err := WriteAll(table, cfg)
	require.NoError(t, err)
	require.Len(t, paths, 4)

	names := make(map[string]bool)
	for _, path := range paths {
		names[filepath.Base(path)] = true
		_, err := os.Stat(path)
		require.NoError(t, err, path)
	}
	assert.True(t, names[Table1File])
	assert.True(t, names[Table2File])
	assert.True(t, names[LowNoiseSystems])
	assert.True(t, names[HighNoiseSystems])

	data, err := os.ReadFile(filepath.Join(cfg.Output.Tables, Table1File))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, `\label{tab:overall_performance}`)
	assert.Contains(t, content, "ODEPE-GPR &")
	assert.Contains(t, content, "SciML &")

	// The by-noise table carries one column per noise level in the data.
	data, err = os.ReadFile(filepath.Join(cfg.Output.Tables, Table2File))
	require.NoError(t, err)
	assert.Contains(t, string(data), `\begin{tabular}{lcc}`)
	assert.Contains(t, string(data), "$10^{-6}$ & $10^{-2}$")

	// System tables read back through the extractor.
	values, err := ExtractSystemTable(
		filepath.Join(cfg.Output.Tables, LowNoiseSystems), []string{"SEIR"})
	require.NoError(t, err)
	row, ok := values["SEIR"]
	require.True(t, ok)
	require.Len(t, row, 2)
	assert.InDelta(t, 0.1, row[0], 1e-9)  // odepe: 0.1% median max
	assert.InDelta(t, 40.0, row[1], 1e-9) // sciml: 40% median max
}

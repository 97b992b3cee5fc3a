package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `run,name,noise,has_result,result,true_parameters,true_states,time
odepe,seir,0.0,True,"[('beta', 0.25)]","{'beta': 0.25}","{'S': 0.9}",12.5
sciml,seir,1e-06,False,[],"{'beta': 0.25}",{},3.0
odepe,hiv,0.01,True,"[('b', 0.3)]","{'b': 0.3}",{},7.25
odepe,hiv,not-a-number,True,[],{},{},1.0
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	table, report, err := Load(writeTemp(t, "data.csv", sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, 3, report.Rows)
	assert.Equal(t, 1, report.Skipped)
	require.Len(t, table, 3)

	first := table[0]
	assert.Equal(t, "odepe", first.Run)
	assert.Equal(t, "seir", first.System)
	assert.Equal(t, 0.0, first.Noise)
	assert.True(t, first.HasResult)
	assert.Equal(t, "[('beta', 0.25)]", first.Result)
	assert.Equal(t, 12.5, first.Time)

	assert.False(t, table[1].HasResult)
	assert.Equal(t, 1e-06, table[1].Noise)
}

func TestLoadWithIDColumn(t *testing.T) {
	csv := `id,run,name,noise,has_result,result,true_parameters,true_states,time
trial-1,odepe,seir,0.0,True,[],{},{},1.0
`
	table, _, err := Load(writeTemp(t, "data.csv", csv))
	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.Equal(t, "trial-1", table[0].ID)
}

func TestLoadMissingColumn(t *testing.T) {
	csv := "run,name,noise\nodepe,seir,0.0\n"
	_, _, err := Load(writeTemp(t, "data.csv", csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has_result")
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	table, _, err := Load(writeTemp(t, "data.csv", sampleCSV))
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, Save(out, table))

	reloaded, report, err := Load(out)
	require.NoError(t, err)
	assert.Zero(t, report.Skipped)
	assert.Equal(t, table, reloaded)
}

func TestSaveEmitsIDColumnWhenPresent(t *testing.T) {
	table := Table{{ID: "t1", Run: "odepe", System: "seir", Result: "[]",
		TrueParameters: "{}", TrueStates: "{}", Time: 1}}
	out := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, Save(out, table))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "id,run,name")

	reloaded, _, err := Load(out)
	require.NoError(t, err)
	require.Len(t, reloaded, 1)
	assert.Equal(t, "t1", reloaded[0].ID)
}

func TestTableFilters(t *testing.T) {
	table, _, err := Load(writeTemp(t, "data.csv", sampleCSV))
	require.NoError(t, err)

	assert.Len(t, table.ByRun("odepe"), 2)
	assert.Len(t, table.ByNoise(1e-06), 1)
	assert.Len(t, table.BySystem("hiv"), 1)
	assert.Equal(t, []string{"odepe", "sciml"}, table.Runs())
	assert.Equal(t, []string{"hiv", "seir"}, table.Systems())
	assert.Equal(t, []float64{0, 1e-06, 0.01}, table.NoiseLevels())
}

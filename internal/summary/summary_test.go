package summary

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"odebench/internal/config"
	"odebench/internal/dataset"
)

func TestRowError(t *testing.T) {
	t.Run("mean over matched parameters", func(t *testing.T) {
		trial := dataset.Trial{
			Result:         "[('a', 1.1), ('b', 2.4)]",
			TrueParameters: "{'a': 1, 'b': 2}",
		}
		assert.InDelta(t, 0.15, RowError(trial), 1e-12)
	})

	t.Run("states are excluded", func(t *testing.T) {
		trial := dataset.Trial{
			Result:         "[('a', 1.1), ('s1', 100)]",
			TrueParameters: "{'a': 1}",
			TrueStates:     "{'s1': 0.5}",
		}
		// Only 'a' counts; the wildly wrong state must not move the mean.
		assert.InDelta(t, 0.1, RowError(trial), 1e-12)
	})

	t.Run("no overlap is NaN", func(t *testing.T) {
		trial := dataset.Trial{
			Result:         "[('z', 1)]",
			TrueParameters: "{'a': 1}",
		}
		assert.True(t, math.IsNaN(RowError(trial)))
	})

	t.Run("empty cells are NaN", func(t *testing.T) {
		assert.True(t, math.IsNaN(RowError(dataset.Trial{Result: "[]", TrueParameters: "{'a': 1}"})))
		assert.True(t, math.IsNaN(RowError(dataset.Trial{Result: "[('a', 1)]", TrueParameters: "{}"})))
	})
}

func testTable() dataset.Table {
	return dataset.Table{
		{Run: "odepe", System: "seir", Noise: 0, HasResult: true, Time: 10,
			Result: "[('a', 1.1)]", TrueParameters: "{'a': 1}", TrueStates: "{}"},
		{Run: "odepe", System: "seir", Noise: 0.01, HasResult: true, Time: 30,
			Result: "[('a', 1.3)]", TrueParameters: "{'a': 1}", TrueStates: "{}"},
		{Run: "odepe", System: "hiv", Noise: 0, HasResult: false, Time: 5,
			Result: "[]", TrueParameters: "{'a': 1}", TrueStates: "{}"},
		{Run: "sciml", System: "seir", Noise: 0, HasResult: true, Time: 2,
			Result: "[('a', 1.5)]", TrueParameters: "{'a': 1}", TrueStates: "{}"},
	}
}

func TestOverall(t *testing.T) {
	rows := Overall(testTable())
	require.Len(t, rows, 2)

	odepe := rows[0]
	assert.Equal(t, "odepe", odepe.Software)
	assert.Equal(t, 2, odepe.SuccessCount)
	assert.Equal(t, 3, odepe.Total)
	assert.InDelta(t, 66.7, odepe.SuccessRate, 1e-9)
	assert.InDelta(t, 0.2, odepe.MeanError, 1e-9)   // mean of 0.1 and 0.3
	assert.InDelta(t, 0.2, odepe.MedianError, 1e-9) // median of the same
	assert.InDelta(t, 20.0, odepe.MeanTimeSec, 1e-9)

	sciml := rows[1]
	assert.Equal(t, "sciml", sciml.Software)
	assert.Equal(t, 1, sciml.SuccessCount)
	assert.Equal(t, 100.0, sciml.SuccessRate)
	assert.InDelta(t, 0.5, sciml.MeanError, 1e-9)
}

func TestBySystemSortsHardestFirst(t *testing.T) {
	p := BySystem(testTable())
	assert.Equal(t, []string{"odepe", "sciml"}, p.Columns)
	// seir carries real errors, hiv only a failed trial (no valid error).
	require.Len(t, p.Index, 2)
	assert.Equal(t, "seir", p.Index[0])
	assert.Equal(t, "hiv", p.Index[1])

	// odepe over seir: mean of 0.1 and 0.3.
	assert.InDelta(t, 0.2, p.Cells[0][0], 1e-9)
	// hiv has no successful odepe trials.
	assert.True(t, math.IsNaN(p.Cells[1][0]))
}

func TestByNoise(t *testing.T) {
	p := ByNoise(testTable())
	require.Equal(t, []string{"0", "0.01"}, p.Index)
	assert.InDelta(t, 0.1, p.Cells[0][0], 1e-9) // odepe at noise 0
	assert.InDelta(t, 0.3, p.Cells[1][0], 1e-9) // odepe at noise 0.01
	assert.True(t, math.IsNaN(p.Cells[1][1]))   // sciml absent at 0.01
}

func TestWriteAll(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Summary = filepath.Join(t.TempDir(), "summary")

	paths, err := WriteAll(testTable(), cfg)
	require.NoError(t, err)
	require.Len(t, paths, 4)

	for _, path := range paths {
		_, err := os.Stat(path)
		assert.NoError(t, err, path)
	}

	data, err := os.ReadFile(filepath.Join(cfg.Output.Summary, OverallFile))
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "software,success_count"))
	assert.Contains(t, content, "odepe,2,3,66.7")

	md, err := os.ReadFile(filepath.Join(cfg.Output.Summary, MarkdownFile))
	require.NoError(t, err)
	assert.Contains(t, string(md), "# Summary Statistics")
	assert.Contains(t, string(md), "| odepe |")
	assert.Contains(t, string(md), "N/A")
}

func TestMarkdownFloatFormatting(t *testing.T) {
	assert.Equal(t, "N/A", mdFloat(math.NaN()))
	assert.Equal(t, "2.50e-04", mdFloat(0.00025))
	assert.Equal(t, "0.25", mdFloat(0.25))
	assert.Equal(t, "1", mdFloat(1.0))
	assert.Equal(t, "0", mdFloat(0.0))
}

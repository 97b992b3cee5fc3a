package audit

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

func TestCheckTolerance(t *testing.T) {
	t.Run("strictly below tolerance matches", func(t *testing.T) {
		c := check("sr_1", 0.0, 0.09, TolerancePct)
		assert.True(t, c.Match)
	})

	t.Run("exactly at tolerance fails", func(t *testing.T) {
		c := check("sr_1", 0.0, 0.1, TolerancePct)
		assert.False(t, c.Match)
		assert.InDelta(t, 0.1, c.Diff, 1e-12)
	})

	t.Run("time tolerance is looser", func(t *testing.T) {
		assert.True(t, check("mean_time", 30.0, 30.9, ToleranceTime).Match)
		assert.False(t, check("mean_time", 30.0, 31.0, ToleranceTime).Match)
	})

	t.Run("two NaNs match", func(t *testing.T) {
		c := check("x", math.NaN(), math.NaN(), TolerancePct)
		assert.True(t, c.Match)
	})

	t.Run("one NaN fails", func(t *testing.T) {
		assert.False(t, check("x", math.NaN(), 1.0, TolerancePct).Match)
		assert.False(t, check("x", 1.0, math.NaN(), TolerancePct).Match)
	})
}

// auditConfig builds a config whose paper tree lives in dir and whose
// labels cover the two methods and one system of the fixture table.
func auditConfig(dir string) *config.Config {
	cfg := config.Default()
	cfg.Paper.Tables = dir
	cfg.Labels.MethodOrder = []string{"odepe", "sciml"}
	cfg.Labels.SystemTableMethods = []string{"odepe", "sciml"}
	cfg.Labels.MethodNames = map[string]string{
		"odepe": "ODEPE-GPR",
		"sciml": "SciML",
	}
	cfg.Labels.SystemNames = map[string]string{"seir": "SEIR"}
	return cfg
}

// fixtureTable holds two trials per method at one noise level, with
// simple single-parameter errors.
func fixtureTable() dataset.Table {
	return dataset.Table{
		{Run: "odepe", System: "seir", Noise: 1e-06, HasResult: true, Time: 10,
			Result: "[('a', 1.001)]", TrueParameters: "{'a': 1}", TrueStates: "{}"},
		{Run: "odepe", System: "seir", Noise: 1e-06, HasResult: true, Time: 20,
			Result: "[('a', 1.003)]", TrueParameters: "{'a': 1}", TrueStates: "{}"},
		{Run: "sciml", System: "seir", Noise: 1e-06, HasResult: true, Time: 1,
			Result: "[('a', 1.2)]", TrueParameters: "{'a': 1}", TrueStates: "{}"},
		{Run: "sciml", System: "seir", Noise: 1e-06, HasResult: true, Time: 3,
			Result: "[('a', 1.4)]", TrueParameters: "{'a': 1}", TrueStates: "{}"},
	}
}

func writeFixture(t *testing.T, dir, name string, lines ...string) {
	t.Helper()
	content := strings.Join(lines, "\n") + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestTable1Audit(t *testing.T) {
	dir := t.TempDir()
	// odepe pool [0.001, 0.003]: sr_1 100, sr_10 100, sr_50 100,
	// median 0.2%, mean time 15s. sciml pool [0.2, 0.4]: sr_1 0,
	// sr_10 0, sr_50 100, median 30%, mean time 2s.
	writeFixture(t, dir, PublishedTable1,
		`ODEPE-GPR & 100.0 & 100.0 & 100.0 & 0.20 & 15.0 \\`,
		`SciML & 0.0 & 0.0 & 100.0 & 30.00 & 2.0 \\`,
	)

	cfg := auditConfig(dir)
	result, err := Table1(fixtureTable(), cfg)
	require.NoError(t, err)
	assert.True(t, result.Pass(), "result: %+v", result)
	assert.Len(t, result.Groups, 2)
}

func TestTable1AuditCatchesDrift(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, PublishedTable1,
		`ODEPE-GPR & 100.0 & 100.0 & 100.0 & 0.20 & 15.0 \\`,
		`SciML & 0.0 & 0.0 & 100.0 & 31.00 & 2.0 \\`, // median off by 1.0
	)

	cfg := auditConfig(dir)
	result, err := Table1(fixtureTable(), cfg)
	require.NoError(t, err)
	assert.False(t, result.Pass())
	assert.Equal(t, 1, result.Failures())
}

func TestTable2Audit(t *testing.T) {
	dir := t.TempDir()
	// One noise level, pooled medians: odepe 0.2%, sciml 30%.
	writeFixture(t, dir, PublishedTable2,
		`ODEPE-GPR & 0.20 \\`,
		`SciML & 30.00 \\`,
	)

	cfg := auditConfig(dir)
	result, err := Table2(fixtureTable(), cfg)
	require.NoError(t, err)
	assert.True(t, result.Pass(), "result: %+v", result)
}

func TestSystemTableAudit(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, PublishedLowNoise,
		`SEIR & 0.200 & 30.0 \\`,
	)

	cfg := auditConfig(dir)
	result, err := SystemTable(fixtureTable(), cfg, 1e-06, PublishedLowNoise, "Table 3")
	require.NoError(t, err)
	assert.True(t, result.Pass(), "result: %+v", result)
}

func TestAuditMissingPublishedTable(t *testing.T) {
	cfg := auditConfig(t.TempDir())
	_, err := Table1(fixtureTable(), cfg)
	require.Error(t, err)
}

func TestRunReportAggregation(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, PublishedTable1,
		`ODEPE-GPR & 100.0 & 100.0 & 100.0 & 0.20 & 15.0 \\`,
		`SciML & 0.0 & 0.0 & 100.0 & 30.00 & 2.0 \\`,
	)
	writeFixture(t, dir, PublishedTable2,
		`ODEPE-GPR & 0.20 \\`,
		`SciML & 30.00 \\`,
	)
	writeFixture(t, dir, PublishedLowNoise, `SEIR & 0.200 & 30.0 \\`)
	writeFixture(t, dir, PublishedHighNoise, `SEIR & N/A & N/A \\`)

	cfg := auditConfig(dir)
	report, err := Run(fixtureTable(), cfg)
	require.NoError(t, err)
	require.Len(t, report.Tables, 4)

	// No trials at 1e-2, so the recomputed high-noise cells are NaN and
	// agree with the published N/A sentinels.
	assert.True(t, report.Pass(), "failures: %d", report.Failures())
	assert.Zero(t, report.Failures())
}

func TestRenderReportMentionsVerdict(t *testing.T) {
	report := Report{Tables: []TableResult{{
		Title: "Table 1 (Overall Performance)",
		Groups: []Group{{
			Heading: "ODEPE-GPR",
			Checks: []Check{
				check("sr_1", 10.0, 10.0, TolerancePct),
				check("sr_10", 10.0, 50.0, TolerancePct),
			},
		}},
	}}}

	var sb strings.Builder
	Render(&sb, report, DefaultStyles())
	out := sb.String()
	assert.Contains(t, out, "AUDIT SUMMARY")
	assert.Contains(t, out, "sr_1")
	assert.Contains(t, out, "FOUND 1 TOTAL DISCREPANCIES")
}

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/prometheus/common/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"

	"github.com/katalvlaran/quadra/config"
	"github.com/katalvlaran/quadra/metrics"
	"github.com/katalvlaran/quadra/quadrature"
	"github.com/katalvlaran/quadra/refine"
)

// decoded mirrors report with plain field types.
type decoded struct {
	Integrand int     `json:"integrand"`
	Epsilon   float64 `json:"epsilon"`
	Results   []struct {
		Rule   string `json:"rule"`
		Error  string `json:"error"`
		Result struct {
			State      string  `json:"state"`
			N          int     `json:"n"`
			Value      float64 `json:"value"`
			Exact      float64 `json:"exact"`
			RungeError float64 `json:"rungeError"`
			Table      *struct {
				Headers []string `json:"headers"`
				Rows    []any    `json:"rows"`
			} `json:"table"`
			Iterations []struct {
				N int `json:"n"`
			} `json:"iterations"`
		} `json:"result"`
	} `json:"results"`
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := execute(args, &out, &errOut)

	return out.String(), errOut.String(), err
}

func TestRun_JSONDecimalComma(t *testing.T) {
	out, _, err := runCLI(t, "run", "--integrand", "1", "--a", "0", "--b", "1",
		"--eps", "0,01", "--rule", "trapezoid", "-o", "json")
	require.NoError(t, err)

	var rep decoded
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, 0.01, rep.Epsilon)
	require.Len(t, rep.Results, 1)
	r := rep.Results[0]
	assert.Equal(t, "trapezoid", r.Rule)
	assert.Empty(t, r.Error)
	assert.Equal(t, "converged", r.Result.State)
	assert.Equal(t, 8, r.Result.N)
	assert.InDelta(t, -0.58984375, r.Result.Value, 1e-12)
	assert.InDelta(t, -7.0/12.0, r.Result.Exact, 1e-12)
	require.NotNil(t, r.Result.Table)
	assert.Equal(t, []string{"i", "x_i", "f(x_i)"}, r.Result.Table.Headers)
	assert.Len(t, r.Result.Table.Rows, 9)
	assert.Len(t, r.Result.Iterations, 2)
}

func TestRun_RepeatedRulesYAML(t *testing.T) {
	out, _, err := runCLI(t, "run", "--integrand", "2", "--eps", "1e-6",
		"--rule", "simpson", "--rule", "mid", "--output", "yaml")
	require.NoError(t, err)

	var rep decoded
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.Results, 2)
	assert.Equal(t, "simpson", rep.Results[0].Rule)
	assert.Equal(t, 32, rep.Results[0].Result.N)
	assert.Equal(t, "mid", rep.Results[1].Rule)
	assert.LessOrEqual(t, rep.Results[1].Result.RungeError, 1e-6)
}

func TestRun_Text(t *testing.T) {
	out, _, err := runCLI(t, "run", "--rule", "left", "--rule", "simpson", "--table")
	require.NoError(t, err)
	assert.Contains(t, out, "RULE")
	assert.Contains(t, out, "left")
	assert.Contains(t, out, "simpson")
	assert.Contains(t, out, "converged")
	assert.Contains(t, out, "x_i")
}

func TestRun_TextPlaceholder(t *testing.T) {
	out, _, err := runCLI(t, "run", "--rule", "right", "--eps", "1e-4", "--table-limit", "3", "--table")
	require.NoError(t, err)
	assert.Contains(t, out, "too large")
}

// TestRun_FailureStillRenders prints the report, logs and exits non-zero.
func TestRun_FailureStillRenders(t *testing.T) {
	out, logs, err := runCLI(t, "run", "--a", "1", "--b", "0", "--rule", "trapezoid", "-o", "json")
	require.ErrorIs(t, err, errRunFailed)

	var rep decoded
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.Results, 1)
	assert.Equal(t, "failed", rep.Results[0].Result.State)
	assert.NotEmpty(t, rep.Results[0].Error)
	assert.Contains(t, logs, "rule failed")
}

func TestRun_CeilingFlag(t *testing.T) {
	_, logs, err := runCLI(t, "run", "--rule", "right", "--eps", "1e-12", "--max-partitions", "64")
	require.ErrorIs(t, err, errRunFailed)
	assert.Contains(t, logs, "maximum number of partitions exceeded")
}

func TestRun_UnknownIntegrand(t *testing.T) {
	_, logs, err := runCLI(t, "run", "--integrand", "9")
	require.ErrorIs(t, err, refine.ErrIntegrandNotFound)
	assert.Contains(t, logs, "quadra: failed")
}

func TestRun_InvalidInput(t *testing.T) {
	for _, args := range [][]string{
		{"run", "--eps", "0"},
		{"run", "--eps", "abc"},
		{"run", "--rule", "romberg"},
		{"run", "-o", "xml"},
		{"run", "--log-level", "loud"},
	} {
		_, _, err := runCLI(t, args...)
		assert.ErrorIs(t, err, config.ErrInvalidConfig, "%v", args)
	}
}

func TestRun_Metrics(t *testing.T) {
	out, _, err := runCLI(t, "run", "--rule", "trapezoid", "--metrics")
	require.NoError(t, err)
	assert.Contains(t, out, `quadra_runs_total{outcome="converged",rule="trapezoid"} 1`)
	assert.Contains(t, out, `quadra_iterations_total{rule="trapezoid"} 2`)
	assert.Contains(t, out, `quadra_converged_partitions_count{rule="trapezoid"} 1`)
	assert.Contains(t, out, "# TYPE quadra_runs_total counter")
	assert.Contains(t, out, `quadra_converged_partitions_bucket{rule="trapezoid",le="8"} 1`)
}

// TestWriteMetrics_TextFormat round-trips the exposition through the text
// parser, histogram buckets included.
func TestWriteMetrics_TextFormat(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := metrics.NewRecorder(reg)
	kind := quadrature.Trapezoid
	_, err := refine.Run(0, 1, func(x float64) float64 { return x * x * x }, 0.01, kind, rec.Options(kind)...)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeMetrics(&buf, reg))

	parser := expfmt.NewTextParser(model.UTF8Validation)
	families, err := parser.TextToMetricFamilies(&buf)
	require.NoError(t, err)

	runs, ok := families["quadra_runs_total"]
	require.True(t, ok)
	assert.Equal(t, "Total refinement runs by rule and outcome", runs.GetHelp())
	require.Len(t, runs.GetMetric(), 1)
	assert.Equal(t, 1.0, runs.GetMetric()[0].GetCounter().GetValue())

	parts, ok := families["quadra_converged_partitions"]
	require.True(t, ok)
	require.Len(t, parts.GetMetric(), 1)
	h := parts.GetMetric()[0].GetHistogram()
	assert.Equal(t, uint64(1), h.GetSampleCount())
	assert.Len(t, h.GetBucket(), 11)
	for _, b := range h.GetBucket() {
		want := uint64(0)
		if b.GetUpperBound() >= float64(8) {
			want = 1
		}
		assert.Equal(t, want, b.GetCumulativeCount(), "le=%g", b.GetUpperBound())
	}
}

func TestRun_EnvAndConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quadra.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules: [mid]\nepsilon: 0.001\n"), 0o600))
	t.Setenv("QUADRA_OUTPUT", "json")

	out, _, err := runCLI(t, "run", "--config", path)
	require.NoError(t, err)

	var rep decoded
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, 0.001, rep.Epsilon)
	require.Len(t, rep.Results, 1)
	assert.Equal(t, "mid", rep.Results[0].Rule)
}

func TestList(t *testing.T) {
	out, _, err := runCLI(t, "list", "-o", "json")
	require.NoError(t, err)

	var entries []integrandEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 3)
	for i, e := range entries {
		assert.Equal(t, i+1, e.ID)
		assert.True(t, e.Exact)
		assert.NotEmpty(t, e.Formula)
	}

	out, _, err = runCLI(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "FORMULA")
}

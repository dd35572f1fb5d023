package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Nil(t, cfg.Steps, "step count must stay unset so scenarios keep their natural length")
	assert.Equal(t, 70.0, cfg.Initial.Satisfaction)
	assert.NotEmpty(t, cfg.Output.ChartPath)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	content := `
subject: "Customer Analysis"
steps: 12
scenario: decline-recovery
initial:
  satisfaction: 85
  dependency: 15
output:
  chart_path: out/analysis.html
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Customer Analysis", cfg.Subject)
	require.NotNil(t, cfg.Steps)
	assert.Equal(t, 12, *cfg.Steps)
	assert.Equal(t, "decline-recovery", cfg.Scenario)
	assert.Equal(t, 85.0, cfg.Initial.Satisfaction)
	assert.Equal(t, 15.0, cfg.Initial.Dependency)
	// Untouched fields keep their defaults.
	assert.Equal(t, 20.0, cfg.Initial.Manipulation)
	assert.Equal(t, "out/analysis.html", cfg.Output.ChartPath)
}

func TestLoadWithoutStepsLeavesCountUnset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scenario: capture\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Nil(t, cfg.Steps)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps: twelve\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err, "non-numeric steps must be reported before the run")
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty subject", func(c *Config) { c.Subject = "" }},
		{"negative steps", func(c *Config) { n := -1; c.Steps = &n }},
		{"nan initial", func(c *Config) { c.Initial.Dependency = math.NaN() }},
		{"infinite trend", func(c *Config) { c.Trend.Manipulation = math.Inf(1) }},
		{"missing chart path", func(c *Config) { c.Output.ChartPath = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateAllowsNoChartWithoutPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.ChartPath = ""
	cfg.Output.NoChart = true
	assert.NoError(t, cfg.Validate())
}

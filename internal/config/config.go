// Package config holds the run configuration for the simulator.
// Values come from an optional YAML file; CLI flags override file values.
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Inputs are the three core metrics on the 0-100 scale.
type Inputs struct {
	Satisfaction float64 `yaml:"satisfaction"`
	Dependency   float64 `yaml:"dependency"`
	Manipulation float64 `yaml:"manipulation"`
}

// Trend is the per-step drift applied to the core inputs when no scripted
// scenario is selected.
type Trend struct {
	Satisfaction float64 `yaml:"satisfaction"`
	Dependency   float64 `yaml:"dependency"`
	Manipulation float64 `yaml:"manipulation"`
}

// Output configures the report artifacts.
type Output struct {
	ChartPath string `yaml:"chart_path"`
	NoChart   bool   `yaml:"no_chart"`
}

// DefaultRunSteps is the trend-mode run length when no step count is
// configured.
const DefaultRunSteps = 20

// Config is the full run configuration.
type Config struct {
	Subject string `yaml:"subject"`
	// Steps is the run length. Unset falls back to the scenario's natural
	// length (or DefaultRunSteps in trend mode); an explicit 0 is a valid
	// empty run.
	Steps    *int   `yaml:"steps"`
	Scenario string `yaml:"scenario"` // scripted scenario name, empty for trend mode

	Initial Inputs `yaml:"initial"`
	Trend   Trend  `yaml:"trend"`
	Output  Output `yaml:"output"`
}

// DefaultConfig returns a runnable configuration: a moderately healthy
// subject drifting slowly toward dependency over 20 steps.
func DefaultConfig() *Config {
	return &Config{
		Subject:  "Subject A",
		Scenario: "",
		Initial: Inputs{
			Satisfaction: 70,
			Dependency:   30,
			Manipulation: 20,
		},
		Trend: Trend{
			Satisfaction: -2,
			Dependency:   2,
			Manipulation: 2,
		},
		Output: Output{
			ChartPath: "loyalty_analysis.html",
		},
	}
}

// Load reads a YAML config file on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Validate rejects configurations the engine cannot run. Out-of-range core
// inputs are NOT an error here - the rules layer clamps them.
func (c *Config) Validate() error {
	if c.Subject == "" {
		return fmt.Errorf("subject name must not be empty")
	}
	if c.Steps != nil && *c.Steps < 0 {
		return fmt.Errorf("steps must not be negative, got %d", *c.Steps)
	}
	for name, v := range map[string]float64{
		"initial.satisfaction": c.Initial.Satisfaction,
		"initial.dependency":   c.Initial.Dependency,
		"initial.manipulation": c.Initial.Manipulation,
		"trend.satisfaction":   c.Trend.Satisfaction,
		"trend.dependency":     c.Trend.Dependency,
		"trend.manipulation":   c.Trend.Manipulation,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be a finite number", name)
		}
	}
	if !c.Output.NoChart && c.Output.ChartPath == "" {
		return fmt.Errorf("output.chart_path must not be empty unless output.no_chart is set")
	}
	return nil
}

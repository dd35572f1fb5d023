// Package main is the entry point for the loyaltysim CLI.
// It only handles flag parsing and dependency injection.
// NO simulation logic belongs here.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/relfield/loyaltysim/internal/config"
	"github.com/relfield/loyaltysim/internal/domain/subject"
	"github.com/relfield/loyaltysim/internal/engine"
	"github.com/relfield/loyaltysim/internal/events"
	"github.com/relfield/loyaltysim/internal/platform/logger"
	"github.com/relfield/loyaltysim/internal/report"
)

var (
	// Global flags
	verbose bool

	// Run flags
	cfgPath      string
	subjectName  string
	steps        int
	satisfaction float64
	dependency   float64
	manipulation float64
	scenarioName string
	chartPath    string
	noChart      bool

	appLogger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "loyaltysim",
	Short: "Simulate and chart relationship loyalty metrics",
	Long: `loyaltysim simulates a relationship's loyalty metrics over time.

Each step derives vulnerability, autonomy, power imbalance and an aggregate
health score from three core inputs (satisfaction, dependency, manipulation),
classifies the result into a loyalty state, and renders the full series as a
multi-panel chart plus a terminal report.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		appLogger, err = logger.New(verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if appLogger != nil {
			_ = appLogger.Sync()
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation and produce the report artifacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		s := subject.NewSubject(cfg.Subject)
		s.Set(cfg.Initial.Satisfaction, cfg.Initial.Dependency, cfg.Initial.Manipulation)

		scenario, err := buildScenario(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		eng := engine.NewEngine(events.NewLog(), appLogger, s, scenario)
		history, err := eng.Run(ctx, resolveSteps(cfg, scenario))
		if err != nil {
			// An interrupted run still has a reportable prefix.
			partial := eng.History()
			if len(partial) == 0 {
				return err
			}
			appLogger.Warn("run interrupted, reporting partial results",
				zap.Error(err), zap.Int("observations", len(partial)))
			history = partial
		}

		reporter := report.NewReporter(appLogger, os.Stdout)
		_, err = reporter.Generate(cfg.Subject, history, report.Options{
			ChartPath: cfg.Output.ChartPath,
			NoChart:   cfg.Output.NoChart,
		})
		if errors.Is(err, report.ErrNoData) {
			fmt.Println("nothing to plot: the run produced no observations")
			return nil
		}
		return err
	},
}

var statesCmd = &cobra.Command{
	Use:   "states",
	Short: "Print the loyalty state bands",
	Run: func(cmd *cobra.Command, args []string) {
		report.PrintStateBands(os.Stdout)
	},
}

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the scripted scenario presets",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range engine.Presets() {
			scenario, err := engine.PresetByName(name)
			if err != nil {
				continue
			}
			fmt.Printf("%-18s %d steps\n", name, scenario.DefaultSteps())
		}
	},
}

// loadConfig merges defaults, the optional config file and explicit flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("subject") {
		cfg.Subject = subjectName
	}
	if flags.Changed("steps") {
		cfg.Steps = &steps
	}
	if flags.Changed("satisfaction") {
		cfg.Initial.Satisfaction = satisfaction
	}
	if flags.Changed("dependency") {
		cfg.Initial.Dependency = dependency
	}
	if flags.Changed("manipulation") {
		cfg.Initial.Manipulation = manipulation
	}
	if flags.Changed("scenario") {
		cfg.Scenario = scenarioName
	}
	if flags.Changed("out") {
		cfg.Output.ChartPath = chartPath
	}
	if flags.Changed("no-chart") {
		cfg.Output.NoChart = noChart
	}
	return cfg, nil
}

// resolveSteps picks the run length: an explicit step count (flag or config
// file) wins, then the scenario's natural length, then the trend-mode default.
func resolveSteps(cfg *config.Config, scenario engine.Scenario) int {
	if cfg.Steps != nil {
		return *cfg.Steps
	}
	if n := scenario.DefaultSteps(); n > 0 {
		return n
	}
	return config.DefaultRunSteps
}

// buildScenario picks the scripted preset when one is named, otherwise the
// configured trend drift.
func buildScenario(cfg *config.Config) (engine.Scenario, error) {
	if cfg.Scenario != "" {
		return engine.PresetByName(cfg.Scenario)
	}
	return &engine.TrendScenario{
		DeltaSatisfaction: cfg.Trend.Satisfaction,
		DeltaDependency:   cfg.Trend.Dependency,
		DeltaManipulation: cfg.Trend.Manipulation,
	}, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	runCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to a YAML config file")
	runCmd.Flags().StringVar(&subjectName, "subject", "", "name of the tracked subject")
	runCmd.Flags().IntVar(&steps, "steps", 0, "number of simulated steps (defaults to the scenario length)")
	runCmd.Flags().Float64Var(&satisfaction, "satisfaction", 0, "initial satisfaction (0-100)")
	runCmd.Flags().Float64Var(&dependency, "dependency", 0, "initial dependency (0-100)")
	runCmd.Flags().Float64Var(&manipulation, "manipulation", 0, "initial manipulation (0-100)")
	runCmd.Flags().StringVar(&scenarioName, "scenario", "", "scripted scenario preset (see 'scenarios')")
	runCmd.Flags().StringVarP(&chartPath, "out", "o", "", "chart output path")
	runCmd.Flags().BoolVar(&noChart, "no-chart", false, "skip the chart artifact")

	rootCmd.AddCommand(runCmd, statesCmd, scenariosCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package report renders a finished run for human inspection: a terminal
// timeline and summary, and a multi-panel HTML chart artifact.
package report

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/relfield/loyaltysim/internal/domain/rules"
)

// ErrNoData signals an empty observation series. Callers treat it as a
// benign "nothing to plot" outcome, not a failure.
var ErrNoData = errors.New("no observations to report")

// Options controls which artifacts a report produces.
type Options struct {
	ChartPath string // destination for the HTML chart
	NoChart   bool   // skip the chart artifact entirely
}

// Reporter turns an observation history into its output artifacts.
type Reporter struct {
	logger *zap.Logger
	out    io.Writer
}

// NewReporter creates a reporter writing terminal output to out.
func NewReporter(log *zap.Logger, out io.Writer) *Reporter {
	return &Reporter{logger: log, out: out}
}

// Generate writes the terminal report and the chart artifact for a run.
// An empty history returns ErrNoData and produces nothing.
func (r *Reporter) Generate(subjectName string, history []rules.Observation, opts Options) (*RunStats, error) {
	if len(history) == 0 {
		return nil, ErrNoData
	}

	PrintTimeline(r.out, subjectName, history)
	fmt.Fprintln(r.out)

	stats := Collect(history)
	PrintSummary(r.out, stats)

	if !opts.NoChart {
		if err := WriteChartFile(opts.ChartPath, subjectName, history); err != nil {
			return stats, fmt.Errorf("chart generation failed: %w", err)
		}
		r.logger.Info("chart written", zap.String("path", opts.ChartPath))
		fmt.Fprintf(r.out, "\nchart: %s\n", opts.ChartPath)
	}

	return stats, nil
}

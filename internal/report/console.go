package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/relfield/loyaltysim/internal/domain/rules"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
	riskStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e74c3c"))
)

func stateStyle(s rules.LoyaltyState) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(rules.StateColor(s)))
}

// PrintTimeline writes the per-step state timeline.
func PrintTimeline(w io.Writer, subjectName string, history []rules.Observation) {
	fmt.Fprintln(w, headerStyle.Render("Loyalty timeline: "+subjectName))

	for _, obs := range history {
		line := fmt.Sprintf("step %3d  health %5.1f  %s",
			obs.Step, obs.HealthScore, stateStyle(obs.State).Render(string(obs.State)))

		if len(obs.RiskFactors) > 0 {
			flags := make([]string, len(obs.RiskFactors))
			for i, f := range obs.RiskFactors {
				flags[i] = string(f)
			}
			line += "  " + riskStyle.Render("!"+strings.Join(flags, " !"))
		}
		fmt.Fprintln(w, line)
	}
}

// PrintSummary writes the aggregate run statistics.
func PrintSummary(w io.Writer, stats *RunStats) {
	if stats == nil {
		return
	}

	fmt.Fprintln(w, headerStyle.Render("Run summary"))
	fmt.Fprintf(w, "steps        %d\n", stats.StepsSimulated)
	fmt.Fprintf(w, "transitions  %d\n", stats.Transitions)
	fmt.Fprintf(w, "health       min %.1f / avg %.1f / max %.1f\n",
		stats.MinHealth, stats.AvgHealth, stats.MaxHealth)
	fmt.Fprintf(w, "final        %.1f (%s)\n",
		stats.FinalHealth, stateStyle(stats.FinalState).Render(string(stats.FinalState)))

	fmt.Fprintln(w, dimStyle.Render("steps per state:"))
	for _, b := range rules.Bands {
		if n := stats.StateCounts[b.State]; n > 0 {
			fmt.Fprintf(w, "  %-9s %d\n", stateStyle(b.State).Render(string(b.State)), n)
		}
	}

	if len(stats.RiskCounts) > 0 {
		fmt.Fprintln(w, dimStyle.Render("risk factor step counts:"))
		for _, f := range []rules.RiskFactor{
			rules.RiskHighManipulation,
			rules.RiskHighDependency,
			rules.RiskLowSatisfaction,
			rules.RiskLowAutonomy,
		} {
			if n := stats.RiskCounts[f]; n > 0 {
				fmt.Fprintf(w, "  %-17s %d\n", string(f), n)
			}
		}
	}
}

// PrintStateBands writes the classification band table.
func PrintStateBands(w io.Writer) {
	fmt.Fprintln(w, headerStyle.Render("Loyalty state bands (health score)"))
	for _, b := range rules.Bands {
		fmt.Fprintf(w, "  %-9s %5.0f - %3.0f\n",
			stateStyle(b.State).Render(string(b.State)), b.Min, b.Max)
	}
}

package report

import (
	"github.com/relfield/loyaltysim/internal/domain/rules"
)

// RunStats aggregates a finished run for the summary report.
type RunStats struct {
	StepsSimulated int
	Transitions    int // loyalty state changes between consecutive steps

	StateCounts map[rules.LoyaltyState]int
	RiskCounts  map[rules.RiskFactor]int

	MinHealth   float64
	MaxHealth   float64
	AvgHealth   float64
	FinalHealth float64
	FinalState  rules.LoyaltyState
}

// Collect computes run statistics from an ordered observation history.
// Returns nil for an empty history.
func Collect(history []rules.Observation) *RunStats {
	if len(history) == 0 {
		return nil
	}

	stats := &RunStats{
		StepsSimulated: len(history),
		StateCounts:    make(map[rules.LoyaltyState]int),
		RiskCounts:     make(map[rules.RiskFactor]int),
		MinHealth:      history[0].HealthScore,
		MaxHealth:      history[0].HealthScore,
	}

	var sum float64
	for i, obs := range history {
		stats.StateCounts[obs.State]++
		for _, f := range obs.RiskFactors {
			stats.RiskCounts[f]++
		}

		if obs.HealthScore < stats.MinHealth {
			stats.MinHealth = obs.HealthScore
		}
		if obs.HealthScore > stats.MaxHealth {
			stats.MaxHealth = obs.HealthScore
		}
		sum += obs.HealthScore

		if i > 0 && history[i-1].State != obs.State {
			stats.Transitions++
		}
	}

	stats.AvgHealth = sum / float64(len(history))
	stats.FinalHealth = history[len(history)-1].HealthScore
	stats.FinalState = history[len(history)-1].State
	return stats
}

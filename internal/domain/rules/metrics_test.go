package rules

import (
	"testing"

	"github.com/relfield/loyaltysim/internal/domain/subject"
)

func observe(sat, dep, man float64) Observation {
	s := &subject.Subject{Name: "T", Satisfaction: sat, Dependency: dep, Manipulation: man}
	return Observe(1, s)
}

func TestDerivedMetricsStayInRange(t *testing.T) {
	grid := []float64{0, 10, 25, 40, 55, 70, 85, 100}

	for _, sat := range grid {
		for _, dep := range grid {
			for _, man := range grid {
				obs := observe(sat, dep, man)

				checks := map[string]float64{
					"true_satisfaction": obs.TrueSatisfaction,
					"vulnerability":     obs.Vulnerability,
					"autonomy":          obs.Autonomy,
					"power_imbalance":   obs.PowerImbalance,
					"health_score":      obs.HealthScore,
				}
				for name, v := range checks {
					if v < 0 || v > 100 {
						t.Errorf("(%v,%v,%v): %s out of range: %v", sat, dep, man, name, v)
					}
				}
			}
		}
	}
}

func TestOutOfRangeInputsAreClamped(t *testing.T) {
	obs := observe(150, -20, 180)

	if obs.Satisfaction != 100 {
		t.Errorf("Expected satisfaction clamped to 100, got %v", obs.Satisfaction)
	}
	if obs.Dependency != 0 {
		t.Errorf("Expected dependency clamped to 0, got %v", obs.Dependency)
	}
	if obs.Manipulation != 100 {
		t.Errorf("Expected manipulation clamped to 100, got %v", obs.Manipulation)
	}
	if obs.HealthScore < 0 || obs.HealthScore > 100 {
		t.Errorf("Health score out of range after clamping: %v", obs.HealthScore)
	}
}

func TestHealthScoreMonotonicInDependencyAndManipulation(t *testing.T) {
	for _, sat := range []float64{10, 50, 90} {
		for _, fixed := range []float64{0, 30, 70} {
			prev := observe(sat, 0, fixed).HealthScore
			for dep := 5.0; dep <= 100; dep += 5 {
				h := observe(sat, dep, fixed).HealthScore
				if h > prev {
					t.Errorf("Health rose with dependency (sat=%v man=%v dep=%v): %v > %v", sat, fixed, dep, h, prev)
				}
				prev = h
			}

			prev = observe(sat, fixed, 0).HealthScore
			for man := 5.0; man <= 100; man += 5 {
				h := observe(sat, fixed, man).HealthScore
				if h > prev {
					t.Errorf("Health rose with manipulation (sat=%v dep=%v man=%v): %v > %v", sat, fixed, man, h, prev)
				}
				prev = h
			}
		}
	}
}

func TestVulnerabilityMonotonicInDependency(t *testing.T) {
	for _, sat := range []float64{20, 60, 100} {
		prev := observe(sat, 0, 30).Vulnerability
		for dep := 5.0; dep <= 100; dep += 5 {
			v := observe(sat, dep, 30).Vulnerability
			if v < prev {
				t.Errorf("Vulnerability dropped with dependency (sat=%v dep=%v): %v < %v", sat, dep, v, prev)
			}
			prev = v
		}
	}
}

func TestBandsAreContiguousAndExhaustive(t *testing.T) {
	// Every score in [0,100] must land in exactly one band.
	for score := 0.0; score <= 100; score += 0.5 {
		matches := 0
		var first LoyaltyState
		for _, b := range Bands {
			if score >= b.Min {
				if matches == 0 {
					first = b.State
				}
				matches++
				break // classification takes the first band reached
			}
		}
		if matches != 1 {
			t.Fatalf("Score %v matched %d bands", score, matches)
		}
		if got := ClassifyHealth(score); got != first {
			t.Errorf("ClassifyHealth(%v) = %s, band scan says %s", score, got, first)
		}
	}

	// Band edges.
	edges := map[float64]LoyaltyState{
		0:    StateToxic,
		39.9: StateToxic,
		40:   StateUnstable,
		49.9: StateUnstable,
		50:   StateAtRisk,
		59.9: StateAtRisk,
		60:   StateStable,
		74.9: StateStable,
		75:   StateHealthy,
		100:  StateHealthy,
	}
	for score, want := range edges {
		if got := ClassifyHealth(score); got != want {
			t.Errorf("ClassifyHealth(%v) = %s, want %s", score, got, want)
		}
	}
}

func TestHealthyProfileClassifiesHealthy(t *testing.T) {
	obs := observe(90, 10, 5)

	if obs.HealthScore < 75 {
		t.Errorf("Expected health >= 75 for a healthy profile, got %v", obs.HealthScore)
	}
	if obs.State != StateHealthy {
		t.Errorf("Expected %s, got %s", StateHealthy, obs.State)
	}
	if len(obs.RiskFactors) != 0 {
		t.Errorf("Expected no risk factors, got %v", obs.RiskFactors)
	}
}

func TestCoerciveProfileClassifiesToxic(t *testing.T) {
	obs := observe(30, 90, 80)

	if obs.HealthScore >= 40 {
		t.Errorf("Expected health < 40 for a coercive profile, got %v", obs.HealthScore)
	}
	if obs.State != StateToxic {
		t.Errorf("Expected %s, got %s", StateToxic, obs.State)
	}

	want := map[RiskFactor]bool{
		RiskHighManipulation: true,
		RiskHighDependency:   true,
		RiskLowSatisfaction:  true,
		RiskLowAutonomy:      true,
	}
	for _, f := range obs.RiskFactors {
		delete(want, f)
	}
	for f := range want {
		t.Errorf("Expected risk factor %s to be flagged", f)
	}
}

func TestStateColorKnownAndUnknown(t *testing.T) {
	if StateColor(StateHealthy) != "#2ecc71" {
		t.Errorf("Unexpected color for %s: %s", StateHealthy, StateColor(StateHealthy))
	}
	if StateColor(LoyaltyState("Nonsense")) != "#95a5a6" {
		t.Errorf("Expected fallback color for unknown state")
	}
}

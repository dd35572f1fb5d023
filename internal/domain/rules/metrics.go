// Package rules contains the pure calculation logic for loyalty metrics.
// This package is PURE and must NOT import any infrastructure packages.
package rules

import "github.com/relfield/loyaltysim/internal/domain/subject"

// LoyaltyState is the ordinal classification bucket derived from the health score.
type LoyaltyState string

const (
	StateHealthy  LoyaltyState = "Healthy"
	StateStable   LoyaltyState = "Stable"
	StateAtRisk   LoyaltyState = "At Risk"
	StateUnstable LoyaltyState = "Unstable"
	StateToxic    LoyaltyState = "Toxic"
)

// StateBand describes one classification band. Bands are contiguous and
// exhaustive over the 0-100 health score range.
type StateBand struct {
	State LoyaltyState
	Min   float64 // inclusive lower bound
	Max   float64 // exclusive upper bound, except the top band
	Color string  // display color used by the reporter
}

// Bands lists the classification bands from best to worst.
// The first band whose Min the score reaches wins, so Max is informational.
var Bands = []StateBand{
	{State: StateHealthy, Min: 75, Max: 100, Color: "#2ecc71"},
	{State: StateStable, Min: 60, Max: 75, Color: "#3498db"},
	{State: StateAtRisk, Min: 50, Max: 60, Color: "#f1c40f"},
	{State: StateUnstable, Min: 40, Max: 50, Color: "#e67e22"},
	{State: StateToxic, Min: 0, Max: 40, Color: "#e74c3c"},
}

// StateColor returns the display color for a state.
func StateColor(s LoyaltyState) string {
	for _, b := range Bands {
		if b.State == s {
			return b.Color
		}
	}
	return "#95a5a6"
}

// RiskFactor flags a concerning reading within a single observation.
type RiskFactor string

const (
	RiskHighManipulation RiskFactor = "HighManipulation" // manipulation > 60
	RiskHighDependency   RiskFactor = "HighDependency"   // dependency > 70
	RiskLowSatisfaction  RiskFactor = "LowSatisfaction"  // true satisfaction < 40
	RiskLowAutonomy      RiskFactor = "LowAutonomy"      // autonomy < 30
)

// Observation is one immutable simulated time step: the clamped core inputs
// plus everything derived from them. Observations have no identity beyond
// their position in the run.
type Observation struct {
	Step int `json:"step"`

	// Core inputs (clamped to 0-100)
	Satisfaction float64 `json:"satisfaction"`
	Dependency   float64 `json:"dependency"`
	Manipulation float64 `json:"manipulation"`

	// Derived metrics (0-100)
	TrueSatisfaction float64 `json:"true_satisfaction"`
	Vulnerability    float64 `json:"vulnerability"`
	Autonomy         float64 `json:"autonomy"`
	PowerImbalance   float64 `json:"power_imbalance"`
	HealthScore      float64 `json:"health_score"`

	State       LoyaltyState `json:"loyalty_state"`
	RiskFactors []RiskFactor `json:"risk_factors,omitempty"`
}

// Clamp constrains a metric to the 0-100 scale. Out-of-range inputs are
// clamped, never rejected.
func Clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Observe derives the full metric set for one step from the subject's current
// core inputs.
//
// Formula weights:
//   - trueSatisfaction discounts the reported value by the manipulation level
//     (full manipulation leaves a third of the reported satisfaction standing).
//   - vulnerability rises with dependency (0.7) and manipulation (0.3), with an
//     extra boost when true satisfaction drops below 40.
//   - autonomy is what dependency and manipulation (0.5 each) leave behind.
//   - powerImbalance weighs manipulation (0.6) over dependency (0.4).
//   - healthScore blends trueSatisfaction 30%, autonomy 25%, independence 25%
//     and power balance 20%. It is strictly non-increasing in dependency and
//     manipulation for a fixed satisfaction.
func Observe(step int, s *subject.Subject) Observation {
	satisfaction := Clamp(s.Satisfaction)
	dependency := Clamp(s.Dependency)
	manipulation := Clamp(s.Manipulation)

	trueSat := satisfaction * (1 - manipulation/150)

	vulnerability := dependency*0.7 + manipulation*0.3
	if trueSat < 40 {
		vulnerability += (40 - trueSat) * 0.25
	}
	vulnerability = Clamp(vulnerability)

	autonomy := Clamp(100 - (dependency*0.5 + manipulation*0.5))
	powerImbalance := Clamp(manipulation*0.6 + dependency*0.4)

	health := Clamp(
		trueSat*0.30 +
			autonomy*0.25 +
			(100-dependency)*0.25 +
			(100-powerImbalance)*0.20,
	)

	return Observation{
		Step:             step,
		Satisfaction:     satisfaction,
		Dependency:       dependency,
		Manipulation:     manipulation,
		TrueSatisfaction: trueSat,
		Vulnerability:    vulnerability,
		Autonomy:         autonomy,
		PowerImbalance:   powerImbalance,
		HealthScore:      health,
		State:            ClassifyHealth(health),
		RiskFactors:      riskFactors(trueSat, dependency, manipulation, autonomy),
	}
}

// ClassifyHealth maps a health score onto its loyalty state. Every score in
// [0,100] lands in exactly one band.
func ClassifyHealth(score float64) LoyaltyState {
	for _, b := range Bands {
		if score >= b.Min {
			return b.State
		}
	}
	return StateToxic
}

// riskFactors collects the per-observation warning flags.
func riskFactors(trueSat, dependency, manipulation, autonomy float64) []RiskFactor {
	var factors []RiskFactor
	if manipulation > 60 {
		factors = append(factors, RiskHighManipulation)
	}
	if dependency > 70 {
		factors = append(factors, RiskHighDependency)
	}
	if trueSat < 40 {
		factors = append(factors, RiskLowSatisfaction)
	}
	if autonomy < 30 {
		factors = append(factors, RiskLowAutonomy)
	}
	return factors
}

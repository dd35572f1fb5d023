package engine

import (
	"fmt"
	"sort"

	"github.com/relfield/loyaltysim/internal/domain/rules"
	"github.com/relfield/loyaltysim/internal/domain/subject"
)

// Scenario drives the subject's core inputs over the course of a run.
// Apply is called before each step is observed.
type Scenario interface {
	Name() string
	Apply(s *subject.Subject, step int)
	// DefaultSteps suggests a run length, 0 if the scenario has no natural end.
	DefaultSteps() int
}

// TrendScenario drifts the core inputs by a fixed delta per step.
// Step 1 observes the initial inputs untouched.
type TrendScenario struct {
	DeltaSatisfaction float64
	DeltaDependency   float64
	DeltaManipulation float64
}

func (t *TrendScenario) Name() string { return "trend" }

func (t *TrendScenario) Apply(s *subject.Subject, step int) {
	if step <= 1 {
		return
	}
	s.Set(
		rules.Clamp(s.Satisfaction+t.DeltaSatisfaction),
		rules.Clamp(s.Dependency+t.DeltaDependency),
		rules.Clamp(s.Manipulation+t.DeltaManipulation),
	)
}

func (t *TrendScenario) DefaultSteps() int { return 0 }

// Point is one scripted set of core inputs.
type Point struct {
	Satisfaction float64
	Dependency   float64
	Manipulation float64
}

// PresetScenario replays a scripted sequence of input points. Runs longer
// than the script hold the final point.
type PresetScenario struct {
	name   string
	points []Point
}

func (p *PresetScenario) Name() string { return p.name }

func (p *PresetScenario) Apply(s *subject.Subject, step int) {
	if len(p.points) == 0 {
		return
	}
	idx := step - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(p.points) {
		idx = len(p.points) - 1
	}
	pt := p.points[idx]
	s.Set(pt.Satisfaction, pt.Dependency, pt.Manipulation)
}

func (p *PresetScenario) DefaultSteps() int { return len(p.points) }

// presets holds the named scripted scenarios.
var presets = map[string]*PresetScenario{
	// A relationship sliding from stable into toxic dependency and back.
	"decline-recovery": {
		name: "decline-recovery",
		points: []Point{
			{70, 30, 20}, {65, 35, 25}, {60, 40, 30}, {55, 45, 35},
			{50, 50, 40}, {45, 55, 45}, {40, 60, 50}, {35, 65, 55},
			{30, 70, 60}, {25, 75, 65}, {20, 80, 70}, {25, 75, 65},
			{30, 70, 60}, {35, 65, 55}, {40, 60, 50}, {45, 55, 45},
			{50, 50, 40}, {55, 45, 35}, {60, 40, 30}, {65, 35, 25},
			{70, 30, 20},
		},
	},
	// A steady slide into coercive control with no recovery.
	"capture": {
		name: "capture",
		points: []Point{
			{75, 25, 10}, {70, 32, 18}, {64, 40, 26}, {57, 48, 34},
			{50, 56, 42}, {43, 64, 50}, {36, 72, 58}, {29, 80, 66},
			{22, 87, 74}, {16, 92, 82}, {12, 95, 88}, {10, 97, 92},
		},
	},
}

// Presets returns the names of the scripted scenarios, sorted.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetByName looks up a scripted scenario.
func PresetByName(name string) (Scenario, error) {
	p, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q (available: %v)", name, Presets())
	}
	return p, nil
}

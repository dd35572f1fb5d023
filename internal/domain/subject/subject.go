// Package subject defines the core domain entity tracked by the simulation.
// This package is PURE and must NOT import any infrastructure packages (events, report, platform).
package subject

// Subject represents the party whose relationship health is being tracked.
// The three core inputs live on a 0-100 scale and are mutated only by the
// scenario driving the run; derived metrics never feed back into them.
type Subject struct {
	Name string `json:"name"`

	// Core inputs (0-100)
	Satisfaction float64 `json:"satisfaction"` // reported satisfaction, before manipulation discount
	Dependency   float64 `json:"dependency"`   // reliance on the counterpart
	Manipulation float64 `json:"manipulation"` // coercive pressure exerted on the subject
}

// NewSubject creates a subject with a moderately healthy starting profile.
func NewSubject(name string) *Subject {
	return &Subject{
		Name:         name,
		Satisfaction: 70,
		Dependency:   30,
		Manipulation: 20,
	}
}

// Set overwrites the three core inputs at once.
func (s *Subject) Set(satisfaction, dependency, manipulation float64) {
	s.Satisfaction = satisfaction
	s.Dependency = dependency
	s.Manipulation = manipulation
}

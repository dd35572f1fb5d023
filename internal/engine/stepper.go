package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/relfield/loyaltysim/internal/events"
)

// StepTickPayload is the data attached to each StepTick event.
type StepTickPayload struct {
	Step int `json:"step"` // 1-based simulated step
}

// Stepper advances simulated time. It does NOT know about subjects or
// metrics, only step progression.
type Stepper struct {
	eventLog *events.Log
	logger   *zap.Logger
	step     int
}

// NewStepper creates a stepper starting before step 1.
func NewStepper(eventLog *events.Log, log *zap.Logger) *Stepper {
	return &Stepper{
		eventLog: eventLog,
		logger:   log,
	}
}

// Tick advances to the next step and emits a StepTick event.
func (s *Stepper) Tick(subjectName string) {
	s.step++

	s.eventLog.Append(events.Event{
		ID:        events.NewEventID(),
		Timestamp: time.Now(),
		Type:      events.EventTypeStepTick,
		Subject:   subjectName,
		Step:      s.step,
		Payload:   StepTickPayload{Step: s.step},
	})
	s.logger.Debug("step tick", zap.Int("step", s.step))
}

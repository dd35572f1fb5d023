package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/relfield/loyaltysim/internal/domain/rules"
	"github.com/relfield/loyaltysim/internal/domain/subject"
	"github.com/relfield/loyaltysim/internal/events"
)

// ObservationPayload carries the full derived metric set for one step.
type ObservationPayload struct {
	Observation rules.Observation `json:"observation"`
}

// StateChangePayload records a loyalty state transition for audit.
type StateChangePayload struct {
	Previous    rules.LoyaltyState `json:"previous_state"`
	New         rules.LoyaltyState `json:"new_state"`
	HealthScore float64            `json:"health_score"`
}

// LoyaltySystem derives an Observation from the subject's core inputs on
// every StepTick and emits ObservationRecorded and StateChanged events.
type LoyaltySystem struct {
	eventLog *events.Log
	logger   *zap.Logger
	subject  *subject.Subject

	history   []rules.Observation
	lastState rules.LoyaltyState
}

// NewLoyaltySystem creates the metric derivation system for one subject.
func NewLoyaltySystem(eventLog *events.Log, log *zap.Logger, s *subject.Subject) *LoyaltySystem {
	return &LoyaltySystem{
		eventLog: eventLog,
		logger:   log,
		subject:  s,
		history:  make([]rules.Observation, 0),
	}
}

// OnStepTick is the subscriber hook for StepTick events.
func (ls *LoyaltySystem) OnStepTick(tick events.Event) {
	payload, ok := tick.Payload.(StepTickPayload)
	if !ok {
		ls.logger.Error("failed to parse StepTickPayload", zap.String("event_id", tick.ID))
		return
	}

	obs := rules.Observe(payload.Step, ls.subject)
	ls.history = append(ls.history, obs)

	ls.eventLog.Append(events.Event{
		ID:        events.NewEventID(),
		Timestamp: time.Now(),
		Type:      events.EventTypeObservationRecorded,
		Subject:   ls.subject.Name,
		Step:      obs.Step,
		Payload:   ObservationPayload{Observation: obs},
	})

	if ls.lastState != "" && ls.lastState != obs.State {
		ls.eventLog.Append(events.Event{
			ID:        events.NewEventID(),
			Timestamp: time.Now(),
			Type:      events.EventTypeStateChanged,
			Subject:   ls.subject.Name,
			Step:      obs.Step,
			Payload: StateChangePayload{
				Previous:    ls.lastState,
				New:         obs.State,
				HealthScore: obs.HealthScore,
			},
		})
		ls.logger.Info("loyalty state changed",
			zap.Int("step", obs.Step),
			zap.String("previous", string(ls.lastState)),
			zap.String("new", string(obs.State)),
			zap.Float64("health", obs.HealthScore))

		if obs.State == rules.StateToxic {
			ls.logger.Warn("TOXIC STATE REACHED for " + ls.subject.Name)
		}
	}
	ls.lastState = obs.State
}

// History returns the ordered observations recorded so far.
func (ls *LoyaltySystem) History() []rules.Observation {
	return ls.history
}

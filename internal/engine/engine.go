package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/relfield/loyaltysim/internal/domain/rules"
	"github.com/relfield/loyaltysim/internal/domain/subject"
	"github.com/relfield/loyaltysim/internal/events"
)

// Engine is the central orchestrator that wires the event log to the
// simulation systems.
type Engine struct {
	eventLog *events.Log
	logger   *zap.Logger
	stepper  *Stepper
	subject  *subject.Subject
	scenario Scenario

	// Sub-systems
	loyaltySystem *LoyaltySystem
	riskSystem    *RiskSystem

	// State
	lastProcessedEvent int
}

// NewEngine initializes the simulation systems for one subject and scenario.
func NewEngine(eventLog *events.Log, log *zap.Logger, s *subject.Subject, scenario Scenario) *Engine {
	return &Engine{
		eventLog: eventLog,
		logger:   log,
		stepper:  NewStepper(eventLog, log),
		subject:  s,
		scenario: scenario,

		loyaltySystem: NewLoyaltySystem(eventLog, log, s),
		riskSystem:    NewRiskSystem(eventLog, log),
	}
}

// Run simulates the requested number of steps and returns the ordered
// observation history. Zero steps is a valid run with an empty history.
func (e *Engine) Run(ctx context.Context, steps int) ([]rules.Observation, error) {
	if steps < 0 {
		return nil, fmt.Errorf("step count must not be negative, got %d", steps)
	}

	e.logger.Info("starting simulation",
		zap.String("subject", e.subject.Name),
		zap.String("scenario", e.scenario.Name()),
		zap.Int("steps", steps))

	for step := 1; step <= steps; step++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("simulation interrupted at step %d: %w", step, err)
		}

		e.scenario.Apply(e.subject, step)
		e.stepper.Tick(e.subject.Name)
		e.drainEvents()
	}

	history := e.loyaltySystem.History()
	e.logger.Info("simulation complete",
		zap.Int("observations", len(history)),
		zap.Int("events", e.eventLog.Len()))
	return history, nil
}

// History returns the observations recorded so far.
func (e *Engine) History() []rules.Observation {
	return e.loyaltySystem.History()
}

// EventLog exposes the audit trail of the run.
func (e *Engine) EventLog() *events.Log {
	return e.eventLog
}

// drainEvents dispatches every unprocessed event, including the ones the
// systems append while reacting, until the log is quiet.
func (e *Engine) drainEvents() {
	for {
		all := e.eventLog.Replay()
		if e.lastProcessedEvent >= len(all) {
			return
		}
		pending := all[e.lastProcessedEvent:]
		e.lastProcessedEvent = len(all)

		for _, ev := range pending {
			e.dispatch(ev)
		}
	}
}

// dispatch routes an event to the appropriate subsystems based on its type.
func (e *Engine) dispatch(ev events.Event) {
	switch ev.Type {
	case events.EventTypeStepTick:
		e.loyaltySystem.OnStepTick(ev)

	case events.EventTypeObservationRecorded:
		e.riskSystem.OnObservationRecorded(ev)

	case events.EventTypeStateChanged, events.EventTypeRiskFlagged:
		// Terminal audit records, no subscribers.
	}
}

// Package events provides the append-only audit trail of a simulation run.
// Every step, observation, state transition and risk flag is recorded here,
// so a finished run can be replayed for inspection or reporting.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType defines the category of a simulation event.
type EventType string

const (
	EventTypeStepTick            EventType = "STEP_TICK"
	EventTypeObservationRecorded EventType = "OBSERVATION_RECORDED"
	EventTypeStateChanged        EventType = "STATE_CHANGED"
	EventTypeRiskFlagged         EventType = "RISK_FLAGGED"
)

// Event represents an immutable record of something that happened during a run.
type Event struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Type      EventType   `json:"type"`
	Subject   string      `json:"subject"` // Name of the tracked subject
	Step      int         `json:"step"`    // Simulated step the event belongs to
	Payload   interface{} `json:"payload"` // Event-specific data
}

// Log is the in-memory append-only log of simulation events.
// The run itself is sequential; the lock only guards against a reporter
// reading while a run is still appending.
type Log struct {
	mu     sync.RWMutex
	events []Event
}

// NewLog creates an empty event log.
func NewLog() *Log {
	return &Log{events: make([]Event, 0)}
}

// Append adds a new event to the log. Events are immutable once appended.
func (l *Log) Append(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

// Replay returns the full ordered history of events.
func (l *Log) Replay() []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.events
}

// GetByType returns all events of a given type, in append order.
func (l *Log) GetByType(t EventType) []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var result []Event
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// Len returns the number of appended events.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}

// NewEventID creates a unique event identifier.
func NewEventID() string {
	return uuid.NewString()
}

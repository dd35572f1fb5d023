package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/relfield/loyaltysim/internal/domain/rules"
	"github.com/relfield/loyaltysim/internal/events"
)

// RiskFlagPayload records a newly raised risk factor.
type RiskFlagPayload struct {
	Factor      rules.RiskFactor `json:"factor"`
	HealthScore float64          `json:"health_score"`
}

// RiskSystem watches recorded observations and raises an event the first
// step a risk factor appears. A factor that subsides and returns is
// flagged again.
type RiskSystem struct {
	eventLog *events.Log
	logger   *zap.Logger
	active   map[rules.RiskFactor]bool
}

// NewRiskSystem creates the risk flagging system.
func NewRiskSystem(eventLog *events.Log, log *zap.Logger) *RiskSystem {
	return &RiskSystem{
		eventLog: eventLog,
		logger:   log,
		active:   make(map[rules.RiskFactor]bool),
	}
}

// OnObservationRecorded is the subscriber hook for ObservationRecorded events.
func (rs *RiskSystem) OnObservationRecorded(ev events.Event) {
	payload, ok := ev.Payload.(ObservationPayload)
	if !ok {
		rs.logger.Error("failed to parse ObservationPayload", zap.String("event_id", ev.ID))
		return
	}
	obs := payload.Observation

	next := make(map[rules.RiskFactor]bool, len(obs.RiskFactors))
	for _, factor := range obs.RiskFactors {
		next[factor] = true
		if rs.active[factor] {
			continue
		}

		rs.eventLog.Append(events.Event{
			ID:        events.NewEventID(),
			Timestamp: time.Now(),
			Type:      events.EventTypeRiskFlagged,
			Subject:   ev.Subject,
			Step:      obs.Step,
			Payload: RiskFlagPayload{
				Factor:      factor,
				HealthScore: obs.HealthScore,
			},
		})
		rs.logger.Warn("risk factor raised",
			zap.Int("step", obs.Step),
			zap.String("factor", string(factor)),
			zap.Float64("health", obs.HealthScore))
	}
	rs.active = next
}

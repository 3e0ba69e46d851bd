package engine

import (
	"time"

	"github.com/bnema/vipasana-cli/internal/domain"
)

type EventType string

const (
	EventPhaseChanged EventType = "phase_changed"
	EventTick         EventType = "tick"
	EventCueFired     EventType = "cue_fired"
	EventCueSkipped   EventType = "cue_skipped"
	EventFinished     EventType = "finished"
)

// Event is emitted by a SessionClock on its own loop. Cue is set for the cue
// events; Err carries the skip reason or the persistence failure.
type Event struct {
	Type      EventType
	At        time.Time
	Phase     domain.Phase
	Elapsed   time.Duration
	Remaining time.Duration
	Cue       domain.Cue
	Err       error
}

// Outcome is the final state of a session once it is terminal.
type Outcome struct {
	Phase     domain.Phase
	StartedAt time.Time
	Elapsed   time.Duration
	// RecordErr is the persistence sink failure, if any. It never prevents
	// the Completed phase.
	RecordErr error
}

func (o Outcome) Completed() bool {
	return o.Phase == domain.PhaseCompleted
}

// State is a snapshot of the clock.
type State struct {
	Phase     domain.Phase
	Elapsed   time.Duration
	Remaining time.Duration
	Fired     []domain.CueKey
}

package application

import (
	"time"

	"github.com/bnema/vipasana-cli/internal/domain"
	"github.com/bnema/vipasana-cli/internal/engine"
)

type History struct {
	Sessions []domain.SessionRecord
	Stats    domain.Stats
}

type DaySummary struct {
	Day          time.Time
	Sessions     []domain.SessionRecord
	TotalMinutes int
}

// PreparedSession is a session ready to start.
type PreparedSession struct {
	Config   domain.SessionConfig
	Settings domain.Settings
	Runner   *engine.Runner
	// MissingClips lists script clips the catalog cannot resolve. Those cues
	// will be skipped.
	MissingClips []string
}

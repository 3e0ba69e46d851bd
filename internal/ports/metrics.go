package ports

import (
	"time"

	"github.com/bnema/vipasana-cli/internal/domain"
)

type SessionMetrics interface {
	CueDispatched(cue domain.Cue)
	CueSkipped(cue domain.Cue)
	SessionFinished(mode domain.Mode, phase domain.Phase, elapsed time.Duration)
}

// NoopMetrics discards everything.
type NoopMetrics struct{}

func (NoopMetrics) CueDispatched(domain.Cue)                                 {}
func (NoopMetrics) CueSkipped(domain.Cue)                                    {}
func (NoopMetrics) SessionFinished(domain.Mode, domain.Phase, time.Duration) {}

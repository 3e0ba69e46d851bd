package prometheus

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/bnema/vipasana-cli/internal/domain"
	"github.com/bnema/vipasana-cli/internal/ports"
)

const namespace = "vipasana"

// SessionMetrics records engine activity on a private registry. A CLI process
// is short lived, so the registry is flushed to a node-exporter textfile
// instead of being scraped.
type SessionMetrics struct {
	registry *prom.Registry

	cuesDispatched   *prom.CounterVec
	cuesSkipped      *prom.CounterVec
	sessionsFinished *prom.CounterVec
	sessionElapsed   *prom.HistogramVec
}

var _ ports.SessionMetrics = (*SessionMetrics)(nil)

func NewSessionMetrics() *SessionMetrics {
	m := &SessionMetrics{
		registry: prom.NewRegistry(),
		cuesDispatched: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "cues_dispatched_total",
			Help:      "Cues handed to a player.",
		}, []string{"kind", "key"}),
		cuesSkipped: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "cues_skipped_total",
			Help:      "Cues dropped because the player could not start them.",
		}, []string{"kind", "key"}),
		sessionsFinished: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_finished_total",
			Help:      "Sessions that reached a terminal phase.",
		}, []string{"mode", "phase"}),
		sessionElapsed: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "session_elapsed_seconds",
			Help:      "Counted seconds at the end of a session.",
			Buckets:   []float64{60, 300, 600, 900, 1200, 1800, 2700, 3600},
		}, []string{"mode", "phase"}),
	}

	m.registry.MustRegister(m.cuesDispatched, m.cuesSkipped, m.sessionsFinished, m.sessionElapsed)
	return m
}

func (m *SessionMetrics) Registry() *prom.Registry {
	return m.registry
}

func (m *SessionMetrics) CueDispatched(cue domain.Cue) {
	m.cuesDispatched.WithLabelValues(string(cue.Kind), string(cue.Key.Kind)).Inc()
}

func (m *SessionMetrics) CueSkipped(cue domain.Cue) {
	m.cuesSkipped.WithLabelValues(string(cue.Kind), string(cue.Key.Kind)).Inc()
}

func (m *SessionMetrics) SessionFinished(mode domain.Mode, phase domain.Phase, elapsed time.Duration) {
	m.sessionsFinished.WithLabelValues(string(mode), string(phase)).Inc()
	m.sessionElapsed.WithLabelValues(string(mode), string(phase)).Observe(elapsed.Seconds())
}

// WriteTextfile writes the registry in the text exposition format. The parent
// directory is created when missing.
func (m *SessionMetrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	if err := prom.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

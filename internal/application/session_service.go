package application

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/bnema/vipasana-cli/internal/domain"
	"github.com/bnema/vipasana-cli/internal/engine"
	"github.com/bnema/vipasana-cli/internal/ports"
)

type SessionDeps struct {
	Settings ports.SettingsRepository
	Script   ports.ScriptCatalog
	Audio    ports.AudioCuePlayer
	Voice    ports.VoiceoverCuePlayer
	Sink     ports.PersistenceSink
	Metrics  ports.SessionMetrics
	Clock    ports.Clock
	Timings  engine.Timings
}

// SessionService builds sessions from saved settings and the guided script.
type SessionService struct {
	deps SessionDeps
}

func NewSessionService(deps SessionDeps) *SessionService {
	if deps.Clock == nil {
		deps.Clock = ports.SystemClock()
	}
	if deps.Metrics == nil {
		deps.Metrics = ports.NoopMetrics{}
	}

	return &SessionService{deps: deps}
}

func (s *SessionService) Prepare(ctx context.Context, cmd StartSessionCommand) (PreparedSession, error) {
	settings, err := s.deps.Settings.Load(ctx)
	if err != nil {
		return PreparedSession{}, fmt.Errorf("load settings: %w", err)
	}

	config := domain.SessionConfig{
		TotalDuration:        cmd.Duration,
		Mode:                 cmd.Mode,
		IntervalBellsEnabled: settings.IntervalBellsEnabled,
	}
	if cmd.IntervalBells != nil {
		config.IntervalBellsEnabled = *cmd.IntervalBells
	}
	if err := config.Validate(); err != nil {
		return PreparedSession{}, err
	}

	var schedule domain.GuidedSchedule
	var missing []string
	if s.deps.Script != nil {
		schedule = s.deps.Script.Schedule()
		if config.Mode == domain.ModeGuided {
			missing = s.missingClips(schedule, config)
		}
	}

	clock, err := engine.NewSessionClock(config, engine.Collaborators{
		Audio: s.deps.Audio,
		Voice: s.deps.Voice,
		Sink:  s.deps.Sink,
	}, engine.Options{
		Clock:    s.deps.Clock,
		Timings:  s.deps.Timings,
		Schedule: schedule,
		Metrics:  s.deps.Metrics,
	})
	if err != nil {
		return PreparedSession{}, fmt.Errorf("create session clock: %w", err)
	}

	return PreparedSession{
		Config:       config,
		Settings:     settings,
		Runner:       engine.NewRunner(clock),
		MissingClips: missing,
	}, nil
}

func (s *SessionService) missingClips(schedule domain.GuidedSchedule, config domain.SessionConfig) []string {
	clips := []string{schedule.IntroClip}
	for _, checkpoint := range schedule.For(config.TotalDuration) {
		if checkpoint.Clip != "" {
			clips = append(clips, checkpoint.Clip)
		}
	}
	if schedule.CompletionClip != "" {
		clips = append(clips, schedule.CompletionClip)
	}

	seen := map[string]struct{}{}
	var missing []string
	for _, id := range clips {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		if _, err := s.deps.Script.Clip(id); err != nil {
			log.Warn().Err(err).Str("clip", id).Msg("guided clip unavailable, cue will be skipped")
			missing = append(missing, id)
		}
	}
	return missing
}

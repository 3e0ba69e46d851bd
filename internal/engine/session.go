package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bnema/vipasana-cli/internal/domain"
	"github.com/bnema/vipasana-cli/internal/ports"
)

// Collaborators are the players and the sink a session drives. Sink may be nil.
type Collaborators struct {
	Audio ports.AudioCuePlayer
	Voice ports.VoiceoverCuePlayer
	Sink  ports.PersistenceSink
}

type Options struct {
	Clock   ports.Clock
	Timings Timings
	// Schedule defaults to domain.DefaultGuidedSchedule when it has no intro clip.
	Schedule domain.GuidedSchedule
	Metrics  ports.SessionMetrics
	Logger   *zerolog.Logger
}

// SessionClock is the timing and cue state machine of one session.
//
// It never starts goroutines or sleeps. Work is queued on an agenda and runs
// when RunDue is called; a Runner calls it from a single goroutine, tests call
// it after advancing a fake clock. Collaborator callbacks are routed through
// post so they land on the same goroutine.
type SessionClock struct {
	config         domain.SessionConfig
	audio          ports.AudioCuePlayer
	voice          ports.VoiceoverCuePlayer
	sink           ports.PersistenceSink
	clock          ports.Clock
	timings        Timings
	scheduler      CueScheduler
	introClip      string
	completionClip string
	metrics        ports.SessionMetrics
	logger         zerolog.Logger
	post           func(func())
	observers      []func(Event)

	ctx       context.Context
	agenda    *agenda
	phase     domain.Phase
	elapsed   time.Duration
	fired     domain.CueSet
	startedAt time.Time
	outcome   Outcome
}

func NewSessionClock(config domain.SessionConfig, collaborators Collaborators, opts Options) (*SessionClock, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if collaborators.Audio == nil || collaborators.Voice == nil {
		return nil, errors.New("new session clock: audio and voiceover players are required")
	}

	schedule := opts.Schedule
	if schedule.IntroClip == "" {
		schedule = domain.DefaultGuidedSchedule()
	}
	if config.Mode == domain.ModeGuided {
		if err := schedule.Validate(); err != nil {
			return nil, fmt.Errorf("new session clock: %w: %v", domain.ErrInvalidConfig, err)
		}
	}

	clock := opts.Clock
	if clock == nil {
		clock = ports.SystemClock()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = ports.NoopMetrics{}
	}
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	timings := opts.Timings.withDefaults()

	var checkpoints []domain.Checkpoint
	if config.Mode == domain.ModeGuided {
		checkpoints = schedule.For(config.TotalDuration)
	}

	return &SessionClock{
		config:         config,
		audio:          collaborators.Audio,
		voice:          collaborators.Voice,
		sink:           collaborators.Sink,
		clock:          clock,
		timings:        timings,
		scheduler:      NewCueScheduler(config, checkpoints, timings.IntervalBellPeriod),
		introClip:      schedule.IntroClip,
		completionClip: schedule.CompletionClip,
		metrics:        metrics,
		logger:         logger.With().Str("component", "session").Str("mode", string(config.Mode)).Logger(),
		post:           func(fn func()) { fn() },
		ctx:            context.Background(),
		agenda:         newAgenda(),
		phase:          domain.PhaseNotStarted,
		fired:          domain.NewCueSet(),
	}, nil
}

// OnEvent registers an observer. Observers run synchronously on the session's
// goroutine and must not call back into the clock.
func (s *SessionClock) OnEvent(fn func(Event)) {
	s.observers = append(s.observers, fn)
}

func (s *SessionClock) Config() domain.SessionConfig {
	return s.config
}

func (s *SessionClock) Phase() domain.Phase {
	return s.phase
}

func (s *SessionClock) State() State {
	return State{
		Phase:     s.phase,
		Elapsed:   s.elapsed,
		Remaining: s.remaining(),
		Fired:     s.fired.Keys(),
	}
}

// Outcome is meaningful once the phase is terminal.
func (s *SessionClock) Outcome() Outcome {
	return s.outcome
}

// NextDue reports when the next queued task is due. Nothing is due while paused.
func (s *SessionClock) NextDue() (time.Time, bool) {
	return s.agenda.next()
}

// Idle reports whether the session is over and has no queued work left.
func (s *SessionClock) Idle() bool {
	return s.phase.Terminal() && s.agenda.len() == 0
}

// RunDue runs every task due at the current clock time, including tasks
// those tasks schedule within the same window.
func (s *SessionClock) RunDue() {
	now := s.clock.Now()
	for {
		t, ok := s.agenda.popDue(now)
		if !ok {
			return
		}
		t.run(t.due)
	}
}

func (s *SessionClock) Start(ctx context.Context) error {
	if s.phase != domain.PhaseNotStarted {
		return s.invalid("start")
	}
	if ctx != nil {
		s.ctx = ctx
	}

	now := s.clock.Now()
	s.startedAt = now
	s.setPhase(now, domain.PhaseIntro)
	if s.config.Mode == domain.ModeGuided {
		s.playIntro(now)
		return nil
	}
	s.agenda.schedule(now.Add(s.timings.SilentPreRoll), s.ringPreRollBell)
	return nil
}

// Pause freezes the session timeline: the tick and any cue already queued
// are held and resume with the delay they had left.
func (s *SessionClock) Pause() error {
	s.RunDue()
	if s.phase != domain.PhaseCounting {
		return s.invalid("pause")
	}
	now := s.clock.Now()
	s.agenda.freeze(now)
	s.setPhase(now, domain.PhasePaused)
	return nil
}

func (s *SessionClock) Resume() error {
	if s.phase != domain.PhasePaused {
		return s.invalid("resume")
	}
	now := s.clock.Now()
	s.agenda.thaw(now)
	s.setPhase(now, domain.PhaseCounting)
	return nil
}

// Stop aborts the session from any non-terminal phase. Queued cues are
// dropped and the sink is not called.
func (s *SessionClock) Stop() error {
	s.RunDue()
	if s.phase.Terminal() {
		return s.invalid("stop")
	}
	s.agenda.clear()
	s.voice.Stop()

	now := s.clock.Now()
	s.setPhase(now, domain.PhaseAborted)
	s.outcome = Outcome{Phase: domain.PhaseAborted, StartedAt: s.startedAt, Elapsed: s.elapsed}
	s.metrics.SessionFinished(s.config.Mode, domain.PhaseAborted, s.elapsed)
	s.emit(Event{Type: EventFinished, At: now})
	return nil
}

func (s *SessionClock) playIntro(at time.Time) {
	cue := domain.VoiceoverCue(domain.PreRollVoiceoverKey(), s.introClip, 0)
	done := false
	complete := func(at time.Time) {
		if done || s.phase != domain.PhaseIntro {
			return
		}
		done = true
		s.ringPreRollBell(at)
	}

	if err := s.voice.Play(cue.Clip, s.callback(complete)); err != nil {
		s.cueSkipped(at, cue, err)
		complete(at)
		return
	}
	s.cueFired(at, cue)
}

func (s *SessionClock) ringPreRollBell(at time.Time) {
	s.play(at, domain.BellCue(domain.PreRollBellKey(), domain.TripleStrike))
	s.agenda.schedule(at.Add(s.timings.TripleBellSettle), s.beginCounting)
}

func (s *SessionClock) beginCounting(at time.Time) {
	if s.phase != domain.PhaseIntro {
		return
	}
	s.setPhase(at, domain.PhaseCounting)
	s.dispatch(at, s.scheduler.Evaluate(0, s.config.TotalDuration, s.fired))
	s.agenda.schedule(at.Add(tickInterval), s.tick)
}

func (s *SessionClock) tick(at time.Time) {
	s.elapsed += tickInterval
	cues := s.scheduler.Evaluate(s.elapsed, s.remaining(), s.fired)
	s.emit(Event{Type: EventTick, At: at})

	if s.elapsed >= s.config.TotalDuration {
		s.complete(at, cues)
		return
	}
	s.dispatch(at, cues)
	s.agenda.schedule(at.Add(tickInterval), s.tick)
}

func (s *SessionClock) complete(at time.Time, cues []domain.Cue) {
	s.setPhase(at, domain.PhaseCompleting)

	if key := domain.CompletionBellKey(); s.fired.Add(key) {
		cues = append(cues, domain.BellCue(key, domain.TripleStrike))
	}
	finishDelay := s.timings.SilentFinishDelay
	if s.config.Mode == domain.ModeGuided {
		finishDelay = s.timings.GuidedFinishDelay
		if key := domain.CompletionVoiceoverKey(); s.completionClip != "" && s.fired.Add(key) {
			cues = append(cues, domain.VoiceoverCue(key, s.completionClip, s.timings.CompletionVoiceoverDelay))
		}
	}

	s.dispatch(at, cues)
	s.agenda.schedule(at.Add(finishDelay), s.finish)
}

func (s *SessionClock) finish(at time.Time) {
	if s.phase != domain.PhaseCompleting {
		return
	}
	s.setPhase(at, domain.PhaseCompleted)
	// Nothing plays once the session is over.
	if dropped := s.agenda.len(); dropped > 0 {
		s.logger.Debug().Int("dropped", dropped).Msg("discarding cues queued past completion")
		s.agenda.clear()
	}

	var recordErr error
	if s.sink != nil {
		err := s.sink.RecordSessionCompleted(s.ctx, s.config.SessionType(), s.startedAt, s.config.TotalDuration)
		if err != nil {
			recordErr = fmt.Errorf("record completed session: %w", err)
			s.logger.Warn().Err(err).Msg("completed session was not recorded")
		}
	}

	s.outcome = Outcome{
		Phase:     domain.PhaseCompleted,
		StartedAt: s.startedAt,
		Elapsed:   s.elapsed,
		RecordErr: recordErr,
	}
	s.metrics.SessionFinished(s.config.Mode, domain.PhaseCompleted, s.elapsed)
	s.emit(Event{Type: EventFinished, At: at, Err: recordErr})
}

// dispatch plays cues bells first. Delayed cues are queued relative to at.
func (s *SessionClock) dispatch(at time.Time, cues []domain.Cue) {
	domain.OrderBellsFirst(cues)
	for _, cue := range cues {
		if cue.Delay > 0 {
			s.agenda.schedule(at.Add(cue.Delay), func(due time.Time) {
				s.play(due, cue)
			})
			continue
		}
		s.play(at, cue)
	}
}

func (s *SessionClock) play(at time.Time, cue domain.Cue) {
	switch cue.Kind {
	case domain.CueKindBell:
		s.audio.PlayBell(cue.Strikes)
	case domain.CueKindVoiceover:
		if err := s.voice.Play(cue.Clip, nil); err != nil {
			s.cueSkipped(at, cue, err)
			return
		}
	}
	s.cueFired(at, cue)
}

func (s *SessionClock) cueFired(at time.Time, cue domain.Cue) {
	s.logger.Debug().Str("cue", cue.Key.String()).Str("kind", string(cue.Kind)).Dur("elapsed", s.elapsed).Msg("cue dispatched")
	s.metrics.CueDispatched(cue)
	s.emit(Event{Type: EventCueFired, At: at, Cue: cue})
}

func (s *SessionClock) cueSkipped(at time.Time, cue domain.Cue, err error) {
	s.logger.Warn().Err(err).Str("cue", cue.Key.String()).Str("clip", cue.Clip).Msg("cue skipped")
	s.metrics.CueSkipped(cue)
	s.emit(Event{Type: EventCueSkipped, At: at, Cue: cue, Err: err})
}

// callback adapts fn into a collaborator completion callback that runs on the
// session goroutine.
func (s *SessionClock) callback(fn func(at time.Time)) func() {
	return func() {
		s.post(func() {
			fn(s.clock.Now())
		})
	}
}

func (s *SessionClock) setPhase(at time.Time, phase domain.Phase) {
	s.logger.Debug().Str("from", string(s.phase)).Str("to", string(phase)).Dur("elapsed", s.elapsed).Msg("phase changed")
	s.phase = phase
	s.emit(Event{Type: EventPhaseChanged, At: at})
}

func (s *SessionClock) emit(event Event) {
	event.Phase = s.phase
	event.Elapsed = s.elapsed
	event.Remaining = s.remaining()
	for _, observer := range s.observers {
		observer(event)
	}
}

func (s *SessionClock) remaining() time.Duration {
	if s.elapsed >= s.config.TotalDuration {
		return 0
	}
	return s.config.TotalDuration - s.elapsed
}

func (s *SessionClock) invalid(op string) error {
	return fmt.Errorf("%s session: %w: phase is %s", op, domain.ErrInvalidTransition, s.phase)
}

package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/vipasana-cli/internal/domain"
	"github.com/bnema/vipasana-cli/internal/engine"
	"github.com/bnema/vipasana-cli/internal/ports"
)

type fakeControl struct {
	toggles int
	stops   int
	err     error
}

func (c *fakeControl) TogglePause() error {
	c.toggles++
	return c.err
}

func (c *fakeControl) Stop() error {
	c.stops++
	return c.err
}

type captions map[string]string

func (c captions) Clip(id string) (ports.Clip, error) {
	text, ok := c[id]
	if !ok {
		return ports.Clip{}, domain.ErrClipNotFound
	}
	return ports.Clip{ID: id, Transcript: text, Duration: time.Second}, nil
}

func (captions) Schedule() domain.GuidedSchedule { return domain.DefaultGuidedSchedule() }

func newTestModel(control Controller) Model {
	return NewModel(Options{
		Config:   domain.SessionConfig{TotalDuration: 15 * time.Minute, Mode: domain.ModeGuided, IntervalBellsEnabled: true},
		Settings: domain.Settings{InhaleDuration: 4 * time.Second, ExhaleDuration: 4 * time.Second, BackgroundColor: "#8B9D83", CircleColor: "#F5F5DC"},
		Captions: captions{"first_instruction": "Notice the breath at the nostrils."},
		Control:  control,
	})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func TestModelTracksTicks(t *testing.T) {
	m := newTestModel(nil)

	m = update(t, m, eventMsg{Type: engine.EventTick, Phase: domain.PhaseCounting, Elapsed: 61 * time.Second, Remaining: 839 * time.Second})

	view := m.View()
	assert.Equal(t, domain.PhaseCounting, m.Phase())
	assert.Contains(t, view, "Guided meditation · 15:00")
	assert.Contains(t, view, "13:59")
	assert.Contains(t, view, "meditating")
	assert.Contains(t, view, "breathe out")
	assert.Contains(t, view, "space pause")
}

func TestModelShowsCaptionForVoiceover(t *testing.T) {
	m := newTestModel(nil)

	m = update(t, m, eventMsg{
		Type:  engine.EventCueFired,
		Phase: domain.PhaseCounting,
		Cue:   domain.VoiceoverCue(domain.GuidedVoiceoverKey(300), "first_instruction", time.Second),
	})

	assert.Contains(t, m.View(), "Notice the breath at the nostrils.")
	assert.Contains(t, m.View(), "last cue: voice: first_instruction")

	m = update(t, m, eventMsg{
		Type:  engine.EventCueFired,
		Phase: domain.PhaseCompleting,
		Cue:   domain.BellCue(domain.CompletionBellKey(), domain.TripleStrike),
	})
	assert.Contains(t, m.View(), "last cue: bell ×3")
	assert.Contains(t, m.View(), "Notice the breath at the nostrils.")
}

func TestModelFinishedClearsCaptionAndKeepsError(t *testing.T) {
	m := newTestModel(nil)
	m = update(t, m, eventMsg{
		Type: engine.EventCueFired, Phase: domain.PhaseCounting,
		Cue: domain.VoiceoverCue(domain.GuidedVoiceoverKey(300), "first_instruction", 0),
	})

	m = update(t, m, eventMsg{Type: engine.EventFinished, Phase: domain.PhaseCompleted, Err: errors.New("record completed session: disk full")})

	view := m.View()
	assert.NotContains(t, view, "Notice the breath")
	assert.Contains(t, view, "disk full")
	assert.Contains(t, view, "session over")
	assert.Contains(t, view, "complete")
}

func TestModelKeysDriveController(t *testing.T) {
	control := &fakeControl{}
	m := newTestModel(control)

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	assert.Equal(t, 1, control.toggles)
	assert.Equal(t, 1, control.stops)
	assert.NoError(t, m.Err())
}

func TestModelIgnoresClosedRunner(t *testing.T) {
	control := &fakeControl{err: engine.ErrRunnerClosed}
	m := newTestModel(control)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	assert.NoError(t, m.Err())
}

func TestModelPausedHelp(t *testing.T) {
	m := newTestModel(nil)

	m = update(t, m, eventMsg{Type: engine.EventPhaseChanged, Phase: domain.PhasePaused, Elapsed: time.Minute})

	assert.Contains(t, m.View(), "space resume")
	assert.NotContains(t, m.View(), "breathe")
}

func TestBreathLineFollowsSettings(t *testing.T) {
	m := newTestModel(nil)

	m.elapsed = 0
	assert.Contains(t, m.breathLine(), "breathe in")
	m.elapsed = 3 * time.Second
	assert.Contains(t, m.breathLine(), "breathe in")
	m.elapsed = 4 * time.Second
	assert.Contains(t, m.breathLine(), "breathe out")
	m.elapsed = 8 * time.Second
	assert.Contains(t, m.breathLine(), "breathe in")
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "15:00", formatClock(15*time.Minute))
	assert.Equal(t, "00:01", formatClock(time.Second))
	assert.Equal(t, "1:00:00", formatClock(time.Hour))
	assert.Equal(t, "00:00", formatClock(-time.Second))
}

func TestRunStopsWhenEventsClose(t *testing.T) {
	events := make(chan engine.Event, 3)
	events <- engine.Event{Type: engine.EventPhaseChanged, Phase: domain.PhaseCounting}
	events <- engine.Event{Type: engine.EventTick, Phase: domain.PhaseCounting, Elapsed: time.Second}
	events <- engine.Event{Type: engine.EventFinished, Phase: domain.PhaseCompleted, Elapsed: time.Second}
	close(events)

	final, err := Run(context.Background(), Options{
		Config:   domain.SessionConfig{TotalDuration: time.Second, Mode: domain.ModeSilent},
		Settings: domain.DefaultSettings(),
		Events:   events,
	}, tea.WithInput(nil), tea.WithOutput(io.Discard))

	require.NoError(t, err)
	assert.Equal(t, domain.PhaseCompleted, final.Phase())
}

func TestPhaseLineSpinsDuringIntro(t *testing.T) {
	m := newTestModel(nil)

	m = update(t, m, eventMsg{Type: engine.EventPhaseChanged, Phase: domain.PhaseIntro})

	line := m.phaseLine()
	assert.Contains(t, line, "settling in")
	assert.NotEqual(t, m.styles.phase.Render("settling in"), line)
}

func TestModelIgnoresPauseOutsideCounting(t *testing.T) {
	control := &fakeControl{err: fmt.Errorf("pause session: %w: phase is intro", domain.ErrInvalidTransition)}
	m := newTestModel(control)

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	assert.Equal(t, 1, control.toggles)
	assert.NoError(t, m.Err())
}

func TestModelSurfacesUnexpectedControlErrors(t *testing.T) {
	control := &fakeControl{err: errors.New("boom")}
	m := newTestModel(control)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})

	assert.EqualError(t, m.Err(), "boom")
	assert.Contains(t, m.View(), "boom")
}

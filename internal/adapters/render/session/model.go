package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/vipasana-cli/internal/domain"
	"github.com/bnema/vipasana-cli/internal/engine"
	"github.com/bnema/vipasana-cli/internal/ports"
)

var ErrUnexpectedSessionModel = errors.New("unexpected final bubbletea model type")

// Controller is the part of the runner the view drives from key presses.
type Controller interface {
	TogglePause() error
	Stop() error
}

type Options struct {
	Config   domain.SessionConfig
	Settings domain.Settings
	// Captions resolves voiceover transcripts. Nil hides captions.
	Captions ports.ScriptCatalog
	Events   <-chan engine.Event
	Control  Controller
}

type eventMsg engine.Event

type eventsClosedMsg struct{}

type Model struct {
	opts     Options
	styles   styles
	progress progress.Model
	spinner  spinner.Model

	phase     domain.Phase
	elapsed   time.Duration
	remaining time.Duration
	caption   string
	lastCue   string
	skipped   int
	finished  bool
	err       error
}

func NewModel(opts Options) Model {
	settings := opts.Settings
	if settings.Validate() != nil {
		settings = domain.DefaultSettings()
	}
	opts.Settings = settings

	return Model{
		opts:     opts,
		styles:   newStyles(settings.BackgroundColor, settings.CircleColor),
		progress: progress.New(progress.WithSolidFill(settings.CircleColor), progress.WithoutPercentage(), progress.WithWidth(40)),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(settings.CircleColor))),
		),
		phase:     domain.PhaseNotStarted,
		remaining: opts.Config.TotalDuration,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForEvent(m.opts.Events))
}

func waitForEvent(events <-chan engine.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(event)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		m = m.apply(engine.Event(msg))
		return m, waitForEvent(m.opts.Events)
	case eventsClosedMsg:
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		width := msg.Width - 12
		if width > 60 {
			width = 60
		}
		if width > 10 {
			m.progress.Width = width
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.opts.Control == nil {
		return m, nil
	}

	var err error
	switch msg.String() {
	case " ", "p":
		err = m.opts.Control.TogglePause()
	case "q", "esc", "ctrl+c":
		err = m.opts.Control.Stop()
	}
	// Pausing during the intro or stopping a finished session is a no-op.
	if err != nil && !errors.Is(err, engine.ErrRunnerClosed) && !errors.Is(err, domain.ErrInvalidTransition) {
		m.err = err
	}
	return m, nil
}

func (m Model) apply(event engine.Event) Model {
	m.phase = event.Phase
	m.elapsed = event.Elapsed
	m.remaining = event.Remaining

	switch event.Type {
	case engine.EventCueFired:
		m.lastCue = cueLabel(event.Cue)
		if event.Cue.Kind == domain.CueKindVoiceover {
			m.caption = m.transcript(event.Cue.Clip)
		}
	case engine.EventCueSkipped:
		m.skipped++
	case engine.EventFinished:
		m.finished = true
		m.caption = ""
		if event.Err != nil {
			m.err = event.Err
		}
	}
	return m
}

func (m Model) transcript(clipID string) string {
	if m.opts.Captions == nil {
		return ""
	}
	clip, err := m.opts.Captions.Clip(clipID)
	if err != nil {
		return ""
	}
	return clip.Transcript
}

func (m Model) Phase() domain.Phase {
	return m.phase
}

func (m Model) Err() error {
	return m.err
}

func cueLabel(cue domain.Cue) string {
	switch cue.Kind {
	case domain.CueKindBell:
		if cue.Strikes > 1 {
			return fmt.Sprintf("bell ×%d", cue.Strikes)
		}
		return "bell"
	case domain.CueKindVoiceover:
		return "voice: " + cue.Clip
	default:
		return cue.Key.String()
	}
}

// Run drives the view until the event stream closes.
func Run(ctx context.Context, opts Options, programOpts ...tea.ProgramOption) (Model, error) {
	programOpts = append([]tea.ProgramOption{tea.WithContext(ctx)}, programOpts...)
	p := tea.NewProgram(NewModel(opts), programOpts...)

	finalModel, err := p.Run()
	if err != nil {
		return Model{}, err
	}

	rendered, ok := finalModel.(Model)
	if !ok {
		return Model{}, ErrUnexpectedSessionModel
	}
	return rendered, nil
}

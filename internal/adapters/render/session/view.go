package session

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/vipasana-cli/internal/domain"
)

const maxCircle = 9

func (m Model) View() string {
	s := m.styles
	lines := []string{
		s.title.Render(sessionTitle(m.opts.Config)),
		"",
		s.remaining.Render(formatClock(m.remaining)),
		m.phaseLine(),
		"",
		m.progress.ViewAs(m.fraction()),
	}

	if m.phase == domain.PhaseCounting {
		lines = append(lines, "", m.breathLine())
	}
	if m.caption != "" {
		lines = append(lines, "", s.caption.Render("“"+strings.TrimSpace(m.caption)+"”"))
	}
	if m.lastCue != "" {
		lines = append(lines, "", s.cue.Render("last cue: "+m.lastCue))
	}
	if m.err != nil {
		lines = append(lines, "", s.warning.Render(m.err.Error()))
	}

	lines = append(lines, "", s.help.Render(m.helpLine()))
	return s.frame.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// phaseLine spins while the session waits on the intro or the closing bells.
func (m Model) phaseLine() string {
	label := m.styles.phase.Render(m.phase.Label())
	if m.phase == domain.PhaseIntro || m.phase == domain.PhaseCompleting {
		return m.spinner.View() + " " + label
	}
	return label
}

func (m Model) helpLine() string {
	switch {
	case m.finished:
		return "session over"
	case m.phase == domain.PhasePaused:
		return "space resume · q end session"
	default:
		return "space pause · q end session"
	}
}

func (m Model) fraction() float64 {
	total := m.opts.Config.TotalDuration
	if total <= 0 {
		return 0
	}
	f := float64(m.elapsed) / float64(total)
	return math.Max(0, math.Min(1, f))
}

// breathLine draws a circle that grows on the inhale and shrinks on the exhale.
func (m Model) breathLine() string {
	settings := m.opts.Settings
	cycle := settings.BreathCycle()
	offset := m.elapsed % cycle

	label := "breathe out"
	var fill float64
	if settings.Inhaling(m.elapsed) {
		label = "breathe in"
		fill = float64(offset) / float64(settings.InhaleDuration)
	} else {
		fill = 1 - float64(offset-settings.InhaleDuration)/float64(settings.ExhaleDuration)
	}

	size := 1 + int(math.Round(fill*float64(maxCircle-1)))
	circle := strings.Repeat("●", size) + strings.Repeat(" ", maxCircle-size)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.circle.Render(circle),
		"  ",
		m.styles.breath.Render(label),
	)
}

func sessionTitle(config domain.SessionConfig) string {
	mode := "Silent"
	if config.Mode == domain.ModeGuided {
		mode = "Guided"
	}
	return fmt.Sprintf("%s meditation · %s", mode, formatClock(config.TotalDuration))
}

func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	seconds := int(d / time.Second)
	if seconds >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

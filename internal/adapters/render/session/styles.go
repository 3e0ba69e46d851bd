package session

import "github.com/charmbracelet/lipgloss"

type styles struct {
	frame     lipgloss.Style
	title     lipgloss.Style
	remaining lipgloss.Style
	phase     lipgloss.Style
	circle    lipgloss.Style
	breath    lipgloss.Style
	caption   lipgloss.Style
	cue       lipgloss.Style
	help      lipgloss.Style
	warning   lipgloss.Style
}

func newStyles(background, circle string) styles {
	return styles{
		frame:     lipgloss.NewStyle().Padding(1, 3).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(background)),
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(circle)),
		remaining: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")),
		phase:     lipgloss.NewStyle().Foreground(lipgloss.Color(background)),
		circle:    lipgloss.NewStyle().Foreground(lipgloss.Color(circle)),
		breath:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		caption:   lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("252")).Width(56),
		cue:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		help:      lipgloss.NewStyle().Faint(true),
		warning:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
}

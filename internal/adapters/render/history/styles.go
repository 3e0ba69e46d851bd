package history

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	day        lipgloss.Style
	detail     lipgloss.Style
	sessionTyp lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	statKey    lipgloss.Style
	statValue  lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		day:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("108")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		sessionTyp: lipgloss.NewStyle().Foreground(lipgloss.Color("230")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		statKey:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		statValue:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("108")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}

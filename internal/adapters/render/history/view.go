package history

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/vipasana-cli/internal/application"
	"github.com/bnema/vipasana-cli/internal/domain"
)

const barWidth = 20

type RenderOptions struct {
	Now time.Time
	// Limit caps the number of sessions listed. Zero lists everything.
	Limit int
}

func renderHistory(history application.History, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Meditation History"),
		s.header.Render(statsHeader(history.Stats)),
	}

	sessions := history.Sessions
	if len(sessions) == 0 {
		lines = append(lines, s.empty.Render("No completed sessions yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}
	if opts.Limit > 0 && len(sessions) > opts.Limit {
		sessions = sessions[:opts.Limit]
	}

	longest := longestDuration(sessions)
	for _, group := range groupByDay(sessions, location(opts.Now)) {
		parts := []string{s.day.Render(dayTitle(group.day, opts.Now))}
		for _, record := range group.sessions {
			parts = append(parts, sessionLine(record, longest, opts.Now, s))
		}
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, parts...)))
	}

	if hidden := len(history.Sessions) - len(sessions); hidden > 0 {
		lines = append(lines, s.section.Render(s.empty.Render(fmt.Sprintf("… %d older %s", hidden, plural(hidden, "session", "sessions")))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderStats(stats domain.Stats, s styles) string {
	rows := []string{
		statRow("sessions", fmt.Sprintf("%d", stats.TotalSessions), s),
		statRow("minutes", fmt.Sprintf("%d", stats.TotalMinutes), s),
		statRow("streak", fmt.Sprintf("%d %s", stats.CurrentStreak, plural(stats.CurrentStreak, "day", "days")), s),
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		s.title.Render("Meditation Stats"),
		s.section.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)),
	)
}

func renderDay(summary application.DaySummary, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render(summary.Day.Format("Monday, 2 January 2006")),
		s.header.Render(fmt.Sprintf("sessions: %d · minutes: %d", len(summary.Sessions), summary.TotalMinutes)),
	}

	if len(summary.Sessions) == 0 {
		lines = append(lines, s.empty.Render("No sessions on this day."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	longest := longestDuration(summary.Sessions)
	parts := make([]string, 0, len(summary.Sessions))
	for _, record := range summary.Sessions {
		parts = append(parts, sessionLine(record, longest, opts.Now, s))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, parts...)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func statsHeader(stats domain.Stats) string {
	return fmt.Sprintf("sessions: %d · minutes: %d · streak: %d %s",
		stats.TotalSessions, stats.TotalMinutes, stats.CurrentStreak, plural(stats.CurrentStreak, "day", "days"))
}

func statRow(key, value string, s styles) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		s.statKey.Render(fmt.Sprintf("%-9s", key+":")),
		" ",
		s.statValue.Render(value),
	)
}

func sessionLine(record domain.SessionRecord, longest time.Duration, now time.Time, s styles) string {
	start := record.StartTime.In(location(now))
	ageStyle := lipgloss.NewStyle().Foreground(ageColor(record.StartTime, now))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		ageStyle.Render(start.Format("15:04")),
		"  ",
		s.sessionTyp.Render(fmt.Sprintf("%-14s", record.Type)),
		" ",
		renderProgressBar(record.Duration, longest, barWidth, s),
		" ",
		s.detail.Render(formatDuration(record.Duration)),
	)
}

type dayGroup struct {
	day      time.Time
	sessions []domain.SessionRecord
}

// groupByDay keeps the incoming order, which is newest first.
func groupByDay(records []domain.SessionRecord, loc *time.Location) []dayGroup {
	var groups []dayGroup
	for _, record := range records {
		start := record.StartTime.In(loc)
		if n := len(groups); n > 0 && domain.SameDay(groups[n-1].day, start) {
			groups[n-1].sessions = append(groups[n-1].sessions, record)
			continue
		}
		groups = append(groups, dayGroup{day: start, sessions: []domain.SessionRecord{record}})
	}
	return groups
}

func dayTitle(day, now time.Time) string {
	label := day.Format("Mon 02 Jan 2006")
	if now.IsZero() {
		return label
	}

	switch {
	case domain.SameDay(day, now):
		return label + " (today)"
	case domain.SameDay(day, now.AddDate(0, 0, -1)):
		return label + " (yesterday)"
	default:
		return label
	}
}

func location(now time.Time) *time.Location {
	if now.IsZero() {
		return time.Local
	}
	return now.Location()
}

func longestDuration(records []domain.SessionRecord) time.Duration {
	var longest time.Duration
	for _, record := range records {
		if record.Duration > longest {
			longest = record.Duration
		}
	}
	return longest
}

func renderProgressBar(value, max time.Duration, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	fraction := 0.0
	if max > 0 {
		fraction = float64(value) / float64(max)
	}
	filled := int(math.Round(float64(width) * fraction))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func formatDuration(d time.Duration) string {
	if d%time.Minute != 0 {
		return fmt.Sprintf("%d min %02d s", int(d/time.Minute), int(d%time.Minute/time.Second))
	}
	return fmt.Sprintf("%d min", int(d/time.Minute))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	// ANSI 256 greyscale ramp: 240 (faded) to 255 (bright).
	interpolated := 240.0 + 15.0*normalized
	return lipgloss.Color(fmt.Sprintf("%d", int(interpolated)))
}

// ageColor fades session times over a week.
func ageColor(start, now time.Time) lipgloss.Color {
	if now.IsZero() || start.After(now) {
		return lipgloss.Color("255")
	}

	window := 7 * 24 * time.Hour
	age := now.Sub(start)
	return interpolateColor(window.Seconds()-age.Seconds(), 0, window.Seconds())
}

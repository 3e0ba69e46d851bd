package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/vipasana-cli/internal/application"
	"github.com/bnema/vipasana-cli/internal/domain"
)

var now = time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)

func record(id string, start time.Time, minutes int, sessionType string) domain.SessionRecord {
	return domain.SessionRecord{
		ID:        domain.SessionID(id),
		Type:      sessionType,
		StartTime: start,
		Duration:  time.Duration(minutes) * time.Minute,
		Completed: true,
	}
}

func TestRenderHistoryGroupsByDay(t *testing.T) {
	sessions := []domain.SessionRecord{
		record("c", now.Add(-2*time.Hour), 15, "15min Guided"),
		record("b", now.Add(-3*time.Hour), 30, "30min"),
		record("a", now.AddDate(0, 0, -1), 45, "45min"),
	}

	output, err := RenderHistory(application.History{
		Sessions: sessions,
		Stats:    domain.ComputeStats(sessions, now),
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "Meditation History")
	assert.Contains(t, output, "sessions: 3 · minutes: 90 · streak: 2 days")
	assert.Contains(t, output, "Sat 14 Mar 2026 (today)")
	assert.Contains(t, output, "Fri 13 Mar 2026 (yesterday)")
	assert.Contains(t, output, "18:00")
	assert.Contains(t, output, "15min Guided")
	assert.Contains(t, output, "45 min")
	assert.Contains(t, output, "[====================]")
}

func TestRenderHistoryLimit(t *testing.T) {
	sessions := []domain.SessionRecord{
		record("c", now.Add(-time.Hour), 15, "15min"),
		record("b", now.Add(-2*time.Hour), 15, "15min"),
		record("a", now.Add(-3*time.Hour), 15, "15min"),
	}

	output, err := RenderHistory(application.History{Sessions: sessions}, RenderOptions{Now: now, Limit: 1})

	require.NoError(t, err)
	assert.Contains(t, output, "19:00")
	assert.NotContains(t, output, "18:00")
	assert.Contains(t, output, "… 2 older sessions")
}

func TestRenderHistoryEmpty(t *testing.T) {
	output, err := RenderHistory(application.History{}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "sessions: 0 · minutes: 0 · streak: 0 days")
	assert.Contains(t, output, "No completed sessions yet.")
}

func TestRenderStats(t *testing.T) {
	output, err := RenderStats(domain.Stats{TotalSessions: 4, TotalMinutes: 75, CurrentStreak: 1})

	require.NoError(t, err)
	assert.Contains(t, output, "Meditation Stats")
	assert.Contains(t, output, "sessions: 4")
	assert.Contains(t, output, "minutes:  75")
	assert.Contains(t, output, "streak:   1 day")
}

func TestRenderDay(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	summary := application.DaySummary{
		Day: day,
		Sessions: []domain.SessionRecord{
			record("b", day.Add(19*time.Hour), 10, "10min"),
			{ID: "a", Type: "90s", StartTime: day.Add(7 * time.Hour), Duration: 90 * time.Second, Completed: true},
		},
		TotalMinutes: 11,
	}

	output, err := RenderDay(summary, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "Saturday, 14 March 2026")
	assert.Contains(t, output, "sessions: 2 · minutes: 11")
	assert.Contains(t, output, "07:00")
	assert.Contains(t, output, "1 min 30 s")
}

func TestRenderDayEmpty(t *testing.T) {
	output, err := RenderDay(application.DaySummary{Day: now}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "No sessions on this day.")
}

func TestAgeColorFadesOverAWeek(t *testing.T) {
	assert.Equal(t, "255", string(ageColor(now, now)))
	assert.Equal(t, "240", string(ageColor(now.AddDate(0, 0, -8), now)))
	assert.Equal(t, "255", string(ageColor(now, time.Time{})))
}

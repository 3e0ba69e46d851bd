package domain

import (
	"sort"
	"time"
)

type SessionID string

type SessionRecord struct {
	ID        SessionID
	Type      string
	StartTime time.Time
	Duration  time.Duration
	Completed bool
}

func (r SessionRecord) EndTime() time.Time {
	return r.StartTime.Add(r.Duration)
}

type Stats struct {
	TotalSessions int
	TotalMinutes  int
	CurrentStreak int
}

// CompletedNewestFirst filters completed records and sorts them by start time, newest first.
func CompletedNewestFirst(records []SessionRecord) []SessionRecord {
	completed := make([]SessionRecord, 0, len(records))
	for _, record := range records {
		if record.Completed {
			completed = append(completed, record)
		}
	}
	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].StartTime.After(completed[j].StartTime)
	})
	return completed
}

func ComputeStats(records []SessionRecord, now time.Time) Stats {
	completed := CompletedNewestFirst(records)

	stats := Stats{TotalSessions: len(completed)}
	for _, record := range completed {
		stats.TotalMinutes += int(record.Duration / time.Minute)
	}
	stats.CurrentStreak = currentStreak(completed, now)
	return stats
}

// currentStreak walks sessions newest first: sessions today start the streak,
// each session on the day before the last counted day extends it.
func currentStreak(newestFirst []SessionRecord, now time.Time) int {
	streak := 0
	current := now
	for _, record := range newestFirst {
		start := record.StartTime.In(now.Location())
		switch {
		case SameDay(start, current):
			if streak == 0 {
				streak = 1
			}
		case SameDay(start, current.AddDate(0, 0, -1)):
			streak++
			current = start
		default:
			return streak
		}
	}
	return streak
}

// OnDay returns completed records that started on the calendar day of day.
func OnDay(records []SessionRecord, day time.Time) []SessionRecord {
	var matched []SessionRecord
	for _, record := range CompletedNewestFirst(records) {
		if SameDay(record.StartTime.In(day.Location()), day) {
			matched = append(matched, record)
		}
	}
	return matched
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

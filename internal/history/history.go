// Package history aggregates completed and abandoned sessions: calendar-day
// grouping, streak computation and summary statistics. All date math uses
// LOCAL calendar days (midnight to midnight in the observer's zone), with
// weeks starting on Sunday. "Now" is always passed in so callers can pin it.
package history

import (
	"sort"
	"time"

	"github.com/stackgarden/stackgarden/internal/domain"
)

// StreakSearchDays caps the backward scan when counting consecutive days.
const StreakSearchDays = 365

// Buckets groups sessions by how long ago their local calendar start date
// was. Every session lands in exactly one bucket; within each bucket the
// most recent start time comes first.
type Buckets struct {
	Today     []domain.Session `json:"today"`
	Yesterday []domain.Session `json:"yesterday"`
	ThisWeek  []domain.Session `json:"thisWeek"`
	LastWeek  []domain.Session `json:"lastWeek"`
	Older     []domain.Session `json:"older"`
}

// Statistics summarizes a session history.
type Statistics struct {
	TotalSessions      int     `json:"totalSessions"`
	TotalFocusTime     int     `json:"totalFocusTime"` // seconds
	CompletionRate     float64 `json:"completionRate"` // percent
	AverageSessionLen  float64 `json:"averageSessionLength"` // seconds
	TotalCreditsEarned int     `json:"totalCreditsEarned"`
	CurrentStreak      int     `json:"currentStreak"`
}

// GroupByDate buckets sessions relative to now.
func GroupByDate(sessions []domain.Session, now time.Time) Buckets {
	today := startOfDay(now)
	yesterday := today.AddDate(0, 0, -1)
	weekStart := startOfWeek(now)
	lastWeekStart := weekStart.AddDate(0, 0, -7)

	var b Buckets
	for _, s := range sessions {
		day := startOfDay(s.StartTime)
		switch {
		case !day.Before(today):
			b.Today = append(b.Today, s)
		case day.Equal(yesterday):
			b.Yesterday = append(b.Yesterday, s)
		case !day.Before(weekStart):
			b.ThisWeek = append(b.ThisWeek, s)
		case !day.Before(lastWeekStart):
			b.LastWeek = append(b.LastWeek, s)
		default:
			b.Older = append(b.Older, s)
		}
	}

	for _, bucket := range [][]domain.Session{b.Today, b.Yesterday, b.ThisWeek, b.LastWeek, b.Older} {
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].StartTime.After(bucket[j].StartTime)
		})
	}
	return b
}

// ComputeStatistics summarizes the history. Empty input yields all zeros.
func ComputeStatistics(sessions []domain.Session, now time.Time) Statistics {
	stats := Statistics{TotalSessions: len(sessions)}

	completed := 0
	for _, s := range sessions {
		stats.TotalFocusTime += s.Duration
		stats.TotalCreditsEarned += s.CreditsEarned
		if s.Completed {
			completed++
		}
	}

	if stats.TotalSessions > 0 {
		stats.CompletionRate = float64(completed) / float64(stats.TotalSessions) * 100
		stats.AverageSessionLen = float64(stats.TotalFocusTime) / float64(stats.TotalSessions)
	}

	stats.CurrentStreak = ComputeStreak(sessions, now)
	return stats
}

// ComputeStreak counts consecutive local calendar days with at least one
// completed session, anchored at today or yesterday. A most-recent completed
// day further back than yesterday means the streak is broken.
func ComputeStreak(sessions []domain.Session, now time.Time) int {
	days := make(map[time.Time]bool)
	var latest time.Time
	for _, s := range sessions {
		if !s.Completed {
			continue
		}
		day := startOfDay(s.StartTime)
		days[day] = true
		if day.After(latest) {
			latest = day
		}
	}
	if len(days) == 0 {
		return 0
	}

	today := startOfDay(now)
	yesterday := today.AddDate(0, 0, -1)
	if !latest.Equal(today) && !latest.Equal(yesterday) {
		return 0
	}

	streak := 0
	day := latest
	for i := 0; i < StreakSearchDays; i++ {
		if !days[day] {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

func startOfDay(t time.Time) time.Time {
	local := t.Local()
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
}

// startOfWeek returns the most recent Sunday's midnight.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

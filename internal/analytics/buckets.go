package analytics

import (
	"fmt"
	"time"

	"zerim-todo/pkg/types"
)

// WeeklyStats counts completions per week for the last four weeks. Window i
// (1-based) spans [now - i*7d, now - (i-1)*7d], inclusive on both ends, so the
// windows are contiguous and non-overlapping, most recent first.
func WeeklyStats(tasks []types.Task, now time.Time) map[string]int {
	stats := make(map[string]int, 4)
	for i := 0; i < 4; i++ {
		weekStart := now.AddDate(0, 0, -7*(i+1))
		weekEnd := now.AddDate(0, 0, -7*i)
		stats[fmt.Sprintf("Week %d", i+1)] = countCompletedBetween(tasks, weekStart, weekEnd)
	}
	return stats
}

// MonthlyStats counts completions per "month" for the last six months. A
// window starts at the first of the current month shifted back i*30 days and
// ends at day 28 of that window's month plus four days. The 30-day step is a
// calendar approximation inherited from existing callers: window boundaries
// drift from true months and may overlap. The drift is load-bearing for chart
// compatibility; do not replace it with real month arithmetic.
func MonthlyStats(tasks []types.Task, now time.Time) map[string]int {
	stats := make(map[string]int, 6)
	firstOfMonth := replaceDay(now, 1)
	for i := 0; i < 6; i++ {
		monthStart := firstOfMonth.AddDate(0, 0, -30*i)
		monthEnd := replaceDay(monthStart, 28).AddDate(0, 0, 4)
		stats[monthStart.Format("January 2006")] = countCompletedBetween(tasks, monthStart, monthEnd)
	}
	return stats
}

// DailyBreakdown returns completion counts for each of the last `days`
// calendar days, keyed by ISO date. Day 0 is today. The caller validates the
// 1..365 range at the boundary; the core trusts its input.
func DailyBreakdown(tasks []types.Task, now time.Time, days int) map[string]int {
	stats := make(map[string]int, days)
	for i := 0; i < days; i++ {
		day := now.AddDate(0, 0, -i)
		key := day.Format(dayKeyFormat)
		count := 0
		for j := range tasks {
			if tasks[j].CompletedAt != nil && tasks[j].CompletedAt.Format(dayKeyFormat) == key {
				count++
			}
		}
		stats[key] = count
	}
	return stats
}

// countCompletedBetween counts tasks completed within [start, end], inclusive
// on both ends.
func countCompletedBetween(tasks []types.Task, start, end time.Time) int {
	count := 0
	for i := range tasks {
		completedAt := tasks[i].CompletedAt
		if completedAt == nil {
			continue
		}
		if !completedAt.Before(start) && !completedAt.After(end) {
			count++
		}
	}
	return count
}

// replaceDay returns t with its day-of-month changed, keeping the time of day.
func replaceDay(t time.Time, day int) time.Time {
	return time.Date(t.Year(), t.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

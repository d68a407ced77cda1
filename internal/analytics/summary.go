// Package analytics computes derived statistics over task, category and time
// entry snapshots: aggregate summaries, completion streaks, time-window
// bucketing, productivity scoring and time distribution.
//
// Every function is pure: it reads the snapshot it is handed together with an
// explicit current instant and returns a result, mutating nothing. Results are
// recomputed on every call; there is no caching layer.
package analytics

import (
	"time"

	"zerim-todo/pkg/types"
)

// Summary is the aggregate analytics report. Field names are part of the wire
// contract and must not change.
type Summary struct {
	TotalTasks             int            `json:"total_tasks"`
	CompletedTasks         int            `json:"completed_tasks"`
	PendingTasks           int            `json:"pending_tasks"`
	OverdueTasks           int            `json:"overdue_tasks"`
	CompletionRate         float64        `json:"completion_rate"`
	TasksByPriority        map[string]int `json:"tasks_by_priority"`
	TasksByCategory        map[string]int `json:"tasks_by_category"`
	TasksByStatus          map[string]int `json:"tasks_by_status"`
	ProductivityStreak     int            `json:"productivity_streak"`
	DailyCompletionAverage float64        `json:"daily_completion_average"`
	WeeklyStats            map[string]int `json:"weekly_stats"`
	MonthlyStats           map[string]int `json:"monthly_stats"`
}

// Summarize computes the aggregate report for the given snapshot.
//
// pending_tasks is defined as "not completed", so cancelled tasks count as
// pending. That is inherited behavior relied upon by existing callers
// (pending + completed == total); do not "fix" it.
func Summarize(tasks []types.Task, categories []types.Category, now time.Time) Summary {
	total := len(tasks)
	completed := 0
	overdue := 0
	for i := range tasks {
		if tasks[i].Completed {
			completed++
		}
		if tasks[i].Overdue(now) {
			overdue++
		}
	}

	completionRate := 0.0
	if total > 0 {
		completionRate = float64(completed) / float64(total) * 100
	}

	return Summary{
		TotalTasks:             total,
		CompletedTasks:         completed,
		PendingTasks:           total - completed,
		OverdueTasks:           overdue,
		CompletionRate:         completionRate,
		TasksByPriority:        countByPriority(tasks),
		TasksByCategory:        countByCategory(tasks, categories),
		TasksByStatus:          countByStatus(tasks),
		ProductivityStreak:     Streak(tasks, now),
		DailyCompletionAverage: dailyCompletionAverage(tasks, completed, now),
		WeeklyStats:            WeeklyStats(tasks, now),
		MonthlyStats:           MonthlyStats(tasks, now),
	}
}

// countByPriority buckets tasks per priority. All four enum keys are always
// present, even at zero.
func countByPriority(tasks []types.Task) map[string]int {
	counts := make(map[string]int, 4)
	for _, p := range types.AllPriorities() {
		counts[string(p)] = 0
	}
	for i := range tasks {
		counts[string(tasks[i].Priority)]++
	}
	return counts
}

// countByStatus buckets tasks per status. All four enum keys are always
// present, even at zero.
func countByStatus(tasks []types.Task) map[string]int {
	counts := make(map[string]int, 4)
	for _, s := range types.AllStatuses() {
		counts[string(s)] = 0
	}
	for i := range tasks {
		counts[string(tasks[i].Status)]++
	}
	return counts
}

// countByCategory buckets tasks per category name. Only categories with at
// least one task appear; tasks without a category, or whose category ID no
// longer resolves, are omitted from this breakdown (they still count toward
// the totals).
func countByCategory(tasks []types.Task, categories []types.Category) map[string]int {
	counts := make(map[string]int)
	for i := range categories {
		category := &categories[i]
		count := 0
		for j := range tasks {
			if tasks[j].CategoryID != nil && *tasks[j].CategoryID == category.ID {
				count++
			}
		}
		if count > 0 {
			counts[category.Name] = count
		}
	}
	return counts
}

// dailyCompletionAverage divides completions by the days elapsed since the
// earliest task was created, with a floor of one day. Empty collections
// average zero.
func dailyCompletionAverage(tasks []types.Task, completed int, now time.Time) float64 {
	if len(tasks) == 0 {
		return 0
	}

	earliest := now
	for i := range tasks {
		if tasks[i].CreatedAt.Before(earliest) {
			earliest = tasks[i].CreatedAt
		}
	}

	days := int(now.Sub(earliest).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return float64(completed) / float64(days)
}

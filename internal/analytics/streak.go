package analytics

import (
	"time"

	"zerim-todo/pkg/types"
)

const dayKeyFormat = "2006-01-02"

// Streak counts consecutive calendar days with at least one completion,
// walking backward from today. The streak includes today or it is zero: a
// completion yesterday with none today yields 0.
func Streak(tasks []types.Task, now time.Time) int {
	if len(tasks) == 0 {
		return 0
	}

	completedDays := make(map[string]bool)
	for i := range tasks {
		if tasks[i].CompletedAt != nil {
			completedDays[tasks[i].CompletedAt.Format(dayKeyFormat)] = true
		}
	}
	if len(completedDays) == 0 {
		return 0
	}

	streak := 0
	current := now
	for completedDays[current.Format(dayKeyFormat)] {
		streak++
		current = current.AddDate(0, 0, -1)
	}
	return streak
}

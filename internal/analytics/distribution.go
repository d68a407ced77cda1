package analytics

import (
	"strings"

	"zerim-todo/pkg/types"
)

// TimeDistribution reports tracked hours grouped by category and by priority.
// Field names are part of the wire contract.
type TimeDistribution struct {
	Categories map[string]float64 `json:"categories"`
	Priorities map[string]float64 `json:"priorities"`
	TotalHours float64            `json:"total_hours"`
}

// Distribution sums recorded entry durations into per-category and
// per-priority hour buckets. Entries without a recorded duration, or whose
// task no longer resolves, are skipped. Tasks without a category land in the
// "Uncategorized" bucket. total_hours is the sum over the category buckets.
func Distribution(entries []types.TimeEntry, tasks []types.Task, categories []types.Category) TimeDistribution {
	tasksByID := make(map[string]*types.Task, len(tasks))
	for i := range tasks {
		tasksByID[tasks[i].ID] = &tasks[i]
	}
	categoryNames := make(map[string]string, len(categories))
	for i := range categories {
		categoryNames[categories[i].ID] = categories[i].Name
	}

	dist := TimeDistribution{
		Categories: make(map[string]float64),
		Priorities: make(map[string]float64),
	}

	for i := range entries {
		entry := &entries[i]
		if entry.Duration == nil {
			continue
		}
		task, ok := tasksByID[entry.TaskID]
		if !ok {
			continue
		}

		hours := float64(*entry.Duration) / 3600

		categoryName := "Uncategorized"
		if task.CategoryID != nil {
			if name, ok := categoryNames[*task.CategoryID]; ok {
				categoryName = name
			}
		}
		dist.Categories[categoryName] += hours
		dist.Priorities[capitalize(string(task.Priority))] += hours
	}

	for _, hours := range dist.Categories {
		dist.TotalHours += hours
	}
	return dist
}

// capitalize upper-cases the first byte, matching the display form the
// dashboard expects ("Low", "Medium", "High", "Urgent").
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

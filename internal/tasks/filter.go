package tasks

import (
	"sort"
	"strings"
	"time"

	"zerim-todo/pkg/types"
)

// TaskFilters narrows and paginates a task listing. Zero values mean
// "no filter"; results are always sorted by creation time, newest first.
type TaskFilters struct {
	Status     *types.TaskStatus `json:"status,omitempty"`
	Priority   *types.Priority   `json:"priority,omitempty"`
	CategoryID string            `json:"category_id,omitempty"`
	Completed  *bool             `json:"completed,omitempty"`
	Overdue    bool              `json:"overdue,omitempty"`
	Search     string            `json:"search,omitempty"`
	Limit      int               `json:"limit,omitempty"`
	Offset     int               `json:"offset,omitempty"`
}

// Apply filters, sorts and paginates the given tasks.
func (f *TaskFilters) Apply(tasks []types.Task, now time.Time) []types.Task {
	filtered := make([]types.Task, 0, len(tasks))
	for i := range tasks {
		if f.matches(&tasks[i], now) {
			filtered = append(filtered, tasks[i])
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	return f.paginate(filtered)
}

func (f *TaskFilters) matches(t *types.Task, now time.Time) bool {
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.Priority != nil && t.Priority != *f.Priority {
		return false
	}
	if f.CategoryID != "" && (t.CategoryID == nil || *t.CategoryID != f.CategoryID) {
		return false
	}
	if f.Completed != nil && t.Completed != *f.Completed {
		return false
	}
	if f.Overdue && !t.Overdue(now) {
		return false
	}
	if f.Search != "" && !matchesSearch(t, f.Search) {
		return false
	}
	return true
}

// matchesSearch checks title, description and tags case-insensitively.
func matchesSearch(t *types.Task, search string) bool {
	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(t.Title), needle) {
		return true
	}
	if t.Description != nil && strings.Contains(strings.ToLower(*t.Description), needle) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func (f *TaskFilters) paginate(tasks []types.Task) []types.Task {
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	switch {
	case f.Limit > 0:
		if offset >= len(tasks) {
			return []types.Task{}
		}
		end := offset + f.Limit
		if end > len(tasks) {
			end = len(tasks)
		}
		return tasks[offset:end]
	case offset > 0:
		if offset >= len(tasks) {
			return []types.Task{}
		}
		return tasks[offset:]
	default:
		return tasks
	}
}

// Package store provides the in-memory record store backing the to-do server.
// Collections keep insertion order; all access goes through a single store so
// cross-collection operations (category unassignment, snapshots) stay consistent.
package store

import (
	"context"
	"errors"
	"sync"

	"zerim-todo/pkg/types"
)

// Sentinel errors returned by lookups.
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrSubtaskNotFound   = errors.New("subtask not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrTemplateNotFound  = errors.New("template not found")
	ErrTimeEntryNotFound = errors.New("time entry not found")
	ErrSessionNotFound   = errors.New("pomodoro session not found")
)

// MemoryStore holds every collection in process memory. The original design
// has no persistence; the RWMutex only serializes concurrent HTTP requests,
// it is not a durability mechanism.
type MemoryStore struct {
	mu         sync.RWMutex
	tasks      []*types.Task
	categories []*types.Category
	templates  []*types.TaskTemplate
	entries    []*types.TimeEntry
	sessions   []*types.PomodoroSession
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewSeededStore creates a store preloaded with the default categories and
// task templates.
func NewSeededStore() *MemoryStore {
	s := NewMemoryStore()
	s.categories = defaultCategories()
	s.templates = defaultTemplates()
	return s
}

// Snapshot is the set of records visible to an analytics call at invocation
// time; it does not track further mutation.
type Snapshot struct {
	Tasks       []types.Task
	Categories  []types.Category
	TimeEntries []types.TimeEntry
}

// Snapshot copies the analytics-relevant collections under a single read lock.
func (s *MemoryStore) Snapshot(_ context.Context) Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Tasks:       cloneTasks(s.tasks),
		Categories:  cloneCategories(s.categories),
		TimeEntries: cloneTimeEntries(s.entries),
	}
}

// Counts reports collection sizes for the health endpoint.
type Counts struct {
	Tasks           int `json:"tasks_count"`
	Categories      int `json:"categories_count"`
	Templates       int `json:"templates_count"`
	TimeEntries     int `json:"time_entries_count"`
	ActivePomodoros int `json:"active_pomodoros"`
}

// Counts returns the current collection sizes.
func (s *MemoryStore) Counts(_ context.Context) Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := 0
	for _, session := range s.sessions {
		if session.IsActive {
			active++
		}
	}

	return Counts{
		Tasks:           len(s.tasks),
		Categories:      len(s.categories),
		Templates:       len(s.templates),
		TimeEntries:     len(s.entries),
		ActivePomodoros: active,
	}
}

// Reset drops all tasks and restores the default categories. Templates, time
// entries and pomodoro sessions are left untouched, matching the original
// reset behavior.
func (s *MemoryStore) Reset(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = nil
	s.categories = defaultCategories()
}

// Import appends tasks and categories from an export payload. Categories with
// an already-present ID are skipped to avoid duplicates; tasks are appended
// as-is.
func (s *MemoryStore) Import(_ context.Context, tasks []types.Task, categories []types.Category) (tasksAdded, categoriesAdded int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range tasks {
		task := tasks[i]
		s.tasks = append(s.tasks, &task)
		tasksAdded++
	}

	existing := make(map[string]bool, len(s.categories))
	for _, c := range s.categories {
		existing[c.ID] = true
	}
	for i := range categories {
		if existing[categories[i].ID] {
			continue
		}
		category := categories[i]
		s.categories = append(s.categories, &category)
		existing[category.ID] = true
		categoriesAdded++
	}

	return tasksAdded, categoriesAdded
}

// clone helpers keep snapshots detached from live records.

func cloneTask(t *types.Task) types.Task {
	clone := *t
	if t.Tags != nil {
		clone.Tags = append([]string(nil), t.Tags...)
	}
	if t.Subtasks != nil {
		clone.Subtasks = append([]types.Subtask(nil), t.Subtasks...)
	}
	return clone
}

func cloneTasks(tasks []*types.Task) []types.Task {
	out := make([]types.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, cloneTask(t))
	}
	return out
}

func cloneCategories(categories []*types.Category) []types.Category {
	out := make([]types.Category, 0, len(categories))
	for _, c := range categories {
		out = append(out, *c)
	}
	return out
}

func cloneTimeEntries(entries []*types.TimeEntry) []types.TimeEntry {
	out := make([]types.TimeEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, *e)
	}
	return out
}

func cloneTemplate(t *types.TaskTemplate) types.TaskTemplate {
	clone := *t
	if t.Tags != nil {
		clone.Tags = append([]string(nil), t.Tags...)
	}
	return clone
}

package store

import (
	"context"

	"github.com/google/uuid"

	"zerim-todo/pkg/types"
)

// CreateTask appends a task, assigning an ID when none is set.
func (s *MemoryStore) CreateTask(_ context.Context, task *types.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if task.ID == "" {
		task.ID = uuid.New().String()
	}

	stored := cloneTask(task)
	s.tasks = append(s.tasks, &stored)
	return nil
}

// GetTask returns a copy of the task with the given ID.
func (s *MemoryStore) GetTask(_ context.Context, id string) (*types.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tasks {
		if t.ID == id {
			clone := cloneTask(t)
			return &clone, nil
		}
	}
	return nil, ErrTaskNotFound
}

// UpdateTask replaces the stored task with the same ID.
func (s *MemoryStore) UpdateTask(_ context.Context, task *types.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.tasks {
		if t.ID == task.ID {
			stored := cloneTask(task)
			s.tasks[i] = &stored
			return nil
		}
	}
	return ErrTaskNotFound
}

// DeleteTask removes the task with the given ID.
func (s *MemoryStore) DeleteTask(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return nil
		}
	}
	return ErrTaskNotFound
}

// ListTasks returns copies of all tasks in insertion order.
func (s *MemoryStore) ListTasks(_ context.Context) []types.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneTasks(s.tasks)
}

// DeleteTasksWhere removes every task matching the predicate and returns how
// many were removed.
func (s *MemoryStore) DeleteTasksWhere(_ context.Context, match func(*types.Task) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.tasks[:0]
	removed := 0
	for _, t := range s.tasks {
		if match(t) {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
	return removed
}

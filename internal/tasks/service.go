// Package tasks provides the task management service: creation with defaults,
// patch updates, filtering, subtasks and bulk operations.
package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"zerim-todo/pkg/types"
)

// Repository is the store surface the task service depends on.
type Repository interface {
	CreateTask(ctx context.Context, task *types.Task) error
	GetTask(ctx context.Context, id string) (*types.Task, error)
	UpdateTask(ctx context.Context, task *types.Task) error
	DeleteTask(ctx context.Context, id string) error
	ListTasks(ctx context.Context) []types.Task
	DeleteTasksWhere(ctx context.Context, match func(*types.Task) bool) int
}

// Service implements task operations over a repository.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new task service.
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// NewServiceWithClock creates a task service with an injected clock for tests.
func NewServiceWithClock(repo Repository, now func() time.Time) *Service {
	return &Service{repo: repo, now: now}
}

// CreateTaskInput carries the caller-settable fields of a new task.
type CreateTaskInput struct {
	Title             string         `json:"title"`
	Description       *string        `json:"description"`
	Priority          types.Priority `json:"priority"`
	CategoryID        *string        `json:"category_id"`
	DueDate           *time.Time     `json:"due_date"`
	DueTime           *string        `json:"due_time"`
	Tags              []string       `json:"tags"`
	EstimatedDuration *int           `json:"estimated_duration"`
	Notes             *string        `json:"notes"`
	ReminderEnabled   bool           `json:"reminder_enabled"`
	ReminderTime      *time.Time     `json:"reminder_time"`
}

// CreateTask creates a task with defaults: pending status, medium priority,
// empty tags and subtasks.
func (s *Service) CreateTask(ctx context.Context, input *CreateTaskInput) (*types.Task, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	priority := input.Priority
	if priority == "" {
		priority = types.PriorityMedium
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("invalid priority: %s", priority)
	}

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	now := s.now()
	task := &types.Task{
		ID:                uuid.New().String(),
		Title:             input.Title,
		Description:       input.Description,
		Priority:          priority,
		Status:            types.StatusPending,
		CategoryID:        input.CategoryID,
		DueDate:           input.DueDate,
		DueTime:           input.DueTime,
		Tags:              tags,
		Subtasks:          []types.Subtask{},
		CreatedAt:         now,
		UpdatedAt:         now,
		EstimatedDuration: input.EstimatedDuration,
		Notes:             input.Notes,
		ReminderEnabled:   input.ReminderEnabled,
		ReminderTime:      input.ReminderTime,
	}

	if err := s.repo.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// GetTask retrieves a task by ID.
func (s *Service) GetTask(ctx context.Context, id string) (*types.Task, error) {
	return s.repo.GetTask(ctx, id)
}

// UpdateTask applies a patch to the task with the given ID. The merge always
// refreshes updated_at and maintains the completion tri-state.
func (s *Service) UpdateTask(ctx context.Context, id string, patch *types.TaskPatch) (*types.Task, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	task, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(task, s.now())

	if err := s.repo.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// DeleteTask removes a task by ID.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	return s.repo.DeleteTask(ctx, id)
}

// ListTasks returns tasks matching the filters, newest first.
func (s *Service) ListTasks(ctx context.Context, filters *TaskFilters) []types.Task {
	return filters.Apply(s.repo.ListTasks(ctx), s.now())
}

// AddSubtask appends a subtask to the task and returns the updated task.
func (s *Service) AddSubtask(ctx context.Context, taskID, title string) (*types.Task, error) {
	if title == "" {
		return nil, fmt.Errorf("subtask title is required")
	}

	task, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	task.Subtasks = append(task.Subtasks, types.Subtask{
		ID:        uuid.New().String(),
		Title:     title,
		CreatedAt: now,
	})
	task.UpdatedAt = now

	if err := s.repo.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to add subtask: %w", err)
	}
	return task, nil
}

// UpdateSubtask sets a subtask's completion flag and returns the updated task.
func (s *Service) UpdateSubtask(ctx context.Context, taskID, subtaskID string, completed bool) (*types.Task, error) {
	task, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range task.Subtasks {
		if task.Subtasks[i].ID == subtaskID {
			task.Subtasks[i].Completed = completed
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("subtask not found: %s", subtaskID)
	}

	task.UpdatedAt = s.now()
	if err := s.repo.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update subtask: %w", err)
	}
	return task, nil
}

// DeleteSubtask removes a subtask from the task and returns the updated task.
// Removing an absent subtask is not an error.
func (s *Service) DeleteSubtask(ctx context.Context, taskID, subtaskID string) (*types.Task, error) {
	task, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	kept := task.Subtasks[:0]
	for _, st := range task.Subtasks {
		if st.ID != subtaskID {
			kept = append(kept, st)
		}
	}
	task.Subtasks = kept
	task.UpdatedAt = s.now()

	if err := s.repo.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to delete subtask: %w", err)
	}
	return task, nil
}

// BulkUpdate applies the same patch to every listed task. Unknown IDs are
// skipped; the updated tasks are returned in request order.
func (s *Service) BulkUpdate(ctx context.Context, taskIDs []string, patch *types.TaskPatch) ([]types.Task, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	updated := make([]types.Task, 0, len(taskIDs))
	for _, id := range taskIDs {
		task, err := s.repo.GetTask(ctx, id)
		if err != nil {
			continue
		}

		patch.Apply(task, s.now())
		if err := s.repo.UpdateTask(ctx, task); err != nil {
			return nil, fmt.Errorf("failed to update task %s: %w", id, err)
		}
		updated = append(updated, *task)
	}
	return updated, nil
}

// BulkDelete removes every listed task and returns how many were deleted.
func (s *Service) BulkDelete(ctx context.Context, taskIDs []string) int {
	deleted := 0
	for _, id := range taskIDs {
		if err := s.repo.DeleteTask(ctx, id); err == nil {
			deleted++
		}
	}
	return deleted
}

// ClearCompleted removes all completed tasks and returns how many were removed.
func (s *Service) ClearCompleted(ctx context.Context) int {
	return s.repo.DeleteTasksWhere(ctx, func(t *types.Task) bool {
		return t.Completed
	})
}

func validatePatch(patch *types.TaskPatch) error {
	if patch.Title != nil && *patch.Title == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return fmt.Errorf("invalid priority: %s", *patch.Priority)
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return fmt.Errorf("invalid status: %s", *patch.Status)
	}
	return nil
}

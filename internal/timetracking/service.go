// Package timetracking provides time entry recording and the pomodoro session
// lifecycle. Stopping an entry computes its duration and accumulates the
// owning task's actual_duration; completed pomodoro work phases are recorded
// as time entries automatically.
package timetracking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"zerim-todo/pkg/types"
)

// Errors surfaced to the HTTP boundary.
var (
	ErrAlreadyStopped  = errors.New("time tracking already stopped")
	ErrSessionInactive = errors.New("session is not active")
)

// Repository is the store surface the time tracking service depends on. Task
// access is needed to accumulate actual duration when entries stop.
type Repository interface {
	ListTimeEntries(ctx context.Context) []types.TimeEntry
	CreateTimeEntry(ctx context.Context, entry *types.TimeEntry) error
	GetTimeEntry(ctx context.Context, id string) (*types.TimeEntry, error)
	UpdateTimeEntry(ctx context.Context, entry *types.TimeEntry) error
	DeleteTimeEntry(ctx context.Context, id string) error

	CreateSession(ctx context.Context, session *types.PomodoroSession) error
	GetSession(ctx context.Context, id string) (*types.PomodoroSession, error)
	UpdateSession(ctx context.Context, session *types.PomodoroSession) error
	ActiveSession(ctx context.Context) *types.PomodoroSession
	CloseActiveSessions(ctx context.Context, endTime time.Time) int

	GetTask(ctx context.Context, id string) (*types.Task, error)
	UpdateTask(ctx context.Context, task *types.Task) error
}

// Service implements time tracking over a repository.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new time tracking service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// NewServiceWithClock creates a time tracking service with an injected clock
// for tests.
func NewServiceWithClock(repo Repository, now func() time.Time) *Service {
	return &Service{repo: repo, now: now}
}

// ListEntries returns time entries, optionally filtered by task, most recent
// start first.
func (s *Service) ListEntries(ctx context.Context, taskID string) []types.TimeEntry {
	entries := s.repo.ListTimeEntries(ctx)

	if taskID != "" {
		filtered := entries[:0]
		for _, e := range entries {
			if e.TaskID == taskID {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].StartTime.After(entries[j].StartTime)
	})
	return entries
}

// StartEntryInput carries the caller-settable fields of a new time entry.
type StartEntryInput struct {
	TaskID string            `json:"task_id"`
	Type   types.EntrySource `json:"type"`
	Notes  *string           `json:"notes"`
}

// StartEntry begins tracking time against a task.
func (s *Service) StartEntry(ctx context.Context, input *StartEntryInput) (*types.TimeEntry, error) {
	source := input.Type
	if source == "" {
		source = types.EntryManual
	}

	now := s.now()
	entry := &types.TimeEntry{
		ID:        uuid.New().String(),
		TaskID:    input.TaskID,
		StartTime: now,
		Type:      source,
		Notes:     input.Notes,
		CreatedAt: now,
	}

	if err := s.repo.CreateTimeEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create time entry: %w", err)
	}
	return entry, nil
}

// StopEntry ends a running time entry, computing its duration in seconds and
// adding the elapsed minutes to the task's actual_duration.
func (s *Service) StopEntry(ctx context.Context, id string) (*types.TimeEntry, error) {
	entry, err := s.repo.GetTimeEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.EndTime != nil {
		return nil, ErrAlreadyStopped
	}

	now := s.now()
	duration := int(now.Sub(entry.StartTime).Seconds())
	entry.EndTime = &now
	entry.Duration = &duration

	if err := s.repo.UpdateTimeEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to stop time entry: %w", err)
	}

	// Accumulate the task's actual duration in minutes. A missing task is
	// not an error: the entry may reference a deleted task.
	if task, err := s.repo.GetTask(ctx, entry.TaskID); err == nil {
		current := 0
		if task.ActualDuration != nil {
			current = *task.ActualDuration
		}
		total := current + duration/60
		task.ActualDuration = &total
		task.UpdatedAt = now
		if err := s.repo.UpdateTask(ctx, task); err != nil {
			return nil, fmt.Errorf("failed to update task duration: %w", err)
		}
	}

	return entry, nil
}

// DeleteEntry removes a time entry by ID.
func (s *Service) DeleteEntry(ctx context.Context, id string) error {
	return s.repo.DeleteTimeEntry(ctx, id)
}

// ActiveSession returns the currently active pomodoro session, or nil.
func (s *Service) ActiveSession(ctx context.Context) *types.PomodoroSession {
	return s.repo.ActiveSession(ctx)
}

// StartSessionInput carries the caller-settable fields of a new pomodoro
// session.
type StartSessionInput struct {
	TaskID        *string `json:"task_id"`
	WorkDuration  int     `json:"work_duration"`
	BreakDuration int     `json:"break_duration"`
}

// StartSession begins a new pomodoro session, force-closing any prior active
// session so that at most one is active across the collection.
func (s *Service) StartSession(ctx context.Context, input *StartSessionInput) (*types.PomodoroSession, error) {
	now := s.now()
	s.repo.CloseActiveSessions(ctx, now)

	workDuration := input.WorkDuration
	if workDuration <= 0 {
		workDuration = 25
	}
	breakDuration := input.BreakDuration
	if breakDuration <= 0 {
		breakDuration = 5
	}

	session := &types.PomodoroSession{
		ID:            uuid.New().String(),
		TaskID:        input.TaskID,
		WorkDuration:  workDuration,
		BreakDuration: breakDuration,
		IsActive:      true,
		CurrentPhase:  types.PhaseWork,
		StartTime:     &now,
		CreatedAt:     now,
	}

	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to start pomodoro session: %w", err)
	}
	return session, nil
}

// CompletePhase finishes the current phase of an active session. Completing a
// work phase increments the session counter, records a time entry against the
// session's task, and moves to a break (a long break every fourth work phase);
// completing a break returns to work. The phase clock restarts either way.
func (s *Service) CompletePhase(ctx context.Context, id string) (*types.PomodoroSession, error) {
	session, err := s.repo.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if !session.IsActive {
		return nil, ErrSessionInactive
	}

	now := s.now()
	if session.CurrentPhase == types.PhaseWork {
		session.SessionsCompleted++
		if session.SessionsCompleted%4 == 0 {
			session.CurrentPhase = types.PhaseLongBreak
		} else {
			session.CurrentPhase = types.PhaseBreak
		}

		if session.TaskID != nil {
			if err := s.recordWorkEntry(ctx, session, now); err != nil {
				return nil, err
			}
		}
	} else {
		session.CurrentPhase = types.PhaseWork
	}

	session.StartTime = &now
	if err := s.repo.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to complete pomodoro phase: %w", err)
	}
	return session, nil
}

// recordWorkEntry stores a time entry for a completed work phase.
func (s *Service) recordWorkEntry(ctx context.Context, session *types.PomodoroSession, now time.Time) error {
	start := now
	if session.StartTime != nil {
		start = *session.StartTime
	}
	duration := session.WorkDuration * 60
	notes := fmt.Sprintf("Pomodoro session %d", session.SessionsCompleted)

	entry := &types.TimeEntry{
		ID:        uuid.New().String(),
		TaskID:    *session.TaskID,
		StartTime: start,
		EndTime:   &now,
		Duration:  &duration,
		Type:      types.EntryPomodoro,
		Notes:     &notes,
		CreatedAt: now,
	}

	if err := s.repo.CreateTimeEntry(ctx, entry); err != nil {
		return fmt.Errorf("failed to record pomodoro time entry: %w", err)
	}
	return nil
}

// StopSession deactivates a session and stamps its end time. Stopping an
// already-stopped session is a no-op beyond restamping the end time.
func (s *Service) StopSession(ctx context.Context, id string) (*types.PomodoroSession, error) {
	session, err := s.repo.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	session.IsActive = false
	session.EndTime = &now

	if err := s.repo.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to stop pomodoro session: %w", err)
	}
	return session, nil
}

// Package types defines the domain records shared across the to-do server:
// tasks, subtasks, categories, templates, time entries and pomodoro sessions.
package types

import "time"

// Priority represents task priority as a closed string enum.
// The four lowercase tokens are part of the wire contract.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// AllPriorities returns the priority values in display order.
func AllPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}

// Valid reports whether p is one of the defined priority tokens.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

// TaskStatus represents the task lifecycle state as a closed string enum.
// The four lowercase tokens are part of the wire contract.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
)

// AllStatuses returns the status values in display order.
func AllStatuses() []TaskStatus {
	return []TaskStatus{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}
}

// Valid reports whether s is one of the defined status tokens.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// EntrySource identifies how a time entry was recorded.
type EntrySource string

const (
	EntryManual   EntrySource = "manual"
	EntryPomodoro EntrySource = "pomodoro"
	EntryTimer    EntrySource = "timer"
)

// PomodoroPhase identifies the current phase of a pomodoro session.
type PomodoroPhase string

const (
	PhaseWork      PomodoroPhase = "work"
	PhaseBreak     PomodoroPhase = "break"
	PhaseLongBreak PomodoroPhase = "long_break"
)

// Subtask is owned inline by its parent task and is not separately stored.
type Subtask struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// Task is the central record. The completion tri-state invariant holds at all
// times: Completed is true iff Status is StatusCompleted iff CompletedAt is set.
type Task struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Description       *string    `json:"description"`
	Completed         bool       `json:"completed"`
	Priority          Priority   `json:"priority"`
	Status            TaskStatus `json:"status"`
	CategoryID        *string    `json:"category_id"`
	DueDate           *time.Time `json:"due_date"`
	DueTime           *string    `json:"due_time"`
	Tags              []string   `json:"tags"`
	Subtasks          []Subtask  `json:"subtasks"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	CompletedAt       *time.Time `json:"completed_at"`
	EstimatedDuration *int       `json:"estimated_duration"` // minutes
	ActualDuration    *int       `json:"actual_duration"`    // minutes
	Notes             *string    `json:"notes"`
	ReminderEnabled   bool       `json:"reminder_enabled"`
	ReminderTime      *time.Time `json:"reminder_time"`
}

// Overdue reports whether the task has a due date in the past and is not done.
func (t *Task) Overdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && !t.Completed
}

// Category groups tasks. Tasks reference it weakly by ID; deleting a category
// nulls the reference on tasks rather than cascading.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	Icon        *string   `json:"icon"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// TimeEntry records tracked time against a task. Duration is in seconds and
// is computed when the entry is stopped.
type TimeEntry struct {
	ID        string      `json:"id"`
	TaskID    string      `json:"task_id"`
	StartTime time.Time   `json:"start_time"`
	EndTime   *time.Time  `json:"end_time"`
	Duration  *int        `json:"duration"` // seconds
	Type      EntrySource `json:"type"`
	Notes     *string     `json:"notes"`
	CreatedAt time.Time   `json:"created_at"`
}

// PomodoroSession tracks a work/break cycle. At most one session is active
// across the collection; starting a new one force-closes the previous.
type PomodoroSession struct {
	ID                string        `json:"id"`
	TaskID            *string       `json:"task_id"`
	WorkDuration      int           `json:"work_duration"`  // minutes
	BreakDuration     int           `json:"break_duration"` // minutes
	SessionsCompleted int           `json:"sessions_completed"`
	IsActive          bool          `json:"is_active"`
	CurrentPhase      PomodoroPhase `json:"current_phase"`
	StartTime         *time.Time    `json:"start_time"`
	EndTime           *time.Time    `json:"end_time"`
	CreatedAt         time.Time     `json:"created_at"`
}

// TaskTemplate captures a reusable task shape. Title and description templates
// may contain {placeholder} tokens substituted at instantiation time.
type TaskTemplate struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Description         *string   `json:"description"`
	TitleTemplate       string    `json:"title_template"`
	DescriptionTemplate *string   `json:"description_template"`
	Priority            Priority  `json:"priority"`
	CategoryID          *string   `json:"category_id"`
	EstimatedDuration   *int      `json:"estimated_duration"`
	Tags                []string  `json:"tags"`
	IsPublic            bool      `json:"is_public"`
	UsageCount          int       `json:"usage_count"`
	CreatedAt           time.Time `json:"created_at"`
}

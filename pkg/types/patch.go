package types

import "time"

// TaskPatch is a partial task update. Nil fields are left untouched; the merge
// is exhaustive and field-by-field rather than reflective.
type TaskPatch struct {
	Title             *string     `json:"title,omitempty"`
	Description       *string     `json:"description,omitempty"`
	Completed         *bool       `json:"completed,omitempty"`
	Priority          *Priority   `json:"priority,omitempty"`
	Status            *TaskStatus `json:"status,omitempty"`
	CategoryID        *string     `json:"category_id,omitempty"`
	DueDate           *time.Time  `json:"due_date,omitempty"`
	DueTime           *string     `json:"due_time,omitempty"`
	Tags              []string    `json:"tags,omitempty"`
	EstimatedDuration *int        `json:"estimated_duration,omitempty"`
	ActualDuration    *int        `json:"actual_duration,omitempty"`
	Notes             *string     `json:"notes,omitempty"`
	ReminderEnabled   *bool       `json:"reminder_enabled,omitempty"`
	ReminderTime      *time.Time  `json:"reminder_time,omitempty"`
}

// Apply merges the patch into t, refreshes UpdatedAt, and maintains the
// completion tri-state (Completed / Status / CompletedAt move together)
// whenever completion toggles through either the Completed flag or Status.
func (p *TaskPatch) Apply(t *Task, now time.Time) {
	wasCompleted := t.Completed

	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.CategoryID != nil {
		t.CategoryID = p.CategoryID
	}
	if p.DueDate != nil {
		t.DueDate = p.DueDate
	}
	if p.DueTime != nil {
		t.DueTime = p.DueTime
	}
	if p.Tags != nil {
		t.Tags = p.Tags
	}
	if p.EstimatedDuration != nil {
		t.EstimatedDuration = p.EstimatedDuration
	}
	if p.ActualDuration != nil {
		t.ActualDuration = p.ActualDuration
	}
	if p.Notes != nil {
		t.Notes = p.Notes
	}
	if p.ReminderEnabled != nil {
		t.ReminderEnabled = *p.ReminderEnabled
	}
	if p.ReminderTime != nil {
		t.ReminderTime = p.ReminderTime
	}

	t.UpdatedAt = now

	switch {
	case p.Completed != nil:
		p.syncCompletion(t, *p.Completed, wasCompleted, now)
	case p.Status != nil:
		// Completion toggled via status alone.
		p.syncCompletion(t, *p.Status == StatusCompleted, wasCompleted, now)
	}
}

func (p *TaskPatch) syncCompletion(t *Task, completed, wasCompleted bool, now time.Time) {
	if completed && !wasCompleted {
		t.Completed = true
		t.Status = StatusCompleted
		ts := now
		t.CompletedAt = &ts
	} else if !completed && wasCompleted {
		t.Completed = false
		t.CompletedAt = nil
		if p.Status == nil || *p.Status == StatusCompleted {
			t.Status = StatusPending
		}
	} else {
		t.Completed = completed
	}
}

package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var patchNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func boolPtr(v bool) *bool               { return &v }
func strPtr(v string) *string            { return &v }
func statusPtr(v TaskStatus) *TaskStatus { return &v }

func baseTask() Task {
	return Task{
		ID:        "t1",
		Title:     "write report",
		Priority:  PriorityMedium,
		Status:    StatusPending,
		Tags:      []string{"work"},
		CreatedAt: patchNow.Add(-24 * time.Hour),
		UpdatedAt: patchNow.Add(-24 * time.Hour),
	}
}

func TestApplyMergesOnlySetFields(t *testing.T) {
	task := baseTask()
	patch := TaskPatch{Title: strPtr("revised title")}

	patch.Apply(&task, patchNow)

	assert.Equal(t, "revised title", task.Title)
	assert.Equal(t, PriorityMedium, task.Priority)
	assert.Equal(t, StatusPending, task.Status)
	assert.Equal(t, []string{"work"}, task.Tags)
	assert.Equal(t, patchNow, task.UpdatedAt)
}

func TestApplyCompletionViaFlag(t *testing.T) {
	task := baseTask()
	patch := TaskPatch{Completed: boolPtr(true)}

	patch.Apply(&task, patchNow)

	assert.True(t, task.Completed)
	assert.Equal(t, StatusCompleted, task.Status)
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, patchNow, *task.CompletedAt)
}

func TestApplyCompletionViaStatus(t *testing.T) {
	task := baseTask()
	patch := TaskPatch{Status: statusPtr(StatusCompleted)}

	patch.Apply(&task, patchNow)

	assert.True(t, task.Completed)
	assert.Equal(t, StatusCompleted, task.Status)
	require.NotNil(t, task.CompletedAt)
}

func TestApplyUncomplete(t *testing.T) {
	task := baseTask()
	complete(t, &task)

	patch := TaskPatch{Completed: boolPtr(false)}
	patch.Apply(&task, patchNow.Add(time.Hour))

	assert.False(t, task.Completed)
	assert.Equal(t, StatusPending, task.Status)
	assert.Nil(t, task.CompletedAt)
}

func TestApplyUncompleteKeepsExplicitStatus(t *testing.T) {
	task := baseTask()
	complete(t, &task)

	patch := TaskPatch{
		Completed: boolPtr(false),
		Status:    statusPtr(StatusInProgress),
	}
	patch.Apply(&task, patchNow.Add(time.Hour))

	assert.False(t, task.Completed)
	assert.Equal(t, StatusInProgress, task.Status)
	assert.Nil(t, task.CompletedAt)
}

func TestApplyCompletingTwiceKeepsFirstTimestamp(t *testing.T) {
	task := baseTask()
	complete(t, &task)
	first := *task.CompletedAt

	patch := TaskPatch{Completed: boolPtr(true)}
	patch.Apply(&task, patchNow.Add(2*time.Hour))

	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, first, *task.CompletedAt)
}

func TestApplyClearsTagsWithEmptySlice(t *testing.T) {
	task := baseTask()

	patch := TaskPatch{Tags: []string{}}
	patch.Apply(&task, patchNow)

	assert.Empty(t, task.Tags)
	assert.NotNil(t, task.Tags)
}

// complete marks the task completed at the fixture time.
func complete(t *testing.T, task *Task) {
	t.Helper()
	patch := TaskPatch{Completed: boolPtr(true)}
	patch.Apply(task, patchNow)
}

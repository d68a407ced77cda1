package tasks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zerim-todo/pkg/types"
)

func timePtr(t time.Time) *time.Time { return &t }

func priorityPtr(p types.Priority) *types.Priority { return &p }

// fixtureTasks returns four tasks created a minute apart, oldest first.
func fixtureTasks() []types.Task {
	return []types.Task{
		{
			ID: "t1", Title: "Buy groceries", Priority: types.PriorityLow,
			Status: types.StatusPending, Tags: []string{"errands"},
			CreatedAt: testNow.Add(-4 * time.Minute),
		},
		{
			ID: "t2", Title: "Write report", Priority: types.PriorityHigh,
			Status: types.StatusInProgress, CategoryID: strPtr("work"),
			Description: strPtr("quarterly numbers"),
			CreatedAt:   testNow.Add(-3 * time.Minute),
		},
		{
			ID: "t3", Title: "Ship release", Priority: types.PriorityUrgent,
			Status: types.StatusCompleted, Completed: true, CategoryID: strPtr("work"),
			CompletedAt: timePtr(testNow.Add(-time.Minute)),
			CreatedAt:   testNow.Add(-2 * time.Minute),
		},
		{
			ID: "t4", Title: "Dentist", Priority: types.PriorityMedium,
			Status: types.StatusPending, DueDate: timePtr(testNow.Add(-time.Hour)),
			CreatedAt: testNow.Add(-time.Minute),
		},
	}
}

func TestFiltersSortNewestFirst(t *testing.T) {
	result := (&TaskFilters{}).Apply(fixtureTasks(), testNow)

	require.Len(t, result, 4)
	assert.Equal(t, []string{"t4", "t3", "t2", "t1"},
		[]string{result[0].ID, result[1].ID, result[2].ID, result[3].ID})
}

func TestFiltersMatching(t *testing.T) {
	tests := []struct {
		name    string
		filters TaskFilters
		wantIDs []string
	}{
		{
			name:    "by status",
			filters: TaskFilters{Status: statusPtr(types.StatusInProgress)},
			wantIDs: []string{"t2"},
		},
		{
			name:    "by priority",
			filters: TaskFilters{Priority: priorityPtr(types.PriorityUrgent)},
			wantIDs: []string{"t3"},
		},
		{
			name:    "by category",
			filters: TaskFilters{CategoryID: "work"},
			wantIDs: []string{"t3", "t2"},
		},
		{
			name:    "by completed flag",
			filters: TaskFilters{Completed: boolPtr(false)},
			wantIDs: []string{"t4", "t2", "t1"},
		},
		{
			name:    "overdue only",
			filters: TaskFilters{Overdue: true},
			wantIDs: []string{"t4"},
		},
		{
			name:    "search matches title case-insensitively",
			filters: TaskFilters{Search: "REPORT"},
			wantIDs: []string{"t2"},
		},
		{
			name:    "search matches description",
			filters: TaskFilters{Search: "quarterly"},
			wantIDs: []string{"t2"},
		},
		{
			name:    "search matches tags",
			filters: TaskFilters{Search: "errands"},
			wantIDs: []string{"t1"},
		},
		{
			name:    "combined filters",
			filters: TaskFilters{CategoryID: "work", Completed: boolPtr(true)},
			wantIDs: []string{"t3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.filters.Apply(fixtureTasks(), testNow)
			ids := make([]string, 0, len(result))
			for _, task := range result {
				ids = append(ids, task.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestFiltersPagination(t *testing.T) {
	tests := []struct {
		name    string
		filters TaskFilters
		wantIDs []string
	}{
		{
			name:    "limit only",
			filters: TaskFilters{Limit: 2},
			wantIDs: []string{"t4", "t3"},
		},
		{
			name:    "limit with offset",
			filters: TaskFilters{Limit: 2, Offset: 1},
			wantIDs: []string{"t3", "t2"},
		},
		{
			name:    "offset without limit drops the head",
			filters: TaskFilters{Offset: 3},
			wantIDs: []string{"t1"},
		},
		{
			name:    "offset past the end",
			filters: TaskFilters{Offset: 10},
			wantIDs: []string{},
		},
		{
			name:    "limit past the end is clamped",
			filters: TaskFilters{Limit: 10, Offset: 2},
			wantIDs: []string{"t2", "t1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.filters.Apply(fixtureTasks(), testNow)
			ids := make([]string, 0, len(result))
			for _, task := range result {
				ids = append(ids, task.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

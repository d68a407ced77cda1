package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"zerim-todo/pkg/types"
)

func TestStreak(t *testing.T) {
	tests := []struct {
		name        string
		completions []time.Time
		want        int
	}{
		{
			name: "no tasks",
			want: 0,
		},
		{
			name:        "single completion today",
			completions: []time.Time{testNow.Add(-time.Hour)},
			want:        1,
		},
		{
			name: "three consecutive days ending today",
			completions: []time.Time{
				testNow,
				testNow.AddDate(0, 0, -1),
				testNow.AddDate(0, 0, -2),
			},
			want: 3,
		},
		{
			name:        "completion yesterday but not today breaks the streak",
			completions: []time.Time{testNow.AddDate(0, 0, -1)},
			want:        0,
		},
		{
			name: "gap stops the walk",
			completions: []time.Time{
				testNow,
				testNow.AddDate(0, 0, -1),
				testNow.AddDate(0, 0, -3),
			},
			want: 2,
		},
		{
			name: "multiple completions on one day count once",
			completions: []time.Time{
				testNow,
				testNow.Add(-2 * time.Hour),
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := make([]types.Task, 0, len(tt.completions))
			for _, c := range tt.completions {
				tasks = append(tasks, completedTask(c))
			}
			assert.Equal(t, tt.want, Streak(tasks, testNow))
		})
	}
}

func TestStreakIgnoresUncompletedTasks(t *testing.T) {
	tasks := []types.Task{
		{ID: "open", Title: "open", Status: types.StatusPending, CreatedAt: testNow},
	}
	assert.Equal(t, 0, Streak(tasks, testNow))
}

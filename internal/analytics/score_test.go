package analytics

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zerim-todo/pkg/types"
)

func intPtr(v int) *int { return &v }

func TestProductivityEmpty(t *testing.T) {
	score := Productivity(nil, nil, testNow)

	assert.Zero(t, score.Score)
	assert.Equal(t, "neutral", score.Trend)
	assert.NotNil(t, score.Insights)
	assert.Empty(t, score.Insights)

	// The empty case serializes exactly three keys; the rate fields only
	// appear once there are tasks to rate.
	raw, err := json.Marshal(score)
	require.NoError(t, err)
	assert.JSONEq(t, `{"score":0,"trend":"neutral","insights":[]}`, string(raw))
}

func TestProductivityScoreComposition(t *testing.T) {
	// Eight of ten tasks completed, every due-dated one on time, and solid
	// half-hour sessions: 80*0.4 + 100*0.3 + 1.0*30 = 92.
	tasks := make([]types.Task, 0, 10)
	for i := 0; i < 8; i++ {
		due := testNow.Add(-time.Duration(i+1) * time.Hour)
		task := completedTask(due.Add(-time.Minute))
		task.DueDate = timePtr(due)
		tasks = append(tasks, task)
	}
	for i := 0; i < 2; i++ {
		tasks = append(tasks, types.Task{
			ID:        "open",
			Title:     "open",
			Status:    types.StatusPending,
			Priority:  types.PriorityMedium,
			CreatedAt: testNow,
		})
	}

	entries := []types.TimeEntry{
		{ID: "e1", TaskID: "open", StartTime: testNow.Add(-2 * time.Hour), Duration: intPtr(30 * 60)},
		{ID: "e2", TaskID: "open", StartTime: testNow.Add(-26 * time.Hour), Duration: intPtr(30 * 60)},
	}

	score := Productivity(tasks, entries, testNow)

	assert.InDelta(t, 92.0, score.Score, 0.001)
	assert.Equal(t, "improving", score.Trend)
	assert.InDelta(t, 80.0, score.CompletionRate, 0.001)
	assert.InDelta(t, 100.0, score.OnTimeRate, 0.001)
	assert.InDelta(t, 30.0, score.AvgSessionLength, 0.001)
	assert.Empty(t, score.Insights)

	// Non-empty collections serialize the full six-field shape, zero rates
	// included.
	raw, err := json.Marshal(score)
	require.NoError(t, err)
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Len(t, payload, 6)
	assert.Contains(t, payload, "completion_rate")
	assert.Contains(t, payload, "on_time_rate")
	assert.Contains(t, payload, "avg_session_length")
}

func TestProductivityOnTimeRateWithoutDueDates(t *testing.T) {
	// No due dates anywhere: on-time rate degrades to 100, not 0.
	tasks := []types.Task{completedTask(testNow.Add(-time.Hour))}

	score := Productivity(tasks, nil, testNow)
	assert.InDelta(t, 100.0, score.OnTimeRate, 0.001)
}

func TestProductivityLateCompletionLowersOnTimeRate(t *testing.T) {
	due := testNow.Add(-48 * time.Hour)
	late := completedTask(testNow.Add(-time.Hour))
	late.DueDate = timePtr(due)

	onTime := completedTask(due.Add(-time.Hour))
	onTime.DueDate = timePtr(due)

	score := Productivity([]types.Task{late, onTime}, nil, testNow)
	assert.InDelta(t, 50.0, score.OnTimeRate, 0.001)
}

func TestProductivityInsights(t *testing.T) {
	// One of ten completed, overdue due dates, no recent sessions: every
	// insight fires and the trend is declining.
	due := testNow.Add(-24 * time.Hour)
	tasks := []types.Task{completedTask(testNow.Add(-time.Hour))}
	for i := 0; i < 9; i++ {
		tasks = append(tasks, types.Task{
			ID:        "open",
			Title:     "open",
			Status:    types.StatusPending,
			Priority:  types.PriorityMedium,
			DueDate:   timePtr(due),
			CreatedAt: testNow,
		})
	}

	score := Productivity(tasks, nil, testNow)

	assert.Equal(t, "declining", score.Trend)
	assert.Equal(t, []string{
		"Consider breaking down large tasks into smaller ones",
		"Try setting more realistic due dates",
		"Focus on longer work sessions for better productivity",
	}, score.Insights)
}

func TestAvgSessionMinutesIgnoresOldEntries(t *testing.T) {
	entries := []types.TimeEntry{
		{ID: "recent", StartTime: testNow.Add(-24 * time.Hour), Duration: intPtr(20 * 60)},
		{ID: "stale", StartTime: testNow.AddDate(0, 0, -8), Duration: intPtr(90 * 60)},
	}

	assert.InDelta(t, 20.0, avgSessionMinutes(entries, testNow), 0.001)
}

func TestAvgSessionMinutesCountsRunningEntriesInDivisor(t *testing.T) {
	entries := []types.TimeEntry{
		{ID: "done", StartTime: testNow.Add(-time.Hour), Duration: intPtr(30 * 60)},
		{ID: "running", StartTime: testNow.Add(-time.Minute)},
	}

	assert.InDelta(t, 15.0, avgSessionMinutes(entries, testNow), 0.001)
}

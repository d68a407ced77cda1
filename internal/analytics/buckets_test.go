package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zerim-todo/pkg/types"
)

func TestWeeklyStats(t *testing.T) {
	tasks := []types.Task{
		completedTask(testNow.AddDate(0, 0, -3)),  // week 1
		completedTask(testNow.AddDate(0, 0, -10)), // week 2
		completedTask(testNow.AddDate(0, 0, -11)), // week 2
		completedTask(testNow.AddDate(0, 0, -27)), // week 4
		completedTask(testNow.AddDate(0, 0, -40)), // outside the horizon
	}

	stats := WeeklyStats(tasks, testNow)

	require.Len(t, stats, 4)
	assert.Equal(t, 1, stats["Week 1"])
	assert.Equal(t, 2, stats["Week 2"])
	assert.Equal(t, 0, stats["Week 3"])
	assert.Equal(t, 1, stats["Week 4"])
}

func TestWeeklyStatsBoundaryIsInclusiveOnBothSides(t *testing.T) {
	// A completion exactly seven days ago sits on the shared edge of week 1
	// and week 2 and is counted in both.
	tasks := []types.Task{completedTask(testNow.AddDate(0, 0, -7))}

	stats := WeeklyStats(tasks, testNow)
	assert.Equal(t, 1, stats["Week 1"])
	assert.Equal(t, 1, stats["Week 2"])
}

func TestMonthlyStats(t *testing.T) {
	tasks := []types.Task{
		completedTask(testNow.AddDate(0, 0, -2)),
	}

	stats := MonthlyStats(tasks, testNow)

	// The current month's window starts on the first and is labeled by it.
	assert.Equal(t, 1, stats[testNow.Format("January 2006")])

	// Six 30-day steps can land two windows in the same labeled month, so
	// the map may carry fewer than six keys.
	assert.LessOrEqual(t, len(stats), 6)
	assert.GreaterOrEqual(t, len(stats), 4)
}

func TestDailyBreakdown(t *testing.T) {
	tasks := []types.Task{
		completedTask(testNow.Add(-time.Hour)),
		completedTask(testNow.AddDate(0, 0, -2)),
		completedTask(testNow.AddDate(0, 0, -2).Add(-time.Hour)),
		completedTask(testNow.AddDate(0, 0, -5)), // outside the window
	}

	stats := DailyBreakdown(tasks, testNow, 3)

	require.Len(t, stats, 3)
	assert.Equal(t, 1, stats[testNow.Format("2006-01-02")])
	assert.Equal(t, 0, stats[testNow.AddDate(0, 0, -1).Format("2006-01-02")])
	assert.Equal(t, 2, stats[testNow.AddDate(0, 0, -2).Format("2006-01-02")])
}

func TestDailyBreakdownSingleDay(t *testing.T) {
	stats := DailyBreakdown(nil, testNow, 1)
	require.Len(t, stats, 1)
	assert.Equal(t, 0, stats[testNow.Format("2006-01-02")])
}

package timetracking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zerim-todo/internal/store"
	"zerim-todo/pkg/types"
)

var testNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

// clock is a settable test clock.
type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func newTestService(t *testing.T) (*Service, *store.MemoryStore, *clock) {
	t.Helper()
	c := &clock{now: testNow}
	s := store.NewMemoryStore()
	return NewServiceWithClock(s, c.Now), s, c
}

func TestStartEntryDefaults(t *testing.T) {
	svc, _, _ := newTestService(t)

	entry, err := svc.StartEntry(context.Background(), &StartEntryInput{TaskID: "t1"})
	require.NoError(t, err)

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "t1", entry.TaskID)
	assert.Equal(t, types.EntryManual, entry.Type)
	assert.Equal(t, testNow, entry.StartTime)
	assert.Nil(t, entry.EndTime)
	assert.Nil(t, entry.Duration)
}

func TestStopEntryComputesDurationAndAccumulatesTaskTime(t *testing.T) {
	svc, memStore, clk := newTestService(t)
	ctx := context.Background()

	task := &types.Task{Title: "tracked", Priority: types.PriorityLow, Status: types.StatusPending}
	require.NoError(t, memStore.CreateTask(ctx, task))

	entry, err := svc.StartEntry(ctx, &StartEntryInput{TaskID: task.ID})
	require.NoError(t, err)

	clk.now = testNow.Add(25 * time.Minute)
	stopped, err := svc.StopEntry(ctx, entry.ID)
	require.NoError(t, err)

	require.NotNil(t, stopped.Duration)
	assert.Equal(t, 25*60, *stopped.Duration)
	require.NotNil(t, stopped.EndTime)
	assert.Equal(t, clk.now, *stopped.EndTime)

	got, err := memStore.GetTask(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ActualDuration)
	assert.Equal(t, 25, *got.ActualDuration)

	// A second stop is rejected.
	_, err = svc.StopEntry(ctx, entry.ID)
	assert.ErrorIs(t, err, ErrAlreadyStopped)
}

func TestStopEntryToleratesDeletedTask(t *testing.T) {
	svc, _, clk := newTestService(t)
	ctx := context.Background()

	entry, err := svc.StartEntry(ctx, &StartEntryInput{TaskID: "never-existed"})
	require.NoError(t, err)

	clk.now = testNow.Add(time.Minute)
	stopped, err := svc.StopEntry(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, *stopped.Duration)
}

func TestListEntriesFiltersAndSorts(t *testing.T) {
	svc, _, clk := newTestService(t)
	ctx := context.Background()

	_, err := svc.StartEntry(ctx, &StartEntryInput{TaskID: "a"})
	require.NoError(t, err)
	clk.now = testNow.Add(time.Minute)
	_, err = svc.StartEntry(ctx, &StartEntryInput{TaskID: "b"})
	require.NoError(t, err)
	clk.now = testNow.Add(2 * time.Minute)
	_, err = svc.StartEntry(ctx, &StartEntryInput{TaskID: "a"})
	require.NoError(t, err)

	all := svc.ListEntries(ctx, "")
	require.Len(t, all, 3)
	assert.True(t, all[0].StartTime.After(all[1].StartTime))

	forA := svc.ListEntries(ctx, "a")
	require.Len(t, forA, 2)
	for _, e := range forA {
		assert.Equal(t, "a", e.TaskID)
	}
}

func TestStartSessionDefaultsAndSingleActive(t *testing.T) {
	svc, _, clk := newTestService(t)
	ctx := context.Background()

	first, err := svc.StartSession(ctx, &StartSessionInput{})
	require.NoError(t, err)
	assert.Equal(t, 25, first.WorkDuration)
	assert.Equal(t, 5, first.BreakDuration)
	assert.True(t, first.IsActive)
	assert.Equal(t, types.PhaseWork, first.CurrentPhase)

	clk.now = testNow.Add(10 * time.Minute)
	second, err := svc.StartSession(ctx, &StartSessionInput{WorkDuration: 50, BreakDuration: 10})
	require.NoError(t, err)
	assert.Equal(t, 50, second.WorkDuration)

	active := svc.ActiveSession(ctx)
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID)

	// The first session was force-closed with an end time.
	closed, err := svc.StopSession(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, closed.IsActive)
}

func TestCompletePhaseCycle(t *testing.T) {
	svc, memStore, clk := newTestService(t)
	ctx := context.Background()

	task := &types.Task{Title: "focus", Priority: types.PriorityLow, Status: types.StatusPending}
	require.NoError(t, memStore.CreateTask(ctx, task))

	session, err := svc.StartSession(ctx, &StartSessionInput{TaskID: &task.ID})
	require.NoError(t, err)

	// Work -> break, with a time entry recorded against the task.
	clk.now = testNow.Add(25 * time.Minute)
	session, err = svc.CompletePhase(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, types.PhaseBreak, session.CurrentPhase)
	assert.Equal(t, 1, session.SessionsCompleted)

	entries := svc.ListEntries(ctx, task.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, types.EntryPomodoro, entries[0].Type)
	require.NotNil(t, entries[0].Duration)
	assert.Equal(t, 25*60, *entries[0].Duration)
	require.NotNil(t, entries[0].Notes)
	assert.Equal(t, "Pomodoro session 1", *entries[0].Notes)

	// Break -> work without recording an entry.
	session, err = svc.CompletePhase(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, types.PhaseWork, session.CurrentPhase)
	assert.Equal(t, 1, session.SessionsCompleted)
	assert.Len(t, svc.ListEntries(ctx, task.ID), 1)
}

func TestCompletePhaseLongBreakEveryFourth(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	session, err := svc.StartSession(ctx, &StartSessionInput{})
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		session, err = svc.CompletePhase(ctx, session.ID) // work -> break
		require.NoError(t, err)
		assert.Equal(t, types.PhaseBreak, session.CurrentPhase)
		session, err = svc.CompletePhase(ctx, session.ID) // break -> work
		require.NoError(t, err)
	}

	session, err = svc.CompletePhase(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, session.SessionsCompleted)
	assert.Equal(t, types.PhaseLongBreak, session.CurrentPhase)
}

func TestCompletePhaseInactiveSession(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	session, err := svc.StartSession(ctx, &StartSessionInput{})
	require.NoError(t, err)

	_, err = svc.StopSession(ctx, session.ID)
	require.NoError(t, err)

	_, err = svc.CompletePhase(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionInactive)
}

func TestStopSessionUnknownID(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.StopSession(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}

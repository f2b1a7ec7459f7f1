package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/repository"
)

type fixedClock struct {
	t time.Time
}

func (c *fixedClock) now() time.Time { return c.t }

func (c *fixedClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore() (*Store, *fixedClock) {
	clock := &fixedClock{t: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)}
	return NewStore().WithClock(clock.now), clock
}

func TestTaskLifecycle(t *testing.T) {
	ctx := context.Background()
	store, clock := newTestStore()
	tasks := store.Tasks()

	created, err := tasks.Create(ctx, &domain.Task{Title: "Write report", Priority: domain.PriorityHigh, Status: domain.StatusPending})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, clock.t, created.CreatedAt)

	clock.advance(time.Minute)
	created.Status = domain.StatusCompleted
	require.NoError(t, tasks.Update(ctx, created))

	got, err := tasks.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, got.Status)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))

	require.NoError(t, tasks.Delete(ctx, created.ID))
	_, err = tasks.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.ErrorIs(t, tasks.Delete(ctx, created.ID), domain.ErrTaskNotFound)
	assert.ErrorIs(t, tasks.Update(ctx, created), domain.ErrTaskNotFound)
}

func TestStoredTasksAreCopies(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()

	created, err := store.Tasks().Create(ctx, &domain.Task{
		Title:       "Paris trip",
		Location:    "Paris",
		WeatherInfo: &domain.WeatherInfo{Temperature: 15.5},
	})
	require.NoError(t, err)

	created.WeatherInfo.Temperature = 99
	got, err := store.Tasks().GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 15.5, got.WeatherInfo.Temperature)
}

func TestListFiltersAndPages(t *testing.T) {
	ctx := context.Background()
	store, clock := newTestStore()

	for i, p := range []domain.Priority{domain.PriorityLow, domain.PriorityHigh, domain.PriorityHigh} {
		clock.advance(time.Minute)
		_, err := store.Tasks().Create(ctx, &domain.Task{Title: string(rune('a' + i)), Priority: p, Status: domain.StatusPending})
		require.NoError(t, err)
	}

	all, err := store.Tasks().List(ctx, repository.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].Title)

	high, err := store.Tasks().List(ctx, repository.TaskFilter{Priority: "high"})
	require.NoError(t, err)
	assert.Len(t, high, 2)

	page, err := store.Tasks().List(ctx, repository.TaskFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "b", page[0].Title)

	empty, err := store.Tasks().List(ctx, repository.TaskFilter{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestActivitiesNewestFirstAndCascade(t *testing.T) {
	ctx := context.Background()
	store, clock := newTestStore()
	activities := store.Activities()

	task, err := store.Tasks().Create(ctx, &domain.Task{Title: "A"})
	require.NoError(t, err)
	other, err := store.Tasks().Create(ctx, &domain.Task{Title: "B"})
	require.NoError(t, err)

	first := domain.NewCreatedActivity(task)
	require.NoError(t, activities.Append(ctx, &first))
	second := domain.NewStatusChangedActivity(task, domain.StatusPending)
	require.NoError(t, activities.Append(ctx, &second))
	clock.advance(time.Second)
	third := domain.NewCreatedActivity(other)
	require.NoError(t, activities.Append(ctx, &third))

	list, err := activities.ListByTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, domain.ActionStatusChanged, list[0].Action)
	assert.Equal(t, domain.ActionCreated, list[1].Action)

	recent, err := activities.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "B", recent[0].TaskTitle)

	require.NoError(t, store.Tasks().Delete(ctx, task.ID))
	byTask, err := activities.ListByTasks(ctx, []string{task.ID, other.ID})
	require.NoError(t, err)
	assert.Empty(t, byTask[task.ID])
	assert.Len(t, byTask[other.ID], 1)
}

func TestAppendIsIdempotentAndChecksTask(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()
	activities := store.Activities()

	orphan := domain.TaskActivity{TaskID: "missing", Action: domain.ActionCreated}
	assert.ErrorIs(t, activities.Append(ctx, &orphan), domain.ErrTaskNotFound)

	task, err := store.Tasks().Create(ctx, &domain.Task{Title: "A"})
	require.NoError(t, err)

	activity := domain.NewCreatedActivity(task)
	activity.ID = "fixed"
	require.NoError(t, activities.Append(ctx, &activity))
	require.NoError(t, activities.Append(ctx, &activity))

	list, err := activities.ListByTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestStatsAggregates(t *testing.T) {
	ctx := context.Background()
	store, clock := newTestStore()
	now := clock.t
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	seed := []domain.Task{
		{Title: "overdue", Status: domain.StatusPending, Priority: domain.PriorityHigh, DueDate: &past},
		{Title: "done late", Status: domain.StatusCompleted, Priority: domain.PriorityLow, DueDate: &past},
		{Title: "future", Status: domain.StatusInProgress, Priority: domain.PriorityHigh, DueDate: &future},
		{Title: "old", Status: domain.StatusPending, Priority: domain.PriorityMedium, CreatedAt: now.Add(-10 * 24 * time.Hour)},
	}
	for i := range seed {
		_, err := store.Tasks().Create(ctx, &seed[i])
		require.NoError(t, err)
	}

	stats := store.Stats()
	total, err := stats.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, total)

	completed, err := stats.CountCompleted(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, completed)

	overdue, err := stats.CountOverdue(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, overdue)

	byStatus, err := stats.CountByStatus(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.StatusCount{
		{Status: domain.StatusPending, Count: 2},
		{Status: domain.StatusCompleted, Count: 1},
		{Status: domain.StatusInProgress, Count: 1},
	}, byStatus)

	trend, err := stats.DailyCreated(ctx, now.Add(-domain.TrendWindow))
	require.NoError(t, err)
	assert.Equal(t, []domain.DailyCount{{Day: "2024-03-10", Count: 3}}, trend)
}

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskInputDefaults(t *testing.T) {
	task, err := TaskInput{Title: "  Write report  ", Location: " Paris "}.Validate()
	require.NoError(t, err)

	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, PriorityMedium, task.Priority)
	assert.Equal(t, StatusPending, task.Status)
	assert.Equal(t, "Paris", task.Location)
	assert.True(t, task.HasLocation())
}

func TestTaskInputRejectsUnknownChoices(t *testing.T) {
	_, err := TaskInput{Title: "x", Priority: "urgent", Status: "archived"}.Validate()

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Fields, 2)
	assert.True(t, IsDomainError(err, ErrCodeInvalid))
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	cases := []struct {
		name string
		task Task
		want bool
	}{
		{"no due date", Task{Status: StatusPending}, false},
		{"pending past", Task{Status: StatusPending, DueDate: &past}, true},
		{"in progress past", Task{Status: StatusInProgress, DueDate: &past}, true},
		{"completed past", Task{Status: StatusCompleted, DueDate: &past}, false},
		{"pending future", Task{Status: StatusPending, DueDate: &future}, false},
		{"due exactly now", Task{Status: StatusPending, DueDate: &now}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.task.IsOverdue(now))
		})
	}
}

func TestTaskChangesApply(t *testing.T) {
	due := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	task := &Task{Title: "Report", Priority: PriorityLow, Status: StatusPending, DueDate: &due}

	status := "in_progress"
	location := "  Berlin "
	require.NoError(t, TaskChanges{Status: &status, Location: &location, ClearDueDate: true}.Apply(task))

	assert.Equal(t, StatusInProgress, task.Status)
	assert.Equal(t, "Berlin", task.Location)
	assert.Nil(t, task.DueDate)
	assert.Equal(t, "Report", task.Title)
}

func TestTaskChangesApplyLeavesTaskOnError(t *testing.T) {
	task := &Task{Title: "Report", Priority: PriorityLow, Status: StatusPending}

	blank := " "
	status := "completed"
	err := TaskChanges{Title: &blank, Status: &status}.Apply(task)
	require.Error(t, err)

	assert.Equal(t, "Report", task.Title)
	assert.Equal(t, StatusPending, task.Status)
}

func TestCompletionRate(t *testing.T) {
	assert.Equal(t, 0.0, CompletionRate(0, 0))
	assert.Equal(t, 75.0, CompletionRate(3, 4))
	assert.Equal(t, 33.33, CompletionRate(1, 3))
	assert.Equal(t, 100.0, CompletionRate(2, 2))
}

func TestActivityDescriptions(t *testing.T) {
	task := &Task{ID: "t1", Title: "Paris trip", Status: StatusCompleted, Location: "Paris"}

	assert.Equal(t, `Task "Paris trip" was created`, NewCreatedActivity(task).Description)
	quoted := &Task{ID: "t2", Title: `He said "hi"`}
	assert.Equal(t, `Task "He said "hi"" was created`, NewCreatedActivity(quoted).Description)
	assert.Equal(t, "Status changed from pending to completed", NewStatusChangedActivity(task, StatusPending).Description)

	weather := NewWeatherUpdatedActivity(task)
	assert.Equal(t, ActionWeatherUpdated, weather.Action)
	assert.Equal(t, "t1", weather.TaskID)
	assert.Equal(t, "Weather info updated for Paris", weather.Description)
}

func TestValidationErrorMessage(t *testing.T) {
	verr := NewValidationError()
	assert.False(t, verr.HasErrors())

	verr.Add("title", "This field may not be blank.")
	verr.Add("due_date", "Datetime has wrong format.")
	assert.Equal(t, "validation failed: due_date: Datetime has wrong format., title: This field may not be blank.", verr.Error())
}

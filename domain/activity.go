package domain

import (
	"fmt"
	"time"
)

// Action names an event recorded in a task's activity log.
type Action string

const (
	ActionCreated        Action = "created"
	ActionStatusChanged  Action = "status_changed"
	ActionWeatherUpdated Action = "weather_updated"
)

// TaskActivity is an immutable audit entry owned by a task.
type TaskActivity struct {
	ID          string    `json:"id"`
	TaskID      string    `json:"-"`
	Action      Action    `json:"action"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewCreatedActivity records that task was created.
func NewCreatedActivity(task *Task) TaskActivity {
	return TaskActivity{
		TaskID:      task.ID,
		Action:      ActionCreated,
		Description: fmt.Sprintf("Task \"%s\" was created", task.Title),
	}
}

// NewStatusChangedActivity records a status transition.
func NewStatusChangedActivity(task *Task, from Status) TaskActivity {
	return TaskActivity{
		TaskID:      task.ID,
		Action:      ActionStatusChanged,
		Description: fmt.Sprintf("Status changed from %s to %s", from, task.Status),
	}
}

// NewWeatherUpdatedActivity records a successful weather refresh.
func NewWeatherUpdatedActivity(task *Task) TaskActivity {
	return TaskActivity{
		TaskID:      task.ID,
		Action:      ActionWeatherUpdated,
		Description: fmt.Sprintf("Weather info updated for %s", task.Location),
	}
}

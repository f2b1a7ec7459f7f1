package domain

import (
	"fmt"
	"strings"
	"time"
)

// Priority ranks how urgent a task is.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every accepted priority in ascending order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// ParsePriority returns the Priority named by value or an error for unknown names.
func ParsePriority(value string) (Priority, error) {
	p := Priority(strings.TrimSpace(value))
	if !p.Valid() {
		return "", fmt.Errorf("%q is not a valid choice", value)
	}
	return p, nil
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Status tracks where a task is in its lifecycle.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Statuses lists every accepted status.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

// OpenStatuses are the statuses a task can be overdue in.
var OpenStatuses = []Status{StatusPending, StatusInProgress}

// ParseStatus returns the Status named by value or an error for unknown names.
func ParseStatus(value string) (Status, error) {
	s := Status(strings.TrimSpace(value))
	if !s.Valid() {
		return "", fmt.Errorf("%q is not a valid choice", value)
	}
	return s, nil
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// IsOpen reports whether the status still counts towards overdue work.
func (s Status) IsOpen() bool {
	return s == StatusPending || s == StatusInProgress
}

// WeatherInfo is the weather snapshot attached to a task with a location.
type WeatherInfo struct {
	Temperature float64   `json:"temperature"`
	Description string    `json:"description"`
	Humidity    int       `json:"humidity"`
	WindSpeed   float64   `json:"wind_speed"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// Task represents a trackable work item.
type Task struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Priority    Priority       `json:"priority"`
	Status      Status         `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DueDate     *time.Time     `json:"due_date"`
	Location    string         `json:"location"`
	WeatherInfo *WeatherInfo   `json:"weather_info"`
	Activities  []TaskActivity `json:"activities"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == StatusCompleted
}

// HasLocation reports whether the task can be enriched with weather data.
func (t *Task) HasLocation() bool {
	return t != nil && strings.TrimSpace(t.Location) != ""
}

// IsOverdue reports whether the due date has passed while work is still open.
func (t *Task) IsOverdue(now time.Time) bool {
	if t == nil || t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(now) && t.Status.IsOpen()
}

// TaskInput carries the fields accepted when creating a task.
type TaskInput struct {
	Title       string
	Description string
	Priority    string
	Status      string
	DueDate     *time.Time
	Location    string
}

// Validate checks the input and converts it into a new Task.
func (in TaskInput) Validate() (*Task, error) {
	verr := NewValidationError()

	title := strings.TrimSpace(in.Title)
	if title == "" {
		verr.Add("title", "This field may not be blank.")
	}

	priority := PriorityMedium
	if in.Priority != "" {
		p, err := ParsePriority(in.Priority)
		if err != nil {
			verr.Add("priority", err.Error())
		}
		priority = p
	}

	status := StatusPending
	if in.Status != "" {
		s, err := ParseStatus(in.Status)
		if err != nil {
			verr.Add("status", err.Error())
		}
		status = s
	}

	if verr.HasErrors() {
		return nil, verr
	}

	return &Task{
		Title:       title,
		Description: in.Description,
		Priority:    priority,
		Status:      status,
		DueDate:     in.DueDate,
		Location:    strings.TrimSpace(in.Location),
	}, nil
}

// TaskChanges carries a partial update. Nil fields were not supplied.
type TaskChanges struct {
	Title        *string
	Description  *string
	Priority     *string
	Status       *string
	DueDate      *time.Time
	ClearDueDate bool
	Location     *string
}

// HasLocation reports whether the location field was part of the update.
func (c TaskChanges) HasLocation() bool {
	return c.Location != nil
}

// Apply validates the changes and writes them onto task. The task is left
// untouched when validation fails.
func (c TaskChanges) Apply(task *Task) error {
	verr := NewValidationError()

	title := task.Title
	if c.Title != nil {
		title = strings.TrimSpace(*c.Title)
		if title == "" {
			verr.Add("title", "This field may not be blank.")
		}
	}

	priority := task.Priority
	if c.Priority != nil {
		p, err := ParsePriority(*c.Priority)
		if err != nil {
			verr.Add("priority", err.Error())
		}
		priority = p
	}

	status := task.Status
	if c.Status != nil {
		s, err := ParseStatus(*c.Status)
		if err != nil {
			verr.Add("status", err.Error())
		}
		status = s
	}

	if verr.HasErrors() {
		return verr
	}

	task.Title = title
	task.Priority = priority
	task.Status = status
	if c.Description != nil {
		task.Description = *c.Description
	}
	switch {
	case c.ClearDueDate:
		task.DueDate = nil
	case c.DueDate != nil:
		due := *c.DueDate
		task.DueDate = &due
	}
	if c.Location != nil {
		task.Location = strings.TrimSpace(*c.Location)
	}
	return nil
}

package domain

import (
	"math"
	"time"
)

// StatusCount is one bucket of the status distribution.
type StatusCount struct {
	Status Status `json:"status"`
	Count  int    `json:"count"`
}

// PriorityCount is one bucket of the priority distribution.
type PriorityCount struct {
	Priority Priority `json:"priority"`
	Count    int      `json:"count"`
}

// DailyCount is the number of tasks created on a calendar day (UTC).
type DailyCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// Statistics is the aggregate view rendered by the dashboard charts.
type Statistics struct {
	TotalTasks           int             `json:"total_tasks"`
	CompletedTasks       int             `json:"completed_tasks"`
	OverdueTasks         int             `json:"overdue_tasks"`
	CompletionRate       float64         `json:"completion_rate"`
	StatusDistribution   []StatusCount   `json:"status_distribution"`
	PriorityDistribution []PriorityCount `json:"priority_distribution"`
	DailyCreationTrend   []DailyCount    `json:"daily_creation_trend"`
}

// TrendWindow is how far back the daily creation trend looks.
const TrendWindow = 7 * 24 * time.Hour

// DayLayout formats the day buckets of the creation trend.
const DayLayout = "2006-01-02"

// CompletionRate returns completed/total as a percentage rounded to two
// decimals, or 0 when there are no tasks.
func CompletionRate(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	rate := float64(completed) / float64(total) * 100
	return math.Round(rate*100) / 100
}

// WeatherSummaryItem is a flattened weather snapshot of one task.
type WeatherSummaryItem struct {
	TaskID      string    `json:"task_id"`
	TaskTitle   string    `json:"task_title"`
	Location    string    `json:"location"`
	Temperature float64   `json:"temperature"`
	Description string    `json:"description"`
	LastUpdated time.Time `json:"last_updated"`
}

// WeatherSummary lists every task that carries weather data.
type WeatherSummary struct {
	TotalTasksWithWeather int                  `json:"total_tasks_with_weather"`
	WeatherData           []WeatherSummaryItem `json:"weather_data"`
}

// NewWeatherSummary flattens the weather snapshots of tasks, skipping tasks
// without a location or without weather data.
func NewWeatherSummary(tasks []Task) WeatherSummary {
	items := make([]WeatherSummaryItem, 0, len(tasks))
	for i := range tasks {
		task := &tasks[i]
		if !task.HasLocation() || task.WeatherInfo == nil {
			continue
		}
		items = append(items, WeatherSummaryItem{
			TaskID:      task.ID,
			TaskTitle:   task.Title,
			Location:    task.Location,
			Temperature: task.WeatherInfo.Temperature,
			Description: task.WeatherInfo.Description,
			LastUpdated: task.WeatherInfo.FetchedAt,
		})
	}
	return WeatherSummary{
		TotalTasksWithWeather: len(items),
		WeatherData:           items,
	}
}

// RecentActivity is an activity entry flattened with its task title.
type RecentActivity struct {
	ID          string    `json:"id"`
	TaskTitle   string    `json:"task_title"`
	Action      Action    `json:"action"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// RecentActivityLimit bounds the activity feed on the dashboard.
const RecentActivityLimit = 10

// Dashboard is the combined payload of the dashboard page.
type Dashboard struct {
	Statistics       Statistics       `json:"statistics"`
	WeatherSummary   WeatherSummary   `json:"weather_summary"`
	RecentActivities []RecentActivity `json:"recent_activities"`
}

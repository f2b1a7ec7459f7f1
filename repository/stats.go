package repository

import (
	"context"
	"time"

	"github.com/fastygo/taskboard/domain"
)

// StatsRepository answers the read-only aggregate queries of the dashboard.
type StatsRepository interface {
	Count(ctx context.Context) (int, error)
	CountCompleted(ctx context.Context) (int, error)
	CountOverdue(ctx context.Context, now time.Time) (int, error)
	CountByStatus(ctx context.Context) ([]domain.StatusCount, error)
	CountByPriority(ctx context.Context) ([]domain.PriorityCount, error)
	DailyCreated(ctx context.Context, since time.Time) ([]domain.DailyCount, error)
	ListWithWeather(ctx context.Context) ([]domain.Task, error)
}

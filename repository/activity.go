package repository

import (
	"context"

	"github.com/fastygo/taskboard/domain"
)

// ActivityRepository stores the append-only activity log of tasks.
type ActivityRepository interface {
	Append(ctx context.Context, activity *domain.TaskActivity) error
	ListByTask(ctx context.Context, taskID string) ([]domain.TaskActivity, error)
	ListByTasks(ctx context.Context, taskIDs []string) (map[string][]domain.TaskActivity, error)
	ListRecent(ctx context.Context, limit int) ([]domain.RecentActivity, error)
}

package dashboard

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/repository"
)

// UseCase serves the read-only aggregates of the dashboard.
type UseCase struct {
	stats      repository.StatsRepository
	activities repository.ActivityRepository
	logger     *zap.Logger
	now        func() time.Time
}

func New(stats repository.StatsRepository, activities repository.ActivityRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		stats:      stats,
		activities: activities,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock replaces the reference time used for overdue and trend windows.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	if now != nil {
		uc.now = now
	}
	return uc
}

func (uc *UseCase) Statistics(ctx context.Context) (*domain.Statistics, error) {
	now := uc.now()

	total, err := uc.stats.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}
	completed, err := uc.stats.CountCompleted(ctx)
	if err != nil {
		return nil, fmt.Errorf("count completed tasks: %w", err)
	}
	overdue, err := uc.stats.CountOverdue(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("count overdue tasks: %w", err)
	}
	byStatus, err := uc.stats.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("status distribution: %w", err)
	}
	byPriority, err := uc.stats.CountByPriority(ctx)
	if err != nil {
		return nil, fmt.Errorf("priority distribution: %w", err)
	}
	trend, err := uc.stats.DailyCreated(ctx, now.Add(-domain.TrendWindow))
	if err != nil {
		return nil, fmt.Errorf("daily creation trend: %w", err)
	}

	return &domain.Statistics{
		TotalTasks:           total,
		CompletedTasks:       completed,
		OverdueTasks:         overdue,
		CompletionRate:       domain.CompletionRate(completed, total),
		StatusDistribution:   byStatus,
		PriorityDistribution: byPriority,
		DailyCreationTrend:   trend,
	}, nil
}

func (uc *UseCase) WeatherSummary(ctx context.Context) (*domain.WeatherSummary, error) {
	tasks, err := uc.stats.ListWithWeather(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks with weather: %w", err)
	}
	summary := domain.NewWeatherSummary(tasks)
	return &summary, nil
}

func (uc *UseCase) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	stats, err := uc.Statistics(ctx)
	if err != nil {
		return nil, err
	}
	weather, err := uc.WeatherSummary(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := uc.activities.ListRecent(ctx, domain.RecentActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("recent activities: %w", err)
	}

	uc.logger.Debug("dashboard assembled",
		zap.Int("total_tasks", stats.TotalTasks),
		zap.Int("recent_activities", len(recent)))

	return &domain.Dashboard{
		Statistics:       *stats,
		WeatherSummary:   *weather,
		RecentActivities: recent,
	}, nil
}

package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/repository"
)

type statsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository returns the aggregate queries backing the dashboard.
func NewStatsRepository(pool *pgxpool.Pool) repository.StatsRepository {
	return &statsRepository{pool: pool}
}

func (r *statsRepository) Count(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM tasks`)
}

func (r *statsRepository) CountCompleted(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM tasks WHERE status = $1`, string(domain.StatusCompleted))
}

func (r *statsRepository) CountOverdue(ctx context.Context, now time.Time) (int, error) {
	open := make([]string, 0, len(domain.OpenStatuses))
	for _, s := range domain.OpenStatuses {
		open = append(open, string(s))
	}
	return r.count(ctx, `
	SELECT COUNT(*)
	FROM tasks
	WHERE due_date < $1
	  AND status = ANY($2)
	`, now, open)
}

func (r *statsRepository) CountByStatus(ctx context.Context) ([]domain.StatusCount, error) {
	const query = `
	SELECT status, COUNT(id)
	FROM tasks
	GROUP BY status
	ORDER BY status
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]domain.StatusCount, 0, len(domain.Statuses))
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts = append(counts, domain.StatusCount{Status: domain.Status(status), Count: count})
	}
	return counts, rows.Err()
}

func (r *statsRepository) CountByPriority(ctx context.Context) ([]domain.PriorityCount, error) {
	const query = `
	SELECT priority, COUNT(id)
	FROM tasks
	GROUP BY priority
	ORDER BY priority
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]domain.PriorityCount, 0, len(domain.Priorities))
	for rows.Next() {
		var (
			priority string
			count    int
		)
		if err := rows.Scan(&priority, &count); err != nil {
			return nil, err
		}
		counts = append(counts, domain.PriorityCount{Priority: domain.Priority(priority), Count: count})
	}
	return counts, rows.Err()
}

func (r *statsRepository) DailyCreated(ctx context.Context, since time.Time) ([]domain.DailyCount, error) {
	const query = `
	SELECT to_char(date(created_at AT TIME ZONE 'UTC'), 'YYYY-MM-DD') AS day, COUNT(id)
	FROM tasks
	WHERE created_at >= $1
	GROUP BY day
	ORDER BY day
	`
	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]domain.DailyCount, 0, 8)
	for rows.Next() {
		var item domain.DailyCount
		if err := rows.Scan(&item.Day, &item.Count); err != nil {
			return nil, err
		}
		counts = append(counts, item)
	}
	return counts, rows.Err()
}

func (r *statsRepository) ListWithWeather(ctx context.Context) ([]domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE weather_info IS NOT NULL
	  AND location <> ''
	ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTasks(rows)
}

func (r *statsRepository) count(ctx context.Context, query string, args ...interface{}) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/repository"
)

const foreignKeyViolation = "23503"

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository creates a Postgres-backed ActivityRepository implementation.
func NewActivityRepository(pool *pgxpool.Pool) repository.ActivityRepository {
	return &activityRepository{pool: pool}
}

func (r *activityRepository) Append(ctx context.Context, activity *domain.TaskActivity) error {
	if activity == nil || activity.TaskID == "" {
		return domain.ErrInvalidPayload
	}
	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO task_activities (id, task_id, action, description, "timestamp")
	VALUES ($1, $2, $3, $4, COALESCE($5, NOW()))
	ON CONFLICT (id) DO NOTHING
	RETURNING "timestamp"
	`

	err := r.pool.QueryRow(ctx, query,
		activity.ID,
		activity.TaskID,
		string(activity.Action),
		activity.Description,
		nullTime(activity.Timestamp),
	).Scan(&activity.Timestamp)
	if errors.Is(err, pgx.ErrNoRows) {
		// already stored by an earlier attempt
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return domain.ErrTaskNotFound
	}
	return err
}

func (r *activityRepository) ListByTask(ctx context.Context, taskID string) ([]domain.TaskActivity, error) {
	const query = `
	SELECT id, task_id, action, description, "timestamp"
	FROM task_activities
	WHERE task_id = $1
	ORDER BY "timestamp" DESC
	`
	rows, err := r.pool.Query(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := make([]domain.TaskActivity, 0)
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}
	return activities, rows.Err()
}

func (r *activityRepository) ListByTasks(ctx context.Context, taskIDs []string) (map[string][]domain.TaskActivity, error) {
	result := make(map[string][]domain.TaskActivity, len(taskIDs))
	if len(taskIDs) == 0 {
		return result, nil
	}

	const query = `
	SELECT id, task_id, action, description, "timestamp"
	FROM task_activities
	WHERE task_id = ANY($1)
	ORDER BY "timestamp" DESC
	`
	rows, err := r.pool.Query(ctx, query, taskIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		result[activity.TaskID] = append(result[activity.TaskID], activity)
	}
	return result, rows.Err()
}

func (r *activityRepository) ListRecent(ctx context.Context, limit int) ([]domain.RecentActivity, error) {
	const query = `
	SELECT a.id, t.title, a.action, a.description, a."timestamp"
	FROM task_activities a
	JOIN tasks t ON t.id = a.task_id
	ORDER BY a."timestamp" DESC, a.id DESC
	LIMIT $1
	`
	if limit <= 0 {
		limit = domain.RecentActivityLimit
	}

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recent := make([]domain.RecentActivity, 0, limit)
	for rows.Next() {
		var (
			item   domain.RecentActivity
			action string
		)
		if err := rows.Scan(&item.ID, &item.TaskTitle, &action, &item.Description, &item.Timestamp); err != nil {
			return nil, err
		}
		item.Action = domain.Action(action)
		recent = append(recent, item)
	}
	return recent, rows.Err()
}

func scanActivity(row pgx.Row) (domain.TaskActivity, error) {
	var (
		activity domain.TaskActivity
		action   string
	)
	if err := row.Scan(
		&activity.ID,
		&activity.TaskID,
		&action,
		&activity.Description,
		&activity.Timestamp,
	); err != nil {
		return domain.TaskActivity{}, err
	}
	activity.Action = domain.Action(action)
	return activity, nil
}

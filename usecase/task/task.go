package task

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/repository"
	"github.com/fastygo/taskboard/usecase"
)

type UseCase struct {
	tasks      repository.TaskRepository
	activities repository.ActivityRepository
	weather    usecase.WeatherProvider
	cache      repository.WeatherCache
	buffer     usecase.ActivityBuffer
	logger     *zap.Logger
}

// Option customises optional collaborators of the use case.
type Option func(*UseCase)

// WithWeatherCache lets automatic enrichment reuse recent readings.
func WithWeatherCache(cache repository.WeatherCache) Option {
	return func(uc *UseCase) { uc.cache = cache }
}

// WithActivityBuffer sets the fallback used when an activity cannot be stored.
func WithActivityBuffer(buffer usecase.ActivityBuffer) Option {
	return func(uc *UseCase) { uc.buffer = buffer }
}

func New(
	tasks repository.TaskRepository,
	activities repository.ActivityRepository,
	weather usecase.WeatherProvider,
	logger *zap.Logger,
	opts ...Option,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	uc := &UseCase{
		tasks:      tasks,
		activities: activities,
		weather:    weather,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *UseCase) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	tasks, err := uc.tasks.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	byTask, err := uc.activities.ListByTasks(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		tasks[i].Activities = nonNil(byTask[tasks[i].ID])
	}
	return tasks, nil
}

func (uc *UseCase) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.withActivities(ctx, task)
}

// CreateTask validates and stores a new task, records its creation and, when
// a location is set, attaches the current weather.
func (uc *UseCase) CreateTask(ctx context.Context, input domain.TaskInput) (*domain.Task, error) {
	task, err := input.Validate()
	if err != nil {
		return nil, err
	}

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}
	uc.record(ctx, domain.NewCreatedActivity(created))

	if created.HasLocation() {
		uc.enrich(ctx, created, true)
	}
	return uc.withActivities(ctx, created)
}

// UpdateTask applies a partial update. A status transition is logged no
// matter which fields were supplied; weather is refreshed only when the
// location was part of the update.
func (uc *UseCase) UpdateTask(ctx context.Context, id string, changes domain.TaskChanges) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := task.Status
	if err := changes.Apply(task); err != nil {
		return nil, err
	}
	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	if oldStatus != task.Status {
		uc.record(ctx, domain.NewStatusChangedActivity(task, oldStatus))
	}

	if changes.HasLocation() && task.HasLocation() {
		uc.enrich(ctx, task, true)
	}
	return uc.withActivities(ctx, task)
}

func (uc *UseCase) DeleteTask(ctx context.Context, id string) error {
	return uc.tasks.Delete(ctx, id)
}

// RefreshWeather fetches fresh weather for one task on demand.
func (uc *UseCase) RefreshWeather(ctx context.Context, id string) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !task.HasLocation() {
		return nil, domain.ErrNoLocation
	}

	uc.enrich(ctx, task, false)
	return uc.withActivities(ctx, task)
}

func (uc *UseCase) withActivities(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	activities, err := uc.activities.ListByTask(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	task.Activities = nonNil(activities)
	return task, nil
}

// record appends an activity, falling back to the buffer when the store
// rejects the write. The triggering operation never fails because of it.
func (uc *UseCase) record(ctx context.Context, activity domain.TaskActivity) {
	err := uc.activities.Append(ctx, &activity)
	if err == nil {
		return
	}
	if uc.buffer == nil {
		uc.logger.Error("failed to record task activity",
			zap.String("task_id", activity.TaskID),
			zap.String("action", string(activity.Action)),
			zap.Error(err))
		return
	}
	if bufErr := uc.buffer.BufferActivity(ctx, &activity); bufErr != nil {
		uc.logger.Error("failed to buffer task activity",
			zap.String("task_id", activity.TaskID),
			zap.String("action", string(activity.Action)),
			zap.Error(bufErr))
		return
	}
	uc.logger.Warn("task activity buffered",
		zap.String("task_id", activity.TaskID),
		zap.String("action", string(activity.Action)),
		zap.Error(err))
}

func nonNil(activities []domain.TaskActivity) []domain.TaskActivity {
	if activities == nil {
		return []domain.TaskActivity{}
	}
	return activities
}

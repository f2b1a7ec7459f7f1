package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/repository"
)

type activityRecord struct {
	seq      uint64
	activity domain.TaskActivity
}

// Store keeps tasks and their activity log in process memory. It satisfies
// the task, activity and statistics repositories with the same semantics as
// the Postgres implementations.
type Store struct {
	mu         sync.RWMutex
	tasks      map[string]domain.Task
	activities []activityRecord
	seq        uint64
	now        func() time.Time
}

func NewStore() *Store {
	return &Store{
		tasks: make(map[string]domain.Task),
		now:   time.Now,
	}
}

// WithClock replaces the time source used for generated timestamps.
func (s *Store) WithClock(now func() time.Time) *Store {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *Store) Tasks() repository.TaskRepository { return taskRepo{s} }
func (s *Store) Activities() repository.ActivityRepository { return activityRepo{s} }
func (s *Store) Stats() repository.StatsRepository { return statsRepo{s} }

type taskRepo struct{ s *Store }

func (r taskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	task, ok := r.s.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	out := cloneTask(task)
	return &out, nil
}

func (r taskRepo) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	tasks := make([]domain.Task, 0, len(r.s.tasks))
	for _, task := range r.s.tasks {
		if filter.Status != "" && string(task.Status) != filter.Status {
			continue
		}
		if filter.Priority != "" && string(task.Priority) != filter.Priority {
			continue
		}
		tasks = append(tasks, cloneTask(task))
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})

	filter = filter.Normalize()
	limit, offset := filter.Limit, filter.Offset
	if offset >= len(tasks) {
		return []domain.Task{}, nil
	}
	tasks = tasks[offset:]
	if len(tasks) > limit {
		tasks = tasks[:limit]
	}
	return tasks, nil
}

func (r taskRepo) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now
	stored := cloneTask(*task)
	stored.Activities = nil
	r.s.tasks[task.ID] = stored
	return task, nil
}

func (r taskRepo) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.tasks[task.ID]
	if !ok {
		return domain.ErrTaskNotFound
	}
	task.CreatedAt = existing.CreatedAt
	task.UpdatedAt = r.s.now()
	stored := cloneTask(*task)
	stored.Activities = nil
	r.s.tasks[task.ID] = stored
	return nil
}

func (r taskRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.s.tasks, id)

	kept := r.s.activities[:0]
	for _, rec := range r.s.activities {
		if rec.activity.TaskID != id {
			kept = append(kept, rec)
		}
	}
	r.s.activities = kept
	return nil
}

type activityRepo struct{ s *Store }

func (r activityRepo) Append(ctx context.Context, activity *domain.TaskActivity) error {
	if activity == nil || activity.TaskID == "" {
		return domain.ErrInvalidPayload
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tasks[activity.TaskID]; !ok {
		return domain.ErrTaskNotFound
	}
	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}
	for _, rec := range r.s.activities {
		if rec.activity.ID == activity.ID {
			return nil
		}
	}
	if activity.Timestamp.IsZero() {
		activity.Timestamp = r.s.now()
	}
	r.s.seq++
	r.s.activities = append(r.s.activities, activityRecord{seq: r.s.seq, activity: *activity})
	return nil
}

func (r activityRepo) ListByTask(ctx context.Context, taskID string) ([]domain.TaskActivity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.TaskActivity, 0)
	for _, rec := range r.s.newestFirst() {
		if rec.activity.TaskID == taskID {
			out = append(out, rec.activity)
		}
	}
	return out, nil
}

func (r activityRepo) ListByTasks(ctx context.Context, taskIDs []string) (map[string][]domain.TaskActivity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	wanted := make(map[string]struct{}, len(taskIDs))
	for _, id := range taskIDs {
		wanted[id] = struct{}{}
	}

	out := make(map[string][]domain.TaskActivity, len(taskIDs))
	for _, rec := range r.s.newestFirst() {
		if _, ok := wanted[rec.activity.TaskID]; ok {
			out[rec.activity.TaskID] = append(out[rec.activity.TaskID], rec.activity)
		}
	}
	return out, nil
}

func (r activityRepo) ListRecent(ctx context.Context, limit int) ([]domain.RecentActivity, error) {
	if limit <= 0 {
		limit = domain.RecentActivityLimit
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.RecentActivity, 0, limit)
	for _, rec := range r.s.newestFirst() {
		if len(out) == limit {
			break
		}
		task := r.s.tasks[rec.activity.TaskID]
		out = append(out, domain.RecentActivity{
			ID:          rec.activity.ID,
			TaskTitle:   task.Title,
			Action:      rec.activity.Action,
			Description: rec.activity.Description,
			Timestamp:   rec.activity.Timestamp,
		})
	}
	return out, nil
}

// newestFirst must be called with the lock held.
func (s *Store) newestFirst() []activityRecord {
	records := make([]activityRecord, len(s.activities))
	copy(records, s.activities)
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.activity.Timestamp.Equal(b.activity.Timestamp) {
			return a.activity.Timestamp.After(b.activity.Timestamp)
		}
		return a.seq > b.seq
	})
	return records
}

type statsRepo struct{ s *Store }

func (r statsRepo) Count(ctx context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.tasks), nil
}

func (r statsRepo) CountCompleted(ctx context.Context) (int, error) {
	return r.countWhere(ctx, func(t domain.Task) bool { return t.IsCompleted() })
}

func (r statsRepo) CountOverdue(ctx context.Context, now time.Time) (int, error) {
	return r.countWhere(ctx, func(t domain.Task) bool { return t.IsOverdue(now) })
}

func (r statsRepo) CountByStatus(ctx context.Context) ([]domain.StatusCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	buckets := make(map[domain.Status]int)
	for _, t := range r.s.tasks {
		buckets[t.Status]++
	}
	out := make([]domain.StatusCount, 0, len(buckets))
	for status, count := range buckets {
		out = append(out, domain.StatusCount{Status: status, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out, nil
}

func (r statsRepo) CountByPriority(ctx context.Context) ([]domain.PriorityCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	buckets := make(map[domain.Priority]int)
	for _, t := range r.s.tasks {
		buckets[t.Priority]++
	}
	out := make([]domain.PriorityCount, 0, len(buckets))
	for priority, count := range buckets {
		out = append(out, domain.PriorityCount{Priority: priority, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out, nil
}

func (r statsRepo) DailyCreated(ctx context.Context, since time.Time) ([]domain.DailyCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	buckets := make(map[string]int)
	for _, t := range r.s.tasks {
		if t.CreatedAt.Before(since) {
			continue
		}
		buckets[t.CreatedAt.UTC().Format(domain.DayLayout)]++
	}
	out := make([]domain.DailyCount, 0, len(buckets))
	for day, count := range buckets {
		out = append(out, domain.DailyCount{Day: day, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

func (r statsRepo) ListWithWeather(ctx context.Context) ([]domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Task, 0)
	for _, t := range r.s.tasks {
		if t.WeatherInfo == nil || strings.TrimSpace(t.Location) == "" {
			continue
		}
		out = append(out, cloneTask(t))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r statsRepo) countWhere(ctx context.Context, match func(domain.Task) bool) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, t := range r.s.tasks {
		if match(t) {
			n++
		}
	}
	return n, nil
}

func cloneTask(t domain.Task) domain.Task {
	if t.DueDate != nil {
		due := *t.DueDate
		t.DueDate = &due
	}
	if t.WeatherInfo != nil {
		info := *t.WeatherInfo
		t.WeatherInfo = &info
	}
	if t.Activities != nil {
		t.Activities = append([]domain.TaskActivity(nil), t.Activities...)
	}
	return t
}

package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/internal/infrastructure/buffer"
	"github.com/fastygo/taskboard/repository/memory"
)

type fakeHealth struct {
	online bool
}

func (f *fakeHealth) IsOnline() bool { return f.online }

func newProcessor(t *testing.T, online bool) (*BufferProcessor, *buffer.Store, *memory.Store, *fakeHealth) {
	t.Helper()

	store, err := buffer.Open(filepath.Join(t.TempDir(), "buffer.db"), "activities")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	mem := memory.NewStore()
	health := &fakeHealth{online: online}
	bp := NewBufferProcessor(store, health, mem.Activities(), nil, ProcessorConfig{
		Interval:   time.Hour,
		BatchSize:  10,
		MaxRetries: 2,
	})
	return bp, store, mem, health
}

func TestBridgeWritesThroughWhenOnline(t *testing.T) {
	ctx := context.Background()
	bp, _, mem, _ := newProcessor(t, true)

	task, err := mem.Tasks().Create(ctx, &domain.Task{Title: "Report"})
	require.NoError(t, err)

	activity := domain.NewCreatedActivity(task)
	require.NoError(t, NewBufferBridge(bp).BufferActivity(ctx, &activity))

	assert.NotEmpty(t, activity.ID)
	assert.Zero(t, bp.Size())
	list, err := mem.Activities().ListByTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestBridgeBuffersWhileOfflineAndDrains(t *testing.T) {
	ctx := context.Background()
	bp, _, mem, health := newProcessor(t, false)

	task, err := mem.Tasks().Create(ctx, &domain.Task{Title: "Report", Status: domain.StatusCompleted})
	require.NoError(t, err)

	activity := domain.NewStatusChangedActivity(task, domain.StatusPending)
	require.NoError(t, NewBufferBridge(bp).BufferActivity(ctx, &activity))
	assert.Equal(t, 1, bp.Size())

	require.NoError(t, bp.Drain(ctx))
	assert.Equal(t, 1, bp.Size())

	health.online = true
	require.NoError(t, bp.Drain(ctx))
	assert.Zero(t, bp.Size())

	list, err := mem.Activities().ListByTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, activity.ID, list[0].ID)
	assert.Equal(t, "Status changed from pending to completed", list[0].Description)
}

func TestDrainDropsActivitiesOfDeletedTasks(t *testing.T) {
	ctx := context.Background()
	bp, store, _, _ := newProcessor(t, true)

	require.NoError(t, store.Enqueue(buffer.Item{
		TaskID: "gone",
		Kind:   buffer.KindActivity,
		Data:   []byte(`{"id":"a1","task_id":"gone","action":"created","description":"x","timestamp":"2024-03-10T12:00:00Z"}`),
	}))

	require.NoError(t, bp.Drain(ctx))
	assert.Zero(t, bp.Size())
}

func TestDrainRequeuesUntilMaxRetries(t *testing.T) {
	ctx := context.Background()
	bp, store, _, _ := newProcessor(t, true)

	require.NoError(t, store.Enqueue(buffer.Item{
		TaskID: "t1",
		Kind:   buffer.KindActivity,
		Data:   []byte(`"not an activity"`),
	}))

	require.NoError(t, bp.Drain(ctx))
	assert.Equal(t, 1, bp.Size())

	require.NoError(t, bp.Drain(ctx))
	assert.Zero(t, bp.Size())
}

package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/internal/infrastructure/buffer"
	"github.com/fastygo/taskboard/usecase"
)

// BufferBridge adapts the processor to the use case ActivityBuffer port.
type BufferBridge struct {
	processor *BufferProcessor
}

func NewBufferBridge(processor *BufferProcessor) *BufferBridge {
	return &BufferBridge{processor: processor}
}

func (b *BufferBridge) BufferActivity(ctx context.Context, activity *domain.TaskActivity) error {
	if b.processor == nil || activity == nil {
		return domain.ErrInvalidPayload
	}
	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}
	if activity.Timestamp.IsZero() {
		activity.Timestamp = time.Now()
	}
	payload, err := json.Marshal(activityRecord{
		ID:          activity.ID,
		TaskID:      activity.TaskID,
		Action:      activity.Action,
		Description: activity.Description,
		Timestamp:   activity.Timestamp,
	})
	if err != nil {
		return err
	}
	item := buffer.Item{
		ID:     activity.ID,
		TaskID: activity.TaskID,
		Kind:   buffer.KindActivity,
		Data:   payload,
	}
	return b.processor.BufferOperation(ctx, item)
}

var _ usecase.ActivityBuffer = (*BufferBridge)(nil)

package usecase

import (
	"context"

	"github.com/fastygo/taskboard/domain"
)

// ActivityBuffer abstracts the durable fallback for activity writes so use
// cases stay storage-agnostic.
type ActivityBuffer interface {
	BufferActivity(ctx context.Context, activity *domain.TaskActivity) error
}

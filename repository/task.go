package repository

import (
	"context"

	"github.com/fastygo/taskboard/domain"
)

// MaxListLimit caps a single page of tasks.
const MaxListLimit = 100

type TaskFilter struct {
	Status   string
	Priority string
	Limit    int
	Offset   int
}

// Normalize returns the filter with the limit and offset a store applies.
func (f TaskFilter) Normalize() TaskFilter {
	if f.Limit <= 0 || f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
}

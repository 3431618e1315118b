package repository

import (
	"context"
	"errors"

	"tasker/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrTaskNotFound is returned when no task matches the id under the given owner.
var ErrTaskNotFound = errors.New("task not found")

// TaskRepository persists tasks. Every lookup is scoped by owner, so a task
// belonging to someone else is indistinguishable from a missing one.
type TaskRepository interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Task, error)
	FindByID(ctx context.Context, ownerID, taskID uuid.UUID) (*entity.Task, error)

	// FindByIDForUpdate is FindByID holding a row lock until the surrounding
	// transaction ends.
	FindByIDForUpdate(ctx context.Context, ownerID, taskID uuid.UUID) (*entity.Task, error)

	Create(ctx context.Context, task *entity.Task) error
	Update(ctx context.Context, task *entity.Task) error
	Delete(ctx context.Context, ownerID, taskID uuid.UUID) error
}

package usecase

import (
	"context"

	"tasker/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateTaskInput defines the data required to create a task.
type CreateTaskInput struct {
	Title       string
	Description string
	Completed   bool
}

// UpdateTaskInput carries a partial update. Nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Completed   *bool
}

// TaskUsecase manages the tasks of a single owner. ownerID is always the
// already authorized principal; tasks of other owners read as not found.
type TaskUsecase interface {
	ListTasks(ctx context.Context, ownerID uuid.UUID) ([]*entity.Task, error)
	CreateTask(ctx context.Context, ownerID uuid.UUID, input *CreateTaskInput) (*entity.Task, error)
	GetTask(ctx context.Context, ownerID, taskID uuid.UUID) (*entity.Task, error)
	UpdateTask(ctx context.Context, ownerID, taskID uuid.UUID, input *UpdateTaskInput) (*entity.Task, error)
	SetCompletion(ctx context.Context, ownerID, taskID uuid.UUID, completed bool) (*entity.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error
}

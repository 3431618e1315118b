package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "tasker/internal/delivery/context"
	"tasker/internal/domain/entity"
	domainerrors "tasker/internal/domain/errors"
	"tasker/internal/domain/policy"
	"tasker/internal/domain/repository"
	"tasker/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// taskService implements the TaskUsecase interface.
type taskService struct {
	txManager repository.TransactionManager
	guard     *policy.OwnerGuard
	logger    *slog.Logger
	now       func() time.Time
}

// TaskServiceParams holds dependencies for TaskService, injected by Fx.
type TaskServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Guard     *policy.OwnerGuard
	Logger    *slog.Logger
}

// NewTaskService is the constructor for taskService.
func NewTaskService(params TaskServiceParams) usecase.TaskUsecase {
	return &taskService{
		txManager: params.TxManager,
		guard:     params.Guard,
		logger:    params.Logger,
		now:       time.Now,
	}
}

func (srv *taskService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListTasks returns every task of the owner, oldest first.
func (srv *taskService) ListTasks(ctx context.Context, ownerID uuid.UUID) ([]*entity.Task, error) {
	var tasks []*entity.Task

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.TaskRepo().ListByOwner(ctx, ownerID)
		if err != nil {
			return errors.Wrap(err, "failed to list tasks")
		}

		for _, task := range found {
			if err := srv.guard.AuthorizeResource(task, ownerID, domainerrors.ErrTaskNotFound); err != nil {
				return err
			}
		}
		tasks = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tasks")
	}

	return tasks, nil
}

// CreateTask stores a new task under ownerID with CreatedAt == UpdatedAt.
func (srv *taskService) CreateTask(ctx context.Context, ownerID uuid.UUID, input *usecase.CreateTaskInput) (*entity.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, errors.WithStack(titleRequired())
	}

	now := srv.now().UTC().Truncate(time.Microsecond)
	task := &entity.Task{
		UserID:      ownerID,
		Title:       input.Title,
		Description: input.Description,
		Completed:   input.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.TaskRepo().Create(ctx, task)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create task")
	}

	srv.log(ctx).Debug("Task created", slog.String("taskID", task.ID.String()), slog.String("userID", ownerID.String()))

	return task, nil
}

// GetTask returns one task of the owner.
func (srv *taskService) GetTask(ctx context.Context, ownerID, taskID uuid.UUID) (*entity.Task, error) {
	var task *entity.Task

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.TaskRepo().FindByID(ctx, ownerID, taskID)
		if err != nil {
			return mapTaskLookupError(err)
		}
		task = found

		return srv.guard.AuthorizeResource(task, ownerID, domainerrors.ErrTaskNotFound)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get task")
	}

	return task, nil
}

// UpdateTask applies the non-nil fields of input.
func (srv *taskService) UpdateTask(ctx context.Context, ownerID, taskID uuid.UUID, input *usecase.UpdateTaskInput) (*entity.Task, error) {
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return nil, errors.WithStack(titleRequired())
	}

	return srv.mutate(ctx, ownerID, taskID, func(task *entity.Task) {
		if input.Title != nil {
			task.Title = *input.Title
		}
		if input.Description != nil {
			task.Description = *input.Description
		}
		if input.Completed != nil {
			task.Completed = *input.Completed
		}
	})
}

// SetCompletion sets only the completion flag.
func (srv *taskService) SetCompletion(ctx context.Context, ownerID, taskID uuid.UUID, completed bool) (*entity.Task, error) {
	return srv.mutate(ctx, ownerID, taskID, func(task *entity.Task) {
		task.Completed = completed
	})
}

// DeleteTask removes one task of the owner.
func (srv *taskService) DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		taskRepo := repoFactory.TaskRepo()

		task, err := taskRepo.FindByIDForUpdate(ctx, ownerID, taskID)
		if err != nil {
			return mapTaskLookupError(err)
		}
		if err := srv.guard.AuthorizeResource(task, ownerID, domainerrors.ErrTaskNotFound); err != nil {
			return err
		}

		if err := taskRepo.Delete(ctx, ownerID, taskID); err != nil {
			return mapTaskLookupError(err)
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete task")
	}

	srv.log(ctx).Debug("Task deleted", slog.String("taskID", taskID.String()), slog.String("userID", ownerID.String()))

	return nil
}

// mutate runs read-lock, ownership check, apply, touch and save in one transaction.
func (srv *taskService) mutate(ctx context.Context, ownerID, taskID uuid.UUID, apply func(task *entity.Task)) (*entity.Task, error) {
	var updated *entity.Task

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		taskRepo := repoFactory.TaskRepo()

		task, err := taskRepo.FindByIDForUpdate(ctx, ownerID, taskID)
		if err != nil {
			return mapTaskLookupError(err)
		}
		if err := srv.guard.AuthorizeResource(task, ownerID, domainerrors.ErrTaskNotFound); err != nil {
			return err
		}

		apply(task)
		task.Touch(srv.now())

		if err := taskRepo.Update(ctx, task); err != nil {
			return mapTaskLookupError(err)
		}
		updated = task

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update task")
	}

	return updated, nil
}

func mapTaskLookupError(err error) error {
	if errors.Is(err, repository.ErrTaskNotFound) {
		return errors.WithStack(domainerrors.ErrTaskNotFound)
	}

	return errors.Wrap(err, "task storage failed")
}

func titleRequired() error {
	return domainerrors.NewValidationError(domainerrors.FieldError{
		Field:   "title",
		Message: "title is required",
	})
}

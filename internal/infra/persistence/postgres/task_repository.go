package postgres

import (
	"context"

	"tasker/internal/domain/entity"
	domainerrors "tasker/internal/domain/errors"
	"tasker/internal/domain/repository"
	"tasker/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// taskRepository implements the domain.TaskRepository interface using GORM.
// Every statement is filtered by user_id.
type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository is the constructor for taskRepository.
func NewTaskRepository(db *gorm.DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

// ListByOwner returns the owner's tasks, oldest first.
func (repo *taskRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Task, error) {
	var taskModels []*model.TaskModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&taskModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list tasks by owner")
	}

	tasks := make([]*entity.Task, 0, len(taskModels))
	for _, taskM := range taskModels {
		tasks = append(tasks, toTaskDomain(taskM))
	}

	return tasks, nil
}

// FindByID retrieves a task by id within the owner's scope.
func (repo *taskRepository) FindByID(ctx context.Context, ownerID, taskID uuid.UUID) (*entity.Task, error) {
	return repo.find(repo.db.WithContext(ctx), ownerID, taskID)
}

// FindByIDForUpdate retrieves a task and locks its row with SELECT ... FOR UPDATE.
func (repo *taskRepository) FindByIDForUpdate(ctx context.Context, ownerID, taskID uuid.UUID) (*entity.Task, error) {
	return repo.find(repo.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), ownerID, taskID)
}

func (repo *taskRepository) find(db *gorm.DB, ownerID, taskID uuid.UUID) (*entity.Task, error) {
	var taskM model.TaskModel

	if err := db.
		Where("id = ? AND user_id = ?", taskID, ownerID).
		First(&taskM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTaskNotFound
		}

		return nil, errors.Wrap(err, "failed to find task by id")
	}

	return toTaskDomain(&taskM), nil
}

// Create persists a new task.
func (repo *taskRepository) Create(ctx context.Context, task *entity.Task) error {
	taskM := fromTaskDomain(task)

	if err := repo.db.WithContext(ctx).Create(taskM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("task owner does not exist")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrTaskUpdateFailed.WrapMessage("missing required task information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create task")
	}

	task.ID = taskM.ID
	task.CreatedAt = taskM.CreatedAt
	task.UpdatedAt = taskM.UpdatedAt

	return nil
}

// Update writes the mutable task fields. The owner column is never part of the update.
func (repo *taskRepository) Update(ctx context.Context, task *entity.Task) error {
	result := repo.db.WithContext(ctx).
		Model(&model.TaskModel{}).
		Where("id = ? AND user_id = ?", task.ID, task.UserID).
		Updates(map[string]any{
			"title":       task.Title,
			"description": task.Description,
			"completed":   task.Completed,
			"updated_at":  task.UpdatedAt,
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update task")
	}

	if result.RowsAffected == 0 {
		return repository.ErrTaskNotFound
	}

	return nil
}

// Delete removes a task within the owner's scope.
func (repo *taskRepository) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, ownerID).
		Delete(&model.TaskModel{})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete task")
	}

	if result.RowsAffected == 0 {
		return repository.ErrTaskNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toTaskDomain(data *model.TaskModel) *entity.Task {
	if data == nil {
		return nil
	}

	return &entity.Task{
		ID:          data.ID,
		UserID:      data.UserID,
		Title:       data.Title,
		Description: data.Description,
		Completed:   data.Completed,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromTaskDomain(data *entity.Task) *model.TaskModel {
	if data == nil {
		return nil
	}

	return &model.TaskModel{
		ID:          data.ID,
		UserID:      data.UserID,
		Title:       data.Title,
		Description: data.Description,
		Completed:   data.Completed,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

package impl

import (
	"context"
	"testing"
	"time"

	"tasker/internal/domain/entity"
	domainerrors "tasker/internal/domain/errors"
	"tasker/internal/domain/policy"
	"tasker/internal/domain/repository"
	"tasker/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var taskClock = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newTaskServiceForTest(t *testing.T) (*taskService, *txMocks) {
	t.Helper()

	mocks := newTxMocks(t)
	srv := NewTaskService(TaskServiceParams{
		TxManager: mocks.txManager,
		Guard:     policy.NewOwnerGuard(),
		Logger:    discardLogger(),
	}).(*taskService)
	srv.now = func() time.Time { return taskClock }

	return srv, mocks
}

func existingTask(ownerID uuid.UUID) *entity.Task {
	created := taskClock.Add(-time.Hour)

	return &entity.Task{
		ID:          uuid.New(),
		UserID:      ownerID,
		Title:       "write report",
		Description: "quarterly",
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func TestTaskService_CreateTask(t *testing.T) {
	srv, mocks := newTaskServiceForTest(t)
	ctx := context.Background()
	ownerID := uuid.New()

	mocks.expectTx(ctx)
	mocks.expectTaskRepo()
	mocks.taskRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Task")).
		Run(func(_ context.Context, task *entity.Task) {
			task.ID = uuid.New()
		}).
		Return(nil)

	task, err := srv.CreateTask(ctx, ownerID, &usecase.CreateTaskInput{Title: "buy milk"})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, task.ID)
	assert.Equal(t, ownerID, task.UserID)
	assert.Equal(t, "buy milk", task.Title)
	assert.False(t, task.Completed)
	assert.Equal(t, taskClock, task.CreatedAt)
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)
}

func TestTaskService_CreateTask_RequiresTitle(t *testing.T) {
	srv, mocks := newTaskServiceForTest(t)

	task, err := srv.CreateTask(context.Background(), uuid.New(), &usecase.CreateTaskInput{Title: "   "})

	assert.Nil(t, task)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, []domainerrors.FieldError{{Field: "title", Message: "title is required"}}, appErr.Details())
	mocks.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestTaskService_ListTasks(t *testing.T) {
	srv, mocks := newTaskServiceForTest(t)
	ctx := context.Background()
	ownerID := uuid.New()
	tasks := []*entity.Task{existingTask(ownerID), existingTask(ownerID)}

	mocks.expectTx(ctx)
	mocks.expectTaskRepo()
	mocks.taskRepo.EXPECT().ListByOwner(ctx, ownerID).Return(tasks, nil)

	got, err := srv.ListTasks(ctx, ownerID)

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestTaskService_GetTask(t *testing.T) {
	ownerID := uuid.New()

	t.Run("found", func(t *testing.T) {
		srv, mocks := newTaskServiceForTest(t)
		ctx := context.Background()
		task := existingTask(ownerID)

		mocks.expectTx(ctx)
		mocks.expectTaskRepo()
		mocks.taskRepo.EXPECT().FindByID(ctx, ownerID, task.ID).Return(task, nil)

		got, err := srv.GetTask(ctx, ownerID, task.ID)

		require.NoError(t, err)
		assert.Equal(t, task, got)
	})

	t.Run("missing", func(t *testing.T) {
		srv, mocks := newTaskServiceForTest(t)
		ctx := context.Background()
		taskID := uuid.New()

		mocks.expectTx(ctx)
		mocks.expectTaskRepo()
		mocks.taskRepo.EXPECT().FindByID(ctx, ownerID, taskID).Return(nil, repository.ErrTaskNotFound)

		got, err := srv.GetTask(ctx, ownerID, taskID)

		assert.Nil(t, got)
		assert.ErrorIs(t, err, domainerrors.ErrTaskNotFound)
	})

	t.Run("foreign task reads as missing", func(t *testing.T) {
		srv, mocks := newTaskServiceForTest(t)
		ctx := context.Background()
		foreign := existingTask(uuid.New())

		mocks.expectTx(ctx)
		mocks.expectTaskRepo()
		mocks.taskRepo.EXPECT().FindByID(ctx, ownerID, foreign.ID).Return(foreign, nil)

		got, err := srv.GetTask(ctx, ownerID, foreign.ID)

		assert.Nil(t, got)
		assert.ErrorIs(t, err, domainerrors.ErrTaskNotFound)
	})
}

func TestTaskService_UpdateTask_PartialFields(t *testing.T) {
	srv, mocks := newTaskServiceForTest(t)
	ctx := context.Background()
	ownerID := uuid.New()
	task := existingTask(ownerID)
	previous := task.UpdatedAt
	title := "write final report"

	mocks.expectTx(ctx)
	mocks.expectTaskRepo()
	mocks.taskRepo.EXPECT().FindByIDForUpdate(ctx, ownerID, task.ID).Return(task, nil)
	mocks.taskRepo.EXPECT().Update(ctx, task).Return(nil)

	got, err := srv.UpdateTask(ctx, ownerID, task.ID, &usecase.UpdateTaskInput{Title: &title})

	require.NoError(t, err)
	assert.Equal(t, title, got.Title)
	assert.Equal(t, "quarterly", got.Description)
	assert.False(t, got.Completed)
	assert.True(t, got.UpdatedAt.After(previous))
	assert.Equal(t, ownerID, got.UserID)
}

func TestTaskService_UpdateTask_EmptyTitle(t *testing.T) {
	srv, mocks := newTaskServiceForTest(t)
	empty := ""

	got, err := srv.UpdateTask(context.Background(), uuid.New(), uuid.New(), &usecase.UpdateTaskInput{Title: &empty})

	assert.Nil(t, got)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	mocks.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestTaskService_SetCompletion_BumpsStalledClock(t *testing.T) {
	srv, mocks := newTaskServiceForTest(t)
	ctx := context.Background()
	ownerID := uuid.New()
	task := existingTask(ownerID)
	task.UpdatedAt = taskClock

	mocks.expectTx(ctx)
	mocks.expectTaskRepo()
	mocks.taskRepo.EXPECT().FindByIDForUpdate(ctx, ownerID, task.ID).Return(task, nil)
	mocks.taskRepo.EXPECT().Update(ctx, task).Return(nil)

	got, err := srv.SetCompletion(ctx, ownerID, task.ID, true)

	require.NoError(t, err)
	assert.True(t, got.Completed)
	assert.Equal(t, taskClock.Add(time.Microsecond), got.UpdatedAt)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))
}

func TestTaskService_SetCompletion_Missing(t *testing.T) {
	srv, mocks := newTaskServiceForTest(t)
	ctx := context.Background()
	ownerID, taskID := uuid.New(), uuid.New()

	mocks.expectTx(ctx)
	mocks.expectTaskRepo()
	mocks.taskRepo.EXPECT().FindByIDForUpdate(ctx, ownerID, taskID).Return(nil, repository.ErrTaskNotFound)

	got, err := srv.SetCompletion(ctx, ownerID, taskID, true)

	assert.Nil(t, got)
	assert.ErrorIs(t, err, domainerrors.ErrTaskNotFound)
	mocks.taskRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestTaskService_DeleteTask(t *testing.T) {
	srv, mocks := newTaskServiceForTest(t)
	ctx := context.Background()
	ownerID := uuid.New()
	task := existingTask(ownerID)

	mocks.expectTx(ctx)
	mocks.expectTaskRepo()
	mocks.taskRepo.EXPECT().FindByIDForUpdate(ctx, ownerID, task.ID).Return(task, nil)
	mocks.taskRepo.EXPECT().Delete(ctx, ownerID, task.ID).Return(nil)

	require.NoError(t, srv.DeleteTask(ctx, ownerID, task.ID))
}

func TestTaskService_DeleteTask_StorageError(t *testing.T) {
	srv, mocks := newTaskServiceForTest(t)
	ctx := context.Background()
	ownerID := uuid.New()
	task := existingTask(ownerID)
	dbErr := domainerrors.NewDatabaseExecuteError(errors.New("connection reset"), "failed to delete task")

	mocks.expectTx(ctx)
	mocks.expectTaskRepo()
	mocks.taskRepo.EXPECT().FindByIDForUpdate(ctx, ownerID, task.ID).Return(task, nil)
	mocks.taskRepo.EXPECT().Delete(ctx, ownerID, task.ID).Return(dbErr)

	err := srv.DeleteTask(ctx, ownerID, task.ID)

	require.Error(t, err)
	assert.NotErrorIs(t, err, domainerrors.ErrTaskNotFound)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", appErr.ErrorCode())
}

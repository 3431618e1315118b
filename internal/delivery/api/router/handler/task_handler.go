package handler

import (
	"log/slog"
	"net/http"

	"tasker/internal/delivery/api/response"
	"tasker/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// TaskHandlerParams holds dependencies for TaskHandler, injected by Fx.
type TaskHandlerParams struct {
	fx.In

	TaskUC usecase.TaskUsecase
	Logger *slog.Logger
}

// TaskHandler holds dependencies for task-related handlers
type TaskHandler struct {
	taskUC usecase.TaskUsecase
	logger *slog.Logger
}

// NewTaskHandler is the constructor for TaskHandler
func NewTaskHandler(params TaskHandlerParams) *TaskHandler {
	return &TaskHandler{
		taskUC: params.TaskUC,
		logger: params.Logger,
	}
}

// CreateTaskRequest represents the request body for creating a task
type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"max=10000"`
	Completed   bool   `json:"completed"`
}

// UpdateTaskRequest represents a partial update; absent fields are kept
type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=255"`
	Description *string `json:"description" validate:"omitempty,max=10000"`
	Completed   *bool   `json:"completed"`
}

// CompleteTaskRequest represents the request body for the completion toggle
type CompleteTaskRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

// ListTasks returns all tasks of the path owner
func (h *TaskHandler) ListTasks(c echo.Context) error {
	ownerID, err := pathOwnerID(c)
	if err != nil {
		return err
	}

	tasks, err := h.taskUC.ListTasks(c.Request().Context(), ownerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, tasks)
}

// CreateTask creates a task for the path owner
func (h *TaskHandler) CreateTask(c echo.Context) error {
	ownerID, err := pathOwnerID(c)
	if err != nil {
		return err
	}

	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid task input")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.taskUC.CreateTask(c.Request().Context(), ownerID, &usecase.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, task)
}

// GetTask returns one task of the path owner
func (h *TaskHandler) GetTask(c echo.Context) error {
	ownerID, taskID, err := pathTaskIDs(c)
	if err != nil {
		return err
	}

	task, err := h.taskUC.GetTask(c.Request().Context(), ownerID, taskID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, task)
}

// UpdateTask applies a partial update to one task
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	ownerID, taskID, err := pathTaskIDs(c)
	if err != nil {
		return err
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid task input")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.taskUC.UpdateTask(c.Request().Context(), ownerID, taskID, &usecase.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, task)
}

// SetCompletion toggles the completion flag of one task
func (h *TaskHandler) SetCompletion(c echo.Context) error {
	ownerID, taskID, err := pathTaskIDs(c)
	if err != nil {
		return err
	}

	var req CompleteTaskRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid completion input")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.taskUC.SetCompletion(c.Request().Context(), ownerID, taskID, *req.Completed)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, task)
}

// DeleteTask removes one task of the path owner
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	ownerID, taskID, err := pathTaskIDs(c)
	if err != nil {
		return err
	}

	if err := h.taskUC.DeleteTask(c.Request().Context(), ownerID, taskID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.NoContent(c)
}

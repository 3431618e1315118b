package handler

import (
	"log/slog"
	"net/http"

	"tasker/internal/delivery/api/response"
	"tasker/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// UserHandler serves the owner's own account.
type UserHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

// GetUser returns the public profile of the path owner
func (h *UserHandler) GetUser(c echo.Context) error {
	ownerID, err := pathOwnerID(c)
	if err != nil {
		return err
	}

	user, err := h.userUC.GetUser(c.Request().Context(), ownerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user)
}

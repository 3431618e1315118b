// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"tasker/internal/delivery/api/middleware"
	"tasker/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	TaskHandler    *handler.TaskHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	taskHandler    *handler.TaskHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		userHandler:    params.UserHandler,
		taskHandler:    params.TaskHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/", handler.Welcome)
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/logout", r.authHandler.Logout, r.authMiddleware.Authenticate)
		authGroup.GET("/me", r.authHandler.Me, r.authMiddleware.Authenticate)
	}

	requireOwner := r.authMiddleware.RequireOwner(handler.ParamUserID)

	// User routes: the path owner must be the token owner
	userGroup := e.Group("/users/:user_id", r.authMiddleware.Authenticate, requireOwner)
	{
		userGroup.GET("", r.userHandler.GetUser)
	}

	// Task routes
	taskGroup := e.Group("/tasks/:user_id/tasks", r.authMiddleware.Authenticate, requireOwner)
	{
		taskGroup.GET("", r.taskHandler.ListTasks)
		taskGroup.POST("", r.taskHandler.CreateTask)
		taskGroup.GET("/:task_id", r.taskHandler.GetTask)
		taskGroup.PUT("/:task_id", r.taskHandler.UpdateTask)
		taskGroup.DELETE("/:task_id", r.taskHandler.DeleteTask)
		taskGroup.PATCH("/:task_id/complete", r.taskHandler.SetCompletion)
	}
}

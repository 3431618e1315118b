// Package handler contains the echo handlers of the HTTP API.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"tasker/internal/delivery/api/middleware"
	"tasker/internal/delivery/api/response"
	"tasker/internal/domain/entity"
	"tasker/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Logger *slog.Logger
}

// AuthHandler serves registration, login and token introspection.
type AuthHandler struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		logger: params.Logger,
	}
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,password"`
	Name     string `json:"name" validate:"omitempty,max=100"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the token envelope returned by Login.
type LoginResponse struct {
	AccessToken string             `json:"access_token"`
	TokenType   string             `json:"token_type"`
	ExpiresIn   int64              `json:"expires_in"`
	User        *entity.PublicUser `json:"user"`
}

// MeResponse describes the identity behind the presented token.
type MeResponse struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
	ExpiresIn int64     `json:"expires_in"`
}

// Register handles account creation
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authUC.Register(c.Request().Context(), &usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user)
}

// Login handles credential exchange for an access token
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	out, err := h.authUC.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, LoginResponse{
		AccessToken: out.AccessToken,
		TokenType:   out.TokenType,
		ExpiresIn:   int64(out.ExpiresIn / time.Second),
		User:        out.User,
	})
}

// Logout acknowledges a logout. Tokens are stateless, so the client discards its copy.
func (h *AuthHandler) Logout(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{
		"message": "Logged out; discard the access token",
	})
}

// Me returns the claims of the presented token
func (h *AuthHandler) Me(c echo.Context) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Could not validate credentials")
	}

	return response.Success(c, http.StatusOK, MeResponse{
		UserID:    claims.UserID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt,
		ExpiresIn: int64(claims.ExpiresIn(time.Now()) / time.Second),
	})
}

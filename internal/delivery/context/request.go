// Package context carries the request id and the request-scoped logger
// between the HTTP layer and the services.
package context

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
)

type ContextKey string

const (
	KeyRequestID ContextKey = "request_id"
	KeyLogger    ContextKey = "logger"

	HeaderXRequestID = "X-Request-Id"
)

// GetRequestID returns the id assigned by the request id middleware, or an
// empty string outside of it.
func GetRequestID(c echo.Context) string {
	id, _ := c.Get(string(KeyRequestID)).(string)

	return id
}

// SetRequestID stores the request id on both the echo context and the
// request's context.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
	c.SetRequest(c.Request().WithContext(WithRequestID(c.Request().Context(), requestID)))
}

func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(KeyRequestID).(string)

	return id
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// BindUser extends the request-scoped logger with the authenticated caller's
// id, so later log lines carry both the request id and the user id.
func BindUser(c echo.Context, fallback *slog.Logger, userID string) {
	ctx := c.Request().Context()
	logger := GetLoggerOrDefault(ctx, fallback).With(slog.String("user_id", userID))

	c.SetRequest(c.Request().WithContext(WithLogger(ctx, logger)))
}

// GetLoggerOrDefault returns the request-scoped logger, or fallback when the
// context carries none.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

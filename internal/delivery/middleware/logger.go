package middleware

import (
	"log/slog"
	"time"

	"tasker/config"
	deliverycontext "tasker/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// LoggerMiddleware writes one access log line per request. Only the path is
// logged; query strings and bodies may carry credentials.
type LoggerMiddleware struct {
	logger    *slog.Logger
	debug     bool
	skipPaths map[string]struct{}
}

func NewLoggerMiddleware(logger *slog.Logger, config *config.Config) *LoggerMiddleware {
	return &LoggerMiddleware{
		logger:    logger,
		debug:     config.Env.Debug,
		skipPaths: map[string]struct{}{"/health": {}},
	}
}

// Handle logs failed requests always and successful ones in debug mode.
func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, skip := m.skipPaths[c.Request().URL.Path]; skip {
			return next(c)
		}

		start := time.Now()
		err := next(c)
		if err != nil {
			// Render now so the logged status is the one the client sees.
			c.Error(err)
		}

		status := c.Response().Status
		if m.debug || status >= 400 {
			m.logRequest(c, start, status, err)
		}

		return nil
	}
}

func (m *LoggerMiddleware) logRequest(c echo.Context, start time.Time, status int, err error) {
	req := c.Request()
	ctx := req.Context()

	attrs := []slog.Attr{
		slog.String("method", req.Method),
		slog.String("route", c.Path()),
		slog.String("uri", req.URL.Path),
		slog.Int("status", status),
		slog.Duration("latency", time.Since(start)),
		slog.String("remote_ip", c.RealIP()),
		slog.String("user_agent", req.UserAgent()),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}

	level := slog.LevelInfo
	switch {
	case status >= 500:
		level = slog.LevelError
	case status >= 400:
		level = slog.LevelWarn
	}

	// The scoped logger already carries request_id and, once authenticated, user_id.
	deliverycontext.GetLoggerOrDefault(ctx, m.logger).LogAttrs(ctx, level, "HTTP request", attrs...)
}

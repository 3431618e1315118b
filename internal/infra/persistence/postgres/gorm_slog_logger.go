package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tasker/config"
	"tasker/internal/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// gormSlogLogger routes gorm's logging into slog. Bound parameters are never
// rendered into the logged SQL: the users table holds password hashes.
type gormSlogLogger struct {
	logger        *slog.Logger
	level         logger.LogLevel
	slowThreshold time.Duration
}

func newGormSlogLogger(baseLogger *slog.Logger, cfg *config.Config) logger.Interface {
	level := logger.Warn
	slowThreshold := time.Duration(0)
	if cfg != nil {
		if cfg.Env.Debug {
			level = logger.Info
		}
		if cfg.Database != nil {
			slowThreshold = cfg.Database.SlowQueryThreshold
		}
	}

	return &gormSlogLogger{
		logger:        baseLogger,
		level:         level,
		slowThreshold: slowThreshold,
	}
}

func (l *gormSlogLogger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

// ParamsFilter implements gorm.ParamsFilter. Dropping the params
// leaves placeholders in the rendered statement.
func (l *gormSlogLogger) ParamsFilter(_ context.Context, sql string, _ ...any) (string, []any) {
	return sql, nil
}

func (l *gormSlogLogger) Info(ctx context.Context, msg string, args ...any) {
	l.log(ctx, logger.Info, slog.LevelInfo, msg, args...)
}

func (l *gormSlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.log(ctx, logger.Warn, slog.LevelWarn, msg, args...)
}

func (l *gormSlogLogger) Error(ctx context.Context, msg string, args ...any) {
	l.log(ctx, logger.Error, slog.LevelError, msg, args...)
}

func (l *gormSlogLogger) log(ctx context.Context, enabledAt logger.LogLevel, level slog.Level, msg string, args ...any) {
	if l.logger == nil || l.level < enabledAt {
		return
	}

	l.logger.LogAttrs(ctx, level, "Database", slog.String("message", fmt.Sprintf(msg, args...)))
}

// Trace logs failed queries at error, slow ones at warn and, in debug, every
// query at info. Not-found lookups are routine here and are not errors.
func (l *gormSlogLogger) Trace(ctx context.Context, begin time.Time, sqlAndRowsFn func() (string, int64), err error) {
	if l.logger == nil || l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && l.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		attrs := append(queryAttrs(sqlAndRowsFn, elapsed), slog.String("error", err.Error()))
		l.logger.LogAttrs(ctx, slog.LevelError, "Database query failed", attrs...)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= logger.Warn:
		attrs := append(queryAttrs(sqlAndRowsFn, elapsed), slog.Duration("slowThreshold", l.slowThreshold))
		l.logger.LogAttrs(ctx, slog.LevelWarn, "Database slow query", attrs...)
	case l.level >= logger.Info:
		l.logger.LogAttrs(ctx, slog.LevelDebug, "Database query", queryAttrs(sqlAndRowsFn, elapsed)...)
	}
}

func queryAttrs(sqlAndRowsFn func() (string, int64), elapsed time.Duration) []slog.Attr {
	sql, rows := sqlAndRowsFn()

	return []slog.Attr{
		slog.Duration("elapsed", elapsed),
		slog.Int64("rows", rows),
		slog.String("sql", sql),
	}
}

package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"
)

const (
	poolMonitorInterval  = 5 * time.Second
	poolWaitWarnDuration = 50 * time.Millisecond
)

// poolMonitor reports connection-pool contention. Every request opens a
// transaction, so waiting for a connection shows up directly as API latency.
type poolMonitor struct {
	logger   *slog.Logger
	stats    func() sql.DBStats
	interval time.Duration
}

func newPoolMonitor(logger *slog.Logger, sqlDB *sql.DB) *poolMonitor {
	return &poolMonitor{
		logger:   logger,
		stats:    sqlDB.Stats,
		interval: poolMonitorInterval,
	}
}

func (m *poolMonitor) run(ctx context.Context) {
	if m.logger == nil {
		return
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	prev := m.stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := m.stats()
			m.observe(ctx, prev, cur)
			prev = cur
		}
	}
}

// observe logs the waits that happened between two samples: at warn when the
// added wait time crosses poolWaitWarnDuration, at debug otherwise.
func (m *poolMonitor) observe(ctx context.Context, prev, cur sql.DBStats) {
	waits := cur.WaitCount - prev.WaitCount
	if waits <= 0 {
		return
	}

	waited := cur.WaitDuration - prev.WaitDuration
	attrs := []slog.Attr{
		slog.Int64("waitCountDelta", waits),
		slog.Duration("waitDurationDelta", waited),
		slog.Duration("avgWait", waited/time.Duration(waits)),
		slog.Int("maxOpenConns", cur.MaxOpenConnections),
		slog.Int("openConns", cur.OpenConnections),
		slog.Int("inUseConns", cur.InUse),
		slog.Int("idleConns", cur.Idle),
	}

	if waited >= poolWaitWarnDuration {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "Postgres pool wait detected", attrs...)

		return
	}
	m.logger.LogAttrs(ctx, slog.LevelDebug, "Postgres pool wait observed", attrs...)
}

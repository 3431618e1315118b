package postgres

import (
	"context"
	"log/slog"

	"tasker/config"
	"tasker/internal/domain/lifecycle"
	"tasker/internal/errors"
	"tasker/internal/infra/persistence/model"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the primary (and any replicas) and registers lifecycle hooks:
// on start it pings, optionally migrates the schema and starts the pool
// monitor; on stop it closes the pool.
func New(params Params) (*gorm.DB, error) {
	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}
	db = db.Session(&gorm.Session{
		// Multi-statement atomicity comes from TransactionManager.Execute.
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	monitor := newPoolMonitor(params.Logger, sqlDB)
	monitorCtx, cancelMonitor := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}

			if params.Config.Database != nil && params.Config.Database.AutoMigrate {
				if err := Migrate(ctx, db, params.Logger); err != nil {
					return err
				}
			}

			go monitor.run(monitorCtx)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelMonitor()

			return errors.WithStack(sqlDB.Close())
		},
	})

	return db, nil
}

// Migrate creates or updates the users and tasks tables, including the unique
// email index and the owner index on tasks.
func Migrate(ctx context.Context, db *gorm.DB, logger *slog.Logger) error {
	if err := db.WithContext(ctx).AutoMigrate(model.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}

	if logger != nil {
		logger.InfoContext(ctx, "Database schema migrated", slog.Int("tables", len(model.All())))
	}

	return nil
}

package postgres

import (
	"context"
	"database/sql"

	domainerrors "tasker/internal/domain/errors"
	"tasker/internal/domain/repository"
	"tasker/internal/errors"

	"gorm.io/gorm"
)

// gormTransactionManager runs each unit of work in a READ COMMITTED
// transaction. Task mutations take row locks with SELECT ... FOR UPDATE, so
// concurrent writers to one task are serialized inside Execute.
type gormTransactionManager struct {
	db   *gorm.DB
	opts *sql.TxOptions
}

// gormRepositoryFactory binds repositories to a single transaction.
type gormRepositoryFactory struct {
	tx *gorm.DB
}

func (f *gormRepositoryFactory) UserRepo() repository.UserRepository {
	return NewUserRepository(f.tx)
}

func (f *gormRepositoryFactory) TaskRepo() repository.TaskRepository {
	return NewTaskRepository(f.tx)
}

func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{
		db:   db,
		opts: &sql.TxOptions{Isolation: sql.LevelReadCommitted},
	}
}

// Execute begins a transaction, hands fn a factory bound to it and commits
// when fn succeeds. Begin and commit failures surface as ErrTransactionFailed;
// errors from fn are returned as they are.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	tx := tm.db.WithContext(ctx).Begin(tm.opts)
	if tx.Error != nil {
		return errors.Wrap(domainerrors.ErrTransactionFailed, tx.Error.Error())
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(&gormRepositoryFactory{tx: tx}); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return errors.Wrapf(err, "rollback failed: %v", rbErr)
		}

		return err
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(domainerrors.ErrTransactionFailed, err.Error())
	}

	return nil
}

package repository

import "context"

// TransactionManager runs a unit of work against users and tasks atomically.
// Services route every read and write of an operation through one Execute
// call, so an ownership check and the mutation it guards see the same rows.
type TransactionManager interface {
	// Execute commits when fn returns nil and rolls back otherwise; the error
	// from fn is returned unchanged.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory hands out repositories bound to the running transaction.
type RepositoryFactory interface {
	UserRepo() UserRepository
	TaskRepo() TaskRepository
}

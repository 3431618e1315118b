package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"tasker/internal/domain/repository"
	mockRepo "tasker/internal/mocks/repository"

	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// txMocks bundles a transaction manager whose Execute runs the callback
// against mocked repositories and returns the callback's error.
type txMocks struct {
	txManager *mockRepo.MockTransactionManager
	factory   *mockRepo.MockRepositoryFactory
	userRepo  *mockRepo.MockUserRepository
	taskRepo  *mockRepo.MockTaskRepository
}

func newTxMocks(t *testing.T) *txMocks {
	t.Helper()

	return &txMocks{
		txManager: mockRepo.NewMockTransactionManager(t),
		factory:   mockRepo.NewMockRepositoryFactory(t),
		userRepo:  mockRepo.NewMockUserRepository(t),
		taskRepo:  mockRepo.NewMockTaskRepository(t),
	}
}

func (m *txMocks) expectTx(ctx context.Context) {
	m.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(m.factory)
		})
}

func (m *txMocks) expectUserRepo() {
	m.factory.EXPECT().UserRepo().Return(m.userRepo)
}

func (m *txMocks) expectTaskRepo() {
	m.factory.EXPECT().TaskRepo().Return(m.taskRepo)
}

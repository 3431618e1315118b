package api

import (
	"context"
	"maps"
	"slices"
	"sync"

	"tasker/internal/domain/entity"
	domainerrors "tasker/internal/domain/errors"
	"tasker/internal/domain/repository"

	"github.com/google/uuid"
)

// memoryStore is an in-memory TransactionManager. Transactions are serialized
// and roll back by restoring a snapshot.
type memoryStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]entity.User
	tasks map[uuid.UUID]entity.Task
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users: make(map[uuid.UUID]entity.User),
		tasks: make(map[uuid.UUID]entity.Task),
	}
}

func (s *memoryStore) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := maps.Clone(s.users)
	tasks := maps.Clone(s.tasks)

	if err := fn(s); err != nil {
		s.users = users
		s.tasks = tasks

		return err
	}

	return nil
}

func (s *memoryStore) UserRepo() repository.UserRepository { return memoryUsers{s} }
func (s *memoryStore) TaskRepo() repository.TaskRepository { return memoryTasks{s} }

type memoryUsers struct{ s *memoryStore }

func (r memoryUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return &user, nil
}

func (r memoryUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.s.users {
		if user.Email == email {
			return &user, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r memoryUsers) Create(_ context.Context, user *entity.User) error {
	for _, existing := range r.s.users {
		if existing.Email == user.Email {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.s.users[user.ID] = *user

	return nil
}

type memoryTasks struct{ s *memoryStore }

func (r memoryTasks) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.Task, error) {
	tasks := make([]*entity.Task, 0)
	for _, task := range r.s.tasks {
		if task.UserID == ownerID {
			tasks = append(tasks, &task)
		}
	}
	slices.SortFunc(tasks, func(a, b *entity.Task) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	return tasks, nil
}

func (r memoryTasks) FindByID(_ context.Context, ownerID, taskID uuid.UUID) (*entity.Task, error) {
	task, ok := r.s.tasks[taskID]
	if !ok || task.UserID != ownerID {
		return nil, repository.ErrTaskNotFound
	}

	return &task, nil
}

func (r memoryTasks) FindByIDForUpdate(ctx context.Context, ownerID, taskID uuid.UUID) (*entity.Task, error) {
	return r.FindByID(ctx, ownerID, taskID)
}

func (r memoryTasks) Create(_ context.Context, task *entity.Task) error {
	if _, ok := r.s.users[task.UserID]; !ok {
		return domainerrors.ErrUserNotFound.WrapMessage("task owner does not exist")
	}
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	r.s.tasks[task.ID] = *task

	return nil
}

func (r memoryTasks) Update(_ context.Context, task *entity.Task) error {
	existing, ok := r.s.tasks[task.ID]
	if !ok || existing.UserID != task.UserID {
		return repository.ErrTaskNotFound
	}
	r.s.tasks[task.ID] = *task

	return nil
}

func (r memoryTasks) Delete(_ context.Context, ownerID, taskID uuid.UUID) error {
	existing, ok := r.s.tasks[taskID]
	if !ok || existing.UserID != ownerID {
		return repository.ErrTaskNotFound
	}
	delete(r.s.tasks, taskID)

	return nil
}

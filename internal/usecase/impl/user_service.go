package impl

import (
	"context"
	"log/slog"

	"tasker/internal/domain/entity"
	domainerrors "tasker/internal/domain/errors"
	"tasker/internal/domain/policy"
	"tasker/internal/domain/repository"
	"tasker/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager repository.TransactionManager
	guard     *policy.OwnerGuard
	logger    *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Guard     *policy.OwnerGuard
	Logger    *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager: params.TxManager,
		guard:     params.Guard,
		logger:    params.Logger,
	}
}

// GetUser returns the public projection of the owner's own account.
func (srv *userService) GetUser(ctx context.Context, ownerID uuid.UUID) (*entity.PublicUser, error) {
	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.UserRepo().FindByID(ctx, ownerID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.WithStack(domainerrors.ErrUserNotFound)
			}

			return errors.Wrap(err, "failed to find user by id")
		}
		user = found

		return srv.guard.AuthorizeResource(user, ownerID, domainerrors.ErrUserNotFound)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user")
	}

	return user.Public(), nil
}

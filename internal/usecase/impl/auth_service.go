// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "tasker/internal/delivery/context"
	"tasker/internal/domain/entity"
	domainerrors "tasker/internal/domain/errors"
	"tasker/internal/domain/repository"
	"tasker/internal/domain/service"
	logs "tasker/internal/infra/log"
	"tasker/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// dummyPassword feeds the hash that absent users are checked against.
const dummyPassword = "dummy-password-for-timing-equalization"

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
	dummyHash    string
	now          func() time.Time
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It hashes a throwaway
// password once so that lookups of unknown emails still pay for a bcrypt check.
func NewAuthService(params AuthServiceParams) (usecase.AuthUsecase, error) {
	dummyHash, err := params.Hasher.Hash(dummyPassword)
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare dummy password hash")
	}

	return &authService{
		txManager:    params.TxManager,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
		dummyHash:    dummyHash,
		now:          time.Now,
	}, nil
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new account. The email pre-check and the insert share a
// transaction; the unique index still decides when two registrations race.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.PublicUser, error) {
	srv.log(ctx).Debug("Starting registration", slog.String("email", input.Email))

	// Hash outside the transaction (bcrypt is CPU-bound).
	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		logs.Security(ctx, srv.log(ctx), logs.EventRegisterRejected,
			slog.String("email", input.Email),
			slog.String("reason", "hash_failed"),
		)

		return nil, errors.Wrap(err, "failed to hash password")
	}

	now := srv.now().UTC().Truncate(time.Microsecond)
	user := &entity.User{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		_, findErr := userRepo.FindByEmail(ctx, input.Email)
		if findErr == nil {
			return errors.WithStack(domainerrors.ErrUserAlreadyExists)
		}
		if !errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(findErr, "failed to check existing email")
		}

		if createErr := userRepo.Create(ctx, user); createErr != nil {
			return errors.Wrap(createErr, "failed to create user")
		}

		return nil
	})
	if err != nil {
		reason := "storage_error"
		if errors.Is(err, domainerrors.ErrUserAlreadyExists) {
			reason = "email_taken"
		}
		logs.Security(ctx, srv.log(ctx), logs.EventRegisterRejected,
			slog.String("email", input.Email),
			slog.String("reason", reason),
		)

		return nil, errors.Wrap(err, "registration failed")
	}

	logs.Security(ctx, srv.log(ctx), logs.EventRegisterSucceeded,
		slog.String("userID", user.ID.String()),
		slog.String("email", user.Email),
	)

	return user.Public(), nil
}

// Authenticate checks credentials. Unknown email and wrong password both
// yield (nil, nil) after exactly one bcrypt comparison.
func (srv *authService) Authenticate(ctx context.Context, email, password string) (*entity.PublicUser, error) {
	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, findErr := repoFactory.UserRepo().FindByEmail(ctx, email)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrUserNotFound) {
				return nil
			}

			return errors.Wrap(findErr, "failed to find user by email")
		}
		user = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user for authentication")
	}

	if user == nil {
		srv.hasher.Check(password, srv.dummyHash)

		return nil, nil
	}

	if !srv.hasher.Check(password, user.PasswordHash) {
		return nil, nil
	}

	return user.Public(), nil
}

// IssueTokenFor mints a token for user. A non-positive ttl means the default TTL.
func (srv *authService) IssueTokenFor(user *entity.PublicUser, ttl time.Duration) (string, error) {
	if user == nil {
		return "", errors.New("cannot issue token for nil user")
	}
	if ttl <= 0 {
		ttl = srv.tokenService.DefaultTTL()
	}

	token, err := srv.tokenService.Issue(service.Claims{
		UserID: user.ID.String(),
		Email:  user.Email,
	}, ttl)
	if err != nil {
		return "", errors.Wrap(err, "failed to issue token")
	}

	return token, nil
}

// Login orchestrates the user login process.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting user login", slog.String("email", input.Email))

	user, err := srv.Authenticate(ctx, input.Email, input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "login failed")
	}
	if user == nil {
		logs.Security(ctx, srv.log(ctx), logs.EventLoginFailed, slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	ttl := srv.tokenService.LoginTTL()
	token, err := srv.IssueTokenFor(user, ttl)
	if err != nil {
		return nil, errors.Wrap(err, "login failed")
	}

	logs.Security(ctx, srv.log(ctx), logs.EventLoginSucceeded,
		slog.String("userID", user.ID.String()),
		slog.String("email", user.Email),
	)

	return &usecase.LoginOutput{
		AccessToken: token,
		TokenType:   service.TokenType,
		ExpiresIn:   ttl,
		User:        user,
	}, nil
}

// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"tasker/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// LoginOutput returns the access token minted after a successful login.
type LoginOutput struct {
	AccessToken string
	TokenType   string
	ExpiresIn   time.Duration
	User        *entity.PublicUser
}

// AuthUsecase defines registration and credential checks.
type AuthUsecase interface {
	// Register creates a user. A taken email fails with ErrUserAlreadyExists.
	Register(ctx context.Context, input *RegisterInput) (*entity.PublicUser, error)

	// Authenticate returns (nil, nil) when the email is unknown or the password
	// does not match. The two cases are indistinguishable to the caller.
	Authenticate(ctx context.Context, email, password string) (*entity.PublicUser, error)

	// IssueTokenFor mints an identity token for an already authenticated user.
	IssueTokenFor(user *entity.PublicUser, ttl time.Duration) (string, error)

	// Login composes Authenticate and IssueTokenFor using the login TTL.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}

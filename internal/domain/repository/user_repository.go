// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"tasker/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by exact email match.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user. A duplicate email surfaces as
	// domainerrors.ErrUserAlreadyExists, whatever the pre-checks said.
	Create(ctx context.Context, user *entity.User) error
}

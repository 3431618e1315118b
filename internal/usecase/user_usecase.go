package usecase

import (
	"context"

	"tasker/internal/domain/entity"

	"github.com/google/uuid"
)

// UserUsecase exposes the public profile of an account to its owner.
type UserUsecase interface {
	GetUser(ctx context.Context, ownerID uuid.UUID) (*entity.PublicUser, error)
}

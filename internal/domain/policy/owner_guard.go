// Package policy holds the access-control rules that bind an authenticated
// identity to the resources it may act on.
package policy

import (
	"tasker/internal/domain/entity"
	domainerrors "tasker/internal/domain/errors"
	"tasker/internal/domain/service"
	"tasker/internal/errors"

	"github.com/google/uuid"
)

// OwnerGuard enforces single-owner isolation.
type OwnerGuard struct{}

// NewOwnerGuard is the constructor for OwnerGuard.
func NewOwnerGuard() *OwnerGuard {
	return &OwnerGuard{}
}

// Authorize compares the owner declared in the request path with the token
// identity. A missing identity is Unauthorized and is checked first; any
// mismatch is Forbidden, whether or not the addressed resource exists.
func (g *OwnerGuard) Authorize(pathOwnerID string, claims *service.Claims) error {
	if claims == nil || claims.UserID == "" {
		return errors.WithStack(domainerrors.ErrUnauthorized)
	}

	if pathOwnerID == "" || pathOwnerID != claims.UserID {
		return errors.WithStack(domainerrors.ErrForbidden)
	}

	return nil
}

// AuthorizeResource re-checks a loaded resource against the owner that was
// already authorized for the request. Resources are looked up owner-scoped,
// so a mismatch here reads as a missing resource.
func (g *OwnerGuard) AuthorizeResource(resource entity.Owned, ownerID uuid.UUID, notFound error) error {
	if resource == nil || resource.OwnerID() != ownerID {
		return errors.WithStack(notFound)
	}

	return nil
}

// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. It owns itself and every Task created under its ID.
type User struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Email        string    // Login identifier, unique and compared exactly as stored.
	Name         string    // Optional display name.
	PasswordHash string    // bcrypt digest. Never leaves the service layer.
	CreatedAt    time.Time // Timestamp of when this user account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this user's data.
}

// OwnerID implements Owned. A user record is owned by the user itself.
func (u *User) OwnerID() uuid.UUID {
	return u.ID
}

// Public returns the projection of the user that is safe to hand to callers.
func (u *User) Public() *PublicUser {
	if u == nil {
		return nil
	}

	return &PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// PublicUser is the externally visible user shape. It has no password hash field.
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

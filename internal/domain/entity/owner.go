package entity

import "github.com/google/uuid"

// Owned is implemented by every resource that belongs to a single user.
// Ownership checks go through this accessor instead of inspecting fields.
type Owned interface {
	OwnerID() uuid.UUID
}

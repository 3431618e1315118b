package entity

import (
	"time"

	"github.com/google/uuid"
)

// Task is a unit of work owned by exactly one user.
type Task struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"` // Owner. Immutable after creation.
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OwnerID implements Owned.
func (t *Task) OwnerID() uuid.UUID {
	return t.UserID
}

// Touch moves UpdatedAt to now. The result is always strictly after the
// previous UpdatedAt, even when the clock has not advanced at microsecond
// resolution (the precision Postgres stores).
func (t *Task) Touch(now time.Time) {
	next := now.UTC().Truncate(time.Microsecond)
	if !next.After(t.UpdatedAt) {
		next = t.UpdatedAt.Add(time.Microsecond)
	}
	t.UpdatedAt = next
}

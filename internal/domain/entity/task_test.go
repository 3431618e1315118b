package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTask_Touch(t *testing.T) {
	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		previous time.Time
		now      time.Time
		want     time.Time
	}{
		{
			name:     "clock advanced",
			previous: base,
			now:      base.Add(time.Second),
			want:     base.Add(time.Second),
		},
		{
			name:     "clock stalled",
			previous: base,
			now:      base,
			want:     base.Add(time.Microsecond),
		},
		{
			name:     "clock advanced below storage precision",
			previous: base,
			now:      base.Add(500 * time.Nanosecond),
			want:     base.Add(time.Microsecond),
		},
		{
			name:     "clock went backwards",
			previous: base,
			now:      base.Add(-time.Minute),
			want:     base.Add(time.Microsecond),
		},
		{
			name:     "non-UTC clock",
			previous: base,
			now:      base.Add(time.Hour).In(time.FixedZone("UTC+8", 8*3600)),
			want:     base.Add(time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &Task{UpdatedAt: tt.previous}
			task.Touch(tt.now)

			assert.True(t, task.UpdatedAt.Equal(tt.want), "got %s want %s", task.UpdatedAt, tt.want)
			assert.True(t, task.UpdatedAt.After(tt.previous))
		})
	}
}

func TestOwned(t *testing.T) {
	ownerID := uuid.New()

	var owned Owned = &Task{ID: uuid.New(), UserID: ownerID}
	assert.Equal(t, ownerID, owned.OwnerID())

	owned = &User{ID: ownerID}
	assert.Equal(t, ownerID, owned.OwnerID())
}

func TestUser_Public(t *testing.T) {
	user := &User{ID: uuid.New(), Email: "alice@example.com", Name: "Alice", PasswordHash: "secret-hash"}

	public := user.Public()
	assert.Equal(t, user.ID, public.ID)
	assert.Equal(t, user.Email, public.Email)
	assert.Equal(t, user.Name, public.Name)

	var nilUser *User
	assert.Nil(t, nilUser.Public())
}

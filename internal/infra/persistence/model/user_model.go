package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel mirrors the 'users' table. Email carries a unique index, which is
// what ultimately rejects concurrent registrations of the same address.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex:idx_users_email;not null"`
	Name         string    `gorm:"type:varchar(100)"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`

	Tasks []TaskModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate assigns a time-ordered UUID when the caller did not set one.
func (m *UserModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID != uuid.Nil {
		return nil
	}

	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	m.ID = id

	return nil
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskModel mirrors the 'tasks' table. UpdatedAt is written by the service
// layer so that it stays strictly increasing per task.
type TaskModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_tasks_user_id_created_at,priority:1"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Completed   bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"not null;index:idx_tasks_user_id_created_at,priority:2"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime:false"`
}

// TableName explicitly sets the table name for GORM.
func (TaskModel) TableName() string {
	return "tasks"
}

// BeforeCreate assigns a time-ordered UUID when the caller did not set one.
func (m *TaskModel) BeforeCreate(_ *gorm.DB) error {
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

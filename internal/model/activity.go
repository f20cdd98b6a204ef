package model

import (
	"time"

	"github.com/google/uuid"
)

// Activity — строка журнала изменений задачи. После записи не меняется
// и не удаляется, включая архивирование задачи.
type Activity struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	IssueID   uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Type      string    `gorm:"not null"`
	Field     *string
	OldValue  *string
	NewValue  *string
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Issue Issue `gorm:"foreignKey:IssueID"`
	User  User  `gorm:"foreignKey:UserID"`
}

// Типы записей журнала
const (
	ActivityCreated   = "created"
	ActivityUpdated   = "updated"
	ActivityCommented = "commented"
)

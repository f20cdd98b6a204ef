package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ExternalID string    `gorm:"uniqueIndex;not null"`
	Email      string    `gorm:"index;not null"`
	Name       string    `gorm:"not null"`
	AvatarURL  string
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

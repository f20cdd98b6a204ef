package model

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string    `gorm:"not null"`
	Description string
	Identifier  string    `gorm:"not null;uniqueIndex:idx_workspace_identifier"`
	WorkspaceID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_workspace_identifier"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null"`
	Color       string
	Icon        string
	Archived    bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`

	Workspace Workspace `gorm:"foreignKey:WorkspaceID"`
	Creator   User      `gorm:"foreignKey:CreatedBy"`
}

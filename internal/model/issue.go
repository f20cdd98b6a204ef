package model

import (
	"time"

	"github.com/google/uuid"
)

type Issue struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	WorkspaceID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_workspace_number"`
	Number      int       `gorm:"not null;uniqueIndex:idx_workspace_number"`
	Title       string    `gorm:"not null"`
	Description string
	StatusID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Priority    string     `gorm:"not null"`
	ProjectID   *uuid.UUID `gorm:"type:uuid;index"`
	AssigneeID  *uuid.UUID `gorm:"type:uuid;index"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null"`
	DueDate     *time.Time
	Estimate    *int
	Archived    bool `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Workspace Workspace `gorm:"foreignKey:WorkspaceID"`
	Status    Status    `gorm:"foreignKey:StatusID"`
	Project   *Project  `gorm:"foreignKey:ProjectID"`
	Assignee  *User     `gorm:"foreignKey:AssigneeID"`
	Creator   User      `gorm:"foreignKey:CreatedBy"`
	Labels    []Label   `gorm:"many2many:issue_labels"`
}

// Приоритеты задач (метки-подсказки, значение хранится строкой)
const (
	PriorityNone   = "No priority"
	PriorityUrgent = "Urgent"
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

package model

import (
	"github.com/google/uuid"
)

type Status struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	WorkspaceID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"not null"`
	Type        string    `gorm:"not null"`
	Color       string    `gorm:"not null"`
	Position    int       `gorm:"not null"`

	Workspace Workspace `gorm:"foreignKey:WorkspaceID"`
}

// Категории статусов
const (
	StatusTypeTriage = "triage"
	StatusTypeTodo   = "todo"
	StatusTypeDoing  = "doing"
	StatusTypeReview = "review"
	StatusTypeDone   = "done"
)

package model

import (
	"github.com/google/uuid"
)

// WorkspaceSequence хранит монотонный счетчик для пары (workspace, name).
// Единственная запись на пару; инкремент всегда атомарный (см. SequenceRepository).
type WorkspaceSequence struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	WorkspaceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_workspace_sequence"`
	Name        string    `gorm:"not null;uniqueIndex:idx_workspace_sequence"`
	Value       int       `gorm:"not null"`

	Workspace Workspace `gorm:"foreignKey:WorkspaceID"`
}

// Имя счетчика для нумерации задач
const SequenceIssueNumber = "issueNumber"

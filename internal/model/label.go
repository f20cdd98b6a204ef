package model

import (
	"time"

	"github.com/google/uuid"
)

type Label struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	WorkspaceID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"not null"`
	Color       string    `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`

	Workspace Workspace `gorm:"foreignKey:WorkspaceID"`
	Issues    []Issue   `gorm:"many2many:issue_labels"`
}

// IssueLabel — связь задачи и метки. Пара (issue, label) уникальна.
type IssueLabel struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	IssueID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_issue_label"`
	LabelID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_issue_label"`
}

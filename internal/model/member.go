package model

import (
	"time"

	"github.com/google/uuid"
)

// WorkspaceMember представляет связь между пользователем и рабочим пространством
type WorkspaceMember struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	WorkspaceID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_workspace_user"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_workspace_user"`
	Role        string    `gorm:"not null;check:role IN ('admin', 'member')"`
	JoinedAt    time.Time `gorm:"autoCreateTime"`

	Workspace Workspace `gorm:"foreignKey:WorkspaceID"`
	User      User      `gorm:"foreignKey:UserID"`
}

// Роли участников рабочего пространства
const (
	RoleAdmin  = "admin"  // создатель, полный доступ
	RoleMember = "member" // обычный участник
)

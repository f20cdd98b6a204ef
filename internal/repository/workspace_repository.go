package repository

import (
	"context"
	"errors"

	"tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Статусы, создаваемые для каждого нового рабочего пространства
var defaultStatuses = []model.Status{
	{Name: "Backlog", Type: model.StatusTypeTriage, Position: 0, Color: "#8891A4"},
	{Name: "Todo", Type: model.StatusTypeTodo, Position: 1, Color: "#8FBCBB"},
	{Name: "In Progress", Type: model.StatusTypeDoing, Position: 2, Color: "#5E81AC"},
	{Name: "Review", Type: model.StatusTypeReview, Position: 3, Color: "#B48EAD"},
	{Name: "Done", Type: model.StatusTypeDone, Position: 4, Color: "#A3BE8C"},
}

// Метки приоритетов, создаваемые для каждого нового рабочего пространства
var defaultLabels = []model.Label{
	{Name: model.PriorityNone, Color: "#1F2937"},
	{Name: model.PriorityUrgent, Color: "#DC2626"},
	{Name: model.PriorityHigh, Color: "#EA580C"},
	{Name: model.PriorityMedium, Color: "#2563EB"},
	{Name: model.PriorityLow, Color: "#0EA5E9"},
}

type WorkspaceRepository struct {
	db *gorm.DB
}

type WorkspaceRepositoryInterface interface {
	Create(ctx context.Context, workspace *model.Workspace) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Workspace, error)
	GetByIdentifier(ctx context.Context, identifier string) (*model.Workspace, error)
	GetForUser(ctx context.Context, userID uuid.UUID) ([]model.Workspace, error)
	GetMembership(ctx context.Context, workspaceID, userID uuid.UUID) (*model.WorkspaceMember, error)
	GetMembers(ctx context.Context, workspaceID uuid.UUID) ([]model.WorkspaceMember, error)
	GetUsers(ctx context.Context, workspaceID uuid.UUID) ([]model.User, error)
}

var _ WorkspaceRepositoryInterface = (*WorkspaceRepository)(nil)

func NewWorkspaceRepository(db *gorm.DB) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

// Create inserts the workspace together with the creator's admin membership
// and the default statuses and priority labels. Everything happens in one
// transaction: either the whole onboarding state appears or none of it.
func (r *WorkspaceRepository) Create(ctx context.Context, workspace *model.Workspace) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Идентификатор уникален глобально
		var existing model.Workspace
		err := tx.Where("identifier = ?", workspace.Identifier).First(&existing).Error
		if err == nil {
			return ErrIdentifierTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(workspace).Error; err != nil {
			return err
		}

		member := model.WorkspaceMember{
			WorkspaceID: workspace.ID,
			UserID:      workspace.CreatedBy,
			Role:        model.RoleAdmin,
		}
		if err := tx.Create(&member).Error; err != nil {
			return err
		}

		for _, status := range defaultStatuses {
			status.WorkspaceID = workspace.ID
			if err := tx.Create(&status).Error; err != nil {
				return err
			}
		}

		for _, label := range defaultLabels {
			label.WorkspaceID = workspace.ID
			if err := tx.Create(&label).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *WorkspaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Workspace, error) {
	var workspace model.Workspace
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&workspace).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &workspace, nil
}

func (r *WorkspaceRepository) GetByIdentifier(ctx context.Context, identifier string) (*model.Workspace, error) {
	var workspace model.Workspace
	err := r.db.WithContext(ctx).Where("identifier = ?", identifier).First(&workspace).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &workspace, nil
}

// GetForUser returns the workspaces the user is a member of, resolved
// through the membership rows.
func (r *WorkspaceRepository) GetForUser(ctx context.Context, userID uuid.UUID) ([]model.Workspace, error) {
	var workspaces []model.Workspace
	err := r.db.WithContext(ctx).
		Joins("JOIN workspace_members ON workspace_members.workspace_id = workspaces.id").
		Where("workspace_members.user_id = ?", userID).
		Find(&workspaces).Error
	return workspaces, err
}

func (r *WorkspaceRepository) GetMembership(ctx context.Context, workspaceID, userID uuid.UUID) (*model.WorkspaceMember, error) {
	var member model.WorkspaceMember
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// GetMembers returns all membership rows of the workspace with their users
func (r *WorkspaceRepository) GetMembers(ctx context.Context, workspaceID uuid.UUID) ([]model.WorkspaceMember, error) {
	var members []model.WorkspaceMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("workspace_id = ?", workspaceID).
		Find(&members).Error
	return members, err
}

// GetUsers returns the users of the workspace without role annotations
func (r *WorkspaceRepository) GetUsers(ctx context.Context, workspaceID uuid.UUID) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Joins("JOIN workspace_members ON workspace_members.user_id = users.id").
		Where("workspace_members.workspace_id = ?", workspaceID).
		Find(&users).Error
	return users, err
}

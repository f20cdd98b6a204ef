package repository

import (
	"context"
	"errors"

	"tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound = errors.New("project not found")

	// ErrProjectIdentifierTaken is returned when a project identifier is
	// already used inside the workspace
	ErrProjectIdentifierTaken = errors.New("project identifier already in use")
)

// ProjectUpdate carries the supplied fields of a project update
type ProjectUpdate struct {
	Name        *string
	Description *string
	Color       *string
	Icon        *string
}

type ProjectRepository struct {
	db *gorm.DB
}

type ProjectRepositoryInterface interface {
	Create(ctx context.Context, project *model.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	GetByWorkspaceID(ctx context.Context, workspaceID uuid.UUID) ([]model.Project, error)
	GetByIdentifier(ctx context.Context, workspaceID uuid.UUID, identifier string) (*model.Project, error)
	Update(ctx context.Context, id uuid.UUID, upd ProjectUpdate) error
	Archive(ctx context.Context, id uuid.UUID) error
}

var _ ProjectRepositoryInterface = (*ProjectRepository)(nil)

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts the project after checking that its identifier is free
// within the workspace
func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Project
		err := tx.Where("workspace_id = ? AND identifier = ?", project.WorkspaceID, project.Identifier).
			First(&existing).Error
		if err == nil {
			return ErrProjectIdentifierTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(project).Error
	})
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetByWorkspaceID returns the non-archived projects of the workspace
func (r *ProjectRepository) GetByWorkspaceID(ctx context.Context, workspaceID uuid.UUID) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND archived = ?", workspaceID, false).
		Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) GetByIdentifier(ctx context.Context, workspaceID uuid.UUID, identifier string) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND identifier = ?", workspaceID, identifier).
		First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Update patches the supplied fields of the project
func (r *ProjectRepository) Update(ctx context.Context, id uuid.UUID, upd ProjectUpdate) error {
	updates := map[string]interface{}{}
	if upd.Name != nil {
		updates["name"] = *upd.Name
	}
	if upd.Description != nil {
		updates["description"] = *upd.Description
	}
	if upd.Color != nil {
		updates["color"] = *upd.Color
	}
	if upd.Icon != nil {
		updates["icon"] = *upd.Icon
	}
	if len(updates) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// Archive soft-deletes the project; its issues stay in place
func (r *ProjectRepository) Archive(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ?", id).
		Update("archived", true).Error
}

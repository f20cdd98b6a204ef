package repository

import (
	"context"
	"errors"

	"tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrStatusNotFound = errors.New("status not found")

	// ErrStatusInUse is returned when deleting a status that issues still reference
	ErrStatusInUse = errors.New("cannot delete status with active issues")
)

type StatusRepository struct {
	db *gorm.DB
}

type StatusRepositoryInterface interface {
	Create(ctx context.Context, status *model.Status) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Status, error)
	GetByWorkspaceID(ctx context.Context, workspaceID uuid.UUID) ([]model.Status, error)
	UpdatePosition(ctx context.Context, id uuid.UUID, position int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ StatusRepositoryInterface = (*StatusRepository)(nil)

func NewStatusRepository(db *gorm.DB) *StatusRepository {
	return &StatusRepository{db: db}
}

// Create adds a new status. Name and position are not checked for
// uniqueness; the caller assigns a sane position.
func (r *StatusRepository) Create(ctx context.Context, status *model.Status) error {
	return r.db.WithContext(ctx).Create(status).Error
}

func (r *StatusRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Status, error) {
	var status model.Status
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&status).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// GetByWorkspaceID returns the workspace statuses ordered by position
func (r *StatusRepository) GetByWorkspaceID(ctx context.Context, workspaceID uuid.UUID) ([]model.Status, error) {
	var statuses []model.Status
	err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("position").
		Find(&statuses).Error
	return statuses, err
}

// UpdatePosition sets a new position for the status. Siblings are not
// renumbered.
func (r *StatusRepository) UpdatePosition(ctx context.Context, id uuid.UUID, position int) error {
	result := r.db.WithContext(ctx).Model(&model.Status{}).
		Where("id = ?", id).
		Update("position", position)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStatusNotFound
	}
	return nil
}

// Delete removes the status unless any issue still references it, archived
// ones included.
func (r *StatusRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Issue{}).Where("status_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrStatusInUse
		}
		return tx.Delete(&model.Status{}, "id = ?", id).Error
	})
}

package repository

import (
	"context"

	"tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityRepository struct {
	db *gorm.DB
}

type ActivityRepositoryInterface interface {
	GetByIssueID(ctx context.Context, issueID uuid.UUID) ([]model.Activity, error)
}

var _ ActivityRepositoryInterface = (*ActivityRepository)(nil)

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// GetByIssueID returns the audit trail of an issue in chronological order,
// each row with its acting user. Rows are written by the issue and comment
// repositories; nothing updates or deletes them.
func (r *ActivityRepository) GetByIssueID(ctx context.Context, issueID uuid.UUID) ([]model.Activity, error) {
	var activities []model.Activity
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("issue_id = ?", issueID).
		Order("created_at").
		Find(&activities).Error
	return activities, err
}

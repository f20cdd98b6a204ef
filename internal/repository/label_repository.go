package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tracker/internal/model"
)

var (
	ErrLabelNotFound = errors.New("label not found")
)

type LabelRepository struct {
	db *gorm.DB
}

type LabelRepositoryInterface interface {
	Create(ctx context.Context, label *model.Label) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Label, error)
	GetByWorkspaceID(ctx context.Context, workspaceID uuid.UUID) ([]model.Label, error)
	AttachToIssue(ctx context.Context, issueID, labelID uuid.UUID) (*model.IssueLabel, error)
	DetachFromIssue(ctx context.Context, issueID, labelID uuid.UUID) (*model.IssueLabel, error)
	GetByIssueID(ctx context.Context, issueID uuid.UUID) ([]model.Label, error)
}

var _ LabelRepositoryInterface = (*LabelRepository)(nil)

func NewLabelRepository(db *gorm.DB) *LabelRepository {
	return &LabelRepository{db: db}
}

// Create adds a new label to the database
func (r *LabelRepository) Create(ctx context.Context, label *model.Label) error {
	return r.db.WithContext(ctx).Create(label).Error
}

// GetByID retrieves a label by its ID
func (r *LabelRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Label, error) {
	var label model.Label
	result := r.db.WithContext(ctx).First(&label, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrLabelNotFound
		}
		return nil, result.Error
	}
	return &label, nil
}

// GetByWorkspaceID retrieves all labels for a specific workspace
func (r *LabelRepository) GetByWorkspaceID(ctx context.Context, workspaceID uuid.UUID) ([]model.Label, error) {
	var labels []model.Label
	result := r.db.WithContext(ctx).Where("workspace_id = ?", workspaceID).Find(&labels)
	if result.Error != nil {
		return nil, result.Error
	}
	return labels, nil
}

// AttachToIssue links a label to an issue. Idempotent: when the pair is
// already linked the existing row is returned and nothing is inserted.
func (r *LabelRepository) AttachToIssue(ctx context.Context, issueID, labelID uuid.UUID) (*model.IssueLabel, error) {
	var link model.IssueLabel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("issue_id = ? AND label_id = ?", issueID, labelID).First(&link).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		link = model.IssueLabel{IssueID: issueID, LabelID: labelID}
		return tx.Create(&link).Error
	})
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// DetachFromIssue removes the link between a label and an issue. Returns
// nil when there was no link.
func (r *LabelRepository) DetachFromIssue(ctx context.Context, issueID, labelID uuid.UUID) (*model.IssueLabel, error) {
	var link model.IssueLabel
	err := r.db.WithContext(ctx).Where("issue_id = ? AND label_id = ?", issueID, labelID).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Delete(&model.IssueLabel{}, "id = ?", link.ID).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// GetByIssueID retrieves all labels attached to a specific issue
func (r *LabelRepository) GetByIssueID(ctx context.Context, issueID uuid.UUID) ([]model.Label, error) {
	var labels []model.Label
	result := r.db.WithContext(ctx).
		Joins("JOIN issue_labels ON issue_labels.label_id = labels.id").
		Where("issue_labels.issue_id = ?", issueID).
		Find(&labels)

	if result.Error != nil {
		return nil, result.Error
	}
	return labels, nil
}

package repository

import (
	"context"

	"tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

type CommentRepositoryInterface interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByIssueID(ctx context.Context, issueID uuid.UUID) ([]model.Comment, error)
}

var _ CommentRepositoryInterface = (*CommentRepository)(nil)

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts the comment and a "commented" activity row in one
// transaction
func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}

		activity := model.Activity{
			IssueID: comment.IssueID,
			UserID:  comment.UserID,
			Type:    model.ActivityCommented,
		}
		return tx.Create(&activity).Error
	})
}

// GetByIssueID returns the comments of an issue in chronological order,
// each with its author
func (r *CommentRepository) GetByIssueID(ctx context.Context, issueID uuid.UUID) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("issue_id = ?", issueID).
		Order("created_at").
		Find(&comments).Error
	return comments, err
}

package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrIssueNotFound = errors.New("issue not found")
)

// Имена полей в журнале изменений (совпадают с JSON-полями API)
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldStatus      = "status_id"
	FieldPriority    = "priority"
	FieldAssignee    = "assignee_id"
	FieldProject     = "project_id"
	FieldDueDate     = "due_date"
	FieldEstimate    = "estimate"
)

// IssueUpdate carries the supplied fields of an update; nil means the field
// was not supplied and stays untouched.
type IssueUpdate struct {
	Title       *string
	Description *string
	StatusID    *uuid.UUID
	Priority    *string
	AssigneeID  *uuid.UUID
	ProjectID   *uuid.UUID
	DueDate     *time.Time
	Estimate    *int
}

// IssueFilter narrows ListByWorkspace. Only one filter is applied: status
// wins over project, project over assignee; the rest are ignored.
type IssueFilter struct {
	StatusID   *uuid.UUID
	ProjectID  *uuid.UUID
	AssigneeID *uuid.UUID
}

type IssueRepository struct {
	db        *gorm.DB
	sequences *SequenceRepository
}

type IssueRepositoryInterface interface {
	Create(ctx context.Context, issue *model.Issue) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Issue, error)
	GetByNumber(ctx context.Context, workspaceID uuid.UUID, number int) (*model.Issue, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, filter IssueFilter) ([]model.Issue, error)
	Update(ctx context.Context, issueID, actorID uuid.UUID, upd IssueUpdate) (*model.Issue, error)
	Archive(ctx context.Context, issueID uuid.UUID) error
	Search(ctx context.Context, workspaceID uuid.UUID, term string) ([]model.Issue, error)
}

var _ IssueRepositoryInterface = (*IssueRepository)(nil)

func NewIssueRepository(db *gorm.DB, sequences *SequenceRepository) *IssueRepository {
	return &IssueRepository{db: db, sequences: sequences}
}

// Create assigns the next per-workspace number and inserts the issue with a
// "created" activity row, all in one transaction. The number is assigned
// exactly once and never reused.
func (r *IssueRepository) Create(ctx context.Context, issue *model.Issue) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := r.sequences.NextTx(tx, issue.WorkspaceID, model.SequenceIssueNumber)
		if err != nil {
			return err
		}
		issue.Number = number

		if err := tx.Create(issue).Error; err != nil {
			return err
		}

		activity := model.Activity{
			IssueID: issue.ID,
			UserID:  issue.CreatedBy,
			Type:    model.ActivityCreated,
		}
		return tx.Create(&activity).Error
	})
}

func (r *IssueRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Issue, error) {
	var issue model.Issue
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&issue).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

// GetByNumber retrieves an issue by its (workspace, number) pair, enriched
// with status, assignee, project, creator and labels
func (r *IssueRepository) GetByNumber(ctx context.Context, workspaceID uuid.UUID, number int) (*model.Issue, error) {
	var issue model.Issue
	err := r.db.WithContext(ctx).
		Preload("Status").
		Preload("Assignee").
		Preload("Project").
		Preload("Creator").
		Preload("Labels").
		Where("workspace_id = ? AND number = ?", workspaceID, number).
		First(&issue).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

// ListByWorkspace returns the non-archived issues of the workspace, newest
// number first, enriched for display
func (r *IssueRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, filter IssueFilter) ([]model.Issue, error) {
	query := r.db.WithContext(ctx).
		Preload("Status").
		Preload("Assignee").
		Preload("Project").
		Preload("Creator").
		Preload("Labels").
		Where("workspace_id = ? AND archived = ?", workspaceID, false)

	// Применяем ровно один фильтр: статус > проект > исполнитель
	if filter.StatusID != nil {
		query = query.Where("status_id = ?", *filter.StatusID)
	} else if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	} else if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}

	var issues []model.Issue
	err := query.Order("number DESC").Find(&issues).Error
	return issues, err
}

// Update applies the supplied fields and appends one "updated" activity per
// field whose value actually changed. Zero values (empty string, zero
// number, zero time) are recorded as absent in the old/new slots. Runs as
// one transaction; updated_at is bumped even when nothing changed.
func (r *IssueRepository) Update(ctx context.Context, issueID, actorID uuid.UUID, upd IssueUpdate) (*model.Issue, error) {
	var updated model.Issue
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var issue model.Issue
		if err := tx.Where("id = ?", issueID).First(&issue).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrIssueNotFound
			}
			return err
		}

		activities := diffActivities(&issue, upd, actorID)
		for i := range activities {
			if err := tx.Create(&activities[i]).Error; err != nil {
				return err
			}
		}

		applyUpdate(&issue, upd)
		if err := tx.Save(&issue).Error; err != nil {
			return err
		}

		updated = issue
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Archive soft-deletes the issue. No existence check: archiving a missing
// or already-archived issue is a silent no-op. Comments, activities and
// label links stay in place.
func (r *IssueRepository) Archive(ctx context.Context, issueID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Issue{}).
		Where("id = ?", issueID).
		Update("archived", true).Error
}

// Search scans the non-archived issues of the workspace for a
// case-insensitive substring match on title or description, or a raw
// substring match on the decimal issue number. At most 50 results, scan
// order.
func (r *IssueRepository) Search(ctx context.Context, workspaceID uuid.UUID, term string) ([]model.Issue, error) {
	var issues []model.Issue
	err := r.db.WithContext(ctx).
		Preload("Status").
		Preload("Assignee").
		Preload("Project").
		Where("workspace_id = ? AND archived = ?", workspaceID, false).
		Find(&issues).Error
	if err != nil {
		return nil, err
	}

	lower := strings.ToLower(term)
	matched := make([]model.Issue, 0)
	for _, issue := range issues {
		if strings.Contains(strings.ToLower(issue.Title), lower) ||
			strings.Contains(strings.ToLower(issue.Description), lower) ||
			strings.Contains(strconv.Itoa(issue.Number), term) {
			matched = append(matched, issue)
			if len(matched) == 50 {
				break
			}
		}
	}
	return matched, nil
}

// diffActivities builds one "updated" activity per supplied field whose new
// value differs from the stored one. One explicit entry per updatable
// attribute.
func diffActivities(issue *model.Issue, upd IssueUpdate, actorID uuid.UUID) []model.Activity {
	var activities []model.Activity

	record := func(field string, oldValue, newValue *string) {
		activities = append(activities, model.Activity{
			IssueID:  issue.ID,
			UserID:   actorID,
			Type:     model.ActivityUpdated,
			Field:    &field,
			OldValue: oldValue,
			NewValue: newValue,
		})
	}

	if upd.Title != nil && *upd.Title != issue.Title {
		record(FieldTitle, stringValue(issue.Title), stringValue(*upd.Title))
	}
	if upd.Description != nil && *upd.Description != issue.Description {
		record(FieldDescription, stringValue(issue.Description), stringValue(*upd.Description))
	}
	if upd.StatusID != nil && *upd.StatusID != issue.StatusID {
		record(FieldStatus, uuidValue(&issue.StatusID), uuidValue(upd.StatusID))
	}
	if upd.Priority != nil && *upd.Priority != issue.Priority {
		record(FieldPriority, stringValue(issue.Priority), stringValue(*upd.Priority))
	}
	if upd.AssigneeID != nil && !uuidEqual(upd.AssigneeID, issue.AssigneeID) {
		record(FieldAssignee, uuidValue(issue.AssigneeID), uuidValue(upd.AssigneeID))
	}
	if upd.ProjectID != nil && !uuidEqual(upd.ProjectID, issue.ProjectID) {
		record(FieldProject, uuidValue(issue.ProjectID), uuidValue(upd.ProjectID))
	}
	if upd.DueDate != nil && !timeEqual(upd.DueDate, issue.DueDate) {
		record(FieldDueDate, timeValue(issue.DueDate), timeValue(upd.DueDate))
	}
	if upd.Estimate != nil && !intEqual(upd.Estimate, issue.Estimate) {
		record(FieldEstimate, intValue(issue.Estimate), intValue(upd.Estimate))
	}

	return activities
}

func applyUpdate(issue *model.Issue, upd IssueUpdate) {
	if upd.Title != nil {
		issue.Title = *upd.Title
	}
	if upd.Description != nil {
		issue.Description = *upd.Description
	}
	if upd.StatusID != nil {
		issue.StatusID = *upd.StatusID
	}
	if upd.Priority != nil {
		issue.Priority = *upd.Priority
	}
	if upd.AssigneeID != nil {
		issue.AssigneeID = upd.AssigneeID
	}
	if upd.ProjectID != nil {
		issue.ProjectID = upd.ProjectID
	}
	if upd.DueDate != nil {
		issue.DueDate = upd.DueDate
	}
	if upd.Estimate != nil {
		issue.Estimate = upd.Estimate
	}
}

// Пустые значения в журнале записываются как отсутствующие

func stringValue(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func uuidValue(id *uuid.UUID) *string {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	s := id.String()
	return &s
}

func timeValue(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func intValue(n *int) *string {
	if n == nil || *n == 0 {
		return nil
	}
	s := strconv.Itoa(*n)
	return &s
}

func uuidEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func timeEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func intEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

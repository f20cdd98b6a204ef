package handler_test

import (
	"context"
	"net/http"
	"time"

	"tracker/internal/auth"
	"tracker/internal/model"
	"tracker/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

const testSecret = "test-secret"

// authRequest выписывает токен для тестового пользователя и вешает его на запрос
func authRequest(req *http.Request, subject string) {
	token, _ := auth.GenerateToken(auth.Identity{
		Subject: subject,
		Email:   "test@example.com",
		Name:    "Test User",
	}, testSecret, time.Hour)
	req.Header.Set("Authorization", "Bearer "+token)
}

// Мок репозитория пользователей
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Sync(ctx context.Context, externalID, email, name, avatarURL string) (*model.User, error) {
	args := m.Called(ctx, externalID, email, name, avatarURL)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	args := m.Called(ctx, externalID)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

// Мок репозитория рабочих пространств
type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) Create(ctx context.Context, workspace *model.Workspace) error {
	args := m.Called(ctx, workspace)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Workspace, error) {
	args := m.Called(ctx, id)
	workspace := args.Get(0)
	if workspace == nil {
		return nil, args.Error(1)
	}
	return workspace.(*model.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) GetByIdentifier(ctx context.Context, identifier string) (*model.Workspace, error) {
	args := m.Called(ctx, identifier)
	workspace := args.Get(0)
	if workspace == nil {
		return nil, args.Error(1)
	}
	return workspace.(*model.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) GetForUser(ctx context.Context, userID uuid.UUID) ([]model.Workspace, error) {
	args := m.Called(ctx, userID)
	workspaces := args.Get(0)
	if workspaces == nil {
		return nil, args.Error(1)
	}
	return workspaces.([]model.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) GetMembership(ctx context.Context, workspaceID, userID uuid.UUID) (*model.WorkspaceMember, error) {
	args := m.Called(ctx, workspaceID, userID)
	member := args.Get(0)
	if member == nil {
		return nil, args.Error(1)
	}
	return member.(*model.WorkspaceMember), args.Error(1)
}

func (m *MockWorkspaceRepository) GetMembers(ctx context.Context, workspaceID uuid.UUID) ([]model.WorkspaceMember, error) {
	args := m.Called(ctx, workspaceID)
	members := args.Get(0)
	if members == nil {
		return nil, args.Error(1)
	}
	return members.([]model.WorkspaceMember), args.Error(1)
}

func (m *MockWorkspaceRepository) GetUsers(ctx context.Context, workspaceID uuid.UUID) ([]model.User, error) {
	args := m.Called(ctx, workspaceID)
	users := args.Get(0)
	if users == nil {
		return nil, args.Error(1)
	}
	return users.([]model.User), args.Error(1)
}

// Мок репозитория задач
type MockIssueRepository struct {
	mock.Mock
}

func (m *MockIssueRepository) Create(ctx context.Context, issue *model.Issue) error {
	args := m.Called(ctx, issue)
	return args.Error(0)
}

func (m *MockIssueRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Issue, error) {
	args := m.Called(ctx, id)
	issue := args.Get(0)
	if issue == nil {
		return nil, args.Error(1)
	}
	return issue.(*model.Issue), args.Error(1)
}

func (m *MockIssueRepository) GetByNumber(ctx context.Context, workspaceID uuid.UUID, number int) (*model.Issue, error) {
	args := m.Called(ctx, workspaceID, number)
	issue := args.Get(0)
	if issue == nil {
		return nil, args.Error(1)
	}
	return issue.(*model.Issue), args.Error(1)
}

func (m *MockIssueRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, filter repository.IssueFilter) ([]model.Issue, error) {
	args := m.Called(ctx, workspaceID, filter)
	issues := args.Get(0)
	if issues == nil {
		return nil, args.Error(1)
	}
	return issues.([]model.Issue), args.Error(1)
}

func (m *MockIssueRepository) Update(ctx context.Context, issueID, actorID uuid.UUID, upd repository.IssueUpdate) (*model.Issue, error) {
	args := m.Called(ctx, issueID, actorID, upd)
	issue := args.Get(0)
	if issue == nil {
		return nil, args.Error(1)
	}
	return issue.(*model.Issue), args.Error(1)
}

func (m *MockIssueRepository) Archive(ctx context.Context, issueID uuid.UUID) error {
	args := m.Called(ctx, issueID)
	return args.Error(0)
}

func (m *MockIssueRepository) Search(ctx context.Context, workspaceID uuid.UUID, term string) ([]model.Issue, error) {
	args := m.Called(ctx, workspaceID, term)
	issues := args.Get(0)
	if issues == nil {
		return nil, args.Error(1)
	}
	return issues.([]model.Issue), args.Error(1)
}

// Мок репозитория статусов
type MockStatusRepository struct {
	mock.Mock
}

func (m *MockStatusRepository) Create(ctx context.Context, status *model.Status) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

func (m *MockStatusRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Status, error) {
	args := m.Called(ctx, id)
	status := args.Get(0)
	if status == nil {
		return nil, args.Error(1)
	}
	return status.(*model.Status), args.Error(1)
}

func (m *MockStatusRepository) GetByWorkspaceID(ctx context.Context, workspaceID uuid.UUID) ([]model.Status, error) {
	args := m.Called(ctx, workspaceID)
	statuses := args.Get(0)
	if statuses == nil {
		return nil, args.Error(1)
	}
	return statuses.([]model.Status), args.Error(1)
}

func (m *MockStatusRepository) UpdatePosition(ctx context.Context, id uuid.UUID, position int) error {
	args := m.Called(ctx, id, position)
	return args.Error(0)
}

func (m *MockStatusRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Мок репозитория меток
type MockLabelRepository struct {
	mock.Mock
}

func (m *MockLabelRepository) Create(ctx context.Context, label *model.Label) error {
	args := m.Called(ctx, label)
	return args.Error(0)
}

func (m *MockLabelRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Label, error) {
	args := m.Called(ctx, id)
	label := args.Get(0)
	if label == nil {
		return nil, args.Error(1)
	}
	return label.(*model.Label), args.Error(1)
}

func (m *MockLabelRepository) GetByWorkspaceID(ctx context.Context, workspaceID uuid.UUID) ([]model.Label, error) {
	args := m.Called(ctx, workspaceID)
	labels := args.Get(0)
	if labels == nil {
		return nil, args.Error(1)
	}
	return labels.([]model.Label), args.Error(1)
}

func (m *MockLabelRepository) AttachToIssue(ctx context.Context, issueID, labelID uuid.UUID) (*model.IssueLabel, error) {
	args := m.Called(ctx, issueID, labelID)
	link := args.Get(0)
	if link == nil {
		return nil, args.Error(1)
	}
	return link.(*model.IssueLabel), args.Error(1)
}

func (m *MockLabelRepository) DetachFromIssue(ctx context.Context, issueID, labelID uuid.UUID) (*model.IssueLabel, error) {
	args := m.Called(ctx, issueID, labelID)
	link := args.Get(0)
	if link == nil {
		return nil, args.Error(1)
	}
	return link.(*model.IssueLabel), args.Error(1)
}

func (m *MockLabelRepository) GetByIssueID(ctx context.Context, issueID uuid.UUID) ([]model.Label, error) {
	args := m.Called(ctx, issueID)
	labels := args.Get(0)
	if labels == nil {
		return nil, args.Error(1)
	}
	return labels.([]model.Label), args.Error(1)
}

// Мок репозитория проектов
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, project *model.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, id)
	project := args.Get(0)
	if project == nil {
		return nil, args.Error(1)
	}
	return project.(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) GetByWorkspaceID(ctx context.Context, workspaceID uuid.UUID) ([]model.Project, error) {
	args := m.Called(ctx, workspaceID)
	projects := args.Get(0)
	if projects == nil {
		return nil, args.Error(1)
	}
	return projects.([]model.Project), args.Error(1)
}

func (m *MockProjectRepository) GetByIdentifier(ctx context.Context, workspaceID uuid.UUID, identifier string) (*model.Project, error) {
	args := m.Called(ctx, workspaceID, identifier)
	project := args.Get(0)
	if project == nil {
		return nil, args.Error(1)
	}
	return project.(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) Update(ctx context.Context, id uuid.UUID, upd repository.ProjectUpdate) error {
	args := m.Called(ctx, id, upd)
	return args.Error(0)
}

func (m *MockProjectRepository) Archive(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Мок репозитория комментариев
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByIssueID(ctx context.Context, issueID uuid.UUID) ([]model.Comment, error) {
	args := m.Called(ctx, issueID)
	comments := args.Get(0)
	if comments == nil {
		return nil, args.Error(1)
	}
	return comments.([]model.Comment), args.Error(1)
}

// Мок репозитория журнала изменений
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) GetByIssueID(ctx context.Context, issueID uuid.UUID) ([]model.Activity, error) {
	args := m.Called(ctx, issueID)
	activities := args.Get(0)
	if activities == nil {
		return nil, args.Error(1)
	}
	return activities.([]model.Activity), args.Error(1)
}

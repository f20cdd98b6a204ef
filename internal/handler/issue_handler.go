package handler

import (
	"net/http"
	"strconv"
	"time"

	"tracker/internal/middleware"
	"tracker/internal/model"
	"tracker/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type IssueHandler struct {
	issueRepo repository.IssueRepositoryInterface
	userRepo  repository.UserRepositoryInterface
}

func NewIssueHandler(issueRepo repository.IssueRepositoryInterface, userRepo repository.UserRepositoryInterface) *IssueHandler {
	return &IssueHandler{
		issueRepo: issueRepo,
		userRepo:  userRepo,
	}
}

// CreateIssueRequest представляет запрос на создание задачи
type CreateIssueRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	WorkspaceID string     `json:"workspace_id" binding:"required,uuid"`
	ProjectID   *string    `json:"project_id" binding:"omitempty,uuid"`
	StatusID    string     `json:"status_id" binding:"required,uuid"`
	Priority    string     `json:"priority" binding:"required"`
	AssigneeID  *string    `json:"assignee_id" binding:"omitempty,uuid"`
	DueDate     *time.Time `json:"due_date"`
	Estimate    *int       `json:"estimate"`
}

// UpdateIssueRequest представляет запрос на обновление задачи.
// Отсутствующее поле остается без изменений.
type UpdateIssueRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StatusID    *string    `json:"status_id" binding:"omitempty,uuid"`
	Priority    *string    `json:"priority"`
	AssigneeID  *string    `json:"assignee_id" binding:"omitempty,uuid"`
	ProjectID   *string    `json:"project_id" binding:"omitempty,uuid"`
	DueDate     *time.Time `json:"due_date"`
	Estimate    *int       `json:"estimate"`
}

// IssueResponse представляет ответ с данными задачи
type IssueResponse struct {
	ID          string           `json:"id"`
	WorkspaceID string           `json:"workspace_id"`
	Number      int              `json:"number"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	StatusID    string           `json:"status_id"`
	Priority    string           `json:"priority"`
	ProjectID   *string          `json:"project_id,omitempty"`
	AssigneeID  *string          `json:"assignee_id,omitempty"`
	CreatedBy   string           `json:"created_by"`
	DueDate     *string          `json:"due_date,omitempty"`
	Estimate    *int             `json:"estimate,omitempty"`
	Archived    bool             `json:"archived"`
	CreatedAt   string           `json:"created_at"`
	UpdatedAt   string           `json:"updated_at"`
	Status      *StatusResponse  `json:"status,omitempty"`
	Assignee    *UserResponse    `json:"assignee,omitempty"`
	Project     *ProjectResponse `json:"project,omitempty"`
	Creator     *UserResponse    `json:"creator,omitempty"`
	Labels      []LabelResponse  `json:"labels,omitempty"`
}

func toIssueResponse(issue *model.Issue) *IssueResponse {
	if issue == nil {
		return nil
	}

	response := &IssueResponse{
		ID:          issue.ID.String(),
		WorkspaceID: issue.WorkspaceID.String(),
		Number:      issue.Number,
		Title:       issue.Title,
		Description: issue.Description,
		StatusID:    issue.StatusID.String(),
		Priority:    issue.Priority,
		CreatedBy:   issue.CreatedBy.String(),
		Estimate:    issue.Estimate,
		Archived:    issue.Archived,
		CreatedAt:   issue.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   issue.UpdatedAt.Format(time.RFC3339),
	}

	if issue.ProjectID != nil {
		projectID := issue.ProjectID.String()
		response.ProjectID = &projectID
	}
	if issue.AssigneeID != nil {
		assigneeID := issue.AssigneeID.String()
		response.AssigneeID = &assigneeID
	}
	if issue.DueDate != nil {
		dueDate := issue.DueDate.Format(time.RFC3339)
		response.DueDate = &dueDate
	}

	// Связанные сущности присутствуют только когда запрос их подгрузил
	if issue.Status.ID != uuid.Nil {
		response.Status = toStatusResponse(&issue.Status)
	}
	if issue.Assignee != nil {
		response.Assignee = toUserResponse(issue.Assignee)
	}
	if issue.Project != nil {
		response.Project = toProjectResponse(issue.Project)
	}
	if issue.Creator.ID != uuid.Nil {
		response.Creator = toUserResponse(&issue.Creator)
	}
	for i := range issue.Labels {
		response.Labels = append(response.Labels, *toLabelResponse(&issue.Labels[i]))
	}

	return response
}

// Create создает задачу со следующим порядковым номером в рабочем
// пространстве и записью "created" в журнале
func (h *IssueHandler) Create(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.userRepo.GetByExternalID(c.Request.Context(), identity.Subject)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	var req CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	workspaceID, err := uuid.Parse(req.WorkspaceID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID format"})
		return
	}
	statusID, err := uuid.Parse(req.StatusID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status ID format"})
		return
	}

	issue := &model.Issue{
		Title:       req.Title,
		Description: req.Description,
		WorkspaceID: workspaceID,
		StatusID:    statusID,
		Priority:    req.Priority,
		CreatedBy:   user.ID,
		DueDate:     req.DueDate,
		Estimate:    req.Estimate,
	}

	if req.ProjectID != nil {
		projectID, err := uuid.Parse(*req.ProjectID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID format"})
			return
		}
		issue.ProjectID = &projectID
	}
	if req.AssigneeID != nil {
		assigneeID, err := uuid.Parse(*req.AssigneeID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignee ID format"})
			return
		}
		issue.AssigneeID = &assigneeID
	}

	if err := h.issueRepo.Create(c.Request.Context(), issue); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create issue"})
		return
	}

	c.JSON(http.StatusCreated, toIssueResponse(issue))
}

// List возвращает неархивированные задачи рабочего пространства, новые
// номера первыми. Применяется не более одного фильтра: статус, затем
// проект, затем исполнитель.
func (h *IssueHandler) List(c *gin.Context) {
	workspaceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID format"})
		return
	}

	var filter repository.IssueFilter
	if statusID := c.Query("status_id"); statusID != "" {
		id, err := uuid.Parse(statusID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status ID format"})
			return
		}
		filter.StatusID = &id
	}
	if projectID := c.Query("project_id"); projectID != "" {
		id, err := uuid.Parse(projectID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID format"})
			return
		}
		filter.ProjectID = &id
	}
	if assigneeID := c.Query("assignee_id"); assigneeID != "" {
		id, err := uuid.Parse(assigneeID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignee ID format"})
			return
		}
		filter.AssigneeID = &id
	}

	issues, err := h.issueRepo.ListByWorkspace(c.Request.Context(), workspaceID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}

	response := make([]IssueResponse, 0, len(issues))
	for i := range issues {
		response = append(response, *toIssueResponse(&issues[i]))
	}
	c.JSON(http.StatusOK, response)
}

// GetByNumber возвращает задачу по паре (workspace, номер) или null
func (h *IssueHandler) GetByNumber(c *gin.Context) {
	workspaceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID format"})
		return
	}

	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue number"})
		return
	}

	issue, err := h.issueRepo.GetByNumber(c.Request.Context(), workspaceID, number)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		return
	}

	c.JSON(http.StatusOK, toIssueResponse(issue))
}

// Update применяет переданные поля и пишет в журнал по одной записи
// "updated" на каждое фактически изменившееся поле
func (h *IssueHandler) Update(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.userRepo.GetByExternalID(c.Request.Context(), identity.Subject)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	issueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID format"})
		return
	}

	var req UpdateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	upd := repository.IssueUpdate{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		Estimate:    req.Estimate,
	}

	if req.StatusID != nil {
		statusID, err := uuid.Parse(*req.StatusID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status ID format"})
			return
		}
		upd.StatusID = &statusID
	}
	if req.AssigneeID != nil {
		assigneeID, err := uuid.Parse(*req.AssigneeID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignee ID format"})
			return
		}
		upd.AssigneeID = &assigneeID
	}
	if req.ProjectID != nil {
		projectID, err := uuid.Parse(*req.ProjectID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID format"})
			return
		}
		upd.ProjectID = &projectID
	}

	issue, err := h.issueRepo.Update(c.Request.Context(), issueID, user.ID, upd)
	if err != nil {
		if err == repository.ErrIssueNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update issue"})
		return
	}

	c.JSON(http.StatusOK, toIssueResponse(issue))
}

// Delete архивирует задачу. Мягкое удаление: комментарии, журнал и метки
// остаются на месте.
func (h *IssueHandler) Delete(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	issueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID format"})
		return
	}

	if err := h.issueRepo.Archive(c.Request.Context(), issueID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to archive issue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": issueID.String()})
}

// Search ищет подстроку в заголовке, описании или номере задачи,
// не более 50 результатов
func (h *IssueHandler) Search(c *gin.Context) {
	workspaceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID format"})
		return
	}

	term := c.Query("q")

	issues, err := h.issueRepo.Search(c.Request.Context(), workspaceID, term)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search issues"})
		return
	}

	response := make([]IssueResponse, 0, len(issues))
	for i := range issues {
		response = append(response, *toIssueResponse(&issues[i]))
	}
	c.JSON(http.StatusOK, response)
}

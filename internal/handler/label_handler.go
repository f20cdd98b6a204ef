package handler

import (
	"net/http"
	"time"

	"tracker/internal/middleware"
	"tracker/internal/model"
	"tracker/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LabelHandler struct {
	labelRepo repository.LabelRepositoryInterface
}

func NewLabelHandler(labelRepo repository.LabelRepositoryInterface) *LabelHandler {
	return &LabelHandler{labelRepo: labelRepo}
}

// CreateLabelRequest представляет запрос на создание метки
type CreateLabelRequest struct {
	WorkspaceID string `json:"workspace_id" binding:"required,uuid"`
	Name        string `json:"name" binding:"required"`
	Color       string `json:"color" binding:"required"`
}

// LabelResponse представляет ответ с данными метки
type LabelResponse struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspace_id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	CreatedAt   string `json:"created_at"`
}

// IssueLabelResponse представляет связь задачи и метки
type IssueLabelResponse struct {
	ID      string `json:"id"`
	IssueID string `json:"issue_id"`
	LabelID string `json:"label_id"`
}

func toLabelResponse(label *model.Label) *LabelResponse {
	if label == nil {
		return nil
	}
	return &LabelResponse{
		ID:          label.ID.String(),
		WorkspaceID: label.WorkspaceID.String(),
		Name:        label.Name,
		Color:       label.Color,
		CreatedAt:   label.CreatedAt.Format(time.RFC3339),
	}
}

// Create создает метку. Уникальность имени не проверяется.
func (h *LabelHandler) Create(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req CreateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	workspaceID, err := uuid.Parse(req.WorkspaceID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID format"})
		return
	}

	label := &model.Label{
		WorkspaceID: workspaceID,
		Name:        req.Name,
		Color:       req.Color,
	}

	if err := h.labelRepo.Create(c.Request.Context(), label); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create label"})
		return
	}

	c.JSON(http.StatusCreated, toLabelResponse(label))
}

// List возвращает все метки рабочего пространства
func (h *LabelHandler) List(c *gin.Context) {
	workspaceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID format"})
		return
	}

	labels, err := h.labelRepo.GetByWorkspaceID(c.Request.Context(), workspaceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve labels"})
		return
	}

	response := make([]LabelResponse, 0, len(labels))
	for i := range labels {
		response = append(response, *toLabelResponse(&labels[i]))
	}
	c.JSON(http.StatusOK, response)
}

// AttachToIssue вешает метку на задачу. Повторный вызов возвращает
// существующую связь, дубликат не создается.
func (h *LabelHandler) AttachToIssue(c *gin.Context) {
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
	labelID, err := uuid.Parse(c.Param("label_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid label ID format"})
		return
	}

	link, err := h.labelRepo.AttachToIssue(c.Request.Context(), issueID, labelID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach label"})
		return
	}

	c.JSON(http.StatusOK, IssueLabelResponse{
		ID:      link.ID.String(),
		IssueID: link.IssueID.String(),
		LabelID: link.LabelID.String(),
	})
}

// DetachFromIssue снимает метку с задачи; если связи нет, возвращает null
func (h *LabelHandler) DetachFromIssue(c *gin.Context) {
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
	labelID, err := uuid.Parse(c.Param("label_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid label ID format"})
		return
	}

	link, err := h.labelRepo.DetachFromIssue(c.Request.Context(), issueID, labelID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to detach label"})
		return
	}
	if link == nil {
		c.JSON(http.StatusOK, nil)
		return
	}

	c.JSON(http.StatusOK, IssueLabelResponse{
		ID:      link.ID.String(),
		IssueID: link.IssueID.String(),
		LabelID: link.LabelID.String(),
	})
}

// GetIssueLabels возвращает метки, навешенные на задачу
func (h *LabelHandler) GetIssueLabels(c *gin.Context) {
	issueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID format"})
		return
	}

	labels, err := h.labelRepo.GetByIssueID(c.Request.Context(), issueID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve labels"})
		return
	}

	response := make([]LabelResponse, 0, len(labels))
	for i := range labels {
		response = append(response, *toLabelResponse(&labels[i]))
	}
	c.JSON(http.StatusOK, response)
}

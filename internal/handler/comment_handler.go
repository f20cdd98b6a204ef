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

type CommentHandler struct {
	commentRepo  repository.CommentRepositoryInterface
	activityRepo repository.ActivityRepositoryInterface
	userRepo     repository.UserRepositoryInterface
}

func NewCommentHandler(
	commentRepo repository.CommentRepositoryInterface,
	activityRepo repository.ActivityRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
) *CommentHandler {
	return &CommentHandler{
		commentRepo:  commentRepo,
		activityRepo: activityRepo,
		userRepo:     userRepo,
	}
}

// CreateCommentRequest представляет запрос на создание комментария.
// ParentID задает родителя при ответе в треде; глубина не ограничена.
type CreateCommentRequest struct {
	Content  string  `json:"content" binding:"required"`
	ParentID *string `json:"parent_id" binding:"omitempty,uuid"`
}

// CommentResponse представляет ответ с данными комментария
type CommentResponse struct {
	ID        string        `json:"id"`
	IssueID   string        `json:"issue_id"`
	UserID    string        `json:"user_id"`
	Content   string        `json:"content"`
	ParentID  *string       `json:"parent_id,omitempty"`
	CreatedAt string        `json:"created_at"`
	UpdatedAt string        `json:"updated_at"`
	User      *UserResponse `json:"user,omitempty"`
}

// ActivityResponse представляет строку журнала изменений
type ActivityResponse struct {
	ID        string        `json:"id"`
	IssueID   string        `json:"issue_id"`
	UserID    string        `json:"user_id"`
	Type      string        `json:"type"`
	Field     *string       `json:"field,omitempty"`
	OldValue  *string       `json:"old_value,omitempty"`
	NewValue  *string       `json:"new_value,omitempty"`
	CreatedAt string        `json:"created_at"`
	User      *UserResponse `json:"user,omitempty"`
}

func toCommentResponse(comment *model.Comment) *CommentResponse {
	if comment == nil {
		return nil
	}
	response := &CommentResponse{
		ID:        comment.ID.String(),
		IssueID:   comment.IssueID.String(),
		UserID:    comment.UserID.String(),
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt.Format(time.RFC3339),
		UpdatedAt: comment.UpdatedAt.Format(time.RFC3339),
	}
	if comment.ParentID != nil {
		parentID := comment.ParentID.String()
		response.ParentID = &parentID
	}
	if comment.User.ID != uuid.Nil {
		response.User = toUserResponse(&comment.User)
	}
	return response
}

// Create добавляет комментарий к задаче и запись "commented" в журнал
func (h *CommentHandler) Create(c *gin.Context) {
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

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	comment := &model.Comment{
		IssueID: issueID,
		UserID:  user.ID,
		Content: req.Content,
	}
	if req.ParentID != nil {
		parentID, err := uuid.Parse(*req.ParentID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parent comment ID format"})
			return
		}
		comment.ParentID = &parentID
	}

	if err := h.commentRepo.Create(c.Request.Context(), comment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	c.JSON(http.StatusCreated, toCommentResponse(comment))
}

// List возвращает комментарии задачи в хронологическом порядке с авторами
func (h *CommentHandler) List(c *gin.Context) {
	issueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID format"})
		return
	}

	comments, err := h.commentRepo.GetByIssueID(c.Request.Context(), issueID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comments"})
		return
	}

	response := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		response = append(response, *toCommentResponse(&comments[i]))
	}
	c.JSON(http.StatusOK, response)
}

// ListActivities возвращает журнал изменений задачи в хронологическом
// порядке с действующими пользователями
func (h *CommentHandler) ListActivities(c *gin.Context) {
	issueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID format"})
		return
	}

	activities, err := h.activityRepo.GetByIssueID(c.Request.Context(), issueID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve activities"})
		return
	}

	response := make([]ActivityResponse, 0, len(activities))
	for i := range activities {
		activity := &activities[i]
		item := ActivityResponse{
			ID:        activity.ID.String(),
			IssueID:   activity.IssueID.String(),
			UserID:    activity.UserID.String(),
			Type:      activity.Type,
			Field:     activity.Field,
			OldValue:  activity.OldValue,
			NewValue:  activity.NewValue,
			CreatedAt: activity.CreatedAt.Format(time.RFC3339),
		}
		if activity.User.ID != uuid.Nil {
			item.User = toUserResponse(&activity.User)
		}
		response = append(response, item)
	}
	c.JSON(http.StatusOK, response)
}

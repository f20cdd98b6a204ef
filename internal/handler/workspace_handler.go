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

type WorkspaceHandler struct {
	workspaceRepo repository.WorkspaceRepositoryInterface
	userRepo      repository.UserRepositoryInterface
}

func NewWorkspaceHandler(workspaceRepo repository.WorkspaceRepositoryInterface, userRepo repository.UserRepositoryInterface) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceRepo: workspaceRepo,
		userRepo:      userRepo,
	}
}

// CreateWorkspaceRequest представляет запрос на создание рабочего пространства
type CreateWorkspaceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Identifier  string `json:"identifier" binding:"required"`
}

// WorkspaceResponse представляет ответ с данными рабочего пространства
type WorkspaceResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Identifier  string `json:"identifier"`
	CreatedBy   string `json:"created_by"`
	CreatedAt   string `json:"created_at"`
}

// MemberResponse представляет участника рабочего пространства с его ролью
type MemberResponse struct {
	User     UserResponse `json:"user"`
	Role     string       `json:"role"`
	JoinedAt string       `json:"joined_at"`
}

// MembershipResponse представляет собственную запись о членстве
type MembershipResponse struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspace_id"`
	UserID      string `json:"user_id"`
	Role        string `json:"role"`
	JoinedAt    string `json:"joined_at"`
}

func toWorkspaceResponse(workspace *model.Workspace) *WorkspaceResponse {
	if workspace == nil {
		return nil
	}
	return &WorkspaceResponse{
		ID:          workspace.ID.String(),
		Name:        workspace.Name,
		Description: workspace.Description,
		Identifier:  workspace.Identifier,
		CreatedBy:   workspace.CreatedBy.String(),
		CreatedAt:   workspace.CreatedAt.Format(time.RFC3339),
	}
}

// Create creates a workspace with the caller as admin, seeded with the
// default statuses and priority labels
func (h *WorkspaceHandler) Create(c *gin.Context) {
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

	var req CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	workspace := &model.Workspace{
		Name:        req.Name,
		Description: req.Description,
		Identifier:  req.Identifier,
		CreatedBy:   user.ID,
	}

	if err := h.workspaceRepo.Create(c.Request.Context(), workspace); err != nil {
		if err == repository.ErrIdentifierTaken {
			c.JSON(http.StatusConflict, gin.H{"error": "Workspace identifier already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create workspace"})
		return
	}

	c.JSON(http.StatusCreated, toWorkspaceResponse(workspace))
}

// List returns the workspaces the caller is a member of. With an
// ?identifier= query it performs an exact-match lookup instead.
// Unauthenticated callers get an empty list, not an error.
func (h *WorkspaceHandler) List(c *gin.Context) {
	if identifier := c.Query("identifier"); identifier != "" {
		workspace, err := h.workspaceRepo.GetByIdentifier(c.Request.Context(), identifier)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve workspace"})
			return
		}
		c.JSON(http.StatusOK, toWorkspaceResponse(workspace))
		return
	}

	identity := middleware.GetIdentity(c)
	if identity == nil {
		c.JSON(http.StatusOK, []WorkspaceResponse{})
		return
	}

	user, err := h.userRepo.GetByExternalID(c.Request.Context(), identity.Subject)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusOK, []WorkspaceResponse{})
		return
	}

	workspaces, err := h.workspaceRepo.GetForUser(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve workspaces"})
		return
	}

	response := make([]WorkspaceResponse, 0, len(workspaces))
	for i := range workspaces {
		response = append(response, *toWorkspaceResponse(&workspaces[i]))
	}
	c.JSON(http.StatusOK, response)
}

// GetMembership returns the caller's membership row for the workspace, or
// null when unauthenticated or not a member
func (h *WorkspaceHandler) GetMembership(c *gin.Context) {
	workspaceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID format"})
		return
	}

	identity := middleware.GetIdentity(c)
	if identity == nil {
		c.JSON(http.StatusOK, nil)
		return
	}

	user, err := h.userRepo.GetByExternalID(c.Request.Context(), identity.Subject)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusOK, nil)
		return
	}

	member, err := h.workspaceRepo.GetMembership(c.Request.Context(), workspaceID, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve membership"})
		return
	}
	if member == nil {
		c.JSON(http.StatusOK, nil)
		return
	}

	c.JSON(http.StatusOK, MembershipResponse{
		ID:          member.ID.String(),
		WorkspaceID: member.WorkspaceID.String(),
		UserID:      member.UserID.String(),
		Role:        member.Role,
		JoinedAt:    member.JoinedAt.Format(time.RFC3339),
	})
}

// GetMembers returns all users of the workspace annotated with their role
func (h *WorkspaceHandler) GetMembers(c *gin.Context) {
	workspaceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID format"})
		return
	}

	members, err := h.workspaceRepo.GetMembers(c.Request.Context(), workspaceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve members"})
		return
	}

	response := make([]MemberResponse, 0, len(members))
	for i := range members {
		response = append(response, MemberResponse{
			User:     *toUserResponse(&members[i].User),
			Role:     members[i].Role,
			JoinedAt: members[i].JoinedAt.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, response)
}

// GetUsers returns the users of the workspace without role annotations
func (h *WorkspaceHandler) GetUsers(c *gin.Context) {
	workspaceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID format"})
		return
	}

	users, err := h.workspaceRepo.GetUsers(c.Request.Context(), workspaceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	response := make([]UserResponse, 0, len(users))
	for i := range users {
		response = append(response, *toUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, response)
}

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

// Значения по умолчанию для новых проектов
const (
	DefaultProjectColor = "#5E81AC"
	DefaultProjectIcon  = "📦"
)

type ProjectHandler struct {
	projectRepo repository.ProjectRepositoryInterface
	userRepo    repository.UserRepositoryInterface
}

func NewProjectHandler(projectRepo repository.ProjectRepositoryInterface, userRepo repository.UserRepositoryInterface) *ProjectHandler {
	return &ProjectHandler{
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// CreateProjectRequest представляет запрос на создание проекта
type CreateProjectRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Identifier  string  `json:"identifier" binding:"required"`
	WorkspaceID string  `json:"workspace_id" binding:"required,uuid"`
	Color       *string `json:"color"`
	Icon        *string `json:"icon"`
}

// UpdateProjectRequest представляет запрос на обновление проекта
type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Icon        *string `json:"icon"`
}

// ProjectResponse представляет ответ с данными проекта
type ProjectResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Identifier  string `json:"identifier"`
	WorkspaceID string `json:"workspace_id"`
	CreatedBy   string `json:"created_by"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	Archived    bool   `json:"archived"`
	CreatedAt   string `json:"created_at"`
}

func toProjectResponse(project *model.Project) *ProjectResponse {
	if project == nil {
		return nil
	}
	return &ProjectResponse{
		ID:          project.ID.String(),
		Name:        project.Name,
		Description: project.Description,
		Identifier:  project.Identifier,
		WorkspaceID: project.WorkspaceID.String(),
		CreatedBy:   project.CreatedBy.String(),
		Color:       project.Color,
		Icon:        project.Icon,
		Archived:    project.Archived,
		CreatedAt:   project.CreatedAt.Format(time.RFC3339),
	}
}

// Create создает проект. Идентификатор уникален в пределах рабочего
// пространства.
func (h *ProjectHandler) Create(c *gin.Context) {
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

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	workspaceID, err := uuid.Parse(req.WorkspaceID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID format"})
		return
	}

	project := &model.Project{
		Name:        req.Name,
		Description: req.Description,
		Identifier:  req.Identifier,
		WorkspaceID: workspaceID,
		CreatedBy:   user.ID,
		Color:       DefaultProjectColor,
		Icon:        DefaultProjectIcon,
	}
	if req.Color != nil {
		project.Color = *req.Color
	}
	if req.Icon != nil {
		project.Icon = *req.Icon
	}

	if err := h.projectRepo.Create(c.Request.Context(), project); err != nil {
		if err == repository.ErrProjectIdentifierTaken {
			c.JSON(http.StatusConflict, gin.H{"error": "Project identifier already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	c.JSON(http.StatusCreated, toProjectResponse(project))
}

// List возвращает неархивированные проекты рабочего пространства.
// С параметром ?identifier= выполняет точный поиск.
func (h *ProjectHandler) List(c *gin.Context) {
	workspaceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID format"})
		return
	}

	if identifier := c.Query("identifier"); identifier != "" {
		project, err := h.projectRepo.GetByIdentifier(c.Request.Context(), workspaceID, identifier)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
			return
		}
		c.JSON(http.StatusOK, toProjectResponse(project))
		return
	}

	projects, err := h.projectRepo.GetByWorkspaceID(c.Request.Context(), workspaceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	response := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		response = append(response, *toProjectResponse(&projects[i]))
	}
	c.JSON(http.StatusOK, response)
}

// Update обновляет переданные поля проекта
func (h *ProjectHandler) Update(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID format"})
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	upd := repository.ProjectUpdate{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
	}

	if err := h.projectRepo.Update(c.Request.Context(), projectID, upd); err != nil {
		if err == repository.ErrProjectNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": projectID.String()})
}

// Archive архивирует проект; его задачи остаются на месте
func (h *ProjectHandler) Archive(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID format"})
		return
	}

	if err := h.projectRepo.Archive(c.Request.Context(), projectID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to archive project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": projectID.String()})
}

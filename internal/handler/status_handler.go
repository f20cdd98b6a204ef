package handler

import (
	"net/http"

	"tracker/internal/middleware"
	"tracker/internal/model"
	"tracker/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StatusHandler struct {
	statusRepo repository.StatusRepositoryInterface
}

func NewStatusHandler(statusRepo repository.StatusRepositoryInterface) *StatusHandler {
	return &StatusHandler{statusRepo: statusRepo}
}

// CreateStatusRequest представляет запрос на создание статуса
type CreateStatusRequest struct {
	WorkspaceID string `json:"workspace_id" binding:"required,uuid"`
	Name        string `json:"name" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Color       string `json:"color" binding:"required"`
	Position    *int   `json:"position" binding:"required"`
}

// UpdateStatusPositionRequest представляет запрос на изменение позиции
type UpdateStatusPositionRequest struct {
	Position *int `json:"position" binding:"required"`
}

// StatusResponse представляет ответ с данными статуса
type StatusResponse struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspace_id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Color       string `json:"color"`
	Position    int    `json:"position"`
}

func toStatusResponse(status *model.Status) *StatusResponse {
	if status == nil {
		return nil
	}
	return &StatusResponse{
		ID:          status.ID.String(),
		WorkspaceID: status.WorkspaceID.String(),
		Name:        status.Name,
		Type:        status.Type,
		Color:       status.Color,
		Position:    status.Position,
	}
}

// List возвращает статусы рабочего пространства по возрастанию позиции
func (h *StatusHandler) List(c *gin.Context) {
	workspaceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID format"})
		return
	}

	statuses, err := h.statusRepo.GetByWorkspaceID(c.Request.Context(), workspaceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve statuses"})
		return
	}

	response := make([]StatusResponse, 0, len(statuses))
	for i := range statuses {
		response = append(response, *toStatusResponse(&statuses[i]))
	}
	c.JSON(http.StatusOK, response)
}

// Create создает статус. Уникальность имени и позиции не проверяется:
// разумную позицию выбирает вызывающая сторона.
func (h *StatusHandler) Create(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req CreateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	workspaceID, err := uuid.Parse(req.WorkspaceID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID format"})
		return
	}

	status := &model.Status{
		WorkspaceID: workspaceID,
		Name:        req.Name,
		Type:        req.Type,
		Color:       req.Color,
		Position:    *req.Position,
	}

	if err := h.statusRepo.Create(c.Request.Context(), status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create status"})
		return
	}

	c.JSON(http.StatusCreated, toStatusResponse(status))
}

// UpdatePosition задает новую позицию статуса без перенумерации соседей
func (h *StatusHandler) UpdatePosition(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	statusID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status ID format"})
		return
	}

	var req UpdateStatusPositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.statusRepo.UpdatePosition(c.Request.Context(), statusID, *req.Position); err != nil {
		if err == repository.ErrStatusNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Status not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": statusID.String()})
}

// Delete удаляет статус, если на него не ссылается ни одна задача,
// включая архивированные
func (h *StatusHandler) Delete(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	statusID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status ID format"})
		return
	}

	if err := h.statusRepo.Delete(c.Request.Context(), statusID); err != nil {
		if err == repository.ErrStatusInUse {
			c.JSON(http.StatusConflict, gin.H{"error": "Cannot delete status with active issues"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": statusID.String()})
}

package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tracker/internal/handler"
	"tracker/internal/middleware"
	"tracker/internal/model"
	"tracker/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupWorkspaceTest() (*gin.Engine, *MockWorkspaceRepository, *MockUserRepository) {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	mockWorkspaceRepo := new(MockWorkspaceRepository)
	mockUserRepo := new(MockUserRepository)
	workspaceHandler := handler.NewWorkspaceHandler(mockWorkspaceRepo, mockUserRepo)

	queries := r.Group("/api")
	queries.Use(middleware.OptionalJWTAuthMiddleware(testSecret))
	queries.GET("/workspaces", workspaceHandler.List)
	queries.GET("/workspaces/:id/membership", workspaceHandler.GetMembership)

	authorized := r.Group("/api")
	authorized.Use(middleware.JWTAuthMiddleware(testSecret))
	authorized.POST("/workspaces", workspaceHandler.Create)

	return r, mockWorkspaceRepo, mockUserRepo
}

func TestCreateWorkspace_Success(t *testing.T) {
	// Arrange
	router, mockWorkspaceRepo, mockUserRepo := setupWorkspaceTest()

	user := &model.User{ID: uuid.New(), Email: "test@example.com", Name: "Test User"}
	mockUserRepo.On("GetByExternalID", mock.Anything, "ext-123").Return(user, nil)
	mockWorkspaceRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Workspace")).
		Run(func(args mock.Arguments) {
			workspace := args.Get(1).(*model.Workspace)
			workspace.ID = uuid.New()
		}).
		Return(nil)

	reqBody := handler.CreateWorkspaceRequest{
		Name:       "Acme",
		Identifier: "acme",
	}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/api/workspaces", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	authRequest(req, "ext-123")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusCreated, resp.Code)

	var response handler.WorkspaceResponse
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Acme", response.Name)
	assert.Equal(t, "acme", response.Identifier)
	assert.Equal(t, user.ID.String(), response.CreatedBy)

	mockWorkspaceRepo.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
}

func TestCreateWorkspace_IdentifierTaken(t *testing.T) {
	// Arrange
	router, mockWorkspaceRepo, mockUserRepo := setupWorkspaceTest()

	user := &model.User{ID: uuid.New(), Email: "test@example.com", Name: "Test User"}
	mockUserRepo.On("GetByExternalID", mock.Anything, "ext-123").Return(user, nil)
	mockWorkspaceRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Workspace")).
		Return(repository.ErrIdentifierTaken)

	reqBody := handler.CreateWorkspaceRequest{
		Name:       "Acme",
		Identifier: "acme",
	}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/api/workspaces", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	authRequest(req, "ext-123")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusConflict, resp.Code)

	var response map[string]string
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Workspace identifier already in use", response["error"])

	mockWorkspaceRepo.AssertExpectations(t)
}

func TestCreateWorkspace_Unauthorized(t *testing.T) {
	// Arrange
	router, _, _ := setupWorkspaceTest()

	reqBody := handler.CreateWorkspaceRequest{
		Name:       "Acme",
		Identifier: "acme",
	}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/api/workspaces", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestListWorkspaces_UnauthenticatedReturnsEmptyList(t *testing.T) {
	// Arrange
	router, _, _ := setupWorkspaceTest()

	req, _ := http.NewRequest("GET", "/api/workspaces", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var response []handler.WorkspaceResponse
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Empty(t, response)
}

func TestListWorkspaces_ForMember(t *testing.T) {
	// Arrange
	router, mockWorkspaceRepo, mockUserRepo := setupWorkspaceTest()

	user := &model.User{ID: uuid.New(), Email: "test@example.com", Name: "Test User"}
	workspaces := []model.Workspace{
		{ID: uuid.New(), Name: "Acme", Identifier: "acme", CreatedBy: user.ID},
		{ID: uuid.New(), Name: "Globex", Identifier: "globex", CreatedBy: user.ID},
	}
	mockUserRepo.On("GetByExternalID", mock.Anything, "ext-123").Return(user, nil)
	mockWorkspaceRepo.On("GetForUser", mock.Anything, user.ID).Return(workspaces, nil)

	req, _ := http.NewRequest("GET", "/api/workspaces", nil)
	authRequest(req, "ext-123")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var response []handler.WorkspaceResponse
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 2)
	assert.Equal(t, "acme", response[0].Identifier)
	assert.Equal(t, "globex", response[1].Identifier)

	mockWorkspaceRepo.AssertExpectations(t)
}

func TestListWorkspaces_ByIdentifierNotFound(t *testing.T) {
	// Arrange
	router, mockWorkspaceRepo, _ := setupWorkspaceTest()

	mockWorkspaceRepo.On("GetByIdentifier", mock.Anything, "missing").Return(nil, nil)

	req, _ := http.NewRequest("GET", "/api/workspaces?identifier=missing", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "null", resp.Body.String())

	mockWorkspaceRepo.AssertExpectations(t)
}

func TestGetMembership_UnauthenticatedReturnsNull(t *testing.T) {
	// Arrange
	router, _, _ := setupWorkspaceTest()

	req, _ := http.NewRequest("GET", "/api/workspaces/"+uuid.New().String()+"/membership", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "null", resp.Body.String())
}

func TestGetMembership_Member(t *testing.T) {
	// Arrange
	router, mockWorkspaceRepo, mockUserRepo := setupWorkspaceTest()

	user := &model.User{ID: uuid.New(), Email: "test@example.com", Name: "Test User"}
	workspaceID := uuid.New()
	member := &model.WorkspaceMember{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		UserID:      user.ID,
		Role:        model.RoleAdmin,
	}
	mockUserRepo.On("GetByExternalID", mock.Anything, "ext-123").Return(user, nil)
	mockWorkspaceRepo.On("GetMembership", mock.Anything, workspaceID, user.ID).Return(member, nil)

	req, _ := http.NewRequest("GET", "/api/workspaces/"+workspaceID.String()+"/membership", nil)
	authRequest(req, "ext-123")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var response handler.MembershipResponse
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, response.Role)
	assert.Equal(t, workspaceID.String(), response.WorkspaceID)

	mockWorkspaceRepo.AssertExpectations(t)
}

package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tracker/internal/config"
	"tracker/internal/handler"
	"tracker/internal/middleware"
	"tracker/internal/repository"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	// Setup Gin
	r := gin.Default()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	workspaceRepo := repository.NewWorkspaceRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	issueRepo := repository.NewIssueRepository(db, sequenceRepo)
	statusRepo := repository.NewStatusRepository(db)
	labelRepo := repository.NewLabelRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo)
	workspaceHandler := handler.NewWorkspaceHandler(workspaceRepo, userRepo)
	issueHandler := handler.NewIssueHandler(issueRepo, userRepo)
	statusHandler := handler.NewStatusHandler(statusRepo)
	labelHandler := handler.NewLabelHandler(labelRepo)
	projectHandler := handler.NewProjectHandler(projectRepo, userRepo)
	commentHandler := handler.NewCommentHandler(commentRepo, activityRepo, userRepo)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Query routes - identity is optional, unauthenticated reads degrade
	// to empty results instead of 401
	queries := r.Group("/")
	queries.Use(middleware.OptionalJWTAuthMiddleware(cfg.JWTSecret))
	{
		queries.GET("/me", userHandler.Me)
		queries.GET("/users/:id", userHandler.GetByID)

		queries.GET("/workspaces", workspaceHandler.List)
		queries.GET("/workspaces/:id/membership", workspaceHandler.GetMembership)
		queries.GET("/workspaces/:id/members", workspaceHandler.GetMembers)
		queries.GET("/workspaces/:id/users", workspaceHandler.GetUsers)
		queries.GET("/workspaces/:id/statuses", statusHandler.List)
		queries.GET("/workspaces/:id/labels", labelHandler.List)
		queries.GET("/workspaces/:id/projects", projectHandler.List)
		queries.GET("/workspaces/:id/issues", issueHandler.List)
		queries.GET("/workspaces/:id/issues/:number", issueHandler.GetByNumber)
		queries.GET("/workspaces/:id/search", issueHandler.Search)

		queries.GET("/issues/:id/comments", commentHandler.List)
		queries.GET("/issues/:id/activities", commentHandler.ListActivities)
		queries.GET("/issues/:id/labels", labelHandler.GetIssueLabels)
	}

	// Mutation routes - require a valid identity token
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		authorized.POST("/auth/sync", userHandler.Sync)

		authorized.POST("/workspaces", workspaceHandler.Create)

		authorized.POST("/issues", issueHandler.Create)
		authorized.PUT("/issues/:id", issueHandler.Update)
		authorized.DELETE("/issues/:id", issueHandler.Delete)
		authorized.POST("/issues/:id/comments", commentHandler.Create)
		authorized.POST("/issues/:id/labels/:label_id", labelHandler.AttachToIssue)
		authorized.DELETE("/issues/:id/labels/:label_id", labelHandler.DetachFromIssue)

		authorized.POST("/statuses", statusHandler.Create)
		authorized.PUT("/statuses/:id/position", statusHandler.UpdatePosition)
		authorized.DELETE("/statuses/:id", statusHandler.Delete)

		authorized.POST("/labels", labelHandler.Create)

		authorized.POST("/projects", projectHandler.Create)
		authorized.PUT("/projects/:id", projectHandler.Update)
		authorized.POST("/projects/:id/archive", projectHandler.Archive)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}

package main

import (
	"log"

	_ "tracker/docs"
	"tracker/internal/config"
	"tracker/internal/server"
)

// @title           Tracker API
// @version         1.0
// @description     API for managing workspaces, projects and issues.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the identity provider token.

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}

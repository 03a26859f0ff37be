package main

import (
	"log"

	_ "devflow/docs"
	"devflow/internal/config"
	"devflow/internal/server"
)

// @title           DevFlow API
// @version         1.0
// @description     Freelance business management: clients, projects, kanban boards, finances and time tracking.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}

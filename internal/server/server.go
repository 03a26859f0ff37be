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

	"devflow/internal/config"
	"devflow/internal/handler"
	"devflow/internal/middleware"
	"devflow/internal/model"
	"devflow/internal/repository"

	"github.com/gin-contrib/cors"
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

	if err := db.AutoMigrate(
		&model.User{},
		&model.Client{},
		&model.Project{},
		&model.Contract{},
		&model.Transaction{},
		&model.TimeEntry{},
		&model.Board{},
		&model.BoardColumn{},
		&model.Task{},
	); err != nil {
		return nil, fmt.Errorf("❌ failed to migrate database: %w", err)
	}

	// Setup Gin
	r := gin.Default()
	r.Use(cors.Default())

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	timeEntryRepo := repository.NewTimeEntryRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo, cfg.JWTSecret, cfg.JWTExpiryHours)
	clientHandler := handler.NewClientHandler(clientRepo)
	projectHandler := handler.NewProjectHandler(projectRepo, clientRepo)
	transactionHandler := handler.NewTransactionHandler(transactionRepo, projectRepo)
	timeEntryHandler := handler.NewTimeEntryHandler(timeEntryRepo, projectRepo)
	boardHandler := handler.NewBoardHandler(boardRepo, projectRepo, taskRepo)
	taskHandler := handler.NewTaskHandler(taskRepo, boardRepo)
	reportHandler := handler.NewReportHandler(projectRepo, clientRepo, transactionRepo, timeEntryRepo)
	exportHandler := handler.NewExportHandler(transactionRepo, timeEntryRepo, projectRepo)
	dashboardHandler := handler.NewDashboardHandler(projectRepo, transactionRepo, timeEntryRepo)

	// Public routes
	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		// Client routes
		authorized.POST("/clients", clientHandler.Create)
		authorized.GET("/clients", clientHandler.GetAll)
		authorized.GET("/clients/:id", clientHandler.GetByID)
		authorized.PUT("/clients/:id", clientHandler.Update)
		authorized.DELETE("/clients/:id", clientHandler.Delete)

		// Project routes
		authorized.POST("/projects", projectHandler.Create)
		authorized.GET("/projects", projectHandler.GetAll)
		authorized.GET("/projects/:id", projectHandler.GetByID)
		authorized.PUT("/projects/:id", projectHandler.Update)
		authorized.DELETE("/projects/:id", projectHandler.Delete)
		authorized.GET("/projects/:id/boards", boardHandler.GetByProject)

		// Board routes
		authorized.POST("/boards", boardHandler.Create)
		authorized.GET("/boards/:id", boardHandler.GetByID)
		authorized.PUT("/boards/:id", boardHandler.Update)
		authorized.DELETE("/boards/:id", boardHandler.Delete)

		// Task routes
		authorized.POST("/tasks", taskHandler.Create)
		authorized.GET("/tasks/:id", taskHandler.GetByID)
		authorized.GET("/columns/:id/tasks", taskHandler.GetByColumn)
		authorized.PUT("/tasks/:id", taskHandler.Update)
		authorized.DELETE("/tasks/:id", taskHandler.Delete)
		authorized.POST("/tasks/:id/move", taskHandler.Move)

		// Transaction routes
		authorized.POST("/transactions", transactionHandler.Create)
		authorized.GET("/transactions", transactionHandler.GetAll)
		authorized.GET("/transactions/stats", transactionHandler.GetStats)
		authorized.GET("/transactions/:id", transactionHandler.GetByID)
		authorized.PUT("/transactions/:id", transactionHandler.Update)
		authorized.DELETE("/transactions/:id", transactionHandler.Delete)

		// Time tracking routes
		authorized.POST("/time-entries/timer/start", timeEntryHandler.StartTimer)
		authorized.POST("/time-entries/timer/stop", timeEntryHandler.StopTimer)
		authorized.POST("/time-entries", timeEntryHandler.CreateManual)
		authorized.GET("/time-entries", timeEntryHandler.GetAll)
		authorized.GET("/time-entries/stats", timeEntryHandler.GetStats)
		authorized.DELETE("/time-entries/:id", timeEntryHandler.Delete)

		// Report routes
		authorized.POST("/reports", reportHandler.Generate)
		authorized.GET("/reports/quick-month", reportHandler.QuickMonth)
		authorized.GET("/reports/quick-year", reportHandler.QuickYear)

		// Export routes
		authorized.GET("/export/transactions/excel", exportHandler.TransactionsExcel)
		authorized.GET("/export/time-entries/csv", exportHandler.TimeEntriesCSV)

		// Dashboard routes
		authorized.GET("/dashboard/stats", dashboardHandler.GetStats)
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

package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/mizuka-dev/projecthub-api/internal/config"
	"github.com/mizuka-dev/projecthub-api/internal/constants"
	"github.com/mizuka-dev/projecthub-api/internal/database"
	"github.com/mizuka-dev/projecthub-api/internal/handlers"
	"github.com/mizuka-dev/projecthub-api/internal/middleware"
	"github.com/mizuka-dev/projecthub-api/internal/repository"
	"github.com/mizuka-dev/projecthub-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	skillRepo := repository.NewSkillRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	// Initialize AI service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Initialize services
	authService := services.NewAuthService(userRepo)
	skillService := services.NewSkillService(skillRepo)
	profileService := services.NewProfileService(userRepo, skillService)
	projectService := services.NewProjectService(projectRepo, userRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo)
	subtaskService := services.NewSubtaskService(snapshotRepo, projectRepo, skillRepo, aiService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(profileService)
	skillHandler := handlers.NewSkillHandler(skillService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	subtaskHandler := handlers.NewSubtaskHandler(subtaskService)
	adminHandler := handlers.NewAdminHandler(authService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "ProjectHub API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Profile routes (protected)
		profile := api.Group("/profile")
		profile.Use(middleware.RequireAuth())
		{
			profile.GET("", profileHandler.GetProfile)
			profile.PUT("", profileHandler.UpdateProfile)
		}

		// Skill catalog (protected, read only)
		api.GET("/skills", middleware.RequireAuth(), skillHandler.ListSkills)

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/:id", middleware.RequireProjectAccess(), projectHandler.GetProject)
			projects.PUT("/:id", middleware.RequireProjectAccess(), projectHandler.UpdateProject)
			projects.DELETE("/:id", middleware.RequireProjectAccess(), projectHandler.DeleteProject)
			projects.POST("/:id/members", middleware.RequireProjectAccess(), projectHandler.InviteMember)
			projects.DELETE("/:id/members/:user_id", middleware.RequireProjectAccess(), projectHandler.RemoveMember)
			projects.GET("/:id/tasks", middleware.RequireProjectAccess(), taskHandler.ListProjectTasks)
			projects.POST("/:id/subtasks/generate", middleware.RequireProjectAccess(), subtaskHandler.GenerateSubtasks)
			projects.GET("/:id/subtasks/latest", middleware.RequireProjectAccess(), subtaskHandler.GetLatestSnapshot)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.POST("/save", taskHandler.SaveTasks)
			tasks.PATCH("/:id", middleware.RequireTaskAccess(), taskHandler.UpdateTaskStatus)
		}

		// Snapshot edits (protected, membership checked in handler)
		api.PATCH("/subtasks/:id", middleware.RequireAuth(), subtaskHandler.UpdateSnapshot)

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.RequireAuth(), middleware.RequireAdmin())
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.POST("/users/:id/toggle-ban", adminHandler.ToggleBan)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

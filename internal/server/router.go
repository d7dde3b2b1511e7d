package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SNMurthy2003/Task-Assigner/internal/cache"
	"github.com/SNMurthy2003/Task-Assigner/internal/config"
	"github.com/SNMurthy2003/Task-Assigner/internal/handlers"
	"github.com/SNMurthy2003/Task-Assigner/internal/middleware"
	"github.com/SNMurthy2003/Task-Assigner/internal/models"
	"github.com/SNMurthy2003/Task-Assigner/internal/monitoring"
	"github.com/SNMurthy2003/Task-Assigner/internal/services"
)

// NewRouter wires the full route table. taskCache may be nil, in which
// case task listings go straight to the database.
func NewRouter(cfg *config.Config, db *gorm.DB, taskCache cache.Cache) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RecoveryWithLog())
	router.Use(monitoring.MetricsMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	tokens := services.NewTokenService(cfg.Auth)
	authService := services.NewAuthService(cfg.Auth.BCryptCost)
	userService := services.NewUserService()

	var taskService services.TaskService = services.NewTaskService()
	if taskCache != nil {
		taskService = services.NewCachedTaskService(taskService, taskCache)
	}

	authHandler := handlers.NewAuthHandler(db, authService, tokens)
	taskHandler := handlers.NewTaskHandler(db, taskService)
	userHandler := handlers.NewUserHandler(db, userService)

	router.GET("/", handlers.Root())
	router.GET("/health", monitoring.HealthHandler())
	router.GET("/metrics", monitoring.MetricsHandler())

	api := router.Group("/api")
	if !cfg.IsProduction() {
		api.GET("/debug", handlers.Debug(cfg))
	}

	auth := api.Group("/auth")
	if cfg.RateLimit.Enabled {
		auth.Use(middleware.NewRateLimiter(cfg.RateLimit).Middleware())
	}
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/select-role", middleware.RequireAuth(tokens), authHandler.SelectRole)

	tasks := api.Group("/tasks")
	tasks.Use(middleware.RequireAuth(tokens))
	tasks.GET("", taskHandler.GetTasks)
	tasks.POST("", middleware.RequireRole(models.RoleAdmin), taskHandler.CreateTask)
	tasks.PUT("/:id", taskHandler.UpdateTask)
	tasks.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), taskHandler.DeleteTask)
	tasks.GET("/users/list", middleware.RequireRole(models.RoleAdmin), userHandler.GetAssignableUsers)

	return router
}

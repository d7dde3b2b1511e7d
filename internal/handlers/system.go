package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SNMurthy2003/Task-Assigner/internal/config"
)

func Root() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Task Manager API is running"})
	}
}

// Debug reports which pieces of configuration are present, as booleans
// only. The route is not registered in production.
func Debug(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"hasJwtSecret": cfg.Auth.JWTSecret != "" && cfg.Auth.JWTSecret != "your-secret-key",
			"dbDriver":     cfg.Database.Driver,
			"redisEnabled": cfg.Redis.Enabled,
			"environment":  cfg.Server.Environment,
		})
	}
}

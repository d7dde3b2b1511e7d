package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SNMurthy2003/Task-Assigner/internal/services"
)

type UserHandler struct {
	db          *gorm.DB
	userService services.UserService
}

func NewUserHandler(db *gorm.DB, userService services.UserService) *UserHandler {
	return &UserHandler{db: db, userService: userService}
}

// GetAssignableUsers backs the admin task-assignment picker. The route
// is admin-gated.
func (h *UserHandler) GetAssignableUsers(c *gin.Context) {
	users, err := h.userService.ListAssignableUsers(h.db)
	if err != nil {
		log.Printf("list users error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, users)
}

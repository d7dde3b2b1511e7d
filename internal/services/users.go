package services

import (
	"gorm.io/gorm"

	"github.com/SNMurthy2003/Task-Assigner/internal/models"
)

type UserService interface {
	ListAssignableUsers(db *gorm.DB) ([]models.PublicUser, error)
}

type UserServiceImpl struct{}

func NewUserService() *UserServiceImpl {
	return &UserServiceImpl{}
}

// ListAssignableUsers returns every registered user for the admin
// assignment picker. Full scan, no pagination.
func (s *UserServiceImpl) ListAssignableUsers(db *gorm.DB) ([]models.PublicUser, error) {
	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		return nil, err
	}

	public := make([]models.PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}

	return public, nil
}

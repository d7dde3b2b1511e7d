package services

import (
	"errors"
	"time"

	"github.com/gofrs/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/SNMurthy2003/Task-Assigner/internal/models"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService interface {
	Signup(db *gorm.DB, fullName, email, password string) (*models.User, error)
	Login(db *gorm.DB, email, password string) (*models.User, error)
	SelectRole(db *gorm.DB, uid string, role string) (*models.User, error)
}

type AuthServiceImpl struct {
	bcryptCost int
}

func NewAuthService(bcryptCost int) *AuthServiceImpl {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthServiceImpl{bcryptCost: bcryptCost}
}

func VerifyPassword(hashedPassword, plainPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	return err == nil
}

// Signup creates an account with no role; the role is chosen afterwards
// through SelectRole. The duplicate check is a case-sensitive exact match
// on email.
func (s *AuthServiceImpl) Signup(db *gorm.DB, fullName, email, password string) (*models.User, error) {
	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		UID:       uuid.Must(uuid.NewV4()),
		FullName:  fullName,
		Email:     email,
		Password:  string(hashedPassword),
		Role:      nil,
		CreatedAt: time.Now(),
	}

	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// Login returns the same error for an unknown email and a wrong
// password.
func (s *AuthServiceImpl) Login(db *gorm.DB, email, password string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !VerifyPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// SelectRole persists the chosen role. Re-selection by an account that
// already has a role is permitted; the caller re-issues the token so the
// new role takes effect immediately.
func (s *AuthServiceImpl) SelectRole(db *gorm.DB, uid string, role string) (*models.User, error) {
	if !models.IsValidRole(role) {
		return nil, ErrInvalidRole
	}

	var user models.User
	if err := db.Where("uid = ?", uid).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := db.Model(&user).Update("role", role).Error; err != nil {
		return nil, err
	}

	user.Role = &role
	return &user, nil
}

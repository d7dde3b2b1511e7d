package models

import (
	"time"

	"github.com/gofrs/uuid"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is a registered account. Role stays NULL until the user completes
// role selection after signup; the select-role endpoint is the only writer.
type User struct {
	UID       uuid.UUID `json:"uid" gorm:"primaryKey;type:uuid;column:uid"`
	FullName  string    `json:"fullName" gorm:"not null"`
	Email     string    `json:"email" gorm:"unique;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Role      *string   `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) HasRole(name string) bool {
	return u.Role != nil && *u.Role == name
}

func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return *u.Role
}

// PublicUser is the client-facing shape of a user; the password hash is
// never serialized anywhere, this type just makes the contract explicit
// for listings.
type PublicUser struct {
	UID      uuid.UUID `json:"uid"`
	FullName string    `json:"fullName"`
	Email    string    `json:"email"`
	Role     *string   `json:"role"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		UID:      u.UID,
		FullName: u.FullName,
		Email:    u.Email,
		Role:     u.Role,
	}
}

func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

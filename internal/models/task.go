package models

import (
	"time"

	"github.com/gofrs/uuid"
)

const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// Task is an assignment created by an admin. AssignedToName and
// CreatedByName are snapshots of the referenced user's full name taken at
// write time; they are not kept in sync with later renames.
type Task struct {
	ID             uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Title          string    `json:"title" gorm:"not null"`
	Description    string    `json:"description"`
	Status         string    `json:"status" gorm:"not null;default:'Pending'"`
	AssignedTo     *string   `json:"assignedTo" gorm:"index"`
	AssignedToName string    `json:"assignedToName"`
	CreatedBy      string    `json:"createdBy" gorm:"not null"`
	CreatedByName  string    `json:"createdByName"`
	CreatedAt      time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

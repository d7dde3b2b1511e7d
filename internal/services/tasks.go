package services

import (
	"errors"
	"sort"
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"

	"github.com/SNMurthy2003/Task-Assigner/internal/models"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrInvalidStatus = errors.New("valid status is required")
)

type CreateTaskInput struct {
	Title       string
	Description string
	AssignedTo  string
	Status      string
}

type TaskService interface {
	ListTasks(db *gorm.DB, identity *Identity) ([]models.Task, error)
	CreateTask(db *gorm.DB, identity *Identity, input CreateTaskInput) (*models.Task, error)
	UpdateTask(db *gorm.DB, identity *Identity, id uuid.UUID, patch map[string]interface{}) (*models.Task, error)
	DeleteTask(db *gorm.DB, id uuid.UUID) error
}

type TaskServiceImpl struct{}

func NewTaskService() *TaskServiceImpl {
	return &TaskServiceImpl{}
}

// ListTasks returns every task for admins and only the caller's assigned
// tasks otherwise. Both role paths sort post-fetch so the observable
// ordering (createdAt descending) comes from exactly one place.
func (s *TaskServiceImpl) ListTasks(db *gorm.DB, identity *Identity) ([]models.Task, error) {
	query := db.Model(&models.Task{})
	if identity.Role != models.RoleAdmin {
		query = query.Where("assigned_to = ?", identity.UID)
	}

	tasks := []models.Task{}
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}

	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})

	return tasks, nil
}

func (s *TaskServiceImpl) CreateTask(db *gorm.DB, identity *Identity, input CreateTaskInput) (*models.Task, error) {
	taskID, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = models.StatusPending
	}

	createdByName := identity.FullName
	if createdByName == "" {
		createdByName = "Admin"
	}

	now := time.Now()
	task := models.Task{
		ID:            taskID,
		Title:         input.Title,
		Description:   input.Description,
		Status:        status,
		CreatedBy:     identity.UID,
		CreatedByName: createdByName,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if input.AssignedTo != "" {
		assignedTo := input.AssignedTo
		task.AssignedTo = &assignedTo
		task.AssignedToName = resolveUserName(db, assignedTo)
	}

	if err := db.Create(&task).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// UpdateTask applies a partial patch. Admins may change any field; other
// callers may only set a valid status, and every other patch key is
// silently ignored for them. The updated task is re-read after the write,
// so a concurrent delete surfaces as not-found.
func (s *TaskServiceImpl) UpdateTask(db *gorm.DB, identity *Identity, id uuid.UUID, patch map[string]interface{}) (*models.Task, error) {
	var task models.Task
	if err := db.Where("id = ?", id).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{"updated_at": time.Now()}

	if identity.Role == models.RoleAdmin {
		if v, ok := patch["title"]; ok {
			updates["title"], _ = v.(string)
		}
		if v, ok := patch["description"]; ok {
			updates["description"], _ = v.(string)
		}
		if v, ok := patch["status"]; ok {
			updates["status"], _ = v.(string)
		}
		if v, ok := patch["assignedTo"]; ok {
			if assignedTo, isStr := v.(string); isStr && assignedTo != "" {
				updates["assigned_to"] = assignedTo
				updates["assigned_to_name"] = resolveUserName(db, assignedTo)
			} else {
				updates["assigned_to"] = nil
				updates["assigned_to_name"] = ""
			}
		}
	} else {
		status, _ := patch["status"].(string)
		if !models.IsValidStatus(status) {
			return nil, ErrInvalidStatus
		}
		updates["status"] = status
	}

	if err := db.Model(&models.Task{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}

	var updated models.Task
	if err := db.Where("id = ?", id).First(&updated).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	return &updated, nil
}

func (s *TaskServiceImpl) DeleteTask(db *gorm.DB, id uuid.UUID) error {
	var task models.Task
	if err := db.Where("id = ?", id).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	return db.Delete(&task).Error
}

// resolveUserName snapshots the assignee's full name at write time. An id
// that does not resolve is stored as given with an empty name; assignment
// to a nonexistent user is accepted silently.
func resolveUserName(db *gorm.DB, uid string) string {
	var user models.User
	if err := db.Where("uid = ?", uid).First(&user).Error; err != nil {
		return ""
	}

	return user.FullName
}

package services

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"

	"github.com/SNMurthy2003/Task-Assigner/internal/cache"
	"github.com/SNMurthy2003/Task-Assigner/internal/models"
)

const taskListTTL = 10 * time.Minute

// CachedTaskService decorates a TaskService with read-through caching of
// task listings. Every mutation invalidates the whole task keyspace.
type CachedTaskService struct {
	taskService TaskService
	cache       cache.Cache
}

func NewCachedTaskService(taskService TaskService, cacheInstance cache.Cache) *CachedTaskService {
	return &CachedTaskService{
		taskService: taskService,
		cache:       cacheInstance,
	}
}

func (s *CachedTaskService) ListTasks(db *gorm.DB, identity *Identity) ([]models.Task, error) {
	cacheKey := listCacheKey(identity)

	var cached []models.Task
	if err := s.cache.Get(cacheKey, &cached); err == nil {
		return cached, nil
	}

	tasks, err := s.taskService.ListTasks(db, identity)
	if err != nil {
		return nil, err
	}

	s.cache.Set(cacheKey, tasks, taskListTTL)

	return tasks, nil
}

func (s *CachedTaskService) CreateTask(db *gorm.DB, identity *Identity, input CreateTaskInput) (*models.Task, error) {
	task, err := s.taskService.CreateTask(db, identity, input)
	if err != nil {
		return nil, err
	}

	s.invalidate()
	return task, nil
}

func (s *CachedTaskService) UpdateTask(db *gorm.DB, identity *Identity, id uuid.UUID, patch map[string]interface{}) (*models.Task, error) {
	task, err := s.taskService.UpdateTask(db, identity, id, patch)
	if err != nil {
		return nil, err
	}

	s.invalidate()
	return task, nil
}

func (s *CachedTaskService) DeleteTask(db *gorm.DB, id uuid.UUID) error {
	if err := s.taskService.DeleteTask(db, id); err != nil {
		return err
	}

	s.invalidate()
	return nil
}

func (s *CachedTaskService) invalidate() {
	s.cache.DeletePattern("tasks:*")
}

func listCacheKey(identity *Identity) string {
	if identity.Role == models.RoleAdmin {
		return "tasks:all"
	}
	return fmt.Sprintf("tasks:user:%s", identity.UID)
}

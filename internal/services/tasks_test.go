package services_test

import (
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/SNMurthy2003/Task-Assigner/internal/models"
	"github.com/SNMurthy2003/Task-Assigner/internal/services"
)

type TaskServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service services.TaskService

	admin *services.Identity
	user  *services.Identity
	ben   models.User
}

func (suite *TaskServiceTestSuite) SetupSuite() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	suite.Require().NoError(db.AutoMigrate(&models.User{}, &models.Task{}))

	suite.db = db
	suite.service = services.NewTaskService()
}

func (suite *TaskServiceTestSuite) SetupTest() {
	suite.db.Exec("DELETE FROM tasks")
	suite.db.Exec("DELETE FROM users")

	adminRole := models.RoleAdmin
	userRole := models.RoleUser

	adminUser := models.User{
		UID:      uuid.Must(uuid.NewV4()),
		FullName: "Alice Admin",
		Email:    "admin@x.com",
		Password: "hash",
		Role:     &adminRole,
	}
	suite.Require().NoError(suite.db.Create(&adminUser).Error)

	ben := models.User{
		UID:      uuid.Must(uuid.NewV4()),
		FullName: "Ben",
		Email:    "ben@x.com",
		Password: "hash",
		Role:     &userRole,
	}
	suite.Require().NoError(suite.db.Create(&ben).Error)
	suite.ben = ben

	suite.admin = &services.Identity{
		UID:      adminUser.UID.String(),
		Email:    adminUser.Email,
		Role:     models.RoleAdmin,
		FullName: adminUser.FullName,
	}
	suite.user = &services.Identity{
		UID:      ben.UID.String(),
		Email:    ben.Email,
		Role:     models.RoleUser,
		FullName: ben.FullName,
	}
}

func (suite *TaskServiceTestSuite) seedTask(title string, assignedTo string, createdAt time.Time) models.Task {
	task := models.Task{
		ID:        uuid.Must(uuid.NewV4()),
		Title:     title,
		Status:    models.StatusPending,
		CreatedBy: suite.admin.UID,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if assignedTo != "" {
		task.AssignedTo = &assignedTo
	}
	suite.Require().NoError(suite.db.Create(&task).Error)
	return task
}

func (suite *TaskServiceTestSuite) TestCreateTaskDefaults() {
	task, err := suite.service.CreateTask(suite.db, suite.admin, services.CreateTaskInput{
		Title: "Fix bug",
	})
	suite.Require().NoError(err)

	suite.Equal(models.StatusPending, task.Status)
	suite.Equal("", task.Description)
	suite.Nil(task.AssignedTo)
	suite.Equal("", task.AssignedToName)
	suite.Equal(suite.admin.UID, task.CreatedBy)
	suite.Equal("Alice Admin", task.CreatedByName)
	suite.Equal(task.CreatedAt, task.UpdatedAt)
}

func (suite *TaskServiceTestSuite) TestCreateTaskResolvesAssigneeName() {
	task, err := suite.service.CreateTask(suite.db, suite.admin, services.CreateTaskInput{
		Title:      "Fix bug",
		AssignedTo: suite.ben.UID.String(),
	})
	suite.Require().NoError(err)

	suite.Require().NotNil(task.AssignedTo)
	suite.Equal(suite.ben.UID.String(), *task.AssignedTo)
	suite.Equal("Ben", task.AssignedToName)
}

func (suite *TaskServiceTestSuite) TestCreateTaskUnresolvableAssigneeAccepted() {
	task, err := suite.service.CreateTask(suite.db, suite.admin, services.CreateTaskInput{
		Title:      "Orphan",
		AssignedTo: "u123",
	})
	suite.Require().NoError(err)

	suite.Require().NotNil(task.AssignedTo)
	suite.Equal("u123", *task.AssignedTo)
	suite.Equal("", task.AssignedToName)
}

func (suite *TaskServiceTestSuite) TestCreateTaskFallbackCreatorName() {
	anonymous := &services.Identity{UID: suite.admin.UID, Role: models.RoleAdmin}

	task, err := suite.service.CreateTask(suite.db, anonymous, services.CreateTaskInput{Title: "T"})
	suite.Require().NoError(err)
	suite.Equal("Admin", task.CreatedByName)
}

func (suite *TaskServiceTestSuite) TestListTasksAdminSeesAllDescending() {
	base := time.Now().Add(-time.Hour)
	suite.seedTask("oldest", "", base)
	suite.seedTask("middle", suite.user.UID, base.Add(10*time.Minute))
	suite.seedTask("newest", "someone-else", base.Add(20*time.Minute))

	tasks, err := suite.service.ListTasks(suite.db, suite.admin)
	suite.Require().NoError(err)
	suite.Require().Len(tasks, 3)

	suite.Equal("newest", tasks[0].Title)
	suite.Equal("middle", tasks[1].Title)
	suite.Equal("oldest", tasks[2].Title)

	for i := 1; i < len(tasks); i++ {
		suite.True(tasks[i-1].CreatedAt.After(tasks[i].CreatedAt),
			"admin listing must be strictly createdAt-descending")
	}
}

func (suite *TaskServiceTestSuite) TestListTasksUserSeesOnlyOwnAssigned() {
	base := time.Now().Add(-time.Hour)
	suite.seedTask("mine-old", suite.user.UID, base)
	suite.seedTask("not-mine", "someone-else", base.Add(5*time.Minute))
	suite.seedTask("mine-new", suite.user.UID, base.Add(10*time.Minute))
	suite.seedTask("unassigned", "", base.Add(15*time.Minute))

	tasks, err := suite.service.ListTasks(suite.db, suite.user)
	suite.Require().NoError(err)
	suite.Require().Len(tasks, 2)

	suite.Equal("mine-new", tasks[0].Title)
	suite.Equal("mine-old", tasks[1].Title)

	for _, task := range tasks {
		suite.Require().NotNil(task.AssignedTo)
		suite.Equal(suite.user.UID, *task.AssignedTo)
	}
}

func (suite *TaskServiceTestSuite) TestListTasksEmpty() {
	tasks, err := suite.service.ListTasks(suite.db, suite.user)
	suite.Require().NoError(err)
	suite.NotNil(tasks)
	suite.Len(tasks, 0)
}

func (suite *TaskServiceTestSuite) TestUpdateTaskAdminPartialPatch() {
	task := suite.seedTask("original", suite.user.UID, time.Now().Add(-time.Minute))

	updated, err := suite.service.UpdateTask(suite.db, suite.admin, task.ID, map[string]interface{}{
		"title": "renamed",
	})
	suite.Require().NoError(err)

	suite.Equal("renamed", updated.Title)
	suite.Equal(models.StatusPending, updated.Status, "omitted fields stay unchanged")
	suite.Require().NotNil(updated.AssignedTo)
	suite.Equal(suite.user.UID, *updated.AssignedTo)
	suite.True(updated.UpdatedAt.After(task.UpdatedAt))
}

func (suite *TaskServiceTestSuite) TestUpdateTaskAdminReassigns() {
	task := suite.seedTask("reassign", "someone-else", time.Now().Add(-time.Minute))

	updated, err := suite.service.UpdateTask(suite.db, suite.admin, task.ID, map[string]interface{}{
		"assignedTo": suite.ben.UID.String(),
	})
	suite.Require().NoError(err)

	suite.Require().NotNil(updated.AssignedTo)
	suite.Equal(suite.ben.UID.String(), *updated.AssignedTo)
	suite.Equal("Ben", updated.AssignedToName)
}

func (suite *TaskServiceTestSuite) TestUpdateTaskAdminClearsAssignee() {
	task := suite.seedTask("clear", suite.ben.UID.String(), time.Now().Add(-time.Minute))
	suite.db.Model(&models.Task{}).Where("id = ?", task.ID).Update("assigned_to_name", "Ben")

	updated, err := suite.service.UpdateTask(suite.db, suite.admin, task.ID, map[string]interface{}{
		"assignedTo": nil,
	})
	suite.Require().NoError(err)

	suite.Nil(updated.AssignedTo)
	suite.Equal("", updated.AssignedToName)
}

func (suite *TaskServiceTestSuite) TestUpdateTaskUserStatusOnly() {
	task := suite.seedTask("status", suite.user.UID, time.Now().Add(-time.Minute))

	updated, err := suite.service.UpdateTask(suite.db, suite.user, task.ID, map[string]interface{}{
		"status": models.StatusInProgress,
		"title":  "hijacked",
	})
	suite.Require().NoError(err)

	suite.Equal(models.StatusInProgress, updated.Status)
	suite.Equal("status", updated.Title, "non-status fields are ignored for non-admins")
}

func (suite *TaskServiceTestSuite) TestUpdateTaskUserInvalidStatus() {
	task := suite.seedTask("invalid", suite.user.UID, time.Now().Add(-time.Minute))

	for _, status := range []string{"", "Done", "pending"} {
		patch := map[string]interface{}{}
		if status != "" {
			patch["status"] = status
		}

		_, err := suite.service.UpdateTask(suite.db, suite.user, task.ID, patch)
		suite.ErrorIs(err, services.ErrInvalidStatus)
	}

	var stored models.Task
	suite.Require().NoError(suite.db.Where("id = ?", task.ID).First(&stored).Error)
	suite.Equal(models.StatusPending, stored.Status, "rejected update must leave the task unchanged")
	suite.Equal(task.UpdatedAt.Unix(), stored.UpdatedAt.Unix())
}

func (suite *TaskServiceTestSuite) TestUpdateTaskNotFound() {
	_, err := suite.service.UpdateTask(suite.db, suite.admin, uuid.Must(uuid.NewV4()), map[string]interface{}{
		"title": "ghost",
	})
	suite.ErrorIs(err, services.ErrTaskNotFound)
}

func (suite *TaskServiceTestSuite) TestDeleteTask() {
	task := suite.seedTask("doomed", "", time.Now())

	suite.Require().NoError(suite.service.DeleteTask(suite.db, task.ID))

	var count int64
	suite.db.Model(&models.Task{}).Where("id = ?", task.ID).Count(&count)
	suite.Equal(int64(0), count)
}

func (suite *TaskServiceTestSuite) TestDeleteTaskNotFound() {
	err := suite.service.DeleteTask(suite.db, uuid.Must(uuid.NewV4()))
	suite.ErrorIs(err, services.ErrTaskNotFound)
}

func (suite *TaskServiceTestSuite) TestCreateThenListRoundTrip() {
	created, err := suite.service.CreateTask(suite.db, suite.admin, services.CreateTaskInput{
		Title:       "Round trip",
		Description: "end to end",
		Status:      models.StatusInProgress,
	})
	suite.Require().NoError(err)

	tasks, err := suite.service.ListTasks(suite.db, suite.admin)
	suite.Require().NoError(err)
	suite.Require().Len(tasks, 1)

	suite.Equal(created.Title, tasks[0].Title)
	suite.Equal(created.Description, tasks[0].Description)
	suite.Equal(created.Status, tasks[0].Status)
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mizuka-dev/projecthub-api/internal/constants"
	"github.com/mizuka-dev/projecthub-api/internal/database"
	"github.com/mizuka-dev/projecthub-api/internal/dto"
	"github.com/mizuka-dev/projecthub-api/internal/models"
	"github.com/mizuka-dev/projecthub-api/internal/repository"
	"github.com/mizuka-dev/projecthub-api/internal/services"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ProjectHandlerTestSuite defines the test suite for ProjectHandler
type ProjectHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *ProjectHandler
}

// SetupTest runs before each test
func (suite *ProjectHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Skill{},
		&models.UserSkill{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.TaskSkill{},
		&models.TaskMember{},
		&models.SubtaskSnapshot{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	projectRepo := repository.NewProjectRepository(suite.db)
	userRepo := repository.NewUserRepository(suite.db)
	projectService := services.NewProjectService(projectRepo, userRepo)
	suite.handler = NewProjectHandler(projectService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *ProjectHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ProjectHandlerTestSuite) createTestUser(name, email string) *models.User {
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *ProjectHandlerTestSuite) createTestProject(name string, creatorID uint64) (*models.Project, *models.ProjectMember) {
	project := &models.Project{
		Name:      name,
		CreatorID: creatorID,
	}
	suite.db.Create(project)
	member := &models.ProjectMember{
		ProjectID: project.ID,
		UserID:    creatorID,
		Role:      models.RoleCreator,
	}
	suite.db.Create(member)
	return project, member
}

func (suite *ProjectHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func (suite *ProjectHandlerTestSuite) TestCreateProject() {
	user := suite.createTestUser("Alice", "alice@example.com")

	payload := map[string]string{
		"name":        "Launch",
		"description": "ship it",
	}
	body, err := json.Marshal(payload)
	suite.Require().NoError(err)

	c, w := suite.createAuthContext(http.MethodPost, "/api/projects", body, user.ID)
	suite.handler.CreateProject(c)

	suite.Equal(http.StatusCreated, w.Code)

	var response dto.ProjectDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("Launch", response.Name)
	suite.Equal(user.ID, response.CreatorID)

	// The creator membership is written in the same transaction.
	var member models.ProjectMember
	suite.Require().NoError(suite.db.
		Where("project_id = ? AND user_id = ?", response.ID, user.ID).
		First(&member).Error)
	suite.Equal(models.RoleCreator, member.Role)
}

func (suite *ProjectHandlerTestSuite) TestCreateProjectRequiresName() {
	user := suite.createTestUser("Alice", "alice@example.com")

	body, err := json.Marshal(map[string]string{"description": "no name"})
	suite.Require().NoError(err)

	c, w := suite.createAuthContext(http.MethodPost, "/api/projects", body, user.ID)
	suite.handler.CreateProject(c)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestUpdateProject() {
	user := suite.createTestUser("Alice", "alice@example.com")
	project, _ := suite.createTestProject("Launch", user.ID)

	body, err := json.Marshal(map[string]any{"name": "Relaunch"})
	suite.Require().NoError(err)

	c, w := suite.createAuthContext(http.MethodPut, "/api/projects/1", body, user.ID)
	c.Set("project", *project)
	suite.handler.UpdateProject(c)

	suite.Equal(http.StatusOK, w.Code)

	var response dto.ProjectDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("Relaunch", response.Name)
}

func (suite *ProjectHandlerTestSuite) TestUpdateProjectCreatorOnly() {
	owner := suite.createTestUser("Alice", "alice@example.com")
	member := suite.createTestUser("Bob", "bob@example.com")
	project, _ := suite.createTestProject("Launch", owner.ID)
	suite.db.Create(&models.ProjectMember{
		ProjectID: project.ID,
		UserID:    member.ID,
		Role:      models.RoleMember,
	})

	body, err := json.Marshal(map[string]any{"name": "Hijacked"})
	suite.Require().NoError(err)

	c, w := suite.createAuthContext(http.MethodPut, "/api/projects/1", body, member.ID)
	c.Set("project", *project)
	suite.handler.UpdateProject(c)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestInviteMember() {
	owner := suite.createTestUser("Alice", "alice@example.com")
	invited := suite.createTestUser("Bob", "bob@example.com")
	project, _ := suite.createTestProject("Launch", owner.ID)

	body, err := json.Marshal(map[string]string{"email": "bob@example.com"})
	suite.Require().NoError(err)

	c, w := suite.createAuthContext(http.MethodPost, "/api/projects/1/members", body, owner.ID)
	c.Set("project", *project)
	suite.handler.InviteMember(c)

	suite.Equal(http.StatusOK, w.Code)

	var member models.ProjectMember
	suite.Require().NoError(suite.db.
		Where("project_id = ? AND user_id = ?", project.ID, invited.ID).
		First(&member).Error)
	suite.Equal(models.RoleMember, member.Role)
}

func (suite *ProjectHandlerTestSuite) TestInviteMemberTwice() {
	owner := suite.createTestUser("Alice", "alice@example.com")
	suite.createTestUser("Bob", "bob@example.com")
	project, _ := suite.createTestProject("Launch", owner.ID)

	body, err := json.Marshal(map[string]string{"email": "bob@example.com"})
	suite.Require().NoError(err)

	c, w := suite.createAuthContext(http.MethodPost, "/api/projects/1/members", body, owner.ID)
	c.Set("project", *project)
	suite.handler.InviteMember(c)
	suite.Equal(http.StatusOK, w.Code)

	c, w = suite.createAuthContext(http.MethodPost, "/api/projects/1/members", body, owner.ID)
	c.Set("project", *project)
	suite.handler.InviteMember(c)
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestInviteUnknownEmail() {
	owner := suite.createTestUser("Alice", "alice@example.com")
	project, _ := suite.createTestProject("Launch", owner.ID)

	body, err := json.Marshal(map[string]string{"email": "ghost@example.com"})
	suite.Require().NoError(err)

	c, w := suite.createAuthContext(http.MethodPost, "/api/projects/1/members", body, owner.ID)
	c.Set("project", *project)
	suite.handler.InviteMember(c)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestInviteAsCreatorRejected() {
	owner := suite.createTestUser("Alice", "alice@example.com")
	suite.createTestUser("Bob", "bob@example.com")
	project, _ := suite.createTestProject("Launch", owner.ID)

	body, err := json.Marshal(map[string]string{
		"email": "bob@example.com",
		"role":  "creator",
	})
	suite.Require().NoError(err)

	c, w := suite.createAuthContext(http.MethodPost, "/api/projects/1/members", body, owner.ID)
	c.Set("project", *project)
	suite.handler.InviteMember(c)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestRemoveMember() {
	owner := suite.createTestUser("Alice", "alice@example.com")
	member := suite.createTestUser("Bob", "bob@example.com")
	project, _ := suite.createTestProject("Launch", owner.ID)
	suite.db.Create(&models.ProjectMember{
		ProjectID: project.ID,
		UserID:    member.ID,
		Role:      models.RoleMember,
	})

	c, w := suite.createAuthContext(http.MethodDelete, "/api/projects/1/members/2", nil, owner.ID)
	c.Set("project", *project)
	c.Params = gin.Params{{Key: "user_id", Value: "2"}}
	suite.handler.RemoveMember(c)

	suite.Equal(http.StatusOK, w.Code)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", project.ID, member.ID).
		Count(&count).Error)
	suite.Zero(count)
}

func (suite *ProjectHandlerTestSuite) TestRemoveCreatorRejected() {
	owner := suite.createTestUser("Alice", "alice@example.com")
	admin := suite.createTestUser("Bob", "bob@example.com")
	project, _ := suite.createTestProject("Launch", owner.ID)
	suite.db.Create(&models.ProjectMember{
		ProjectID: project.ID,
		UserID:    admin.ID,
		Role:      models.RoleAdmin,
	})

	c, w := suite.createAuthContext(http.MethodDelete, "/api/projects/1/members/1", nil, admin.ID)
	c.Set("project", *project)
	c.Params = gin.Params{{Key: "user_id", Value: "1"}}
	suite.handler.RemoveMember(c)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestDeleteProjectCascades() {
	owner := suite.createTestUser("Alice", "alice@example.com")
	project, _ := suite.createTestProject("Launch", owner.ID)

	task := &models.Task{Title: "T", ProjectID: project.ID}
	suite.db.Create(task)
	skill := &models.Skill{Name: "go"}
	suite.db.Create(skill)
	suite.db.Create(&models.TaskSkill{TaskID: task.ID, SkillID: skill.ID, RequiredLevel: 1})
	suite.db.Create(&models.SubtaskSnapshot{ProjectID: project.ID})

	c, w := suite.createAuthContext(http.MethodDelete, "/api/projects/1", nil, owner.ID)
	c.Set("project", *project)
	suite.handler.DeleteProject(c)

	suite.Equal(http.StatusOK, w.Code)

	var projects, tasks, links, snapshots, members int64
	suite.db.Model(&models.Project{}).Count(&projects)
	suite.db.Model(&models.Task{}).Count(&tasks)
	suite.db.Model(&models.TaskSkill{}).Count(&links)
	suite.db.Model(&models.SubtaskSnapshot{}).Count(&snapshots)
	suite.db.Model(&models.ProjectMember{}).Count(&members)
	suite.Zero(projects)
	suite.Zero(tasks)
	suite.Zero(links)
	suite.Zero(snapshots)
	suite.Zero(members)

	// The catalog is shared; it survives project deletion.
	var skills int64
	suite.db.Model(&models.Skill{}).Count(&skills)
	suite.EqualValues(1, skills)
}

func TestProjectHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectHandlerTestSuite))
}

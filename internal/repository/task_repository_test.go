package repository

import (
	"testing"

	"github.com/mizuka-dev/projecthub-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTaskRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Skill{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.TaskSkill{},
		&models.TaskMember{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func seedProject(t *testing.T, db *gorm.DB) (*models.Project, *models.User) {
	t.Helper()

	user := &models.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)

	project := &models.Project{Name: "Launch", CreatorID: user.ID}
	require.NoError(t, db.Create(project).Error)

	return project, user
}

func TestReplaceProjectTasks_SeedsAndReusesCatalog(t *testing.T) {
	db := newTaskRepoTestDB(t)
	project, _ := seedProject(t, db)
	repo := NewTaskRepository(db)

	require.NoError(t, db.Create(&models.Skill{Name: "go"}).Error)

	created, err := repo.ReplaceProjectTasks(project.ID, []TaskDraft{
		{Title: "A", SkillNames: []string{"Go", "Rust"}},
		{Title: "B", SkillNames: []string{"rust", "RUST"}},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)

	// "Go" reused the existing row, "Rust"/"rust"/"RUST" created one.
	var skills []models.Skill
	require.NoError(t, db.Order("name ASC").Find(&skills).Error)
	require.Len(t, skills, 2)
	require.Equal(t, "go", skills[0].Name)
	require.Equal(t, "rust", skills[1].Name)

	// The duplicate spellings of rust produced a single link on task B.
	var links int64
	require.NoError(t, db.Model(&models.TaskSkill{}).
		Where("task_id = ?", created[1].ID).
		Count(&links).Error)
	require.EqualValues(t, 1, links)
}

func TestReplaceProjectTasks_RollsBackOnFailure(t *testing.T) {
	db := newTaskRepoTestDB(t)
	project, user := seedProject(t, db)
	repo := NewTaskRepository(db)

	_, err := repo.ReplaceProjectTasks(project.ID, []TaskDraft{
		{Title: "Keep me", SkillNames: []string{"go"}, AssigneeIDs: []uint64{user.ID}},
	})
	require.NoError(t, err)

	// The duplicate assignee violates the composite primary key mid-batch.
	_, err = repo.ReplaceProjectTasks(project.ID, []TaskDraft{
		{Title: "First new"},
		{Title: "Broken", AssigneeIDs: []uint64{user.ID, user.ID}},
	})
	require.Error(t, err)

	// The failed replacement left the earlier list fully intact,
	// including its links.
	tasks, err := repo.ListByProject(project.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, "Keep me", tasks[0].Title)
	require.Len(t, tasks[0].Skills, 1)
	require.Len(t, tasks[0].Members, 1)
}

func TestReplaceProjectTasks_KeepsOtherProjectsUntouched(t *testing.T) {
	db := newTaskRepoTestDB(t)
	project, _ := seedProject(t, db)
	repo := NewTaskRepository(db)

	other := &models.Project{Name: "Other", CreatorID: 1}
	require.NoError(t, db.Create(other).Error)
	require.NoError(t, db.Create(&models.Task{Title: "Elsewhere", ProjectID: other.ID}).Error)

	_, err := repo.ReplaceProjectTasks(project.ID, []TaskDraft{
		{Title: "Mine"},
	})
	require.NoError(t, err)

	otherTasks, err := repo.ListByProject(other.ID)
	require.NoError(t, err)
	require.Len(t, otherTasks, 1)
	require.Equal(t, "Elsewhere", otherTasks[0].Title)
}

func TestReplaceProjectTasks_StoresHintsAndNote(t *testing.T) {
	db := newTaskRepoTestDB(t)
	project, _ := seedProject(t, db)
	repo := NewTaskRepository(db)

	note := "needs a frontend hand"
	created, err := repo.ReplaceProjectTasks(project.ID, []TaskDraft{
		{
			Title:         "Polish UI",
			Note:          &note,
			AssigneeHints: []string{"Carol", "Dave"},
		},
	})
	require.NoError(t, err)
	require.Len(t, created, 1)

	task, err := repo.FindByID(created[0].ID)
	require.NoError(t, err)
	require.NotNil(t, task.Note)
	require.Equal(t, note, *task.Note)
	require.Equal(t, []string{"Carol", "Dave"}, task.AssigneeHints)
	require.Equal(t, models.TaskStatusTodo, task.Status)
}

package repository

import (
	"time"

	"github.com/mizuka-dev/projecthub-api/internal/database"
	"github.com/mizuka-dev/projecthub-api/internal/models"
	"github.com/mizuka-dev/projecthub-api/internal/utils"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a project and its creator membership atomically
func (r *GormProjectRepository) Create(project *models.Project, creatorRole models.ProjectRole) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		member := &models.ProjectMember{
			ProjectID: project.ID,
			UserID:    project.CreatorID,
			Role:      creatorRole,
			JoinedAt:  time.Now(),
		}

		return tx.Create(member).Error
	})
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ListForUser lists memberships (with projects) for a user, paginated
func (r *GormProjectRepository) ListForUser(userID uint64, params utils.PaginationParams) ([]models.ProjectMember, int64, error) {
	query := r.db.Model(&models.ProjectMember{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var memberships []models.ProjectMember
	if err := query.Preload("Project").
		Order("joined_at DESC").
		Scopes(database.Paginate(params)).
		Find(&memberships).Error; err != nil {
		return nil, 0, err
	}

	return memberships, total, nil
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete removes a project and everything it owns in one transaction:
// task links, tasks, memberships and subtask snapshots.
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var taskIDs []uint64
		if err := tx.Model(&models.Task{}).
			Where("project_id = ?", id).
			Pluck("id", &taskIDs).Error; err != nil {
			return err
		}

		if len(taskIDs) > 0 {
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.TaskSkill{}).Error; err != nil {
				return err
			}
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.TaskMember{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.SubtaskSnapshot{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}

// AddMember adds a member to a project
func (r *GormProjectRepository) AddMember(member *models.ProjectMember) error {
	return r.db.Create(member).Error
}

// RemoveMember removes a member from a project
func (r *GormProjectRepository) RemoveMember(projectID, userID uint64) error {
	return r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMember{}).Error
}

// FindMember finds a specific project membership
func (r *GormProjectRepository) FindMember(projectID, userID uint64) (*models.ProjectMember, error) {
	var member models.ProjectMember
	if err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers lists a project's members with the data the generation
// prompt and the identity resolver need.
func (r *GormProjectRepository) ListMembers(projectID uint64) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	if err := r.db.Preload("User").
		Preload("User.Profile").
		Preload("User.Skills.Skill").
		Where("project_id = ?", projectID).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

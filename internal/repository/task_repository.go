package repository

import (
	"time"

	"github.com/mizuka-dev/projecthub-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// ListByProject lists a project's tasks with skills and assignees
func (r *GormTaskRepository) ListByProject(projectID uint64) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Preload("Skills.Skill").
		Preload("Members.User").
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// ReplaceProjectTasks replaces a project's entire task list. The delete
// and every insert run inside one transaction: a failure on any draft
// rolls everything back, so the pre-existing task list is never lost to
// a partial write. Two concurrent replacements of the same project
// serialize at the store and the later commit wins.
func (r *GormTaskRepository) ReplaceProjectTasks(projectID uint64, drafts []TaskDraft) ([]models.Task, error) {
	var created []models.Task

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var taskIDs []uint64
		if err := tx.Model(&models.Task{}).
			Where("project_id = ?", projectID).
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
			if err := tx.Where("project_id = ?", projectID).Delete(&models.Task{}).Error; err != nil {
				return err
			}
		}

		// Seed the catalog lookup once; names created for earlier drafts
		// in this batch are added to it so the same new name is never
		// created twice.
		var catalog []models.Skill
		if err := tx.Find(&catalog).Error; err != nil {
			return err
		}
		skillIDs := make(map[string]uint64, len(catalog))
		for _, skill := range catalog {
			skillIDs[skill.Name] = skill.ID
		}

		now := time.Now()
		for _, draft := range drafts {
			task := models.Task{
				Title:         draft.Title,
				Description:   draft.Description,
				Status:        models.TaskStatusTodo,
				Note:          draft.Note,
				AssigneeHints: draft.AssigneeHints,
				ProjectID:     projectID,
			}
			if err := tx.Create(&task).Error; err != nil {
				return err
			}

			var links []models.TaskSkill
			linked := make(map[uint64]struct{}, len(draft.SkillNames))
			for _, raw := range draft.SkillNames {
				name := models.NormalizeSkillName(raw)
				if name == "" {
					continue
				}

				id, ok := skillIDs[name]
				if !ok {
					skill := models.Skill{Name: name, Description: ""}
					if err := tx.Create(&skill).Error; err != nil {
						// Lost a race against another writer; the row
						// exists now, so use it.
						if ferr := tx.Where("name = ?", name).First(&skill).Error; ferr != nil {
							return err
						}
					}
					id = skill.ID
					skillIDs[name] = id
				}

				if _, dup := linked[id]; dup {
					continue
				}
				linked[id] = struct{}{}
				links = append(links, models.TaskSkill{
					TaskID:        task.ID,
					SkillID:       id,
					RequiredLevel: 1,
				})
			}
			if len(links) > 0 {
				if err := tx.Create(&links).Error; err != nil {
					return err
				}
			}

			if len(draft.AssigneeIDs) > 0 {
				assignments := make([]models.TaskMember, len(draft.AssigneeIDs))
				for i, userID := range draft.AssigneeIDs {
					assignments[i] = models.TaskMember{
						TaskID:     task.ID,
						UserID:     userID,
						AssignedAt: now,
					}
				}
				if err := tx.Create(&assignments).Error; err != nil {
					return err
				}
			}

			created = append(created, task)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}
	return created, nil
}

package dto

import (
	"time"

	"github.com/mizuka-dev/projecthub-api/internal/models"
)

// TaskSkillDTO represents a task's required skill
type TaskSkillDTO struct {
	Skill         SkillDTO `json:"skill"`
	RequiredLevel int      `json:"required_level"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID            uint64            `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Status        models.TaskStatus `json:"status"`
	DueDate       *time.Time        `json:"due_date"`
	Note          *string           `json:"note"`
	AssigneeHints []string          `json:"assignee_hints,omitempty"`
	ProjectID     uint64            `json:"project_id"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	Skills        []TaskSkillDTO    `json:"required_skills,omitempty"`
	Assignees     []UserDTO         `json:"assigned_members,omitempty"`
}

// SnapshotDTO represents a generated-subtask snapshot
type SnapshotDTO struct {
	ID        uint64                   `json:"id"`
	ProjectID uint64                   `json:"project_id"`
	Subtasks  []models.ProposedSubtask `json:"subtasks"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:            task.ID,
		Title:         task.Title,
		Description:   task.Description,
		Status:        task.Status,
		DueDate:       task.DueDate,
		Note:          task.Note,
		AssigneeHints: task.AssigneeHints,
		ProjectID:     task.ProjectID,
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
	}

	for _, link := range task.Skills {
		dto.Skills = append(dto.Skills, TaskSkillDTO{
			Skill:         ToSkillDTO(link.Skill),
			RequiredLevel: link.RequiredLevel,
		})
	}
	for _, member := range task.Members {
		dto.Assignees = append(dto.Assignees, ToUserDTO(member.User))
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}

// ToSnapshotDTO converts a SubtaskSnapshot model to SnapshotDTO
func ToSnapshotDTO(snapshot models.SubtaskSnapshot) SnapshotDTO {
	return SnapshotDTO{
		ID:        snapshot.ID,
		ProjectID: snapshot.ProjectID,
		Subtasks:  snapshot.Subtasks,
		CreatedAt: snapshot.CreatedAt,
		UpdatedAt: snapshot.UpdatedAt,
	}
}

package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mizuka-dev/projecthub-api/internal/models"
	"github.com/mizuka-dev/projecthub-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrNoSubtasksToSave  = errors.New("at least one subtask is required")
	ErrSubtaskTitleEmpty = errors.New("subtask title cannot be empty")
	ErrInvalidStatus     = errors.New("invalid task status")
)

// TaskService handles the project task board and subtask
// materialization.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
	}
}

// ListProjectTasks returns a project's tasks with skills and assignees.
func (s *TaskService) ListProjectTasks(projectID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateStatus moves a task between workflow columns.
func (s *TaskService) UpdateStatus(taskID uint64, status models.TaskStatus) (*models.Task, error) {
	if !models.ValidTaskStatus(status) {
		return nil, ErrInvalidStatus
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	task.Status = status
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// Materialize converts proposed subtasks into the project's durable task
// list. The existing list is replaced, not merged: every current task of
// the project is removed and one task per subtask is created, with skill
// names resolved or created in the catalog and member identifiers
// resolved against the roster. Identifiers that do not match any roster
// member are kept as assignee hints on the task; they are never written
// to the task_members table. The whole replacement is atomic. Concurrent
// calls for the same project are last-writer-wins.
func (s *TaskService) Materialize(projectID uint64, subtasks []models.ProposedSubtask) ([]models.Task, error) {
	if len(subtasks) == 0 {
		return nil, ErrNoSubtasksToSave
	}
	for _, subtask := range subtasks {
		if strings.TrimSpace(subtask.Title) == "" {
			return nil, ErrSubtaskTitleEmpty
		}
	}

	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	roster, err := s.projectRepo.ListMembers(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project members: %w", err)
	}

	drafts := make([]repository.TaskDraft, 0, len(subtasks))
	for _, subtask := range subtasks {
		draft := repository.TaskDraft{
			Title:       subtask.Title,
			Description: subtask.Description,
			SkillNames:  subtask.RequiredSkills,
		}
		if subtask.Reasoning != "" {
			note := subtask.Reasoning
			draft.Note = &note
		}

		seen := make(map[uint64]struct{}, len(subtask.AssignedMembers))
		for _, identifier := range subtask.AssignedMembers {
			if strings.TrimSpace(identifier) == "" {
				continue
			}
			if userID, ok := ResolveMember(identifier, roster); ok {
				if _, dup := seen[userID]; dup {
					continue
				}
				seen[userID] = struct{}{}
				draft.AssigneeIDs = append(draft.AssigneeIDs, userID)
			} else {
				draft.AssigneeHints = append(draft.AssigneeHints, identifier)
			}
		}

		drafts = append(drafts, draft)
	}

	created, err := s.taskRepo.ReplaceProjectTasks(projectID, drafts)
	if err != nil {
		return nil, fmt.Errorf("failed to save tasks: %w", err)
	}

	return created, nil
}

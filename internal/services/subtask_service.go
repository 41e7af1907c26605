package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mizuka-dev/projecthub-api/internal/constants"
	"github.com/mizuka-dev/projecthub-api/internal/models"
	"github.com/mizuka-dev/projecthub-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrNoSubtasksGenerated    = errors.New("no valid subtasks were generated")
	ErrSnapshotNotFound       = errors.New("subtask snapshot not found")
	ErrEmptySubtaskList       = errors.New("subtask list cannot be empty")
)

// SubtaskService runs AI subtask generation and manages the resulting
// snapshots.
type SubtaskService struct {
	snapshotRepo repository.SnapshotRepository
	projectRepo  repository.ProjectRepository
	skillRepo    repository.SkillRepository
	aiService    *AIService
}

// NewSubtaskService creates a new SubtaskService.
func NewSubtaskService(
	snapshotRepo repository.SnapshotRepository,
	projectRepo repository.ProjectRepository,
	skillRepo repository.SkillRepository,
	aiService *AIService,
) *SubtaskService {
	return &SubtaskService{
		snapshotRepo: snapshotRepo,
		projectRepo:  projectRepo,
		skillRepo:    skillRepo,
		aiService:    aiService,
	}
}

// Generate runs the proposal generator for a project and stores the
// result as a new snapshot. Earlier snapshots are superseded, not
// deleted.
func (s *SubtaskService) Generate(ctx context.Context, projectID uint64) (*models.SubtaskSnapshot, error) {
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}

	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	members, err := s.projectRepo.ListMembers(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project members: %w", err)
	}

	catalog, err := s.skillRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}

	input := GenerationInput{
		ProjectDescription: project.Description,
		Members:            make([]MemberSummary, 0, len(members)),
		CatalogSkills:      make([]string, 0, len(catalog)),
	}
	for _, member := range members {
		summary := MemberSummary{Name: member.User.Name}
		if member.User.Profile != nil && member.User.Profile.Description != nil {
			summary.Description = *member.User.Profile.Description
		}
		for _, link := range member.User.Skills {
			summary.Skills = append(summary.Skills, link.Skill.Name)
		}
		input.Members = append(input.Members, summary)
	}
	for _, skill := range catalog {
		input.CatalogSkills = append(input.CatalogSkills, skill.Name)
	}

	proposed, err := s.aiService.GenerateSubtasks(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to generate subtasks: %w", err)
	}

	if len(proposed) > constants.MaxGeneratedSubtasks {
		proposed = proposed[:constants.MaxGeneratedSubtasks]
	}

	valid := make([]models.ProposedSubtask, 0, len(proposed))
	for _, subtask := range proposed {
		if strings.TrimSpace(subtask.Title) == "" {
			continue
		}
		if subtask.Status == "" {
			subtask.Status = string(models.TaskStatusTodo)
		}
		valid = append(valid, subtask)
	}
	if len(valid) == 0 {
		return nil, ErrNoSubtasksGenerated
	}

	snapshot := &models.SubtaskSnapshot{
		ProjectID: projectID,
		Subtasks:  valid,
	}
	if err := s.snapshotRepo.Create(snapshot); err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}

	return snapshot, nil
}

// GetLatest returns the most recent snapshot for a project.
func (s *SubtaskService) GetLatest(projectID uint64) (*models.SubtaskSnapshot, error) {
	snapshot, err := s.snapshotRepo.FindLatestByProject(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to find snapshot: %w", err)
	}
	return snapshot, nil
}

// GetSnapshot returns a snapshot by ID.
func (s *SubtaskService) GetSnapshot(id uint64) (*models.SubtaskSnapshot, error) {
	snapshot, err := s.snapshotRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to find snapshot: %w", err)
	}
	return snapshot, nil
}

// UpdateSnapshot replaces a snapshot's subtask list in place; used when a
// user edits or deletes proposed entries before materialization.
func (s *SubtaskService) UpdateSnapshot(id uint64, subtasks []models.ProposedSubtask) (*models.SubtaskSnapshot, error) {
	if len(subtasks) == 0 {
		return nil, ErrEmptySubtaskList
	}

	snapshot, err := s.snapshotRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to find snapshot: %w", err)
	}

	snapshot.Subtasks = subtasks
	if err := s.snapshotRepo.Update(snapshot); err != nil {
		return nil, fmt.Errorf("failed to update snapshot: %w", err)
	}

	return snapshot, nil
}

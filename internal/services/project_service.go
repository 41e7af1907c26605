package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mizuka-dev/projecthub-api/internal/models"
	"github.com/mizuka-dev/projecthub-api/internal/repository"
	"github.com/mizuka-dev/projecthub-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound       = errors.New("project not found")
	ErrInvalidProjectName    = errors.New("project name cannot be empty")
	ErrNotProjectCreator     = errors.New("only the project creator can perform this action")
	ErrNotProjectManager     = errors.New("only the project creator or an admin can perform this action")
	ErrInvitedUserNotFound   = errors.New("user with this email does not exist")
	ErrAlreadyProjectMember  = errors.New("user is already a project member")
	ErrProjectMemberNotFound = errors.New("project member not found")
	ErrCannotRemoveYourself  = errors.New("cannot remove yourself from the project")
	ErrCannotRemoveCreator   = errors.New("cannot remove the project creator")
)

// ProjectService provides business logic for project operations.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Name        string
	Description string
	CreatorID   uint64
	Deadline    *time.Time
}

// CreateProject creates a project; the creator becomes its first member
// with the creator role, in the same transaction.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidProjectName
	}

	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		CreatorID:   input.CreatorID,
		Deadline:    input.Deadline,
	}

	if err := s.projectRepo.Create(project, models.RoleCreator); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// ListProjectsForUser returns memberships (with projects) for a user.
func (s *ProjectService) ListProjectsForUser(userID uint64, params utils.PaginationParams) ([]models.ProjectMember, int64, error) {
	memberships, total, err := s.projectRepo.ListForUser(userID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return memberships, total, nil
}

// GetProjectWithMembers returns a project and its full roster.
func (s *ProjectService) GetProjectWithMembers(projectID uint64) (*models.Project, []models.ProjectMember, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrProjectNotFound
		}
		return nil, nil, fmt.Errorf("failed to find project: %w", err)
	}

	members, err := s.projectRepo.ListMembers(projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list project members: %w", err)
	}

	return project, members, nil
}

// UpdateProjectInput carries the editable project fields.
type UpdateProjectInput struct {
	Name          *string
	Description   *string
	Deadline      *time.Time
	ClearDeadline bool
}

// UpdateProject updates a project's fields; only the creator may edit.
func (s *ProjectService) UpdateProject(projectID, actorID uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if project.CreatorID != actorID {
		return nil, ErrNotProjectCreator
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrInvalidProjectName
		}
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.ClearDeadline {
		project.Deadline = nil
	} else if input.Deadline != nil {
		project.Deadline = input.Deadline
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// DeleteProject removes a project and everything it owns; creator only.
func (s *ProjectService) DeleteProject(projectID, actorID uint64) error {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if project.CreatorID != actorID {
		return ErrNotProjectCreator
	}

	if err := s.projectRepo.Delete(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// InviteMemberByEmail adds an existing user to the project roster. The
// actor must be the creator or an admin member.
func (s *ProjectService) InviteMemberByEmail(projectID, actorID uint64, email string, role models.ProjectRole) error {
	if err := s.ensureManager(projectID, actorID); err != nil {
		return err
	}

	if role == "" {
		role = models.RoleMember
	}

	invited, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvitedUserNotFound
		}
		return fmt.Errorf("failed to find invited user: %w", err)
	}

	if _, err := s.projectRepo.FindMember(projectID, invited.ID); err == nil {
		return ErrAlreadyProjectMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to verify membership: %w", err)
	}

	member := &models.ProjectMember{
		ProjectID: projectID,
		UserID:    invited.ID,
		Role:      role,
		JoinedAt:  time.Now(),
	}

	if err := s.projectRepo.AddMember(member); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	return nil
}

// RemoveMember removes a member from the roster. The actor must be the
// creator or an admin member, may not remove themselves, and the creator
// membership is permanent.
func (s *ProjectService) RemoveMember(projectID, actorID, targetID uint64) error {
	if targetID == actorID {
		return ErrCannotRemoveYourself
	}

	if err := s.ensureManager(projectID, actorID); err != nil {
		return err
	}

	target, err := s.projectRepo.FindMember(projectID, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectMemberNotFound
		}
		return fmt.Errorf("failed to find project member: %w", err)
	}

	if target.Role == models.RoleCreator {
		return ErrCannotRemoveCreator
	}

	if err := s.projectRepo.RemoveMember(projectID, targetID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}

// ensureManager verifies the actor is the project creator or an admin
// member.
func (s *ProjectService) ensureManager(projectID, actorID uint64) error {
	member, err := s.projectRepo.FindMember(projectID, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotProjectManager
		}
		return fmt.Errorf("failed to verify membership: %w", err)
	}

	if member.Role != models.RoleCreator && member.Role != models.RoleAdmin {
		return ErrNotProjectManager
	}

	return nil
}

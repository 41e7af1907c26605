package dto

import (
	"time"

	"github.com/mizuka-dev/projecthub-api/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CreatorID   uint64     `json:"creator_id"`
	Deadline    *time.Time `json:"deadline"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ProjectWithRoleDTO represents a project with the caller's role
type ProjectWithRoleDTO struct {
	ProjectDTO
	Role models.ProjectRole `json:"role"`
}

// ProjectMemberDTO represents a member in a project roster
type ProjectMemberDTO struct {
	User     UserDTO            `json:"user"`
	Role     models.ProjectRole `json:"role"`
	JoinedAt time.Time          `json:"joined_at"`
	Skills   []UserSkillDTO     `json:"skills,omitempty"`
}

// ProjectDetailDTO represents detailed project information
type ProjectDetailDTO struct {
	ProjectDTO
	Members  []ProjectMemberDTO `json:"members"`
	YourRole models.ProjectRole `json:"your_role"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		CreatorID:   project.CreatorID,
		Deadline:    project.Deadline,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

// ToProjectWithRoleDTO converts a membership to a project DTO with role
func ToProjectWithRoleDTO(member models.ProjectMember) ProjectWithRoleDTO {
	return ProjectWithRoleDTO{
		ProjectDTO: ToProjectDTO(member.Project),
		Role:       member.Role,
	}
}

// ToProjectMemberDTO converts a membership row to a roster entry
func ToProjectMemberDTO(member models.ProjectMember) ProjectMemberDTO {
	dto := ProjectMemberDTO{
		User:     ToUserDTO(member.User),
		Role:     member.Role,
		JoinedAt: member.JoinedAt,
	}
	for _, link := range member.User.Skills {
		dto.Skills = append(dto.Skills, ToUserSkillDTO(link))
	}
	return dto
}

// ToProjectDetailDTO converts a project with members to a detailed DTO
func ToProjectDetailDTO(project models.Project, members []models.ProjectMember, yourRole models.ProjectRole) ProjectDetailDTO {
	memberDTOs := make([]ProjectMemberDTO, len(members))
	for i, member := range members {
		memberDTOs[i] = ToProjectMemberDTO(member)
	}

	return ProjectDetailDTO{
		ProjectDTO: ToProjectDTO(project),
		Members:    memberDTOs,
		YourRole:   yourRole,
	}
}

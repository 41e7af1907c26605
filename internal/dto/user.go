package dto

import (
	"time"

	"github.com/mizuka-dev/projecthub-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID    uint64          `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role,omitempty"`
}

// AdminUserDTO is the admin view of a user
type AdminUserDTO struct {
	UserDTO
	Banned    bool      `json:"banned"`
	CreatedAt time.Time `json:"created_at"`
}

// SkillDTO represents a catalog skill in API responses
type SkillDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UserSkillDTO represents one of a user's skill links
type UserSkillDTO struct {
	Skill SkillDTO `json:"skill"`
	Level int      `json:"level"`
}

// ProfileDTO represents a user's profile with skills
type ProfileDTO struct {
	ID          string         `json:"id,omitempty"`
	UserID      uint64         `json:"user_id"`
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	Skills      []UserSkillDTO `json:"skills"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}

// ToAdminUserDTO converts a User model to the admin view
func ToAdminUserDTO(user models.User) AdminUserDTO {
	return AdminUserDTO{
		UserDTO:   ToUserDTO(user),
		Banned:    user.Banned,
		CreatedAt: user.CreatedAt,
	}
}

// ToSkillDTO converts a Skill model to SkillDTO
func ToSkillDTO(skill models.Skill) SkillDTO {
	return SkillDTO{
		ID:          skill.ID,
		Name:        skill.Name,
		Description: skill.Description,
	}
}

// ToUserSkillDTO converts a UserSkill link to DTO
func ToUserSkillDTO(link models.UserSkill) UserSkillDTO {
	return UserSkillDTO{
		Skill: ToSkillDTO(link.Skill),
		Level: link.Level,
	}
}

// ToProfileDTO converts a profile and skill links to DTO. The profile
// may be nil when the user has not saved one yet.
func ToProfileDTO(userID uint64, profile *models.Profile, links []models.UserSkill) ProfileDTO {
	dto := ProfileDTO{
		UserID: userID,
		Skills: make([]UserSkillDTO, len(links)),
	}
	if profile != nil {
		dto.ID = profile.ID
		dto.Name = profile.Name
		dto.Description = profile.Description
	}
	for i, link := range links {
		dto.Skills[i] = ToUserSkillDTO(link)
	}
	return dto
}

package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mizuka-dev/projecthub-api/internal/models"
	"github.com/mizuka-dev/projecthub-api/internal/repository"
	"gorm.io/gorm"
)

// ProfileService handles profile reads and the combined profile + skill
// update submitted from the profile form.
type ProfileService struct {
	userRepo     repository.UserRepository
	skillService *SkillService
}

// NewProfileService creates a new ProfileService.
func NewProfileService(userRepo repository.UserRepository, skillService *SkillService) *ProfileService {
	return &ProfileService{
		userRepo:     userRepo,
		skillService: skillService,
	}
}

// ProfileView is a profile together with the user's skill links.
type ProfileView struct {
	Profile *models.Profile
	Skills  []models.UserSkill
}

// GetProfile returns the user's profile (nil when none exists yet) and
// skill links.
func (s *ProfileService) GetProfile(userID uint64) (*ProfileView, error) {
	profile, err := s.userRepo.FindProfileByUserID(userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	skills, err := s.skillService.ListUserSkills(userID)
	if err != nil {
		return nil, err
	}

	return &ProfileView{
		Profile: profile,
		Skills:  skills,
	}, nil
}

// UpdateProfileInput is a profile-form submission.
type UpdateProfileInput struct {
	UserID      uint64
	Name        *string
	Description *string
	Skills      []string
}

// UpdateProfileAndSkills upserts the profile fields, then reconciles the
// user's skill links against the submitted list.
func (s *ProfileService) UpdateProfileAndSkills(input UpdateProfileInput) error {
	profile, err := s.userRepo.FindProfileByUserID(input.UserID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to load profile: %w", err)
		}
		profile = &models.Profile{
			ID:     uuid.NewString(),
			UserID: input.UserID,
		}
	}

	profile.Name = input.Name
	profile.Description = input.Description

	if err := s.userRepo.SaveProfile(profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	return s.skillService.ReconcileUserSkills(input.UserID, input.Skills)
}

package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mizuka-dev/projecthub-api/internal/constants"
	"github.com/mizuka-dev/projecthub-api/internal/models"
	"github.com/mizuka-dev/projecthub-api/internal/repository"
	"github.com/mizuka-dev/projecthub-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserBanned           = errors.New("account is banned")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// Signup creates a new user.
func (s *AuthService) Signup(input SignupInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         models.UserRoleUser,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, ErrFailedToCreateUser
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.Banned {
		return nil, ErrUserBanned
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// ListUsers returns all users for the admin view.
func (s *AuthService) ListUsers(params utils.PaginationParams) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// ToggleBan flips a user's banned state and returns the updated user.
func (s *AuthService) ToggleBan(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.userRepo.SetBanned(id, !user.Banned); err != nil {
		return nil, fmt.Errorf("failed to update ban state: %w", err)
	}

	user.Banned = !user.Banned
	return user, nil
}

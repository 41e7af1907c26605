package repository

import (
	"github.com/mizuka-dev/projecthub-api/internal/database"
	"github.com/mizuka-dev/projecthub-api/internal/models"
	"github.com/mizuka-dev/projecthub-api/internal/utils"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns users ordered by creation, paginated
func (r *GormUserRepository) List(params utils.PaginationParams) ([]models.User, int64, error) {
	var total int64
	if err := r.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := r.db.Order("created_at ASC").
		Scopes(database.Paginate(params)).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// SetBanned flips a user's banned flag
func (r *GormUserRepository) SetBanned(id uint64, banned bool) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", id).
		Update("banned", banned).Error
}

// FindProfileByUserID finds the profile owned by a user
func (r *GormUserRepository) FindProfileByUserID(userID uint64) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// SaveProfile creates or updates a profile
func (r *GormUserRepository) SaveProfile(profile *models.Profile) error {
	return r.db.Save(profile).Error
}

package repository

import (
	"github.com/mizuka-dev/projecthub-api/internal/models"
	"gorm.io/gorm"
)

// GormSnapshotRepository is a GORM implementation of SnapshotRepository
type GormSnapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates a new SnapshotRepository
func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &GormSnapshotRepository{db: db}
}

// Create inserts a new snapshot row. Earlier rows for the project stay in
// place; readers only follow the latest one.
func (r *GormSnapshotRepository) Create(snapshot *models.SubtaskSnapshot) error {
	return r.db.Create(snapshot).Error
}

// FindByID finds a snapshot by ID
func (r *GormSnapshotRepository) FindByID(id uint64) (*models.SubtaskSnapshot, error) {
	var snapshot models.SubtaskSnapshot
	if err := r.db.First(&snapshot, id).Error; err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// FindLatestByProject returns the most recent snapshot for a project
func (r *GormSnapshotRepository) FindLatestByProject(projectID uint64) (*models.SubtaskSnapshot, error) {
	var snapshot models.SubtaskSnapshot
	if err := r.db.Where("project_id = ?", projectID).
		Order("created_at DESC, id DESC").
		First(&snapshot).Error; err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// Update persists an edited snapshot
func (r *GormSnapshotRepository) Update(snapshot *models.SubtaskSnapshot) error {
	return r.db.Save(snapshot).Error
}

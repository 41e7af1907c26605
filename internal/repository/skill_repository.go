package repository

import (
	"errors"
	"time"

	"github.com/mizuka-dev/projecthub-api/internal/models"
	"gorm.io/gorm"
)

// GormSkillRepository is a GORM implementation of SkillRepository
type GormSkillRepository struct {
	db *gorm.DB
}

// NewSkillRepository creates a new SkillRepository
func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &GormSkillRepository{db: db}
}

// ListAll returns the full skill catalog
func (r *GormSkillRepository) ListAll() ([]models.Skill, error) {
	var skills []models.Skill
	if err := r.db.Order("name ASC").Find(&skills).Error; err != nil {
		return nil, err
	}
	return skills, nil
}

// ResolveOrCreate maps input names to durable skill IDs, creating any
// missing catalog entries. The returned map is keyed by normalized name
// and covers every non-empty input exactly once.
func (r *GormSkillRepository) ResolveOrCreate(names []string) (map[string]uint64, error) {
	normalized := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		n := models.NormalizeSkillName(name)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		normalized = append(normalized, n)
	}

	resolved := make(map[string]uint64, len(normalized))
	if len(normalized) == 0 {
		return resolved, nil
	}

	var existing []models.Skill
	if err := r.db.Where("name IN ?", normalized).Find(&existing).Error; err != nil {
		return nil, err
	}
	for _, skill := range existing {
		resolved[skill.Name] = skill.ID
	}

	var missing []models.Skill
	for _, n := range normalized {
		if _, ok := resolved[n]; !ok {
			missing = append(missing, models.Skill{Name: n, Description: ""})
		}
	}
	if len(missing) == 0 {
		return resolved, nil
	}

	if err := r.db.Create(&missing).Error; err != nil {
		// A concurrent caller may have created some of these names; the
		// unique index on skills.name rejects the batch. Fall back to
		// resolving each name individually.
		for i := range missing {
			id, rerr := r.resolveOne(missing[i].Name)
			if rerr != nil {
				return nil, rerr
			}
			resolved[missing[i].Name] = id
		}
		return resolved, nil
	}

	for _, skill := range missing {
		resolved[skill.Name] = skill.ID
	}
	return resolved, nil
}

// resolveOne looks a normalized name up, creating it when absent. A
// create that loses a race is resolved by a final lookup.
func (r *GormSkillRepository) resolveOne(name string) (uint64, error) {
	var skill models.Skill
	err := r.db.Where("name = ?", name).First(&skill).Error
	if err == nil {
		return skill.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	skill = models.Skill{Name: name, Description: ""}
	if createErr := r.db.Create(&skill).Error; createErr != nil {
		if ferr := r.db.Where("name = ?", name).First(&skill).Error; ferr != nil {
			return 0, createErr
		}
	}
	return skill.ID, nil
}

// ListUserSkills returns a user's skill links with skills preloaded
func (r *GormSkillRepository) ListUserSkills(userID uint64) ([]models.UserSkill, error) {
	var links []models.UserSkill
	if err := r.db.Preload("Skill").
		Where("user_id = ?", userID).
		Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// ApplySkillDiff removes and adds user-skill links atomically so callers
// never observe the intermediate state between delete and insert.
func (r *GormSkillRepository) ApplySkillDiff(userID uint64, removeIDs, addIDs []uint64) error {
	if len(removeIDs) == 0 && len(addIDs) == 0 {
		return nil
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(removeIDs) > 0 {
			if err := tx.Where("user_id = ? AND skill_id IN ?", userID, removeIDs).
				Delete(&models.UserSkill{}).Error; err != nil {
				return err
			}
		}

		if len(addIDs) > 0 {
			now := time.Now()
			links := make([]models.UserSkill, len(addIDs))
			for i, skillID := range addIDs {
				links[i] = models.UserSkill{
					UserID:    userID,
					SkillID:   skillID,
					Level:     0,
					UpdatedAt: now,
				}
			}
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

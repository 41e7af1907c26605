package models

import (
	"strings"
	"time"
)

// NormalizeSkillName is the single normalization rule for catalog
// lookups: trimmed and lowercased. Every path that compares or stores
// skill names goes through it.
func NormalizeSkillName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Skill is an entry in the global skill catalog. Names are stored
// trimmed and lowercased; the unique index is the final guard against
// duplicates created by concurrent resolution.
type Skill struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	UserSkills []UserSkill `gorm:"foreignKey:SkillID" json:"-"`
}

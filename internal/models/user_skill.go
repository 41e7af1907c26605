package models

import "time"

// UserSkill links a user to a catalog skill. At most one link per
// (user, skill) pair.
type UserSkill struct {
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	SkillID   uint64    `gorm:"primarykey" json:"skill_id"`
	Level     int       `gorm:"not null;default:0" json:"level"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User  User  `gorm:"foreignKey:UserID" json:"-"`
	Skill Skill `gorm:"foreignKey:SkillID" json:"skill,omitempty"`
}

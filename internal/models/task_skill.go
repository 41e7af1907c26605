package models

type TaskSkill struct {
	TaskID        uint64 `gorm:"primarykey" json:"task_id"`
	SkillID       uint64 `gorm:"primarykey" json:"skill_id"`
	RequiredLevel int    `gorm:"not null;default:1" json:"required_level"`

	// Relations
	Task  Task  `gorm:"foreignKey:TaskID" json:"-"`
	Skill Skill `gorm:"foreignKey:SkillID" json:"skill,omitempty"`
}

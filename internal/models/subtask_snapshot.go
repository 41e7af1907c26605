package models

import "time"

// ProposedSubtask is one AI-proposed entry inside a snapshot. Skill names
// and member identifiers are free text from the generator and must go
// through resolution before being trusted as foreign keys.
type ProposedSubtask struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	RequiredSkills  []string `json:"required_skills"`
	AssignedMembers []string `json:"assigned_members"`
	Reasoning       string   `json:"reasoning"`
	Status          string   `json:"status"`
}

// SubtaskSnapshot records the most recent AI-proposed subtask list for a
// project. Each successful generation inserts a new row; older rows are
// superseded, not deleted. The latest row may be patched in place when a
// user edits entries before materialization.
type SubtaskSnapshot struct {
	ID        uint64            `gorm:"primarykey" json:"id"`
	ProjectID uint64            `gorm:"not null;index" json:"project_id"`
	Subtasks  []ProposedSubtask `gorm:"serializer:json" json:"subtasks"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
}

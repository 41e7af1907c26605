package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "inprogress"
	TaskStatusDone       TaskStatus = "done"
)

// ValidTaskStatus reports whether s is one of the known workflow states.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'todo'" json:"status"`
	DueDate     *time.Time `json:"due_date"`
	Note        *string    `gorm:"type:text" json:"note"`
	// AssigneeHints keeps member identifiers that could not be resolved
	// against the project roster. They never reach the task_members table.
	AssigneeHints []string       `gorm:"serializer:json" json:"assignee_hints,omitempty"`
	ProjectID     uint64         `gorm:"not null;index" json:"project_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project Project      `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Skills  []TaskSkill  `gorm:"foreignKey:TaskID" json:"skills,omitempty"`
	Members []TaskMember `gorm:"foreignKey:TaskID" json:"members,omitempty"`
}

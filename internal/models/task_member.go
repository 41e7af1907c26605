package models

import "time"

type TaskMember struct {
	TaskID     uint64    `gorm:"primarykey" json:"task_id"`
	UserID     uint64    `gorm:"primarykey" json:"user_id"`
	AssignedAt time.Time `json:"assigned_at"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"-"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

package models

import (
	"time"
)

type Project struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	CreatorID   uint64     `gorm:"not null" json:"creator_id"`
	Deadline    *time.Time `json:"deadline"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Creator User            `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Members []ProjectMember `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
	Tasks   []Task          `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}

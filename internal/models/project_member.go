package models

import "time"

type ProjectRole string

const (
	RoleCreator ProjectRole = "creator"
	RoleAdmin   ProjectRole = "admin"
	RoleMember  ProjectRole = "member"
)

type ProjectMember struct {
	ProjectID uint64      `gorm:"primarykey" json:"project_id"`
	UserID    uint64      `gorm:"primarykey" json:"user_id"`
	Role      ProjectRole `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	JoinedAt  time.Time   `json:"joined_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

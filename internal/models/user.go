package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Role         UserRole       `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	Banned       bool           `gorm:"not null;default:false" json:"banned"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Profile         *Profile        `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	Skills          []UserSkill     `gorm:"foreignKey:UserID" json:"-"`
	Memberships     []ProjectMember `gorm:"foreignKey:UserID" json:"-"`
	CreatedProjects []Project       `gorm:"foreignKey:CreatorID" json:"-"`
}

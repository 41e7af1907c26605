package models

import "time"

// Profile holds the free-form part of a user's public identity. Each user
// owns at most one profile, created lazily on the first profile save.
type Profile struct {
	ID          string    `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID      uint64    `gorm:"uniqueIndex;not null" json:"user_id"`
	Name        *string   `gorm:"type:varchar(255)" json:"name"`
	Email       *string   `gorm:"type:varchar(255)" json:"email"`
	Description *string   `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

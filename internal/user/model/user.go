package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Username       string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email          string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHashed string     `gorm:"size:255;not null" json:"-"`
	FullName       string     `gorm:"size:100" json:"fullName"`
	Phone          *string    `gorm:"size:30" json:"phone,omitempty"`
	IsActive       bool       `gorm:"default:true" json:"isActive"`
	CreatedAt      time.Time  `json:"createdAt"`
	LastLoginAt    *time.Time `json:"lastLoginAt,omitempty"`
}

// Session backs the server-side session credential carrier and logout.
// The session ID travels in a cookie; the row is the source of truth.
type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
	Revoked   bool      `gorm:"default:false"`
	CreatedAt time.Time
}

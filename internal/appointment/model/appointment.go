package model

import (
	"time"

	user "appointment-scheduler/internal/user/model"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Appointment stores date and time as strings on purpose: ISO dates sort
// chronologically under lexicographic comparison, so range filters and
// ordering work directly on the column.
type Appointment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"userId"`
	User          user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Title         string    `gorm:"size:100;not null" json:"title"`
	Description   string    `gorm:"size:500" json:"description"`
	Date          string    `gorm:"size:10;not null" json:"date"`
	Time          string    `gorm:"size:5;not null" json:"time"`
	Duration      int       `gorm:"default:60" json:"duration"`
	CustomerName  string    `gorm:"size:100;not null" json:"customerName"`
	CustomerEmail string    `gorm:"size:100;not null" json:"customerEmail"`
	Status        Status    `gorm:"size:20;default:scheduled;index" json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

package models

import "time"

type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ExternalID string    `gorm:"size:64;uniqueIndex;not null" json:"external_id"`
	Email      string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Plan       string    `gorm:"size:10;not null;default:'free'" json:"plan"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

const (
	PlanFree = "free"
	PlanPaid = "paid"
)

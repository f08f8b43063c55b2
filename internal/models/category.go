package models

import "time"

type Category struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Name          string        `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Description   string        `gorm:"size:500" json:"description,omitempty"`
	Slug          string        `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	OrderNum      int           `gorm:"not null;default:0" json:"order_num"`
	Subcategories []Subcategory `gorm:"foreignKey:CategoryID" json:"subcategories,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

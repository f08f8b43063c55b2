package models

import "time"

// Subcategory slugs are unique only within their parent category.
type Subcategory struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	CategoryID uint        `gorm:"not null;uniqueIndex:idx_subcategory_slug" json:"category_id"`
	Name       string      `gorm:"size:255;not null" json:"name"`
	Slug       string      `gorm:"size:255;not null;uniqueIndex:idx_subcategory_slug" json:"slug"`
	OrderNum   int         `gorm:"not null;default:0" json:"order_num"`
	Flashcards []Flashcard `gorm:"foreignKey:SubcategoryID" json:"flashcards,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

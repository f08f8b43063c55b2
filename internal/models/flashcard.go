package models

import "time"

// OptionCount is fixed: every flashcard carries exactly four answer options.
const OptionCount = 4

type Flashcard struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	SubcategoryID      uint      `gorm:"not null;index" json:"subcategory_id"`
	Question           string    `gorm:"type:text;not null" json:"question"`
	Options            []string  `gorm:"serializer:json;not null" json:"options"`
	CorrectAnswerIndex int       `gorm:"not null" json:"correct_answer_index"`
	Explanation        string    `gorm:"type:text;not null" json:"explanation"`
	OrderNum           int       `gorm:"not null;default:0" json:"order_num"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

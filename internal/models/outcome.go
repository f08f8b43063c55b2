package models

import "time"

// Outcome is the latest recorded result of one user on one flashcard.
// The composite unique index enforces at most one row per (user, flashcard);
// a re-attempt overwrites status and updated_at instead of adding a row.
type Outcome struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	UserID              string    `gorm:"size:64;not null;uniqueIndex:idx_outcome_user_card" json:"user_id"`
	FlashcardID         uint      `gorm:"not null;uniqueIndex:idx_outcome_user_card" json:"flashcard_id"`
	Status              string    `gorm:"size:10;not null" json:"status"`
	SelectedOptionIndex *int      `json:"selected_option_index,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

const (
	OutcomeCorrect   = "correct"
	OutcomeIncorrect = "incorrect"
)

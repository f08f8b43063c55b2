package services

import (
	"errors"
	"log"
	"time"

	"github.com/ilyasseisov/flashcards/internal/models"

	"gorm.io/gorm"
)

// ProgressService owns the persisted per-(user, flashcard) outcomes and the
// derived per-subcategory summaries.
type ProgressService struct {
	db         *gorm.DB
	aggregator *AggregatorService
}

func NewProgressService(db *gorm.DB, aggregator *AggregatorService) *ProgressService {
	return &ProgressService{db: db, aggregator: aggregator}
}

func (s *ProgressService) FindOutcomes(userID string, flashcardIDs []uint) ([]models.Outcome, error) {
	if len(flashcardIDs) == 0 {
		return nil, nil
	}
	var outcomes []models.Outcome
	err := s.db.Where("user_id = ? AND flashcard_id IN ?", userID, flashcardIDs).
		Find(&outcomes).Error
	return outcomes, err
}

// UpsertOutcome records the latest result for one flashcard. A prior record
// for the same (user, flashcard) pair is overwritten in place, so the pair
// never accumulates more than one row.
func (s *ProgressService) UpsertOutcome(userID string, flashcardID uint, status string, selectedOptionIndex *int) (*models.Outcome, error) {
	if status != models.OutcomeCorrect && status != models.OutcomeIncorrect {
		return nil, errors.New("invalid outcome status")
	}

	var existing models.Outcome
	if err := s.db.Where("user_id = ? AND flashcard_id = ?", userID, flashcardID).
		First(&existing).Error; err == nil {
		existing.Status = status
		if selectedOptionIndex != nil {
			existing.SelectedOptionIndex = selectedOptionIndex
		}
		existing.UpdatedAt = time.Now()
		if err := s.db.Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}

	outcome := models.Outcome{
		UserID:              userID,
		FlashcardID:         flashcardID,
		Status:              status,
		SelectedOptionIndex: selectedOptionIndex,
	}
	if err := s.db.Create(&outcome).Error; err != nil {
		return nil, err
	}
	return &outcome, nil
}

// ProgressEntry is one answer to persist during a sync.
type ProgressEntry struct {
	FlashcardID         uint   `json:"flashcard_id" binding:"required"`
	Status              string `json:"status" binding:"required,oneof=correct incorrect"`
	SelectedOptionIndex *int   `json:"selected_option_index,omitempty"`
}

// SaveBatch upserts every entry independently and reports how many landed.
// One failed upsert never blocks the rest; failures are logged and the
// caller proceeds regardless, trading durability confirmation for forward
// navigation.
func (s *ProgressService) SaveBatch(userID string, entries []ProgressEntry) int {
	saved := 0
	for _, e := range entries {
		if _, err := s.UpsertOutcome(userID, e.FlashcardID, e.Status, e.SelectedOptionIndex); err != nil {
			log.Printf("progress: upsert failed for user %s flashcard %d: %v", userID, e.FlashcardID, err)
			continue
		}
		saved++
	}
	return saved
}

// SummaryBySubcategory computes the per-subcategory badge map for one user.
// Summaries are derived fresh on every call, never stored.
func (s *ProgressService) SummaryBySubcategory(userID string) (map[uint]SubcategorySummary, error) {
	var subcategories []models.Subcategory
	if err := s.db.Find(&subcategories).Error; err != nil {
		return nil, err
	}

	var flashcards []models.Flashcard
	if err := s.db.Select("id", "subcategory_id").Find(&flashcards).Error; err != nil {
		return nil, err
	}

	var outcomes []models.Outcome
	if err := s.db.Where("user_id = ?", userID).Find(&outcomes).Error; err != nil {
		return nil, err
	}

	return s.aggregator.Summarize(subcategories, flashcards, outcomes), nil
}

// DeleteForUser removes every outcome belonging to a user. Invoked when the
// identity webhook reports the user deleted.
func (s *ProgressService) DeleteForUser(userID string) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.Outcome{}).Error
}

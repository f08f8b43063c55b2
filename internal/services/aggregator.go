package services

import (
	"math"

	"github.com/ilyasseisov/flashcards/internal/models"
)

// SubcategorySummary is the derived per-subcategory progress badge. It is
// computed fresh on every query and never persisted.
type SubcategorySummary struct {
	Completed bool `json:"completed"`
	Score     int  `json:"score"`
}

// AggregatorService rolls one user's flat outcome set up into per-subcategory
// summaries. It is pure: same inputs, same output, no hidden state.
type AggregatorService struct{}

func NewAggregatorService() *AggregatorService {
	return &AggregatorService{}
}

// Summarize maps every given subcategory to its summary.
//
// A subcategory is completed once every one of its flashcards has an outcome,
// regardless of correctness. Score is round(correct / total flashcards * 100)
// once anything was attempted, so partial completion shows a partial score,
// never an inflated one. Subcategories without flashcards summarize to
// {false, 0}.
func (s *AggregatorService) Summarize(
	subcategories []models.Subcategory,
	flashcards []models.Flashcard,
	outcomes []models.Outcome,
) map[uint]SubcategorySummary {
	cardsBySubcategory := make(map[uint][]uint, len(subcategories))
	for _, f := range flashcards {
		cardsBySubcategory[f.SubcategoryID] = append(cardsBySubcategory[f.SubcategoryID], f.ID)
	}

	statusByCard := make(map[uint]string, len(outcomes))
	for _, o := range outcomes {
		statusByCard[o.FlashcardID] = o.Status
	}

	result := make(map[uint]SubcategorySummary, len(subcategories))
	for _, sub := range subcategories {
		cardIDs := cardsBySubcategory[sub.ID]
		if len(cardIDs) == 0 {
			result[sub.ID] = SubcategorySummary{}
			continue
		}

		attempted, correct := 0, 0
		for _, id := range cardIDs {
			status, ok := statusByCard[id]
			if !ok {
				continue
			}
			attempted++
			if status == models.OutcomeCorrect {
				correct++
			}
		}

		summary := SubcategorySummary{
			Completed: attempted == len(cardIDs),
		}
		if attempted > 0 {
			summary.Score = int(math.Round(float64(correct) / float64(len(cardIDs)) * 100))
		}
		result[sub.ID] = summary
	}
	return result
}

package quiz

import "github.com/ilyasseisov/flashcards/internal/models"

// Snapshot captures the minimal session state for resuming across reloads.
// Derived values (current flashcard, progress) are re-computed on restore.
type Snapshot struct {
	FlashcardIDs []uint   `json:"flashcard_ids"`
	Position     int      `json:"position"`
	Answers      []Answer `json:"answers"`
	Status       string   `json:"status"`
	ShowResults  bool     `json:"show_results"`
}

func (s *Session) Snapshot() Snapshot {
	ids := make([]uint, len(s.flashcards))
	for i, f := range s.flashcards {
		ids[i] = f.ID
	}
	return Snapshot{
		FlashcardIDs: ids,
		Position:     s.position,
		Answers:      s.Answers(),
		Status:       s.status,
		ShowResults:  s.showResults,
	}
}

// Restore rebuilds a session over the given flashcard list from a snapshot.
// A snapshot taken over a different flashcard list is discarded and the
// session initializes fresh; answers for unknown flashcards are dropped and
// the position is clamped into range.
func (s *Session) Restore(flashcards []models.Flashcard, snap Snapshot) {
	s.status = StatusPending
	s.Initialize(flashcards, nil)
	if len(flashcards) == 0 {
		return
	}
	if len(snap.FlashcardIDs) != len(flashcards) {
		return
	}
	for i, f := range flashcards {
		if snap.FlashcardIDs[i] != f.ID {
			return
		}
	}

	known := make(map[uint]bool, len(flashcards))
	for _, f := range flashcards {
		known[f.ID] = true
	}
	s.answers = nil
	for _, a := range snap.Answers {
		if !known[a.FlashcardID] {
			continue
		}
		if _, ok := s.AnswerFor(a.FlashcardID); ok {
			continue
		}
		s.answers = append(s.answers, a)
	}

	s.position = snap.Position
	if s.position < 0 {
		s.position = 0
	}
	if s.position >= len(flashcards) {
		s.position = len(flashcards) - 1
	}

	switch snap.Status {
	case StatusCompleted:
		s.status = StatusCompleted
	default:
		s.status = StatusPlaying
		s.showResults = snap.ShowResults || s.CurrentAnswered()
	}
}

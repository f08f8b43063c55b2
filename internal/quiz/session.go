package quiz

import (
	"math"

	"github.com/ilyasseisov/flashcards/internal/models"
)

const (
	StatusPending   = "pending"
	StatusPlaying   = "playing"
	StatusCompleted = "completed"
)

// Answer is one recorded in-session answer. SelectedOptionIndex is -1 when
// the answer was seeded from a stored outcome that never recorded a choice.
type Answer struct {
	FlashcardID         uint `json:"flashcard_id"`
	SelectedOptionIndex int  `json:"selected_option_index"`
	IsCorrect           bool `json:"is_correct"`
}

// Status maps the answer onto the persisted outcome vocabulary.
func (a Answer) Status() string {
	if a.IsCorrect {
		return models.OutcomeCorrect
	}
	return models.OutcomeIncorrect
}

// Progress is a point-in-time scoring snapshot. Percentage is computed
// against the full flashcard count, rounded half-up, and is 0 for an empty
// session.
type Progress struct {
	Current       int `json:"current"`
	Total         int `json:"total"`
	Percentage    int `json:"percentage"`
	AnsweredCount int `json:"answered_count"`
	CorrectCount  int `json:"correct_count"`
}

// Session drives one linear pass through a fixed list of flashcards: answer
// selection, reveal, navigation, scoring, completion. It is owned by exactly
// one browsing context and all transitions are synchronous; invalid calls are
// no-ops, never errors.
type Session struct {
	flashcards  []models.Flashcard
	position    int
	answers     []Answer
	status      string
	showResults bool
}

func NewSession() *Session {
	return &Session{status: StatusPending}
}

// Initialize replaces the session wholesale with the given flashcard list,
// seeding in-session answers from prior outcomes restricted to that list.
// Re-initializing with an identical flashcard-list identity is a no-op, so
// re-render-triggered calls cannot wipe an in-flight session. An empty list
// yields an immediately completed session with zero questions.
func (s *Session) Initialize(flashcards []models.Flashcard, prior []models.Outcome) {
	if s.status != StatusPending && s.sameFlashcards(flashcards) {
		return
	}

	s.flashcards = flashcards
	s.position = 0
	s.answers = nil
	s.showResults = false
	s.status = StatusPlaying
	if len(flashcards) == 0 {
		s.status = StatusCompleted
		return
	}

	known := make(map[uint]bool, len(flashcards))
	for _, f := range flashcards {
		known[f.ID] = true
	}
	for _, o := range prior {
		if !known[o.FlashcardID] {
			continue
		}
		if _, ok := s.AnswerFor(o.FlashcardID); ok {
			continue
		}
		selected := -1
		if o.SelectedOptionIndex != nil {
			selected = *o.SelectedOptionIndex
		}
		s.answers = append(s.answers, Answer{
			FlashcardID:         o.FlashcardID,
			SelectedOptionIndex: selected,
			IsCorrect:           o.Status == models.OutcomeCorrect,
		})
	}
}

// SelectAnswer records the answer for the current question and reveals the
// result. Answers are write-once per question per session: a second call for
// the same question leaves the recorded answer and counters untouched.
func (s *Session) SelectAnswer(optionIndex int) {
	if s.status != StatusPlaying {
		return
	}
	current := s.Current()
	if current == nil {
		return
	}
	if _, answered := s.AnswerFor(current.ID); answered {
		return
	}
	if optionIndex < 0 || optionIndex >= len(current.Options) {
		return
	}

	s.answers = append(s.answers, Answer{
		FlashcardID:         current.ID,
		SelectedOptionIndex: optionIndex,
		IsCorrect:           optionIndex == current.CorrectAnswerIndex,
	})
	s.showResults = true
}

// Advance moves to the next question. It is gated on the current result
// being revealed; advancing past the last question completes the session.
// Entering a question that was already answered (after a jump back) keeps
// its result visible.
func (s *Session) Advance() {
	if s.status != StatusPlaying || !s.showResults {
		return
	}

	next := s.position + 1
	if next >= len(s.flashcards) {
		s.status = StatusCompleted
		return
	}
	s.position = next
	s.showResults = s.CurrentAnswered()
}

// JumpTo moves to an arbitrary question. Out-of-range indexes are no-ops.
func (s *Session) JumpTo(index int) {
	if s.status != StatusPlaying {
		return
	}
	if index < 0 || index >= len(s.flashcards) {
		return
	}
	s.position = index
	s.showResults = s.CurrentAnswered()
}

// Reset restarts the session over the same flashcard list.
func (s *Session) Reset() {
	if s.status == StatusPending {
		return
	}
	s.position = 0
	s.answers = nil
	s.showResults = false
	s.status = StatusPlaying
	if len(s.flashcards) == 0 {
		s.status = StatusCompleted
	}
}

func (s *Session) Status() string { return s.status }

func (s *Session) Completed() bool { return s.status == StatusCompleted }

// ShowResults reports whether the current question's result is revealed.
func (s *Session) ShowResults() bool { return s.showResults }

func (s *Session) Position() int { return s.position }

func (s *Session) Total() int { return len(s.flashcards) }

// Current returns the flashcard at the current position, or nil for an empty
// session.
func (s *Session) Current() *models.Flashcard {
	if s.position < 0 || s.position >= len(s.flashcards) {
		return nil
	}
	return &s.flashcards[s.position]
}

// AnswerFor returns the recorded answer for a flashcard, if any.
func (s *Session) AnswerFor(flashcardID uint) (Answer, bool) {
	for _, a := range s.answers {
		if a.FlashcardID == flashcardID {
			return a, true
		}
	}
	return Answer{}, false
}

func (s *Session) CurrentAnswered() bool {
	current := s.Current()
	if current == nil {
		return false
	}
	_, answered := s.AnswerFor(current.ID)
	return answered
}

// Answers returns a copy of the in-session answers in the order they were
// recorded (seeded prior outcomes first).
func (s *Session) Answers() []Answer {
	out := make([]Answer, len(s.answers))
	copy(out, s.answers)
	return out
}

// AnsweredPositions returns the list positions of answered questions, in
// list order. Used by pagination UIs.
func (s *Session) AnsweredPositions() []int {
	return s.positionsWhere(func(Answer) bool { return true })
}

// CorrectPositions returns the list positions answered correctly, in list
// order.
func (s *Session) CorrectPositions() []int {
	return s.positionsWhere(func(a Answer) bool { return a.IsCorrect })
}

func (s *Session) positionsWhere(match func(Answer) bool) []int {
	byID := make(map[uint]Answer, len(s.answers))
	for _, a := range s.answers {
		byID[a.FlashcardID] = a
	}
	var positions []int
	for i, f := range s.flashcards {
		if a, ok := byID[f.ID]; ok && match(a) {
			positions = append(positions, i)
		}
	}
	return positions
}

// Progress derives the scoring snapshot from the minimal session state.
func (s *Session) Progress() Progress {
	total := len(s.flashcards)
	correct := 0
	for _, a := range s.answers {
		if a.IsCorrect {
			correct++
		}
	}

	p := Progress{
		Total:         total,
		AnsweredCount: len(s.answers),
		CorrectCount:  correct,
	}
	if total == 0 {
		return p
	}
	p.Current = s.position + 1
	p.Percentage = roundPercent(correct, total)
	return p
}

func (s *Session) sameFlashcards(flashcards []models.Flashcard) bool {
	if len(flashcards) != len(s.flashcards) {
		return false
	}
	for i := range flashcards {
		if flashcards[i].ID != s.flashcards[i].ID {
			return false
		}
	}
	return true
}

func roundPercent(part, total int) int {
	return int(math.Round(float64(part) / float64(total) * 100))
}

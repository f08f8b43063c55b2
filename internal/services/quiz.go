package services

import (
	"errors"
	"log"

	"github.com/ilyasseisov/flashcards/internal/models"
	"github.com/ilyasseisov/flashcards/internal/quiz"
)

// QuizService runs quiz sessions over the catalog: it loads the fixed
// flashcard list for a subcategory, seeds prior outcomes for authenticated
// users, applies session transitions, and syncs outcomes back on finish.
type QuizService struct {
	catalog  *CatalogService
	progress *ProgressService
	manager  *quiz.Manager
}

func NewQuizService(catalog *CatalogService, progress *ProgressService, manager *quiz.Manager) *QuizService {
	return &QuizService{catalog: catalog, progress: progress, manager: manager}
}

// QuizState is the client-facing view of a session. The correct answer and
// explanation stay redacted until the current question's result is revealed.
type QuizState struct {
	Token             string            `json:"token"`
	Status            string            `json:"status"`
	ShowResults       bool              `json:"show_results"`
	Progress          quiz.Progress     `json:"progress"`
	CurrentQuestion   *QuestionResponse `json:"current_question,omitempty"`
	AnsweredPositions []int             `json:"answered_positions"`
	CorrectPositions  []int             `json:"correct_positions"`
}

type QuestionResponse struct {
	ID                  uint     `json:"id"`
	Question            string   `json:"question"`
	Options             []string `json:"options"`
	Position            int      `json:"position"`
	Answered            bool     `json:"answered"`
	SelectedOptionIndex *int     `json:"selected_option_index,omitempty"`
	IsCorrect           *bool    `json:"is_correct,omitempty"`
	CorrectAnswerIndex  *int     `json:"correct_answer_index,omitempty"`
	Explanation         string   `json:"explanation,omitempty"`
}

// QuizResult is returned by Finish.
type QuizResult struct {
	Progress quiz.Progress `json:"progress"`
	Synced   int           `json:"synced"`
}

func (s *QuizService) loadFlashcards(categorySlug, subcategorySlug string) ([]models.Flashcard, error) {
	subcategory, err := s.catalog.FindSubcategory(categorySlug, subcategorySlug)
	if err != nil {
		return nil, err
	}
	return s.catalog.FindFlashcardsBySubcategory(subcategory.ID)
}

func (s *QuizService) priorOutcomes(userID string, flashcards []models.Flashcard) []models.Outcome {
	if userID == "" || len(flashcards) == 0 {
		return nil
	}
	ids := make([]uint, len(flashcards))
	for i, f := range flashcards {
		ids[i] = f.ID
	}
	outcomes, err := s.progress.FindOutcomes(userID, ids)
	if err != nil {
		// Missing prior progress degrades to a fresh session.
		log.Printf("quiz: loading prior outcomes failed for user %s: %v", userID, err)
		return nil
	}
	return outcomes
}

// StartSession creates a session over the subcategory's ordered flashcards.
// userID may be empty for anonymous play; prior outcomes then stay unloaded.
func (s *QuizService) StartSession(userID, categorySlug, subcategorySlug string) (*QuizState, error) {
	flashcards, err := s.loadFlashcards(categorySlug, subcategorySlug)
	if err != nil {
		return nil, err
	}

	token, session := s.manager.Create(userID)
	session.Initialize(flashcards, s.priorOutcomes(userID, flashcards))
	return s.state(token, session), nil
}

// Resume creates a session over the subcategory's flashcards and restores a
// client-held snapshot into it.
func (s *QuizService) Resume(userID, categorySlug, subcategorySlug string, snap quiz.Snapshot) (*QuizState, error) {
	flashcards, err := s.loadFlashcards(categorySlug, subcategorySlug)
	if err != nil {
		return nil, err
	}

	token, session := s.manager.Create(userID)
	session.Restore(flashcards, snap)
	return s.state(token, session), nil
}

func (s *QuizService) GetState(token string) (*QuizState, error) {
	session, _, ok := s.manager.Get(token)
	if !ok {
		return nil, errors.New("session not found")
	}
	return s.state(token, session), nil
}

// Snapshot exports the session's minimal state for client-side keeping.
func (s *QuizService) Snapshot(token string) (quiz.Snapshot, error) {
	session, _, ok := s.manager.Get(token)
	if !ok {
		return quiz.Snapshot{}, errors.New("session not found")
	}
	return session.Snapshot(), nil
}

func (s *QuizService) SelectAnswer(token string, optionIndex int) (*QuizState, error) {
	return s.transition(token, func(session *quiz.Session) {
		session.SelectAnswer(optionIndex)
	})
}

func (s *QuizService) NextQuestion(token string) (*QuizState, error) {
	return s.transition(token, func(session *quiz.Session) {
		session.Advance()
	})
}

func (s *QuizService) JumpToQuestion(token string, index int) (*QuizState, error) {
	return s.transition(token, func(session *quiz.Session) {
		session.JumpTo(index)
	})
}

func (s *QuizService) ResetSession(token string) (*QuizState, error) {
	return s.transition(token, func(session *quiz.Session) {
		session.Reset()
	})
}

func (s *QuizService) transition(token string, apply func(*quiz.Session)) (*QuizState, error) {
	session, _, ok := s.manager.Get(token)
	if !ok {
		return nil, errors.New("session not found")
	}
	apply(session)
	return s.state(token, session), nil
}

// Finish syncs the session's accumulated answers back to the progress store
// for authenticated users and returns the final score. Sync failures are
// logged inside SaveBatch and never block the caller; anonymous sessions
// skip the sync entirely.
func (s *QuizService) Finish(token string) (*QuizResult, error) {
	session, userID, ok := s.manager.Get(token)
	if !ok {
		return nil, errors.New("session not found")
	}

	result := &QuizResult{Progress: session.Progress()}
	if userID == "" {
		return result, nil
	}

	answers := session.Answers()
	entries := make([]ProgressEntry, 0, len(answers))
	for _, a := range answers {
		entry := ProgressEntry{FlashcardID: a.FlashcardID, Status: a.Status()}
		if a.SelectedOptionIndex >= 0 {
			selected := a.SelectedOptionIndex
			entry.SelectedOptionIndex = &selected
		}
		entries = append(entries, entry)
	}
	result.Synced = s.progress.SaveBatch(userID, entries)
	return result, nil
}

func (s *QuizService) RemoveSession(token string) {
	s.manager.Remove(token)
}

func (s *QuizService) state(token string, session *quiz.Session) *QuizState {
	state := &QuizState{
		Token:             token,
		Status:            session.Status(),
		ShowResults:       session.ShowResults(),
		Progress:          session.Progress(),
		AnsweredPositions: session.AnsweredPositions(),
		CorrectPositions:  session.CorrectPositions(),
	}

	current := session.Current()
	if current == nil || session.Completed() {
		return state
	}

	q := &QuestionResponse{
		ID:       current.ID,
		Question: current.Question,
		Options:  current.Options,
		Position: session.Position(),
	}
	if answer, ok := session.AnswerFor(current.ID); ok {
		q.Answered = true
		if answer.SelectedOptionIndex >= 0 {
			selected := answer.SelectedOptionIndex
			q.SelectedOptionIndex = &selected
		}
		correct := answer.IsCorrect
		q.IsCorrect = &correct
	}
	if session.ShowResults() {
		idx := current.CorrectAnswerIndex
		q.CorrectAnswerIndex = &idx
		q.Explanation = current.Explanation
	}
	state.CurrentQuestion = q
	return state
}

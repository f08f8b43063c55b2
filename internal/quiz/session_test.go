package quiz

import (
	"fmt"
	"testing"

	"github.com/ilyasseisov/flashcards/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeFlashcards(n int) []models.Flashcard {
	cards := make([]models.Flashcard, n)
	for i := range cards {
		cards[i] = models.Flashcard{
			ID:                 uint(i + 1),
			SubcategoryID:      1,
			Question:           fmt.Sprintf("question %d", i+1),
			Options:            []string{"a", "b", "c", "d"},
			CorrectAnswerIndex: 1,
			Explanation:        "because",
			OrderNum:           i,
		}
	}
	return cards
}

func playingSession(n int) *Session {
	s := NewSession()
	s.Initialize(makeFlashcards(n), nil)
	return s
}

func TestInitialize_EmptyListIsCompleted(t *testing.T) {
	s := NewSession()
	s.Initialize(nil, nil)

	assert.Equal(t, StatusCompleted, s.Status())
	assert.True(t, s.Completed())
	assert.Equal(t, 0, s.Total())
	assert.Nil(t, s.Current())

	p := s.Progress()
	assert.Equal(t, 0, p.Total)
	assert.Equal(t, 0, p.Percentage)
}

func TestInitialize_SeedsPriorOutcomes(t *testing.T) {
	cards := makeFlashcards(3)
	selected := 1
	prior := []models.Outcome{
		{UserID: "u1", FlashcardID: 2, Status: models.OutcomeCorrect, SelectedOptionIndex: &selected},
		{UserID: "u1", FlashcardID: 99, Status: models.OutcomeCorrect}, // not in this quiz
		{UserID: "u1", FlashcardID: 3, Status: models.OutcomeIncorrect},
	}

	s := NewSession()
	s.Initialize(cards, prior)

	require.Equal(t, StatusPlaying, s.Status())
	p := s.Progress()
	assert.Equal(t, 2, p.AnsweredCount)
	assert.Equal(t, 1, p.CorrectCount)

	answer, ok := s.AnswerFor(2)
	require.True(t, ok)
	assert.True(t, answer.IsCorrect)
	assert.Equal(t, 1, answer.SelectedOptionIndex)

	answer, ok = s.AnswerFor(3)
	require.True(t, ok)
	assert.False(t, answer.IsCorrect)
	assert.Equal(t, -1, answer.SelectedOptionIndex)

	_, ok = s.AnswerFor(99)
	assert.False(t, ok)

	// Initialization never starts on a revealed result.
	assert.False(t, s.ShowResults())
}

func TestInitialize_SameListIsNoOp(t *testing.T) {
	cards := makeFlashcards(3)
	s := NewSession()
	s.Initialize(cards, nil)
	s.SelectAnswer(1)
	s.Advance()

	s.Initialize(cards, nil)

	assert.Equal(t, 1, s.Position())
	assert.Equal(t, 1, s.Progress().AnsweredCount)
}

func TestInitialize_DifferentListReplacesSession(t *testing.T) {
	s := playingSession(3)
	s.SelectAnswer(1)

	s.Initialize(makeFlashcards(5), nil)

	assert.Equal(t, 0, s.Position())
	assert.Equal(t, 5, s.Total())
	assert.Equal(t, 0, s.Progress().AnsweredCount)
	assert.Equal(t, StatusPlaying, s.Status())
}

func TestSelectAnswer_RecordsAndReveals(t *testing.T) {
	s := playingSession(3)

	s.SelectAnswer(1)

	assert.True(t, s.ShowResults())
	answer, ok := s.AnswerFor(1)
	require.True(t, ok)
	assert.True(t, answer.IsCorrect)
	assert.Equal(t, models.OutcomeCorrect, answer.Status())

	p := s.Progress()
	assert.Equal(t, 1, p.AnsweredCount)
	assert.Equal(t, 1, p.CorrectCount)
}

func TestSelectAnswer_WriteOncePerQuestion(t *testing.T) {
	s := playingSession(3)

	s.SelectAnswer(0) // incorrect
	s.SelectAnswer(1) // would be correct; must be ignored

	answer, ok := s.AnswerFor(1)
	require.True(t, ok)
	assert.Equal(t, 0, answer.SelectedOptionIndex)
	assert.False(t, answer.IsCorrect)

	p := s.Progress()
	assert.Equal(t, 1, p.AnsweredCount)
	assert.Equal(t, 0, p.CorrectCount)
}

func TestSelectAnswer_OutOfRangeOptionIsNoOp(t *testing.T) {
	s := playingSession(3)

	s.SelectAnswer(-1)
	s.SelectAnswer(4)

	assert.False(t, s.ShowResults())
	assert.Equal(t, 0, s.Progress().AnsweredCount)
}

func TestScoreCountersAreMonotonic(t *testing.T) {
	s := playingSession(4)
	answered := 0

	for i := 0; i < 4; i++ {
		prev := s.Progress()
		s.SelectAnswer(i % 2) // alternates incorrect/correct
		answered++

		p := s.Progress()
		assert.GreaterOrEqual(t, p.CorrectCount, prev.CorrectCount)
		assert.Equal(t, answered, p.AnsweredCount)
		s.Advance()
	}
}

func TestAdvance_GatedOnReveal(t *testing.T) {
	s := playingSession(3)

	s.Advance()

	assert.Equal(t, 0, s.Position())
	assert.Equal(t, StatusPlaying, s.Status())
}

func TestAdvance_CompletionBoundary(t *testing.T) {
	const n = 3
	s := playingSession(n)

	for i := 0; i < n; i++ {
		assert.False(t, s.Completed(), "completed after %d advances", i)
		s.SelectAnswer(1)
		s.Advance()
	}

	assert.True(t, s.Completed())
	assert.Equal(t, StatusCompleted, s.Status())
}

func TestAdvance_IntoAnsweredQuestionKeepsReveal(t *testing.T) {
	s := playingSession(3)
	s.JumpTo(1)
	s.SelectAnswer(1)
	s.JumpTo(0)
	s.SelectAnswer(1)

	s.Advance() // back onto the already answered question 1

	assert.Equal(t, 1, s.Position())
	assert.True(t, s.ShowResults())
}

func TestJumpThenAnswerConsistency(t *testing.T) {
	s := playingSession(5)

	s.JumpTo(3)
	s.SelectAnswer(2)
	s.JumpTo(0)
	s.SelectAnswer(0)
	s.JumpTo(3)

	assert.True(t, s.ShowResults())
	answer, ok := s.AnswerFor(4) // card at position 3 has ID 4
	require.True(t, ok)
	assert.Equal(t, 2, answer.SelectedOptionIndex)
}

func TestJumpTo_OutOfRangeIsNoOp(t *testing.T) {
	s := playingSession(3)
	s.JumpTo(1)

	s.JumpTo(-1)
	s.JumpTo(3)

	assert.Equal(t, 1, s.Position())
}

func TestReset_RestartsOverSameFlashcards(t *testing.T) {
	s := playingSession(3)
	s.SelectAnswer(1)
	s.Advance()
	s.SelectAnswer(0)

	s.Reset()

	assert.Equal(t, StatusPlaying, s.Status())
	assert.Equal(t, 0, s.Position())
	assert.Equal(t, 3, s.Total())
	assert.False(t, s.ShowResults())
	assert.Equal(t, 0, s.Progress().AnsweredCount)
}

func TestReset_AfterCompletionAllowsReplay(t *testing.T) {
	s := playingSession(1)
	s.SelectAnswer(1)
	s.Advance()
	require.True(t, s.Completed())

	s.Reset()

	assert.Equal(t, StatusPlaying, s.Status())
	assert.False(t, s.Completed())
}

func TestProgress_PercentageRoundsHalfUp(t *testing.T) {
	s := playingSession(3)
	s.SelectAnswer(1) // correct
	s.Advance()
	s.SelectAnswer(1) // correct
	s.Advance()
	s.SelectAnswer(0) // incorrect

	// round(2/3*100) = 67
	assert.Equal(t, 67, s.Progress().Percentage)
}

func TestAnsweredAndCorrectPositions(t *testing.T) {
	s := playingSession(4)
	s.JumpTo(2)
	s.SelectAnswer(1) // correct
	s.JumpTo(0)
	s.SelectAnswer(0) // incorrect

	assert.Equal(t, []int{0, 2}, s.AnsweredPositions())
	assert.Equal(t, []int{2}, s.CorrectPositions())
}

func TestSnapshotRestore_RoundTrip(t *testing.T) {
	cards := makeFlashcards(4)
	s := NewSession()
	s.Initialize(cards, nil)
	s.SelectAnswer(1)
	s.Advance()
	s.SelectAnswer(0)

	snap := s.Snapshot()

	restored := NewSession()
	restored.Restore(cards, snap)

	assert.Equal(t, s.Position(), restored.Position())
	assert.Equal(t, s.Status(), restored.Status())
	assert.Equal(t, s.ShowResults(), restored.ShowResults())
	assert.Equal(t, s.Progress(), restored.Progress())
	assert.Equal(t, s.Answers(), restored.Answers())
}

func TestRestore_MismatchedListStartsFresh(t *testing.T) {
	s := NewSession()
	s.Initialize(makeFlashcards(3), nil)
	s.SelectAnswer(1)
	snap := s.Snapshot()

	other := makeFlashcards(5)
	restored := NewSession()
	restored.Restore(other, snap)

	assert.Equal(t, 0, restored.Position())
	assert.Equal(t, 5, restored.Total())
	assert.Equal(t, 0, restored.Progress().AnsweredCount)
}

func TestRestore_ClampsPosition(t *testing.T) {
	cards := makeFlashcards(3)
	snap := Snapshot{
		FlashcardIDs: []uint{1, 2, 3},
		Position:     7,
		Status:       StatusPlaying,
	}

	s := NewSession()
	s.Restore(cards, snap)

	assert.Equal(t, 2, s.Position())
}

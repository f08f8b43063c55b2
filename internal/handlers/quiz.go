package handlers

import (
	"net/http"

	"github.com/ilyasseisov/flashcards/internal/quiz"
	"github.com/ilyasseisov/flashcards/internal/services"
	"github.com/ilyasseisov/flashcards/internal/ws"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	quizService *services.QuizService
	hub         *ws.Hub
}

func NewQuizHandler(quizService *services.QuizService, hub *ws.Hub) *QuizHandler {
	return &QuizHandler{quizService: quizService, hub: hub}
}

type StartQuizRequest struct {
	CategorySlug    string `json:"category_slug" binding:"required" example:"javascript"`
	SubcategorySlug string `json:"subcategory_slug" binding:"required" example:"closures"`
}

type ResumeQuizRequest struct {
	CategorySlug    string        `json:"category_slug" binding:"required"`
	SubcategorySlug string        `json:"subcategory_slug" binding:"required"`
	Snapshot        quiz.Snapshot `json:"snapshot" binding:"required"`
}

type AnswerRequest struct {
	OptionIndex *int `json:"option_index" binding:"required" example:"2"`
}

type JumpRequest struct {
	Index *int `json:"index" binding:"required" example:"3"`
}

// StartQuiz godoc
// @Summary      Start a quiz session
// @Description  Create a session over a subcategory's flashcards; authenticated users get prior outcomes seeded in
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Param        request body StartQuizRequest true "Quiz target"
// @Success      201 {object} services.QuizState
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quiz/start [post]
func (h *QuizHandler) StartQuiz(c *gin.Context) {
	var req StartQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	state, err := h.quizService.StartSession(userID(c), req.CategorySlug, req.SubcategorySlug)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, state)
}

// ResumeQuiz godoc
// @Summary      Resume a quiz session from a snapshot
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Param        request body ResumeQuizRequest true "Quiz target and snapshot"
// @Success      201 {object} services.QuizState
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quiz/resume [post]
func (h *QuizHandler) ResumeQuiz(c *gin.Context) {
	var req ResumeQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	state, err := h.quizService.Resume(userID(c), req.CategorySlug, req.SubcategorySlug, req.Snapshot)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, state)
}

// GetQuiz godoc
// @Summary      Get quiz session state
// @Tags         quiz
// @Produce      json
// @Param        token path string true "Session token"
// @Success      200 {object} services.QuizState
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quiz/{token} [get]
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	state, err := h.quizService.GetState(c.Param("token"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, state)
}

// GetSnapshot godoc
// @Summary      Export the session snapshot for client-side keeping
// @Tags         quiz
// @Produce      json
// @Param        token path string true "Session token"
// @Success      200 {object} quiz.Snapshot
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quiz/{token}/snapshot [get]
func (h *QuizHandler) GetSnapshot(c *gin.Context) {
	snap, err := h.quizService.Snapshot(c.Param("token"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// SelectAnswer godoc
// @Summary      Answer the current question
// @Description  Write-once per question; repeated answers are no-ops
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Param        token path string true "Session token"
// @Param        request body AnswerRequest true "Selected option"
// @Success      200 {object} services.QuizState
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quiz/{token}/answer [post]
func (h *QuizHandler) SelectAnswer(c *gin.Context) {
	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	h.applyTransition(c, func(token string) (*services.QuizState, error) {
		return h.quizService.SelectAnswer(token, *req.OptionIndex)
	})
}

// NextQuestion godoc
// @Summary      Advance to the next question
// @Description  Valid once the current result is revealed; advancing past the last question completes the session
// @Tags         quiz
// @Produce      json
// @Param        token path string true "Session token"
// @Success      200 {object} services.QuizState
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quiz/{token}/next [post]
func (h *QuizHandler) NextQuestion(c *gin.Context) {
	h.applyTransition(c, h.quizService.NextQuestion)
}

// JumpToQuestion godoc
// @Summary      Jump to a question by position
// @Description  Out-of-range positions are no-ops
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Param        token path string true "Session token"
// @Param        request body JumpRequest true "Target position"
// @Success      200 {object} services.QuizState
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quiz/{token}/jump [post]
func (h *QuizHandler) JumpToQuestion(c *gin.Context) {
	var req JumpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	h.applyTransition(c, func(token string) (*services.QuizState, error) {
		return h.quizService.JumpToQuestion(token, *req.Index)
	})
}

// ResetQuiz godoc
// @Summary      Restart the session over the same flashcards
// @Tags         quiz
// @Produce      json
// @Param        token path string true "Session token"
// @Success      200 {object} services.QuizState
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quiz/{token}/reset [post]
func (h *QuizHandler) ResetQuiz(c *gin.Context) {
	h.applyTransition(c, h.quizService.ResetSession)
}

// FinishQuiz godoc
// @Summary      Finish the session and sync outcomes
// @Description  Outcomes are upserted for authenticated users; sync failures are logged and never block the response
// @Tags         quiz
// @Produce      json
// @Param        token path string true "Session token"
// @Success      200 {object} services.QuizResult
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quiz/{token}/finish [post]
func (h *QuizHandler) FinishQuiz(c *gin.Context) {
	token := c.Param("token")
	result, err := h.quizService.Finish(token)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	h.hub.Broadcast(token, ws.WSMessage{Type: "finished", Data: result})
	c.JSON(http.StatusOK, result)
}

func (h *QuizHandler) applyTransition(c *gin.Context, apply func(string) (*services.QuizState, error)) {
	token := c.Param("token")
	state, err := apply(token)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	h.hub.Broadcast(token, ws.WSMessage{Type: "state", Data: state})
	c.JSON(http.StatusOK, state)
}

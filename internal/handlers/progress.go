package handlers

import (
	"net/http"

	"github.com/ilyasseisov/flashcards/internal/services"

	"github.com/gin-gonic/gin"
)

type ProgressHandler struct {
	progressService *services.ProgressService
}

func NewProgressHandler(progressService *services.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

type SaveProgressRequest struct {
	Entries []services.ProgressEntry `json:"entries" binding:"required,dive"`
}

type SaveProgressResponse struct {
	Saved int `json:"saved"`
}

// GetSummary godoc
// @Summary      Per-subcategory progress summary
// @Description  Completion and score badges derived from stored outcomes; anonymous requests get an empty map
// @Tags         progress
// @Produce      json
// @Success      200 {object} map[uint]services.SubcategorySummary
// @Router       /api/v1/progress/summary [get]
func (h *ProgressHandler) GetSummary(c *gin.Context) {
	uid := userID(c)
	if uid == "" {
		c.JSON(http.StatusOK, map[uint]services.SubcategorySummary{})
		return
	}

	summaries, err := h.progressService.SummaryBySubcategory(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// SaveProgress godoc
// @Summary      Sync a batch of outcomes
// @Description  Each entry is upserted independently, keyed on (user, flashcard); individual failures are logged, not fatal
// @Tags         progress
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body SaveProgressRequest true "Outcome entries"
// @Success      200 {object} SaveProgressResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/progress [post]
func (h *ProgressHandler) SaveProgress(c *gin.Context) {
	var req SaveProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	saved := h.progressService.SaveBatch(userID(c), req.Entries)
	c.JSON(http.StatusOK, SaveProgressResponse{Saved: saved})
}

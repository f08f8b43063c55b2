package handlers

import (
	"net/http"

	"github.com/ilyasseisov/flashcards/internal/models"
	"github.com/ilyasseisov/flashcards/internal/services"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService  *services.CatalogService
	progressService *services.ProgressService
}

func NewCatalogHandler(catalogService *services.CatalogService, progressService *services.ProgressService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, progressService: progressService}
}

type SubcategoryResponse struct {
	ID       uint                         `json:"id"`
	Name     string                       `json:"name"`
	Slug     string                       `json:"slug"`
	OrderNum int                          `json:"order_num"`
	Summary  *services.SubcategorySummary `json:"summary,omitempty"`
}

type CategoryResponse struct {
	ID            uint                  `json:"id"`
	Name          string                `json:"name"`
	Description   string                `json:"description,omitempty"`
	Slug          string                `json:"slug"`
	OrderNum      int                   `json:"order_num"`
	Subcategories []SubcategoryResponse `json:"subcategories"`
}

// FlashcardResponse is the catalog view of a flashcard. The correct answer
// and explanation are only ever surfaced through a quiz session reveal.
type FlashcardResponse struct {
	ID       uint     `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	OrderNum int      `json:"order_num"`
}

// ListCategories godoc
// @Summary      List categories
// @Description  Get all categories with their subcategories, in display order
// @Tags         catalog
// @Produce      json
// @Success      200 {array} CategoryResponse
// @Router       /api/v1/categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	out := make([]CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		out = append(out, h.categoryResponse(cat, nil))
	}
	c.JSON(http.StatusOK, out)
}

// GetCategory godoc
// @Summary      Get a category by slug
// @Description  Category detail with ordered subcategories; authenticated requests carry per-subcategory progress badges
// @Tags         catalog
// @Produce      json
// @Param        slug path string true "Category slug"
// @Success      200 {object} CategoryResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/categories/{slug} [get]
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	category, err := h.catalogService.FindCategoryBySlug(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	// No identity means no badges, never an error.
	var summaries map[uint]services.SubcategorySummary
	if uid := userID(c); uid != "" {
		summaries, err = h.progressService.SummaryBySubcategory(uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, h.categoryResponse(*category, summaries))
}

// GetFlashcards godoc
// @Summary      List flashcards of a subcategory
// @Description  Ordered flashcards with answers redacted
// @Tags         catalog
// @Produce      json
// @Param        slug path string true "Category slug"
// @Param        subslug path string true "Subcategory slug"
// @Success      200 {array} FlashcardResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/categories/{slug}/{subslug}/flashcards [get]
func (h *CatalogHandler) GetFlashcards(c *gin.Context) {
	subcategory, err := h.catalogService.FindSubcategory(c.Param("slug"), c.Param("subslug"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	flashcards, err := h.catalogService.FindFlashcardsBySubcategory(subcategory.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	out := make([]FlashcardResponse, 0, len(flashcards))
	for _, f := range flashcards {
		out = append(out, FlashcardResponse{
			ID:       f.ID,
			Question: f.Question,
			Options:  f.Options,
			OrderNum: f.OrderNum,
		})
	}
	c.JSON(http.StatusOK, out)
}

// ImportCatalog godoc
// @Summary      Import the catalog tree
// @Description  Upsert categories, subcategories and flashcards by slug
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body services.CatalogTree true "Catalog tree"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/admin/catalog/import [post]
func (h *CatalogHandler) ImportCatalog(c *gin.Context) {
	var tree services.CatalogTree
	if err := c.ShouldBindJSON(&tree); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.catalogService.ImportTree(tree); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "catalog imported"})
}

// ExportCatalog godoc
// @Summary      Export the catalog tree
// @Tags         admin
// @Produce      json
// @Success      200 {object} services.CatalogTree
// @Router       /api/v1/admin/catalog/export [get]
func (h *CatalogHandler) ExportCatalog(c *gin.Context) {
	tree, err := h.catalogService.ExportTree()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, tree)
}

func (h *CatalogHandler) categoryResponse(cat models.Category, summaries map[uint]services.SubcategorySummary) CategoryResponse {
	out := CategoryResponse{
		ID:            cat.ID,
		Name:          cat.Name,
		Description:   cat.Description,
		Slug:          cat.Slug,
		OrderNum:      cat.OrderNum,
		Subcategories: make([]SubcategoryResponse, 0, len(cat.Subcategories)),
	}
	for _, sub := range cat.Subcategories {
		sr := SubcategoryResponse{
			ID:       sub.ID,
			Name:     sub.Name,
			Slug:     sub.Slug,
			OrderNum: sub.OrderNum,
		}
		if summaries != nil {
			if summary, ok := summaries[sub.ID]; ok {
				sr.Summary = &summary
			}
		}
		out.Subcategories = append(out.Subcategories, sr)
	}
	return out
}

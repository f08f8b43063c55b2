package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ilyasseisov/flashcards/internal/models"

	"gorm.io/gorm"
)

// CatalogService reads the category → subcategory → flashcard hierarchy.
// The catalog is authored externally (seed file or admin import) and is
// read-only for quiz traffic.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Order("order_num ASC").
		Preload("Subcategories", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Find(&categories).Error
	return categories, err
}

func (s *CatalogService) FindCategoryBySlug(slug string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("slug = ?", strings.ToLower(slug)).
		Preload("Subcategories", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		First(&category).Error; err != nil {
		return nil, errors.New("category not found")
	}
	return &category, nil
}

// FindSubcategory resolves a subcategory by its slug pair. Subcategory slugs
// are unique only within their parent category.
func (s *CatalogService) FindSubcategory(categorySlug, subcategorySlug string) (*models.Subcategory, error) {
	var category models.Category
	if err := s.db.Where("slug = ?", strings.ToLower(categorySlug)).First(&category).Error; err != nil {
		return nil, errors.New("category not found")
	}

	var subcategory models.Subcategory
	if err := s.db.Where("category_id = ? AND slug = ?", category.ID, strings.ToLower(subcategorySlug)).
		First(&subcategory).Error; err != nil {
		return nil, errors.New("subcategory not found")
	}
	return &subcategory, nil
}

func (s *CatalogService) FindFlashcardsBySubcategory(subcategoryID uint) ([]models.Flashcard, error) {
	var flashcards []models.Flashcard
	err := s.db.Where("subcategory_id = ?", subcategoryID).
		Order("order_num ASC").
		Find(&flashcards).Error
	return flashcards, err
}

func (s *CatalogService) AllSubcategories() ([]models.Subcategory, error) {
	var subcategories []models.Subcategory
	err := s.db.Order("order_num ASC").Find(&subcategories).Error
	return subcategories, err
}

func (s *CatalogService) AllFlashcards() ([]models.Flashcard, error) {
	var flashcards []models.Flashcard
	err := s.db.Find(&flashcards).Error
	return flashcards, err
}

// Catalog import/export tree, used by the admin endpoints and seeding.

type CatalogFlashcard struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correct_answer_index"`
	Explanation        string   `json:"explanation"`
}

type CatalogSubcategory struct {
	Name       string             `json:"name"`
	Slug       string             `json:"slug"`
	Flashcards []CatalogFlashcard `json:"flashcards"`
}

type CatalogCategory struct {
	Name          string               `json:"name"`
	Description   string               `json:"description,omitempty"`
	Slug          string               `json:"slug"`
	Subcategories []CatalogSubcategory `json:"subcategories"`
}

type CatalogTree struct {
	Categories []CatalogCategory `json:"categories"`
}

// ImportTree upserts the whole tree by slug in one transaction. Display
// order follows tree order.
func (s *CatalogService) ImportTree(tree CatalogTree) error {
	for _, c := range tree.Categories {
		for _, sub := range c.Subcategories {
			for _, f := range sub.Flashcards {
				if len(f.Options) != models.OptionCount {
					return fmt.Errorf("flashcard %q: expected %d options, got %d",
						f.Question, models.OptionCount, len(f.Options))
				}
				if f.CorrectAnswerIndex < 0 || f.CorrectAnswerIndex >= len(f.Options) {
					return fmt.Errorf("flashcard %q: correct answer index %d out of range",
						f.Question, f.CorrectAnswerIndex)
				}
			}
		}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for ci, c := range tree.Categories {
			category := models.Category{
				Name:        c.Name,
				Description: c.Description,
				Slug:        strings.ToLower(c.Slug),
				OrderNum:    ci,
			}
			var existing models.Category
			if err := tx.Where("slug = ?", category.Slug).First(&existing).Error; err == nil {
				existing.Name = category.Name
				existing.Description = category.Description
				existing.OrderNum = ci
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
				category = existing
			} else if err := tx.Create(&category).Error; err != nil {
				return err
			}

			for si, sub := range c.Subcategories {
				subcategory := models.Subcategory{
					CategoryID: category.ID,
					Name:       sub.Name,
					Slug:       strings.ToLower(sub.Slug),
					OrderNum:   si,
				}
				var existingSub models.Subcategory
				if err := tx.Where("category_id = ? AND slug = ?", category.ID, subcategory.Slug).
					First(&existingSub).Error; err == nil {
					existingSub.Name = subcategory.Name
					existingSub.OrderNum = si
					if err := tx.Save(&existingSub).Error; err != nil {
						return err
					}
					subcategory = existingSub
				} else if err := tx.Create(&subcategory).Error; err != nil {
					return err
				}

				// Flashcards have no stable slug; imports replace the set.
				if err := tx.Where("subcategory_id = ?", subcategory.ID).
					Delete(&models.Flashcard{}).Error; err != nil {
					return err
				}
				for fi, f := range sub.Flashcards {
					flashcard := models.Flashcard{
						SubcategoryID:      subcategory.ID,
						Question:           f.Question,
						Options:            f.Options,
						CorrectAnswerIndex: f.CorrectAnswerIndex,
						Explanation:        f.Explanation,
						OrderNum:           fi,
					}
					if err := tx.Create(&flashcard).Error; err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
}

// ExportTree returns the catalog in the import format.
func (s *CatalogService) ExportTree() (CatalogTree, error) {
	categories, err := s.ListCategories()
	if err != nil {
		return CatalogTree{}, err
	}

	tree := CatalogTree{}
	for _, c := range categories {
		cc := CatalogCategory{Name: c.Name, Description: c.Description, Slug: c.Slug}
		for _, sub := range c.Subcategories {
			cs := CatalogSubcategory{Name: sub.Name, Slug: sub.Slug}
			flashcards, err := s.FindFlashcardsBySubcategory(sub.ID)
			if err != nil {
				return CatalogTree{}, err
			}
			for _, f := range flashcards {
				cs.Flashcards = append(cs.Flashcards, CatalogFlashcard{
					Question:           f.Question,
					Options:            f.Options,
					CorrectAnswerIndex: f.CorrectAnswerIndex,
					Explanation:        f.Explanation,
				})
			}
			cc.Subcategories = append(cc.Subcategories, cs)
		}
		tree.Categories = append(tree.Categories, cc)
	}
	return tree, nil
}

// SeedFromFile imports the tree at path when the catalog is still empty.
// A populated catalog is left untouched.
func (s *CatalogService) SeedFromFile(path string) error {
	var count int64
	if err := s.db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var tree CatalogTree
	if err := json.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}
	if err := s.ImportTree(tree); err != nil {
		return err
	}
	log.Printf("catalog seeded from %s (%d categories)", path, len(tree.Categories))
	return nil
}

package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ilyasseisov/flashcards/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Subcategory{},
		&models.Flashcard{},
		&models.Outcome{},
	))
	return db
}

// seedCatalog inserts one category with one subcategory holding n flashcards
// and returns the subcategory.
func seedCatalog(t *testing.T, db *gorm.DB, n int) models.Subcategory {
	t.Helper()

	category := models.Category{Name: "React", Slug: "react", OrderNum: 0}
	require.NoError(t, db.Create(&category).Error)

	subcategory := models.Subcategory{CategoryID: category.ID, Name: "Hooks", Slug: "hooks", OrderNum: 0}
	require.NoError(t, db.Create(&subcategory).Error)

	for i := 0; i < n; i++ {
		flashcard := models.Flashcard{
			SubcategoryID:      subcategory.ID,
			Question:           fmt.Sprintf("question %d", i+1),
			Options:            []string{"a", "b", "c", "d"},
			CorrectAnswerIndex: 1,
			Explanation:        "because",
			OrderNum:           i,
		}
		require.NoError(t, db.Create(&flashcard).Error)
	}
	return subcategory
}

package repository_test

import (
	"path/filepath"
	"testing"

	"recipe-api/internal/config"
	"recipe-api/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := models.OpenDB(&config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "x", IsActive: true}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createRecipe(t *testing.T, db *gorm.DB, userID uint, title string, tags []models.Tag, ingredients []models.Ingredient) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		UserID:      userID,
		Title:       title,
		TimeMinutes: 5,
		Price:       decimal.RequireFromString("5.50"),
		Tags:        tags,
		Ingredients: ingredients,
	}
	require.NoError(t, db.Omit("Tags.*", "Ingredients.*").Create(recipe).Error)
	return recipe
}

package repository

import (
	"fmt"
	"testing"

	"quotary/internal/database"
	"quotary/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory sqlite database carrying the full
// production schema, including the single-active selection index.
// TranslateError is required so unique violations surface as
// gorm.ErrDuplicatedKey, matching the Postgres connection.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestAuthor(t *testing.T, db *gorm.DB, name string) *models.Author {
	t.Helper()
	author := &models.Author{Name: name, Bio: "bio", Era: "Modern"}
	require.NoError(t, db.Create(author).Error)
	return author
}

func createTestQuote(t *testing.T, db *gorm.DB, authorID uint, text string) *models.Quote {
	t.Helper()
	quote := &models.Quote{
		Text:     text,
		Category: "wisdom",
		AuthorID: authorID,
		UserID:   1,
	}
	require.NoError(t, db.Create(quote).Error)
	return quote
}

// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"quotary/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var eras = []string{
	"Ancient", "Classical", "Medieval", "Renaissance",
	"Enlightenment", "Romantic", "Modern", "Contemporary",
}

var categories = []string{
	"wisdom", "humor", "motivation", "love", "philosophy",
	"science", "art", "politics", "nature", "work",
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser persists a user with a known password ("Password123!seed")
// so seeded accounts remain usable for manual testing.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("Password123!seed"), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	user := &models.User{
		Username: fmt.Sprintf("%s_%d", gofakeit.Username(), f.rand.Intn(100000)),
		Email:    gofakeit.Email(),
		Password: string(hashed),
		Bio:      gofakeit.Sentence(8),
		Avatar:   fmt.Sprintf("https://picsum.photos/seed/%s/200/200", gofakeit.UUID()),
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create seed user: %w", err)
	}
	return user, nil
}

// CreateAuthor persists an author with a unique name.
func (f *Factory) CreateAuthor(overrides ...func(*models.Author)) (*models.Author, error) {
	author := &models.Author{
		Name: fmt.Sprintf("%s %s %d", gofakeit.FirstName(), gofakeit.LastName(), f.rand.Intn(100000)),
		Bio:  gofakeit.Paragraph(1, 2, 8, " "),
		Era:  eras[f.rand.Intn(len(eras))],
	}
	for _, override := range overrides {
		override(author)
	}

	if err := f.db.Create(author).Error; err != nil {
		return nil, fmt.Errorf("create seed author: %w", err)
	}
	return author, nil
}

// CreateQuote persists a quote attributed to the given author, submitted
// by the given user, with a created_at spread over the past 90 days.
func (f *Factory) CreateQuote(author *models.Author, user *models.User, overrides ...func(*models.Quote)) (*models.Quote, error) {
	quote := &models.Quote{
		Text:     gofakeit.Quote(),
		Category: categories[f.rand.Intn(len(categories))],
		AuthorID: author.ID,
		UserID:   user.ID,
	}

	daysBack := f.rand.Intn(90)
	hoursBack := f.rand.Intn(24)
	quote.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(quote)
	}

	if err := f.db.Create(quote).Error; err != nil {
		return nil, fmt.Errorf("create seed quote: %w", err)
	}
	return quote, nil
}

package seed

import (
	"fmt"
	"log"

	"quotary/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumAuthors  int
	NumQuotes   int
	ShouldClean bool
}

// Seed populates the database with test data. Engagement rows are created
// through the same code path production uses, so the denormalized counters
// on authors and quotes always match the join tables.
func Seed(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 20
	}
	if opts.NumAuthors <= 0 {
		opts.NumAuthors = 15
	}
	if opts.NumQuotes <= 0 {
		opts.NumQuotes = 100
	}

	log.Printf("Seeding %d users, %d authors, %d quotes...", opts.NumUsers, opts.NumAuthors, opts.NumQuotes)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("clear existing data: %w", err)
		}
	}

	factory := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return err
		}
		users = append(users, user)
	}

	authors := make([]*models.Author, 0, opts.NumAuthors)
	for i := 0; i < opts.NumAuthors; i++ {
		author, err := factory.CreateAuthor()
		if err != nil {
			return err
		}
		authors = append(authors, author)
	}

	quotes := make([]*models.Quote, 0, opts.NumQuotes)
	for i := 0; i < opts.NumQuotes; i++ {
		author := authors[factory.rand.Intn(len(authors))]
		user := users[factory.rand.Intn(len(users))]
		quote, err := factory.CreateQuote(author, user)
		if err != nil {
			return err
		}
		quotes = append(quotes, quote)
	}

	if err := seedEngagement(db, factory, users, authors, quotes); err != nil {
		return err
	}

	log.Println("Seeding complete")
	return nil
}

// seedEngagement gives each user a handful of follows, likes and
// bookmarks. Join rows and counters are written in one transaction per
// relation, mirroring the production toggle path.
func seedEngagement(db *gorm.DB, factory *Factory, users []*models.User, authors []*models.Author, quotes []*models.Quote) error {
	for _, user := range users {
		for _, author := range pickAuthors(factory, authors, 1+factory.rand.Intn(4)) {
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.Create(&models.Follow{UserID: user.ID, AuthorID: author.ID}).Error; err != nil {
					return err
				}
				return tx.Model(&models.Author{}).Where("id = ?", author.ID).
					Update("followers", gorm.Expr("followers + 1")).Error
			})
			if err != nil {
				return fmt.Errorf("seed follow: %w", err)
			}
		}

		for _, quote := range pickQuotes(factory, quotes, 2+factory.rand.Intn(8)) {
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.Create(&models.Like{UserID: user.ID, QuoteID: quote.ID}).Error; err != nil {
					return err
				}
				return tx.Model(&models.Quote{}).Where("id = ?", quote.ID).
					Update("likes", gorm.Expr("likes + 1")).Error
			})
			if err != nil {
				return fmt.Errorf("seed like: %w", err)
			}
		}

		for _, quote := range pickQuotes(factory, quotes, factory.rand.Intn(4)) {
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.Create(&models.Bookmark{UserID: user.ID, QuoteID: quote.ID}).Error; err != nil {
					return err
				}
				return tx.Model(&models.Quote{}).Where("id = ?", quote.ID).
					Update("bookmarks", gorm.Expr("bookmarks + 1")).Error
			})
			if err != nil {
				return fmt.Errorf("seed bookmark: %w", err)
			}
		}
	}
	return nil
}

func pickAuthors(factory *Factory, authors []*models.Author, n int) []*models.Author {
	shuffled := make([]*models.Author, len(authors))
	copy(shuffled, authors)
	factory.rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

func pickQuotes(factory *Factory, quotes []*models.Quote, n int) []*models.Quote {
	shuffled := make([]*models.Quote, len(quotes))
	copy(shuffled, quotes)
	factory.rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

func clearData(db *gorm.DB) error {
	// Delete in dependency order: relations and selections before targets.
	for _, model := range []any{
		&models.DailyQuote{},
		&models.Follow{},
		&models.Like{},
		&models.Bookmark{},
		&models.Quote{},
		&models.Author{},
		&models.User{},
	} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

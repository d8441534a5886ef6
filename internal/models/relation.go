package models

import "time"

// RelationKind identifies one of the user-to-entity engagement relations.
// Each kind pairs a join table with a denormalized counter column on the
// target entity.
type RelationKind string

const (
	// RelationFollow relates a user to an author (authors.followers).
	RelationFollow RelationKind = "follow"
	// RelationLike relates a user to a quote (quotes.likes).
	RelationLike RelationKind = "like"
	// RelationBookmark relates a user to a quote (quotes.bookmarks).
	RelationBookmark RelationKind = "bookmark"
)

// Valid reports whether k is one of the known relation kinds.
func (k RelationKind) Valid() bool {
	switch k {
	case RelationFollow, RelationLike, RelationBookmark:
		return true
	}
	return false
}

// Follow represents a user following an author.
// The combination of UserID and AuthorID must be unique; the row's
// existence is the followed state.
type Follow struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_follow_user_author" json:"user_id"`
	AuthorID  uint      `gorm:"not null;uniqueIndex:idx_follow_user_author" json:"author_id"`
	CreatedAt time.Time `json:"created_at"`

	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Author Author `gorm:"foreignKey:AuthorID" json:"-"`
}

// Like represents a user's like on a quote.
// The combination of UserID and QuoteID must be unique.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_quote" json:"user_id"`
	QuoteID   uint      `gorm:"not null;uniqueIndex:idx_like_user_quote" json:"quote_id"`
	CreatedAt time.Time `json:"created_at"`

	User  User  `gorm:"foreignKey:UserID" json:"-"`
	Quote Quote `gorm:"foreignKey:QuoteID" json:"-"`
}

// Bookmark represents a user's bookmark of a quote.
// The combination of UserID and QuoteID must be unique.
type Bookmark struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_bookmark_user_quote" json:"user_id"`
	QuoteID   uint      `gorm:"not null;uniqueIndex:idx_bookmark_user_quote" json:"quote_id"`
	CreatedAt time.Time `json:"created_at"`

	User  User  `gorm:"foreignKey:UserID" json:"-"`
	Quote Quote `gorm:"foreignKey:QuoteID" json:"-"`
}

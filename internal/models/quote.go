package models

import (
	"time"

	"gorm.io/gorm"
)

// Quote represents a quote attributed to an author.
//
// Likes and Bookmarks are denormalized counters, mutated only by the
// relation repository inside the transaction that mutates the matching
// join row.
type Quote struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Text      string `gorm:"not null" json:"text"`
	Category  string `gorm:"index" json:"category"`
	AuthorID  uint   `gorm:"not null;index" json:"author_id"`
	Author    Author `gorm:"foreignKey:AuthorID" json:"author"`
	UserID    uint   `gorm:"not null" json:"user_id"`
	Likes     int64  `gorm:"not null;default:0" json:"likes"`
	Bookmarks int64  `gorm:"not null;default:0" json:"bookmarks"`
	// Liked indicates whether the current requesting user liked this quote (computed)
	Liked bool `gorm:"-" json:"liked"`
	// Bookmarked indicates whether the current requesting user bookmarked this quote (computed)
	Bookmarked bool           `gorm:"-" json:"bookmarked"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

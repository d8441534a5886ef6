package models

import "time"

// DailyQuote is one rotation selection. Rows are deactivated when
// superseded, never deleted: the retained history drives the no-repeat
// exclusion window.
//
// At most one row may have IsActive = true at a time; the partial
// unique index created in database.Connect enforces this under
// concurrent rotation attempts.
type DailyQuote struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	QuoteID        uint      `gorm:"not null;index" json:"quote_id"`
	Quote          Quote     `gorm:"foreignKey:QuoteID" json:"quote"`
	SelectionDate  time.Time `gorm:"not null;index" json:"selection_date"`
	ExpirationDate time.Time `gorm:"not null" json:"expiration_date"`
	IsActive       bool      `gorm:"not null;default:false" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

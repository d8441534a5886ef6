package models

import (
	"time"

	"gorm.io/gorm"
)

// Author represents a quote author.
//
// Followers is a denormalized counter kept in sync with the follows
// join table: it is only ever written inside the same transaction that
// creates or deletes a Follow row. Readers trust it instead of issuing
// a COUNT(*) per request.
type Author struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"not null;uniqueIndex" json:"name"`
	Bio       string `json:"bio"`
	Era       string `json:"era"`
	Followers int64  `gorm:"not null;default:0" json:"followers"`
	// Following indicates whether the current requesting user follows this author (computed)
	Following bool           `gorm:"-" json:"following"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Package domain contains persistence models for the artwork catalog.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// ArtworkStatus is the approval state of a catalog entry. Only APPROVED
// artworks are sellable.
type ArtworkStatus string

const (
	ArtworkStatusPending  ArtworkStatus = "PENDING"
	ArtworkStatusApproved ArtworkStatus = "APPROVED"
	ArtworkStatusRejected ArtworkStatus = "REJECTED"
)

// Artwork is a sellable catalog entry.
type Artwork struct {
	ID         snowflake.ID  `gorm:"primaryKey" json:"id"`
	Title      string        `gorm:"not null" json:"title"`
	ArtistName string        `gorm:"not null" json:"artist_name"`
	Price      int64         `gorm:"not null" json:"price"`
	MonthlyFee int64         `gorm:"not null;default:0" json:"monthly_fee"`
	Status     ArtworkStatus `gorm:"type:text;not null" json:"status"`
	WidthCM    int           `gorm:"" json:"width_cm,omitempty"`
	HeightCM   int           `gorm:"" json:"height_cm,omitempty"`
	CreatedAt  time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Artwork) TableName() string { return "artworks" }

// Item is the gateway view handed to the order ledger.
type Item struct {
	ID         snowflake.ID
	Title      string
	Price      int64
	MonthlyFee int64
	Sellable   bool
}

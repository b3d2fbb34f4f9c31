// Package domain contains persistence models for users and sessions.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// User is an account able to place orders or administer the store.
type User struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	Email        string       `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash string       `gorm:"not null" json:"-"`
	DisplayName  string       `gorm:"not null" json:"display_name"`
	Role         string       `gorm:"type:text;not null" json:"role"`

	// Default shipping address, written when checkout sets the
	// save-address flag.
	Recipient     string `gorm:"type:text" json:"recipient,omitempty"`
	Phone         string `gorm:"type:text" json:"phone,omitempty"`
	Address       string `gorm:"type:text" json:"address,omitempty"`
	AddressDetail string `gorm:"type:text" json:"address_detail,omitempty"`
	PostalCode    string `gorm:"type:text" json:"postal_code,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

// Session is an opaque login token with an expiry.
type Session struct {
	Token     string       `gorm:"primaryKey" json:"-"`
	UserID    snowflake.ID `gorm:"not null;index" json:"user_id"`
	ExpiresAt time.Time    `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Session) TableName() string { return "sessions" }

// Address is the shipping address payload saved onto a user profile.
type Address struct {
	Recipient     string `json:"recipient"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	AddressDetail string `json:"address_detail,omitempty"`
	PostalCode    string `json:"postal_code"`
}

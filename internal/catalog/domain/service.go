package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type CreateArtworkRequest struct {
	Title      string `json:"title"`
	ArtistName string `json:"artist_name"`
	Price      int64  `json:"price"`
	MonthlyFee int64  `json:"monthly_fee"`
	WidthCM    int    `json:"width_cm,omitempty"`
	HeightCM   int    `json:"height_cm,omitempty"`
}

type ListArtworkRequest struct {
	Status string
}

type Service interface {
	Create(context.Context, CreateArtworkRequest) (Artwork, error)
	Approve(ctx context.Context, id snowflake.ID) error
	Reject(ctx context.Context, id snowflake.ID) error
	GetByID(ctx context.Context, id snowflake.ID) (Artwork, error)
	List(context.Context, ListArtworkRequest) ([]Artwork, error)

	// GetItem is the catalog gateway contract used by the order ledger.
	GetItem(ctx context.Context, id snowflake.ID) (*Item, error)
}

var (
	ErrInvalidTitle  = errors.New("invalid_title")
	ErrInvalidArtist = errors.New("invalid_artist")
	ErrInvalidPrice  = errors.New("invalid_price")
	ErrInvalidStatus = errors.New("invalid_status")
	ErrNotFound      = errors.New("artwork_not_found")
)

package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, artwork *Artwork) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Artwork, error)
	List(ctx context.Context, db *gorm.DB, status ArtworkStatus) ([]Artwork, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status ArtworkStatus) error
}

package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/smallbiznis/galeri/internal/catalog/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() catalogdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, artwork *catalogdomain.Artwork) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO artworks (
			id, title, artist_name, price, monthly_fee, status, width_cm,
			height_cm, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		artwork.ID,
		artwork.Title,
		artwork.ArtistName,
		artwork.Price,
		artwork.MonthlyFee,
		artwork.Status,
		artwork.WidthCM,
		artwork.HeightCM,
		artwork.CreatedAt,
		artwork.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*catalogdomain.Artwork, error) {
	var artwork catalogdomain.Artwork
	err := db.WithContext(ctx).Raw(
		`SELECT id, title, artist_name, price, monthly_fee, status, width_cm,
		 height_cm, created_at, updated_at
		 FROM artworks WHERE id = ?`,
		id,
	).Scan(&artwork).Error
	if err != nil {
		return nil, err
	}
	if artwork.ID == 0 {
		return nil, nil
	}
	return &artwork, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, status catalogdomain.ArtworkStatus) ([]catalogdomain.Artwork, error) {
	var artworks []catalogdomain.Artwork
	query := `SELECT id, title, artist_name, price, monthly_fee, status, width_cm,
	 height_cm, created_at, updated_at FROM artworks`
	args := []any{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	err := db.WithContext(ctx).Raw(query, args...).Scan(&artworks).Error
	if err != nil {
		return nil, err
	}
	return artworks, nil
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status catalogdomain.ArtworkStatus) error {
	return db.WithContext(ctx).Exec(
		`UPDATE artworks SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		status,
		id,
	).Error
}

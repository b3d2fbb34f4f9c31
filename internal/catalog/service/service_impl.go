package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/smallbiznis/galeri/internal/catalog/domain"
	"github.com/smallbiznis/galeri/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  catalogdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  catalogdomain.Repository
}

func New(p Params) catalogdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("catalog.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req catalogdomain.CreateArtworkRequest) (catalogdomain.Artwork, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return catalogdomain.Artwork{}, catalogdomain.ErrInvalidTitle
	}
	artist := strings.TrimSpace(req.ArtistName)
	if artist == "" {
		return catalogdomain.Artwork{}, catalogdomain.ErrInvalidArtist
	}
	if req.Price <= 0 || req.MonthlyFee < 0 {
		return catalogdomain.Artwork{}, catalogdomain.ErrInvalidPrice
	}

	now := s.clock.Now()
	artwork := catalogdomain.Artwork{
		ID:         s.genID.Generate(),
		Title:      title,
		ArtistName: artist,
		Price:      req.Price,
		MonthlyFee: req.MonthlyFee,
		Status:     catalogdomain.ArtworkStatusPending,
		WidthCM:    req.WidthCM,
		HeightCM:   req.HeightCM,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Insert(ctx, s.db, &artwork); err != nil {
		return catalogdomain.Artwork{}, err
	}

	return artwork, nil
}

func (s *Service) Approve(ctx context.Context, id snowflake.ID) error {
	return s.transition(ctx, id, catalogdomain.ArtworkStatusApproved)
}

func (s *Service) Reject(ctx context.Context, id snowflake.ID) error {
	return s.transition(ctx, id, catalogdomain.ArtworkStatusRejected)
}

func (s *Service) transition(ctx context.Context, id snowflake.ID, status catalogdomain.ArtworkStatus) error {
	artwork, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if artwork == nil {
		return catalogdomain.ErrNotFound
	}
	return s.repo.UpdateStatus(ctx, s.db, id, status)
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (catalogdomain.Artwork, error) {
	artwork, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return catalogdomain.Artwork{}, err
	}
	if artwork == nil {
		return catalogdomain.Artwork{}, catalogdomain.ErrNotFound
	}
	return *artwork, nil
}

func (s *Service) List(ctx context.Context, req catalogdomain.ListArtworkRequest) ([]catalogdomain.Artwork, error) {
	status := catalogdomain.ArtworkStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	switch status {
	case "", catalogdomain.ArtworkStatusPending, catalogdomain.ArtworkStatusApproved, catalogdomain.ArtworkStatusRejected:
	default:
		return nil, catalogdomain.ErrInvalidStatus
	}
	return s.repo.List(ctx, s.db, status)
}

// GetItem implements the catalog gateway contract: price plus sellability.
func (s *Service) GetItem(ctx context.Context, id snowflake.ID) (*catalogdomain.Item, error) {
	artwork, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if artwork == nil {
		return nil, nil
	}
	return &catalogdomain.Item{
		ID:         artwork.ID,
		Title:      artwork.Title,
		Price:      artwork.Price,
		MonthlyFee: artwork.MonthlyFee,
		Sellable:   artwork.Status == catalogdomain.ArtworkStatusApproved,
	}, nil
}

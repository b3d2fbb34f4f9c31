// Package seed provisions the bootstrap administrator account.
package seed

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/galeri/internal/actorcontext"
	"github.com/smallbiznis/galeri/internal/clock"
	"github.com/smallbiznis/galeri/internal/config"
	identitydomain "github.com/smallbiznis/galeri/internal/identity/domain"
	"github.com/smallbiznis/galeri/internal/identity/password"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EnsureAdmin creates the configured admin user when it does not exist yet.
// A blank BOOTSTRAP_ADMIN_EMAIL disables seeding.
func EnsureAdmin(db *gorm.DB, cfg config.Config, log *zap.Logger, genID *snowflake.Node, clk clock.Clock, repo identitydomain.Repository) error {
	log = log.Named("seed")

	if cfg.BootstrapAdminEmail == "" || cfg.BootstrapAdminPassword == "" {
		log.Info("admin bootstrap disabled")
		return nil
	}

	ctx := context.Background()
	existing, err := repo.FindByEmail(ctx, db, cfg.BootstrapAdminEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := password.Hash(cfg.BootstrapAdminPassword)
	if err != nil {
		return err
	}

	now := clk.Now()
	admin := identitydomain.User{
		ID:           genID.Generate(),
		Email:        cfg.BootstrapAdminEmail,
		PasswordHash: hash,
		DisplayName:  "Administrator",
		Role:         string(actorcontext.RoleAdmin),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.Insert(ctx, db, &admin); err != nil {
		return err
	}

	log.Info("admin account seeded", zap.String("email", cfg.BootstrapAdminEmail))
	return nil
}

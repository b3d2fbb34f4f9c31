// Package migration applies the database schema on startup. Postgres uses
// versioned SQL migrations; other dialects fall back to gorm AutoMigrate,
// which is what the sqlite test setup relies on.
package migration

import (
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	catalogdomain "github.com/smallbiznis/galeri/internal/catalog/domain"
	"github.com/smallbiznis/galeri/internal/config"
	identitydomain "github.com/smallbiznis/galeri/internal/identity/domain"
	orderdomain "github.com/smallbiznis/galeri/internal/order/domain"
	subscriptiondomain "github.com/smallbiznis/galeri/internal/subscription/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Run applies pending schema changes.
func Run(db *gorm.DB, cfg config.Config, log *zap.Logger) error {
	log = log.Named("migration")

	if cfg.DBType == "postgres" {
		return runVersioned(db, log)
	}
	return db.AutoMigrate(
		&identitydomain.User{},
		&identitydomain.Session{},
		&catalogdomain.Artwork{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
		&subscriptiondomain.Subscription{},
		&subscriptiondomain.SubscriptionDeposit{},
	)
}

func runVersioned(db *gorm.DB, log *zap.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	source, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return err
	}

	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("schema up to date")
			return nil
		}
		return err
	}

	version, _, _ := m.Version()
	log.Info("schema migrated", zap.Uint("version", version))
	return nil
}

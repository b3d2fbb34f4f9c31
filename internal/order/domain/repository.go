package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, order *Order) error
	InsertItems(ctx context.Context, db *gorm.DB, items []OrderItem) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Order, error)

	// FindByIDForUpdate reads the order with a row lock where the dialect
	// supports one. Call inside a transaction.
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Order, error)

	FindItems(ctx context.Context, db *gorm.DB, orderID snowflake.ID) ([]OrderItem, error)

	// TransitionStatus moves the order from one status to another with a
	// conditional UPDATE. It reports false when the row was no longer in the
	// expected status, which callers treat as a lost race.
	TransitionStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, from, to OrderStatus, at time.Time) (bool, error)

	List(ctx context.Context, db *gorm.DB) ([]Order, error)
}

package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, subscription *Subscription) error
	InsertDeposit(ctx context.Context, db *gorm.DB, deposit *SubscriptionDeposit) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Subscription, error)
	FindByOrderID(ctx context.Context, db *gorm.DB, orderID snowflake.ID) ([]Subscription, error)
	List(ctx context.Context, db *gorm.DB) ([]Subscription, error)
	ListDeposits(ctx context.Context, db *gorm.DB, subscriptionID snowflake.ID) ([]SubscriptionDeposit, error)
}

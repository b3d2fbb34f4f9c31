package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	subscriptiondomain "github.com/smallbiznis/galeri/internal/subscription/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() subscriptiondomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, subscription *subscriptiondomain.Subscription) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO subscriptions (
			id, user_id, artwork_id, order_id, order_item_id, status, billing_cycle,
			start_at, end_at, next_payment_due, monthly_fee, metadata, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		subscription.ID,
		subscription.UserID,
		subscription.ArtworkID,
		subscription.OrderID,
		subscription.OrderItemID,
		subscription.Status,
		subscription.Cycle,
		subscription.StartAt,
		subscription.EndAt,
		subscription.NextPaymentDue,
		subscription.MonthlyFee,
		subscription.Metadata,
		subscription.CreatedAt,
		subscription.UpdatedAt,
	).Error
}

func (r *repo) InsertDeposit(ctx context.Context, db *gorm.DB, deposit *subscriptiondomain.SubscriptionDeposit) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO subscription_deposits (
			id, subscription_id, amount, confirmed_by, note, deposited_at, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		deposit.ID,
		deposit.SubscriptionID,
		deposit.Amount,
		deposit.ConfirmedBy,
		deposit.Note,
		deposit.DepositedAt,
		deposit.CreatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*subscriptiondomain.Subscription, error) {
	var subscription subscriptiondomain.Subscription
	err := db.WithContext(ctx).Raw(
		`SELECT id, user_id, artwork_id, order_id, order_item_id, status, billing_cycle,
		 start_at, end_at, next_payment_due, monthly_fee, metadata, created_at, updated_at
		 FROM subscriptions WHERE id = ?`,
		id,
	).Scan(&subscription).Error
	if err != nil {
		return nil, err
	}
	if subscription.ID == 0 {
		return nil, nil
	}
	return &subscription, nil
}

func (r *repo) FindByOrderID(ctx context.Context, db *gorm.DB, orderID snowflake.ID) ([]subscriptiondomain.Subscription, error) {
	var subscriptions []subscriptiondomain.Subscription
	err := db.WithContext(ctx).Raw(
		`SELECT id, user_id, artwork_id, order_id, order_item_id, status, billing_cycle,
		 start_at, end_at, next_payment_due, monthly_fee, metadata, created_at, updated_at
		 FROM subscriptions WHERE order_id = ? ORDER BY order_item_id ASC`,
		orderID,
	).Scan(&subscriptions).Error
	if err != nil {
		return nil, err
	}
	return subscriptions, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]subscriptiondomain.Subscription, error) {
	var subscriptions []subscriptiondomain.Subscription
	err := db.WithContext(ctx).Raw(
		`SELECT id, user_id, artwork_id, order_id, order_item_id, status, billing_cycle,
		 start_at, end_at, next_payment_due, monthly_fee, metadata, created_at, updated_at
		 FROM subscriptions ORDER BY created_at DESC`,
	).Scan(&subscriptions).Error
	if err != nil {
		return nil, err
	}
	return subscriptions, nil
}

func (r *repo) ListDeposits(ctx context.Context, db *gorm.DB, subscriptionID snowflake.ID) ([]subscriptiondomain.SubscriptionDeposit, error) {
	var deposits []subscriptiondomain.SubscriptionDeposit
	err := db.WithContext(ctx).Raw(
		`SELECT id, subscription_id, amount, confirmed_by, note, deposited_at, created_at
		 FROM subscription_deposits WHERE subscription_id = ? ORDER BY deposited_at ASC, id ASC`,
		subscriptionID,
	).Scan(&deposits).Error
	if err != nil {
		return nil, err
	}
	return deposits, nil
}

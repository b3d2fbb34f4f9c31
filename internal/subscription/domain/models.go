// Package domain contains persistence models for rental subscriptions and
// their deposit history.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// SubscriptionStatus represents lifecycle states for a subscription.
type SubscriptionStatus string

const (
	// PENDING_APPROVE exists for a future manual-approval flow; deposit
	// reconciliation always creates subscriptions ACTIVE.
	SubscriptionStatusPendingApprove SubscriptionStatus = "PENDING_APPROVE"
	SubscriptionStatusActive         SubscriptionStatus = "ACTIVE"
	SubscriptionStatusPastDue        SubscriptionStatus = "PAST_DUE"
	SubscriptionStatusCanceled       SubscriptionStatus = "CANCELED"
	SubscriptionStatusEnded          SubscriptionStatus = "ENDED"
)

// BillingCycle is the recurrence unit governing renewal dates.
type BillingCycle string

const (
	BillingCycleMonthly BillingCycle = "MONTHLY"
	BillingCycleYearly  BillingCycle = "YEARLY"
)

// Advance returns t moved forward by one billing cycle.
func (c BillingCycle) Advance(t time.Time) time.Time {
	if c == BillingCycleYearly {
		return t.AddDate(1, 0, 0)
	}
	return t.AddDate(0, 1, 0)
}

// Subscription is a recurring rental grant spawned from an order line item.
type Subscription struct {
	ID          snowflake.ID       `gorm:"primaryKey" json:"id"`
	UserID      snowflake.ID       `gorm:"not null;index" json:"user_id"`
	ArtworkID   snowflake.ID       `gorm:"not null;index" json:"artwork_id"`
	OrderID     snowflake.ID       `gorm:"not null;uniqueIndex:ux_subscriptions_order_line" json:"order_id"`
	OrderItemID snowflake.ID       `gorm:"not null;uniqueIndex:ux_subscriptions_order_line" json:"order_item_id"`
	Status      SubscriptionStatus `gorm:"type:text;not null" json:"status"`
	Cycle       BillingCycle       `gorm:"column:billing_cycle;type:text;not null" json:"billing_cycle"`

	StartAt        time.Time `gorm:"not null" json:"start_at"`
	EndAt          time.Time `gorm:"not null" json:"end_at"`
	NextPaymentDue time.Time `gorm:"not null" json:"next_payment_due"`
	MonthlyFee     int64     `gorm:"not null" json:"monthly_fee"`

	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Subscription) TableName() string { return "subscriptions" }

// SubscriptionDeposit is one append-only entry of the deposit audit trail.
type SubscriptionDeposit struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	SubscriptionID snowflake.ID `gorm:"not null;index" json:"subscription_id"`
	Amount         int64        `gorm:"not null" json:"amount"`
	ConfirmedBy    snowflake.ID `gorm:"not null" json:"confirmed_by"`
	Note           string       `gorm:"type:text" json:"note,omitempty"`
	DepositedAt    time.Time    `gorm:"not null" json:"deposited_at"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (SubscriptionDeposit) TableName() string { return "subscription_deposits" }

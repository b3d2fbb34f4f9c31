// Package domain defines the read-only reporting surface behind the admin
// listings. It composes ledger rows with buyer and artwork display data and
// never mutates anything.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/galeri/pkg/db/pagination"
)

// OrderRow is one denormalized admin order listing entry. Buyer columns fall
// back to placeholders when the referenced user no longer exists.
type OrderRow struct {
	ID            snowflake.ID `json:"id"`
	UserID        snowflake.ID `json:"user_id"`
	Status        string       `json:"status"`
	TotalAmount   int64        `json:"total_amount"`
	PaymentMethod string       `json:"payment_method"`
	DepositorName string       `json:"depositor_name"`
	ItemCount     int          `json:"item_count"`
	CreatedAt     time.Time    `json:"created_at"`

	BuyerEmail       string `json:"buyer_email"`
	BuyerDisplayName string `json:"buyer_display_name"`
}

// SubscriptionRow is one denormalized admin subscription listing entry.
type SubscriptionRow struct {
	ID             snowflake.ID `json:"id"`
	OrderID        snowflake.ID `json:"order_id"`
	UserID         snowflake.ID `json:"user_id"`
	ArtworkID      snowflake.ID `json:"artwork_id"`
	Status         string       `json:"status"`
	BillingCycle   string       `json:"billing_cycle"`
	MonthlyFee     int64        `json:"monthly_fee"`
	StartAt        time.Time    `json:"start_at"`
	EndAt          time.Time    `json:"end_at"`
	NextPaymentDue time.Time    `json:"next_payment_due"`
	CreatedAt      time.Time    `json:"created_at"`

	BuyerEmail       string `json:"buyer_email"`
	BuyerDisplayName string `json:"buyer_display_name"`
	ArtworkTitle     string `json:"artwork_title"`
}

// OrderPage is one page of the admin order listing.
type OrderPage struct {
	Orders   []OrderRow           `json:"orders"`
	PageInfo *pagination.PageInfo `json:"page_info"`
}

// SubscriptionPage is one page of the admin subscription listing.
type SubscriptionPage struct {
	Subscriptions []SubscriptionRow    `json:"subscriptions"`
	PageInfo      *pagination.PageInfo `json:"page_info"`
}

type Service interface {
	// ListOrders returns orders newest-first with buyer display data.
	ListOrders(ctx context.Context, p pagination.Pagination) (OrderPage, error)

	// ListSubscriptions returns subscriptions newest-first with buyer and
	// artwork display data.
	ListSubscriptions(ctx context.Context, p pagination.Pagination) (SubscriptionPage, error)
}

var ErrForbidden = errors.New("forbidden")

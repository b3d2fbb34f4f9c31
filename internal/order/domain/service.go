package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	identitydomain "github.com/smallbiznis/galeri/internal/identity/domain"
)

// CreateOrderLine is one requested checkout line. Price is the amount the
// buyer saw and agreed to; it is captured as-is rather than re-fetched, so a
// catalog price change mid-checkout never alters an already-displayed total.
type CreateOrderLine struct {
	ArtworkID snowflake.ID `json:"artwork_id"`
	LineType  LineType     `json:"line_type"`
	Price     int64        `json:"price"`
}

type CreateOrderRequest struct {
	Items         []CreateOrderLine      `json:"items"`
	DepositorName string                 `json:"depositor_name"`
	Shipping      identitydomain.Address `json:"shipping"`

	// SaveAddress writes the shipping address back to the buyer profile as
	// their new default.
	SaveAddress bool `json:"save_address"`
}

// OrderDetail is an order together with its line items.
type OrderDetail struct {
	Order
	Items []OrderItem `json:"items"`
}

type Service interface {
	// Create validates every line against the catalog before writing
	// anything, then persists the order and its items atomically.
	Create(context.Context, CreateOrderRequest) (OrderDetail, error)

	// ConfirmDeposit moves a PENDING_DEPOSIT order to PAID and materializes
	// one ACTIVE subscription per RENTAL line, all in a single transaction.
	// Admin only.
	ConfirmDeposit(ctx context.Context, id snowflake.ID) (OrderDetail, error)

	// Cancel moves any non-terminal order to CANCELED. Admin only.
	Cancel(ctx context.Context, id snowflake.ID) (OrderDetail, error)

	// GetByID returns the order to its owner or to an admin.
	GetByID(ctx context.Context, id snowflake.ID) (OrderDetail, error)
}

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrEmptyOrder      = errors.New("empty_order")
	ErrItemUnavailable = errors.New("item_unavailable")
	ErrNotFound        = errors.New("order_not_found")
	ErrInvalidState    = errors.New("invalid_state")
	ErrPersistence     = errors.New("persistence_failure")
)

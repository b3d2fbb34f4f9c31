// Package domain contains persistence models for the order ledger.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// OrderStatus is the lifecycle state of an order.
//
// PENDING_DEPOSIT -> PAID -> SHIPPING -> COMPLETED, and any non-terminal
// state may move to CANCELED. PENDING_DEPOSIT -> PAID is the only transition
// driven by deposit reconciliation.
type OrderStatus string

const (
	OrderStatusPendingDeposit OrderStatus = "PENDING_DEPOSIT"
	OrderStatusPaid           OrderStatus = "PAID"
	OrderStatusShipping       OrderStatus = "SHIPPING"
	OrderStatusCompleted      OrderStatus = "COMPLETED"
	OrderStatusCanceled       OrderStatus = "CANCELED"
)

// Terminal reports whether no further transition is allowed from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCanceled
}

// LineType distinguishes one-time purchases from recurring rentals.
type LineType string

const (
	LineTypePurchase LineType = "PURCHASE"
	LineTypeRental   LineType = "RENTAL"
)

// PaymentMethod is how the buyer settles the order. Manual bank transfer is
// the only method this ledger supports.
type PaymentMethod string

const PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"

// Order is the durable checkout record. Bank payout details and the shipping
// address are snapshotted at creation time so later config or profile edits
// never alter historical orders.
type Order struct {
	ID            snowflake.ID  `gorm:"primaryKey" json:"id"`
	UserID        snowflake.ID  `gorm:"not null;index" json:"user_id"`
	Status        OrderStatus   `gorm:"type:text;not null" json:"status"`
	TotalAmount   int64         `gorm:"not null" json:"total_amount"`
	PaymentMethod PaymentMethod `gorm:"type:text;not null" json:"payment_method"`

	// DepositorName is the bank-transfer sender name the buyer supplied,
	// stored verbatim for manual reconciliation.
	DepositorName string `gorm:"type:text;not null" json:"depositor_name"`

	BankName          string `gorm:"type:text" json:"bank_name"`
	BankAccountNumber string `gorm:"type:text" json:"bank_account_number"`
	BankAccountHolder string `gorm:"type:text" json:"bank_account_holder"`

	ShippingRecipient     string `gorm:"type:text" json:"shipping_recipient"`
	ShippingPhone         string `gorm:"type:text" json:"shipping_phone"`
	ShippingAddress       string `gorm:"type:text" json:"shipping_address"`
	ShippingAddressDetail string `gorm:"type:text" json:"shipping_address_detail,omitempty"`
	ShippingPostalCode    string `gorm:"type:text" json:"shipping_postal_code"`

	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Order) TableName() string { return "orders" }

// OrderItem is one checkout line. Price is captured from the catalog at
// checkout: the sale price for PURCHASE lines, the monthly fee for RENTAL
// lines.
type OrderItem struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	OrderID   snowflake.ID `gorm:"not null;index" json:"order_id"`
	ArtworkID snowflake.ID `gorm:"not null" json:"artwork_id"`
	Title     string       `gorm:"type:text;not null" json:"title"`
	Price     int64        `gorm:"not null" json:"price"`
	LineType  LineType     `gorm:"type:text;not null" json:"line_type"`
	Position  int          `gorm:"not null" json:"position"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (OrderItem) TableName() string { return "order_items" }

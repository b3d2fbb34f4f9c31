package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type AppendDepositRequest struct {
	SubscriptionID snowflake.ID `json:"subscription_id"`
	Amount         int64        `json:"amount"`
	Note           string       `json:"note,omitempty"`
}

type SubscriptionDetail struct {
	Subscription
	Deposits []SubscriptionDeposit `json:"deposits"`
}

type Service interface {
	// AppendDeposit records one more payment against a subscription. The
	// history is append-only; entries are never rewritten.
	AppendDeposit(context.Context, AppendDepositRequest) (SubscriptionDetail, error)
	GetByID(ctx context.Context, id snowflake.ID) (SubscriptionDetail, error)
}

var (
	ErrForbidden     = errors.New("forbidden")
	ErrInvalidAmount = errors.New("invalid_amount")
	ErrNotFound      = errors.New("subscription_not_found")
)

package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/galeri/internal/actorcontext"
	"github.com/smallbiznis/galeri/internal/clock"
	subscriptiondomain "github.com/smallbiznis/galeri/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  subscriptiondomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  subscriptiondomain.Repository
}

func New(p Params) subscriptiondomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("subscription.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) AppendDeposit(ctx context.Context, req subscriptiondomain.AppendDepositRequest) (subscriptiondomain.SubscriptionDetail, error) {
	actor, ok := actorcontext.ActorFromContext(ctx)
	if !ok || !actor.IsAdmin() {
		return subscriptiondomain.SubscriptionDetail{}, subscriptiondomain.ErrForbidden
	}

	if req.Amount <= 0 {
		return subscriptiondomain.SubscriptionDetail{}, subscriptiondomain.ErrInvalidAmount
	}

	subscription, err := s.repo.FindByID(ctx, s.db, req.SubscriptionID)
	if err != nil {
		return subscriptiondomain.SubscriptionDetail{}, err
	}
	if subscription == nil {
		return subscriptiondomain.SubscriptionDetail{}, subscriptiondomain.ErrNotFound
	}

	now := s.clock.Now()
	deposit := subscriptiondomain.SubscriptionDeposit{
		ID:             s.genID.Generate(),
		SubscriptionID: subscription.ID,
		Amount:         req.Amount,
		ConfirmedBy:    actor.ID,
		Note:           req.Note,
		DepositedAt:    now,
		CreatedAt:      now,
	}
	if err := s.repo.InsertDeposit(ctx, s.db, &deposit); err != nil {
		return subscriptiondomain.SubscriptionDetail{}, err
	}

	s.log.Info("deposit appended",
		zap.String("subscription_id", subscription.ID.String()),
		zap.Int64("amount", req.Amount),
		zap.String("confirmed_by", actor.ID.String()),
	)

	return s.detail(ctx, subscription)
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (subscriptiondomain.SubscriptionDetail, error) {
	subscription, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return subscriptiondomain.SubscriptionDetail{}, err
	}
	if subscription == nil {
		return subscriptiondomain.SubscriptionDetail{}, subscriptiondomain.ErrNotFound
	}
	return s.detail(ctx, subscription)
}

func (s *Service) detail(ctx context.Context, subscription *subscriptiondomain.Subscription) (subscriptiondomain.SubscriptionDetail, error) {
	deposits, err := s.repo.ListDeposits(ctx, s.db, subscription.ID)
	if err != nil {
		return subscriptiondomain.SubscriptionDetail{}, err
	}
	return subscriptiondomain.SubscriptionDetail{
		Subscription: *subscription,
		Deposits:     deposits,
	}, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/galeri/internal/actorcontext"
	catalogdomain "github.com/smallbiznis/galeri/internal/catalog/domain"
	"github.com/smallbiznis/galeri/internal/clock"
	"github.com/smallbiznis/galeri/internal/config"
	identitydomain "github.com/smallbiznis/galeri/internal/identity/domain"
	orderdomain "github.com/smallbiznis/galeri/internal/order/domain"
	"github.com/smallbiznis/galeri/internal/ratelimit"
	subscriptiondomain "github.com/smallbiznis/galeri/internal/subscription/domain"
	"github.com/smallbiznis/galeri/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const confirmLockTTL = 10 * time.Second

type Params struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	GenID         *snowflake.Node
	Clock         clock.Clock
	Cfg           config.Config
	Repo          orderdomain.Repository
	Catalog       catalogdomain.Service
	Identity      identitydomain.Service
	Subscriptions subscriptiondomain.Repository
	Locker        ratelimit.Locker
}

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	genID         *snowflake.Node
	clock         clock.Clock
	cfg           config.Config
	repo          orderdomain.Repository
	catalog       catalogdomain.Service
	identity      identitydomain.Service
	subscriptions subscriptiondomain.Repository
	locker        ratelimit.Locker
}

func New(p Params) orderdomain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("order.service"),
		genID:         p.GenID,
		clock:         p.Clock,
		cfg:           p.Cfg,
		repo:          p.Repo,
		catalog:       p.Catalog,
		identity:      p.Identity,
		subscriptions: p.Subscriptions,
		locker:        p.Locker,
	}
}

func (s *Service) Create(ctx context.Context, req orderdomain.CreateOrderRequest) (orderdomain.OrderDetail, error) {
	actor, ok := actorcontext.ActorFromContext(ctx)
	if !ok {
		return orderdomain.OrderDetail{}, orderdomain.ErrUnauthenticated
	}
	if len(req.Items) == 0 {
		return orderdomain.OrderDetail{}, orderdomain.ErrEmptyOrder
	}

	// Every line is validated before anything is written, so a bad line
	// never leaves a partial order behind.
	titles := make([]string, len(req.Items))
	for i, line := range req.Items {
		if line.LineType != orderdomain.LineTypePurchase && line.LineType != orderdomain.LineTypeRental {
			return orderdomain.OrderDetail{}, fmt.Errorf("%w: artwork %s has unknown line type %q", orderdomain.ErrItemUnavailable, line.ArtworkID, line.LineType)
		}
		item, err := s.catalog.GetItem(ctx, line.ArtworkID)
		if err != nil {
			return orderdomain.OrderDetail{}, fmt.Errorf("%w: %v", orderdomain.ErrPersistence, err)
		}
		if item == nil || !item.Sellable {
			return orderdomain.OrderDetail{}, fmt.Errorf("%w: artwork %s", orderdomain.ErrItemUnavailable, line.ArtworkID)
		}
		titles[i] = item.Title
	}

	now := s.clock.Now()
	var total int64
	for _, line := range req.Items {
		total += line.Price
	}

	order := orderdomain.Order{
		ID:            s.genID.Generate(),
		UserID:        actor.ID,
		Status:        orderdomain.OrderStatusPendingDeposit,
		TotalAmount:   total,
		PaymentMethod: orderdomain.PaymentMethodBankTransfer,
		DepositorName: req.DepositorName,

		BankName:          s.cfg.Bank.Name,
		BankAccountNumber: s.cfg.Bank.AccountNumber,
		BankAccountHolder: s.cfg.Bank.AccountHolder,

		ShippingRecipient:     req.Shipping.Recipient,
		ShippingPhone:         req.Shipping.Phone,
		ShippingAddress:       req.Shipping.Address,
		ShippingAddressDetail: req.Shipping.AddressDetail,
		ShippingPostalCode:    req.Shipping.PostalCode,

		CreatedAt: now,
		UpdatedAt: now,
	}

	items := make([]orderdomain.OrderItem, len(req.Items))
	for i, line := range req.Items {
		items[i] = orderdomain.OrderItem{
			ID:        s.genID.Generate(),
			OrderID:   order.ID,
			ArtworkID: line.ArtworkID,
			Title:     titles[i],
			Price:     line.Price,
			LineType:  line.LineType,
			Position:  i,
			CreatedAt: now,
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &order); err != nil {
			return err
		}
		return s.repo.InsertItems(ctx, tx, items)
	})
	if err != nil {
		return orderdomain.OrderDetail{}, fmt.Errorf("%w: %v", orderdomain.ErrPersistence, err)
	}

	if req.SaveAddress {
		// Collaborator write outside the ledger's invariants; a failure here
		// must not fail the order.
		if err := s.identity.SaveAddress(ctx, actor.ID, req.Shipping); err != nil {
			s.log.Warn("save address failed",
				zap.String("user_id", actor.ID.String()),
				zap.Error(err),
			)
		}
	}

	s.log.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", actor.ID.String()),
		zap.Int64("total_amount", total),
		zap.Int("items", len(items)),
	)

	return orderdomain.OrderDetail{Order: order, Items: items}, nil
}

func (s *Service) ConfirmDeposit(ctx context.Context, id snowflake.ID) (orderdomain.OrderDetail, error) {
	actor, ok := actorcontext.ActorFromContext(ctx)
	if !ok {
		return orderdomain.OrderDetail{}, orderdomain.ErrUnauthenticated
	}
	if !actor.IsAdmin() {
		return orderdomain.OrderDetail{}, orderdomain.ErrForbidden
	}

	unlock, acquired, err := s.locker.TryLock(ctx, "galeri:order:confirm:"+id.String(), confirmLockTTL)
	if err != nil {
		// The lock is advisory; the conditional UPDATE below still guards
		// the transition when redis is unreachable.
		s.log.Warn("advisory lock unavailable", zap.Error(err))
	} else if !acquired {
		return orderdomain.OrderDetail{}, orderdomain.ErrInvalidState
	} else {
		defer func() {
			if err := unlock(ctx); err != nil {
				s.log.Warn("advisory unlock failed", zap.Error(err))
			}
		}()
	}

	var detail orderdomain.OrderDetail
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return orderdomain.ErrNotFound
		}
		if order.Status != orderdomain.OrderStatusPendingDeposit {
			return orderdomain.ErrInvalidState
		}

		now := s.clock.Now()
		moved, err := s.repo.TransitionStatus(ctx, tx, id, orderdomain.OrderStatusPendingDeposit, orderdomain.OrderStatusPaid, now)
		if err != nil {
			return err
		}
		if !moved {
			return orderdomain.ErrInvalidState
		}

		items, err := s.repo.FindItems(ctx, tx, id)
		if err != nil {
			return err
		}

		for _, item := range items {
			if item.LineType != orderdomain.LineTypeRental {
				continue
			}
			if err := s.materializeSubscription(ctx, tx, order, item, actor.ID, now); err != nil {
				return err
			}
		}

		order.Status = orderdomain.OrderStatusPaid
		order.UpdatedAt = now
		detail = orderdomain.OrderDetail{Order: *order, Items: items}
		return nil
	})
	if txErr != nil {
		return orderdomain.OrderDetail{}, classify(txErr)
	}

	s.log.Info("deposit confirmed",
		zap.String("order_id", id.String()),
		zap.String("confirmed_by", actor.ID.String()),
	)

	return detail, nil
}

// materializeSubscription creates the ACTIVE subscription and its initial
// deposit entry for one rental line. Runs inside the confirm transaction.
func (s *Service) materializeSubscription(ctx context.Context, tx *gorm.DB, order *orderdomain.Order, item orderdomain.OrderItem, adminID snowflake.ID, now time.Time) error {
	cycle := subscriptiondomain.BillingCycleMonthly
	endAt := cycle.Advance(now)

	subscription := subscriptiondomain.Subscription{
		ID:          s.genID.Generate(),
		UserID:      order.UserID,
		ArtworkID:   item.ArtworkID,
		OrderID:     order.ID,
		OrderItemID: item.ID,
		Status:      subscriptiondomain.SubscriptionStatusActive,
		Cycle:       cycle,

		StartAt:        now,
		EndAt:          endAt,
		NextPaymentDue: endAt,
		MonthlyFee:     item.Price,

		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.subscriptions.Insert(ctx, tx, &subscription); err != nil {
		// The unique (order_id, order_item_id) constraint rejects a
		// duplicate materialization attempt that slipped past the status
		// guard.
		if db.IsDuplicateKeyErr(err) {
			return orderdomain.ErrInvalidState
		}
		return err
	}

	deposit := subscriptiondomain.SubscriptionDeposit{
		ID:             s.genID.Generate(),
		SubscriptionID: subscription.ID,
		Amount:         item.Price,
		ConfirmedBy:    adminID,
		Note:           "initial deposit confirmed",
		DepositedAt:    now,
		CreatedAt:      now,
	}
	return s.subscriptions.InsertDeposit(ctx, tx, &deposit)
}

func (s *Service) Cancel(ctx context.Context, id snowflake.ID) (orderdomain.OrderDetail, error) {
	actor, ok := actorcontext.ActorFromContext(ctx)
	if !ok {
		return orderdomain.OrderDetail{}, orderdomain.ErrUnauthenticated
	}
	if !actor.IsAdmin() {
		return orderdomain.OrderDetail{}, orderdomain.ErrForbidden
	}

	var detail orderdomain.OrderDetail
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return orderdomain.ErrNotFound
		}
		if order.Status.Terminal() {
			return orderdomain.ErrInvalidState
		}

		now := s.clock.Now()
		moved, err := s.repo.TransitionStatus(ctx, tx, id, order.Status, orderdomain.OrderStatusCanceled, now)
		if err != nil {
			return err
		}
		if !moved {
			return orderdomain.ErrInvalidState
		}

		items, err := s.repo.FindItems(ctx, tx, id)
		if err != nil {
			return err
		}

		order.Status = orderdomain.OrderStatusCanceled
		order.UpdatedAt = now
		detail = orderdomain.OrderDetail{Order: *order, Items: items}
		return nil
	})
	if txErr != nil {
		return orderdomain.OrderDetail{}, classify(txErr)
	}

	s.log.Info("order canceled",
		zap.String("order_id", id.String()),
		zap.String("canceled_by", actor.ID.String()),
	)

	return detail, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (orderdomain.OrderDetail, error) {
	actor, ok := actorcontext.ActorFromContext(ctx)
	if !ok {
		return orderdomain.OrderDetail{}, orderdomain.ErrUnauthenticated
	}

	order, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return orderdomain.OrderDetail{}, fmt.Errorf("%w: %v", orderdomain.ErrPersistence, err)
	}
	if order == nil {
		return orderdomain.OrderDetail{}, orderdomain.ErrNotFound
	}
	if order.UserID != actor.ID && !actor.IsAdmin() {
		return orderdomain.OrderDetail{}, orderdomain.ErrForbidden
	}

	items, err := s.repo.FindItems(ctx, s.db, id)
	if err != nil {
		return orderdomain.OrderDetail{}, fmt.Errorf("%w: %v", orderdomain.ErrPersistence, err)
	}
	return orderdomain.OrderDetail{Order: *order, Items: items}, nil
}

// classify keeps domain sentinels intact and folds anything else into a
// persistence failure so storage detail never leaks to callers.
func classify(err error) error {
	switch {
	case errors.Is(err, orderdomain.ErrNotFound),
		errors.Is(err, orderdomain.ErrInvalidState),
		errors.Is(err, orderdomain.ErrForbidden),
		errors.Is(err, orderdomain.ErrUnauthenticated):
		return err
	default:
		return fmt.Errorf("%w: %v", orderdomain.ErrPersistence, err)
	}
}

package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/galeri/internal/actorcontext"
	catalogdomain "github.com/smallbiznis/galeri/internal/catalog/domain"
	catalogrepository "github.com/smallbiznis/galeri/internal/catalog/repository"
	catalogservice "github.com/smallbiznis/galeri/internal/catalog/service"
	"github.com/smallbiznis/galeri/internal/clock"
	"github.com/smallbiznis/galeri/internal/config"
	identitydomain "github.com/smallbiznis/galeri/internal/identity/domain"
	identityrepository "github.com/smallbiznis/galeri/internal/identity/repository"
	identityservice "github.com/smallbiznis/galeri/internal/identity/service"
	orderdomain "github.com/smallbiznis/galeri/internal/order/domain"
	orderrepository "github.com/smallbiznis/galeri/internal/order/repository"
	"github.com/smallbiznis/galeri/internal/ratelimit"
	subscriptiondomain "github.com/smallbiznis/galeri/internal/subscription/domain"
	subscriptionrepository "github.com/smallbiznis/galeri/internal/subscription/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	clock   *clock.FakeClock
	node    *snowflake.Node
	cfg     config.Config
	orders  orderdomain.Service
	catalog catalogdomain.Service
	subs    subscriptiondomain.Repository

	identity identitydomain.Service
	idRepo   identitydomain.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection so every session sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&identitydomain.User{},
		&identitydomain.Session{},
		&catalogdomain.Artwork{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
		&subscriptiondomain.Subscription{},
		&subscriptiondomain.SubscriptionDeposit{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	clk := clock.NewFakeClock(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC))
	log := zap.NewNop()

	cfg := config.Config{
		Bank: config.BankConfig{
			Name:          "First National",
			AccountNumber: "123-456-789",
			AccountHolder: "Galeri Inc",
		},
		SessionTTLHours: 72,
	}

	catalogSvc := catalogservice.New(catalogservice.Params{
		DB: db, Log: log, GenID: node, Clock: clk,
		Repo: catalogrepository.Provide(),
	})

	idRepo := identityrepository.Provide()
	identitySvc := identityservice.New(identityservice.Params{
		DB: db, Log: log, GenID: node, Clock: clk,
		Repo: idRepo, Cfg: cfg,
	})

	subRepo := subscriptionrepository.Provide()

	orderSvc := New(Params{
		DB:            db,
		Log:           log,
		GenID:         node,
		Clock:         clk,
		Cfg:           cfg,
		Repo:          orderrepository.Provide(),
		Catalog:       catalogSvc,
		Identity:      identitySvc,
		Subscriptions: subRepo,
		Locker:        ratelimit.NewNoopLocker(),
	})

	return &fixture{
		db:       db,
		clock:    clk,
		node:     node,
		cfg:      cfg,
		orders:   orderSvc,
		catalog:  catalogSvc,
		subs:     subRepo,
		identity: identitySvc,
		idRepo:   idRepo,
	}
}

func (f *fixture) newUser(t *testing.T, role actorcontext.Role) actorcontext.Actor {
	t.Helper()
	id := f.node.Generate()
	user := identitydomain.User{
		ID:           id,
		Email:        id.String() + "@example.com",
		PasswordHash: "x",
		DisplayName:  "Test User",
		Role:         string(role),
		CreatedAt:    f.clock.Now(),
		UpdatedAt:    f.clock.Now(),
	}
	require.NoError(t, f.idRepo.Insert(context.Background(), f.db, &user))
	return actorcontext.Actor{ID: user.ID, Role: role}
}

func (f *fixture) newArtwork(t *testing.T, price, monthlyFee int64, approve bool) catalogdomain.Artwork {
	t.Helper()
	artwork, err := f.catalog.Create(context.Background(), catalogdomain.CreateArtworkRequest{
		Title:      "Composition",
		ArtistName: "A. Painter",
		Price:      price,
		MonthlyFee: monthlyFee,
	})
	require.NoError(t, err)
	if approve {
		require.NoError(t, f.catalog.Approve(context.Background(), artwork.ID))
	}
	return artwork
}

func asActor(actor actorcontext.Actor) context.Context {
	return actorcontext.WithActor(context.Background(), actor)
}

func TestCreateOrderCapturesPricesAndSnapshots(t *testing.T) {
	f := newFixture(t)
	buyer := f.newUser(t, actorcontext.RoleBuyer)
	purchase := f.newArtwork(t, 100000, 0, true)
	rental := f.newArtwork(t, 500000, 50000, true)

	detail, err := f.orders.Create(asActor(buyer), orderdomain.CreateOrderRequest{
		Items: []orderdomain.CreateOrderLine{
			{ArtworkID: purchase.ID, LineType: orderdomain.LineTypePurchase, Price: 100000},
			{ArtworkID: rental.ID, LineType: orderdomain.LineTypeRental, Price: 50000},
		},
		DepositorName: "  HONG GILDONG ",
		Shipping: identitydomain.Address{
			Recipient:  "Hong Gildong",
			Phone:      "010-0000-0000",
			Address:    "1 Gallery Road",
			PostalCode: "04524",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, orderdomain.OrderStatusPendingDeposit, detail.Status)
	assert.Equal(t, int64(150000), detail.TotalAmount)
	assert.Equal(t, orderdomain.PaymentMethodBankTransfer, detail.PaymentMethod)
	// Stored verbatim, whitespace included.
	assert.Equal(t, "  HONG GILDONG ", detail.DepositorName)
	assert.Equal(t, "First National", detail.BankName)
	assert.Equal(t, "123-456-789", detail.BankAccountNumber)
	assert.Equal(t, "Galeri Inc", detail.BankAccountHolder)

	require.Len(t, detail.Items, 2)
	assert.Equal(t, 0, detail.Items[0].Position)
	assert.Equal(t, 1, detail.Items[1].Position)
	assert.Equal(t, "Composition", detail.Items[0].Title)
	assert.Equal(t, int64(50000), detail.Items[1].Price)
}

func TestCreateOrderRequiresActor(t *testing.T) {
	f := newFixture(t)
	_, err := f.orders.Create(context.Background(), orderdomain.CreateOrderRequest{})
	assert.ErrorIs(t, err, orderdomain.ErrUnauthenticated)
}

func TestCreateOrderRejectsEmptyOrder(t *testing.T) {
	f := newFixture(t)
	buyer := f.newUser(t, actorcontext.RoleBuyer)
	_, err := f.orders.Create(asActor(buyer), orderdomain.CreateOrderRequest{})
	assert.ErrorIs(t, err, orderdomain.ErrEmptyOrder)
}

func TestCreateOrderUnsellableItemWritesNothing(t *testing.T) {
	f := newFixture(t)
	buyer := f.newUser(t, actorcontext.RoleBuyer)
	approved := f.newArtwork(t, 100000, 0, true)
	pending := f.newArtwork(t, 200000, 0, false)

	_, err := f.orders.Create(asActor(buyer), orderdomain.CreateOrderRequest{
		Items: []orderdomain.CreateOrderLine{
			{ArtworkID: approved.ID, LineType: orderdomain.LineTypePurchase, Price: 100000},
			{ArtworkID: pending.ID, LineType: orderdomain.LineTypePurchase, Price: 200000},
		},
		DepositorName: "buyer",
	})
	require.ErrorIs(t, err, orderdomain.ErrItemUnavailable)
	assert.Contains(t, err.Error(), pending.ID.String())

	var orders, items int64
	require.NoError(t, f.db.Model(&orderdomain.Order{}).Count(&orders).Error)
	require.NoError(t, f.db.Model(&orderdomain.OrderItem{}).Count(&items).Error)
	assert.Zero(t, orders)
	assert.Zero(t, items)
}

func TestCreateOrderSaveAddressUpdatesProfile(t *testing.T) {
	f := newFixture(t)
	buyer := f.newUser(t, actorcontext.RoleBuyer)
	artwork := f.newArtwork(t, 100000, 0, true)

	_, err := f.orders.Create(asActor(buyer), orderdomain.CreateOrderRequest{
		Items: []orderdomain.CreateOrderLine{
			{ArtworkID: artwork.ID, LineType: orderdomain.LineTypePurchase, Price: 100000},
		},
		DepositorName: "buyer",
		Shipping: identitydomain.Address{
			Recipient:  "New Recipient",
			Phone:      "010-1111-2222",
			Address:    "2 Museum Lane",
			PostalCode: "11111",
		},
		SaveAddress: true,
	})
	require.NoError(t, err)

	user, err := f.identity.GetByID(context.Background(), buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Recipient", user.Recipient)
	assert.Equal(t, "2 Museum Lane", user.Address)
}

func TestConfirmDepositMaterializesRentalSubscriptions(t *testing.T) {
	f := newFixture(t)
	buyer := f.newUser(t, actorcontext.RoleBuyer)
	admin := f.newUser(t, actorcontext.RoleAdmin)
	purchase := f.newArtwork(t, 100000, 0, true)
	rental := f.newArtwork(t, 500000, 50000, true)

	created, err := f.orders.Create(asActor(buyer), orderdomain.CreateOrderRequest{
		Items: []orderdomain.CreateOrderLine{
			{ArtworkID: purchase.ID, LineType: orderdomain.LineTypePurchase, Price: 100000},
			{ArtworkID: rental.ID, LineType: orderdomain.LineTypeRental, Price: 50000},
		},
		DepositorName: "buyer",
	})
	require.NoError(t, err)

	confirmed, err := f.orders.ConfirmDeposit(asActor(admin), created.ID)
	require.NoError(t, err)
	assert.Equal(t, orderdomain.OrderStatusPaid, confirmed.Status)

	subs, err := f.subs.FindByOrderID(context.Background(), f.db, created.ID)
	require.NoError(t, err)
	require.Len(t, subs, 1)

	sub := subs[0]
	now := f.clock.Now()
	assert.Equal(t, subscriptiondomain.SubscriptionStatusActive, sub.Status)
	assert.Equal(t, subscriptiondomain.BillingCycleMonthly, sub.Cycle)
	assert.Equal(t, int64(50000), sub.MonthlyFee)
	assert.Equal(t, rental.ID, sub.ArtworkID)
	assert.Equal(t, buyer.ID, sub.UserID)
	assert.True(t, sub.StartAt.Equal(now))
	assert.True(t, sub.EndAt.Equal(now.AddDate(0, 1, 0)))
	assert.True(t, sub.NextPaymentDue.Equal(sub.EndAt))

	deposits, err := f.subs.ListDeposits(context.Background(), f.db, sub.ID)
	require.NoError(t, err)
	require.Len(t, deposits, 1)
	assert.Equal(t, int64(50000), deposits[0].Amount)
	assert.Equal(t, admin.ID, deposits[0].ConfirmedBy)
	assert.Equal(t, "initial deposit confirmed", deposits[0].Note)
}

func TestConfirmDepositWithoutRentalsCreatesNoSubscriptions(t *testing.T) {
	f := newFixture(t)
	buyer := f.newUser(t, actorcontext.RoleBuyer)
	admin := f.newUser(t, actorcontext.RoleAdmin)
	artwork := f.newArtwork(t, 100000, 0, true)

	created, err := f.orders.Create(asActor(buyer), orderdomain.CreateOrderRequest{
		Items: []orderdomain.CreateOrderLine{
			{ArtworkID: artwork.ID, LineType: orderdomain.LineTypePurchase, Price: 100000},
		},
		DepositorName: "buyer",
	})
	require.NoError(t, err)

	confirmed, err := f.orders.ConfirmDeposit(asActor(admin), created.ID)
	require.NoError(t, err)
	assert.Equal(t, orderdomain.OrderStatusPaid, confirmed.Status)

	var subs int64
	require.NoError(t, f.db.Model(&subscriptiondomain.Subscription{}).Count(&subs).Error)
	assert.Zero(t, subs)
}

func TestConfirmDepositRejectsNonAdmin(t *testing.T) {
	f := newFixture(t)
	buyer := f.newUser(t, actorcontext.RoleBuyer)
	artwork := f.newArtwork(t, 100000, 0, true)

	created, err := f.orders.Create(asActor(buyer), orderdomain.CreateOrderRequest{
		Items: []orderdomain.CreateOrderLine{
			{ArtworkID: artwork.ID, LineType: orderdomain.LineTypePurchase, Price: 100000},
		},
		DepositorName: "buyer",
	})
	require.NoError(t, err)

	_, err = f.orders.ConfirmDeposit(asActor(buyer), created.ID)
	assert.ErrorIs(t, err, orderdomain.ErrForbidden)

	unchanged, err := f.orders.GetByID(asActor(buyer), created.ID)
	require.NoError(t, err)
	assert.Equal(t, orderdomain.OrderStatusPendingDeposit, unchanged.Status)
}

func TestConfirmDepositUnknownOrder(t *testing.T) {
	f := newFixture(t)
	admin := f.newUser(t, actorcontext.RoleAdmin)
	_, err := f.orders.ConfirmDeposit(asActor(admin), f.node.Generate())
	assert.ErrorIs(t, err, orderdomain.ErrNotFound)
}

func TestConfirmDepositTwiceFailsInvalidState(t *testing.T) {
	f := newFixture(t)
	buyer := f.newUser(t, actorcontext.RoleBuyer)
	admin := f.newUser(t, actorcontext.RoleAdmin)
	rental := f.newArtwork(t, 500000, 50000, true)

	created, err := f.orders.Create(asActor(buyer), orderdomain.CreateOrderRequest{
		Items: []orderdomain.CreateOrderLine{
			{ArtworkID: rental.ID, LineType: orderdomain.LineTypeRental, Price: 50000},
		},
		DepositorName: "buyer",
	})
	require.NoError(t, err)

	_, err = f.orders.ConfirmDeposit(asActor(admin), created.ID)
	require.NoError(t, err)

	_, err = f.orders.ConfirmDeposit(asActor(admin), created.ID)
	assert.ErrorIs(t, err, orderdomain.ErrInvalidState)

	var subs int64
	require.NoError(t, f.db.Model(&subscriptiondomain.Subscription{}).Count(&subs).Error)
	assert.Equal(t, int64(1), subs)
}

func TestConfirmDepositConcurrentExactlyOneWinner(t *testing.T) {
	f := newFixture(t)
	buyer := f.newUser(t, actorcontext.RoleBuyer)
	admin := f.newUser(t, actorcontext.RoleAdmin)
	rental := f.newArtwork(t, 500000, 50000, true)

	created, err := f.orders.Create(asActor(buyer), orderdomain.CreateOrderRequest{
		Items: []orderdomain.CreateOrderLine{
			{ArtworkID: rental.ID, LineType: orderdomain.LineTypeRental, Price: 50000},
		},
		DepositorName: "buyer",
	})
	require.NoError(t, err)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.orders.ConfirmDeposit(asActor(admin), created.ID)
		}(i)
	}
	wg.Wait()

	var succeeded, invalid int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, orderdomain.ErrInvalidState)
			invalid++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, invalid)

	var subs int64
	require.NoError(t, f.db.Model(&subscriptiondomain.Subscription{}).Count(&subs).Error)
	assert.Equal(t, int64(1), subs)
}

func TestCancelPendingOrder(t *testing.T) {
	f := newFixture(t)
	buyer := f.newUser(t, actorcontext.RoleBuyer)
	admin := f.newUser(t, actorcontext.RoleAdmin)
	artwork := f.newArtwork(t, 100000, 0, true)

	created, err := f.orders.Create(asActor(buyer), orderdomain.CreateOrderRequest{
		Items: []orderdomain.CreateOrderLine{
			{ArtworkID: artwork.ID, LineType: orderdomain.LineTypePurchase, Price: 100000},
		},
		DepositorName: "buyer",
	})
	require.NoError(t, err)

	canceled, err := f.orders.Cancel(asActor(admin), created.ID)
	require.NoError(t, err)
	assert.Equal(t, orderdomain.OrderStatusCanceled, canceled.Status)

	// Terminal now, so cancel again is rejected.
	_, err = f.orders.Cancel(asActor(admin), created.ID)
	assert.ErrorIs(t, err, orderdomain.ErrInvalidState)

	// And confirming a canceled order is rejected too.
	_, err = f.orders.ConfirmDeposit(asActor(admin), created.ID)
	assert.ErrorIs(t, err, orderdomain.ErrInvalidState)
}

func TestCancelRejectsNonAdmin(t *testing.T) {
	f := newFixture(t)
	buyer := f.newUser(t, actorcontext.RoleBuyer)
	artwork := f.newArtwork(t, 100000, 0, true)

	created, err := f.orders.Create(asActor(buyer), orderdomain.CreateOrderRequest{
		Items: []orderdomain.CreateOrderLine{
			{ArtworkID: artwork.ID, LineType: orderdomain.LineTypePurchase, Price: 100000},
		},
		DepositorName: "buyer",
	})
	require.NoError(t, err)

	_, err = f.orders.Cancel(asActor(buyer), created.ID)
	assert.ErrorIs(t, err, orderdomain.ErrForbidden)
}

func TestGetByIDOwnerAndAdminOnly(t *testing.T) {
	f := newFixture(t)
	buyer := f.newUser(t, actorcontext.RoleBuyer)
	other := f.newUser(t, actorcontext.RoleBuyer)
	admin := f.newUser(t, actorcontext.RoleAdmin)
	artwork := f.newArtwork(t, 100000, 0, true)

	created, err := f.orders.Create(asActor(buyer), orderdomain.CreateOrderRequest{
		Items: []orderdomain.CreateOrderLine{
			{ArtworkID: artwork.ID, LineType: orderdomain.LineTypePurchase, Price: 100000},
		},
		DepositorName: "buyer",
	})
	require.NoError(t, err)

	_, err = f.orders.GetByID(asActor(buyer), created.ID)
	assert.NoError(t, err)

	_, err = f.orders.GetByID(asActor(admin), created.ID)
	assert.NoError(t, err)

	_, err = f.orders.GetByID(asActor(other), created.ID)
	assert.ErrorIs(t, err, orderdomain.ErrForbidden)

	_, err = f.orders.GetByID(asActor(buyer), f.node.Generate())
	assert.ErrorIs(t, err, orderdomain.ErrNotFound)
}

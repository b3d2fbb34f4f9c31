package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/galeri/internal/actorcontext"
	"github.com/smallbiznis/galeri/internal/clock"
	"github.com/smallbiznis/galeri/internal/config"
	"github.com/smallbiznis/galeri/internal/identity/domain"
	"github.com/smallbiznis/galeri/internal/identity/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newService(t *testing.T) (domain.Service, *clock.FakeClock) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Session{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	clk := clock.NewFakeClock(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC))

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clk,
		Repo:  repository.Provide(),
		Cfg:   config.Config{SessionTTLHours: 72},
	})
	return svc, clk
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{Email: "not-an-email", Password: "secret"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = svc.Register(ctx, domain.RegisterRequest{Email: "a@b.com", Password: "ab"})
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)

	user, err := svc.Register(ctx, domain.RegisterRequest{Email: "Buyer@Example.COM", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", user.Email)
	assert.Equal(t, string(actorcontext.RoleBuyer), user.Role)

	_, err = svc.Register(ctx, domain.RegisterRequest{Email: "buyer@example.com", Password: "secret"})
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestLoginAndAuthenticate(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, domain.RegisterRequest{Email: "buyer@example.com", Password: "secret"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "buyer@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	resp, err := svc.Login(ctx, domain.LoginRequest{Email: "buyer@example.com", Password: "secret"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	actor, err := svc.Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, actor.ID)
	assert.Equal(t, actorcontext.RoleBuyer, actor.Role)
	assert.False(t, actor.IsAdmin())

	_, err = svc.Authenticate(ctx, "unknown-token")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestAuthenticateExpiredSession(t *testing.T) {
	svc, clk := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{Email: "buyer@example.com", Password: "secret"})
	require.NoError(t, err)
	resp, err := svc.Login(ctx, domain.LoginRequest{Email: "buyer@example.com", Password: "secret"})
	require.NoError(t, err)

	clk.Advance(73 * time.Hour)

	_, err = svc.Authenticate(ctx, resp.Token)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)

	// The expired session is removed, so the next attempt is plain
	// unauthenticated.
	_, err = svc.Authenticate(ctx, resp.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestLogoutDeletesSession(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{Email: "buyer@example.com", Password: "secret"})
	require.NoError(t, err)
	resp, err := svc.Login(ctx, domain.LoginRequest{Email: "buyer@example.com", Password: "secret"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.Token))

	_, err = svc.Authenticate(ctx, resp.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestSaveAddress(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, domain.RegisterRequest{Email: "buyer@example.com", Password: "secret"})
	require.NoError(t, err)

	address := domain.Address{
		Recipient:  "Hong Gildong",
		Phone:      "010-0000-0000",
		Address:    "1 Gallery Road",
		PostalCode: "04524",
	}
	require.NoError(t, svc.SaveAddress(ctx, user.ID, address))

	saved, err := svc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hong Gildong", saved.Recipient)
	assert.Equal(t, "1 Gallery Road", saved.Address)
	assert.Equal(t, "04524", saved.PostalCode)
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/smallbiznis/galeri/internal/actorcontext"
	"github.com/smallbiznis/galeri/internal/clock"
	"github.com/smallbiznis/galeri/internal/config"
	"github.com/smallbiznis/galeri/internal/identity/domain"
	"github.com/smallbiznis/galeri/internal/identity/password"
	"github.com/smallbiznis/galeri/pkg/db"
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
	Repo  domain.Repository
	Cfg   config.Config
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	repo       domain.Repository
	sessionTTL time.Duration
}

func New(p Params) domain.Service {
	ttl := time.Duration(p.Cfg.SessionTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("identity.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		repo:       p.Repo,
		sessionTTL: ttl,
	}
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.User{}, domain.ErrInvalidEmail
	}
	if len(req.Password) < 4 {
		return domain.User{}, domain.ErrInvalidPassword
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return domain.User{}, err
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = email
	}

	now := s.clock.Now()
	user := domain.User{
		ID:           s.genID.Generate(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
		Role:         string(actorcontext.RoleBuyer),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, &user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.User{}, domain.ErrUserExists
		}
		return domain.User{}, err
	}

	return user, nil
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return domain.LoginResponse{}, err
	}
	if user == nil || !password.Verify(user.PasswordHash, req.Password) {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	now := s.clock.Now()
	session := domain.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.sessionTTL),
		CreatedAt: now,
	}
	if err := s.repo.InsertSession(ctx, s.db, &session); err != nil {
		return domain.LoginResponse{}, err
	}

	s.log.Info("login", zap.String("user_id", user.ID.String()))

	return domain.LoginResponse{Token: session.Token, User: *user}, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return s.repo.DeleteSession(ctx, s.db, token)
}

func (s *Service) Authenticate(ctx context.Context, token string) (actorcontext.Actor, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return actorcontext.Actor{}, domain.ErrUnauthenticated
	}

	session, err := s.repo.FindSession(ctx, s.db, token)
	if err != nil {
		return actorcontext.Actor{}, err
	}
	if session == nil {
		return actorcontext.Actor{}, domain.ErrUnauthenticated
	}
	if s.clock.Now().After(session.ExpiresAt) {
		_ = s.repo.DeleteSession(ctx, s.db, token)
		return actorcontext.Actor{}, domain.ErrSessionExpired
	}

	user, err := s.repo.FindByID(ctx, s.db, session.UserID)
	if err != nil {
		return actorcontext.Actor{}, err
	}
	if user == nil {
		return actorcontext.Actor{}, domain.ErrUnauthenticated
	}

	return actorcontext.Actor{
		ID:   user.ID,
		Role: actorcontext.ParseRole(user.Role),
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.User{}, err
	}
	if user == nil {
		return domain.User{}, domain.ErrNotFound
	}
	return *user, nil
}

func (s *Service) SaveAddress(ctx context.Context, id snowflake.ID, address domain.Address) error {
	user, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	return s.repo.UpdateAddress(ctx, s.db, id, address)
}

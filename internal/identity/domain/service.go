package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/galeri/internal/actorcontext"
)

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Service interface {
	Register(context.Context, RegisterRequest) (User, error)
	Login(context.Context, LoginRequest) (LoginResponse, error)
	Logout(ctx context.Context, token string) error

	// Authenticate resolves a session token to the acting identity.
	Authenticate(ctx context.Context, token string) (actorcontext.Actor, error)

	GetByID(ctx context.Context, id snowflake.ID) (User, error)
	SaveAddress(ctx context.Context, id snowflake.ID, address Address) error
}

var (
	ErrInvalidEmail       = errors.New("invalid_email")
	ErrInvalidPassword    = errors.New("invalid_password")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUserExists         = errors.New("user_exists")
	ErrSessionExpired     = errors.New("session_expired")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrNotFound           = errors.New("user_not_found")
)

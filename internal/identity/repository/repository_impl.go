package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	identitydomain "github.com/smallbiznis/galeri/internal/identity/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() identitydomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, user *identitydomain.User) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO users (
			id, email, password_hash, display_name, role, recipient, phone,
			address, address_detail, postal_code, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.DisplayName,
		user.Role,
		user.Recipient,
		user.Phone,
		user.Address,
		user.AddressDetail,
		user.PostalCode,
		user.CreatedAt,
		user.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*identitydomain.User, error) {
	var user identitydomain.User
	err := db.WithContext(ctx).Raw(
		`SELECT id, email, password_hash, display_name, role, recipient, phone,
		 address, address_detail, postal_code, created_at, updated_at
		 FROM users WHERE id = ?`,
		id,
	).Scan(&user).Error
	if err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, nil
	}
	return &user, nil
}

func (r *repo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*identitydomain.User, error) {
	var user identitydomain.User
	err := db.WithContext(ctx).Raw(
		`SELECT id, email, password_hash, display_name, role, recipient, phone,
		 address, address_detail, postal_code, created_at, updated_at
		 FROM users WHERE email = ?`,
		email,
	).Scan(&user).Error
	if err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, nil
	}
	return &user, nil
}

func (r *repo) UpdateAddress(ctx context.Context, db *gorm.DB, id snowflake.ID, address identitydomain.Address) error {
	return db.WithContext(ctx).Exec(
		`UPDATE users SET recipient = ?, phone = ?, address = ?, address_detail = ?,
		 postal_code = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		address.Recipient,
		address.Phone,
		address.Address,
		address.AddressDetail,
		address.PostalCode,
		id,
	).Error
}

func (r *repo) InsertSession(ctx context.Context, db *gorm.DB, session *identitydomain.Session) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO sessions (token, user_id, expires_at, created_at) VALUES (?, ?, ?, ?)`,
		session.Token,
		session.UserID,
		session.ExpiresAt,
		session.CreatedAt,
	).Error
}

func (r *repo) FindSession(ctx context.Context, db *gorm.DB, token string) (*identitydomain.Session, error) {
	var session identitydomain.Session
	err := db.WithContext(ctx).Raw(
		`SELECT token, user_id, expires_at, created_at FROM sessions WHERE token = ?`,
		token,
	).Scan(&session).Error
	if err != nil {
		return nil, err
	}
	if session.Token == "" {
		return nil, nil
	}
	return &session, nil
}

func (r *repo) DeleteSession(ctx context.Context, db *gorm.DB, token string) error {
	return db.WithContext(ctx).Exec(`DELETE FROM sessions WHERE token = ?`, token).Error
}

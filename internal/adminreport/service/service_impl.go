package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/galeri/internal/actorcontext"
	admindomain "github.com/smallbiznis/galeri/internal/adminreport/domain"
	"github.com/smallbiznis/galeri/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Placeholders rendered when a joined referent has been removed. The listing
// must keep working even with dangling references.
const (
	placeholderUser    = "(deleted user)"
	placeholderArtwork = "(removed artwork)"
)

const defaultPageSize = 20

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func New(p Params) admindomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("adminreport.service"),
	}
}

func (s *Service) ListOrders(ctx context.Context, p pagination.Pagination) (admindomain.OrderPage, error) {
	actor, ok := actorcontext.ActorFromContext(ctx)
	if !ok || !actor.IsAdmin() {
		return admindomain.OrderPage{}, admindomain.ErrForbidden
	}

	limit, afterID, err := pageWindow(p)
	if err != nil {
		return admindomain.OrderPage{}, err
	}

	query := `SELECT
			o.id, o.user_id, o.status, o.total_amount, o.payment_method,
			o.depositor_name, o.created_at,
			COALESCE(u.email, ?) AS buyer_email,
			COALESCE(u.display_name, ?) AS buyer_display_name,
			(SELECT COUNT(*) FROM order_items oi WHERE oi.order_id = o.id) AS item_count
		 FROM orders o
		 LEFT JOIN users u ON u.id = o.user_id`
	args := []any{placeholderUser, placeholderUser}
	if afterID != 0 {
		query += ` WHERE o.id < ?`
		args = append(args, afterID)
	}
	query += ` ORDER BY o.id DESC LIMIT ?`
	args = append(args, limit+1)

	var rows []admindomain.OrderRow
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return admindomain.OrderPage{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(rows, limit, func(row admindomain.OrderRow) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{ID: row.ID.String()})
		return token
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}

	return admindomain.OrderPage{Orders: rows, PageInfo: pageInfo}, nil
}

func (s *Service) ListSubscriptions(ctx context.Context, p pagination.Pagination) (admindomain.SubscriptionPage, error) {
	actor, ok := actorcontext.ActorFromContext(ctx)
	if !ok || !actor.IsAdmin() {
		return admindomain.SubscriptionPage{}, admindomain.ErrForbidden
	}

	limit, afterID, err := pageWindow(p)
	if err != nil {
		return admindomain.SubscriptionPage{}, err
	}

	query := `SELECT
			s.id, s.order_id, s.user_id, s.artwork_id, s.status, s.billing_cycle,
			s.monthly_fee, s.start_at, s.end_at, s.next_payment_due, s.created_at,
			COALESCE(u.email, ?) AS buyer_email,
			COALESCE(u.display_name, ?) AS buyer_display_name,
			COALESCE(a.title, ?) AS artwork_title
		 FROM subscriptions s
		 LEFT JOIN users u ON u.id = s.user_id
		 LEFT JOIN artworks a ON a.id = s.artwork_id`
	args := []any{placeholderUser, placeholderUser, placeholderArtwork}
	if afterID != 0 {
		query += ` WHERE s.id < ?`
		args = append(args, afterID)
	}
	query += ` ORDER BY s.id DESC LIMIT ?`
	args = append(args, limit+1)

	var rows []admindomain.SubscriptionRow
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return admindomain.SubscriptionPage{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(rows, limit, func(row admindomain.SubscriptionRow) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{ID: row.ID.String()})
		return token
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}

	return admindomain.SubscriptionPage{Subscriptions: rows, PageInfo: pageInfo}, nil
}

// pageWindow resolves the requested page size and the id cursor. Snowflake
// ids are time-ordered, so paging on id keeps the newest-first order stable
// across pages.
func pageWindow(p pagination.Pagination) (int, snowflake.ID, error) {
	limit := p.PageSize
	if limit <= 0 {
		limit = defaultPageSize
	}
	if p.PageToken == "" {
		return limit, 0, nil
	}
	cursor, err := pagination.DecodeCursor(p.PageToken)
	if err != nil {
		return 0, 0, err
	}
	afterID, err := snowflake.ParseString(cursor.ID)
	if err != nil {
		return 0, 0, err
	}
	return limit, afterID, nil
}

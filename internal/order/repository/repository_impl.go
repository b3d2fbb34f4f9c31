package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	orderdomain "github.com/smallbiznis/galeri/internal/order/domain"
	"gorm.io/gorm"
)

const orderColumns = `id, user_id, status, total_amount, payment_method, depositor_name,
 bank_name, bank_account_number, bank_account_holder,
 shipping_recipient, shipping_phone, shipping_address, shipping_address_detail, shipping_postal_code,
 metadata, created_at, updated_at`

type repo struct{}

func Provide() orderdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, order *orderdomain.Order) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO orders (
			id, user_id, status, total_amount, payment_method, depositor_name,
			bank_name, bank_account_number, bank_account_holder,
			shipping_recipient, shipping_phone, shipping_address, shipping_address_detail, shipping_postal_code,
			metadata, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID,
		order.UserID,
		order.Status,
		order.TotalAmount,
		order.PaymentMethod,
		order.DepositorName,
		order.BankName,
		order.BankAccountNumber,
		order.BankAccountHolder,
		order.ShippingRecipient,
		order.ShippingPhone,
		order.ShippingAddress,
		order.ShippingAddressDetail,
		order.ShippingPostalCode,
		order.Metadata,
		order.CreatedAt,
		order.UpdatedAt,
	).Error
}

func (r *repo) InsertItems(ctx context.Context, db *gorm.DB, items []orderdomain.OrderItem) error {
	for i := range items {
		item := &items[i]
		err := db.WithContext(ctx).Exec(
			`INSERT INTO order_items (
				id, order_id, artwork_id, title, price, line_type, position, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID,
			item.OrderID,
			item.ArtworkID,
			item.Title,
			item.Price,
			item.LineType,
			item.Position,
			item.CreatedAt,
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*orderdomain.Order, error) {
	return r.findByID(ctx, db, id, "")
}

func (r *repo) FindByIDForUpdate(ctx context.Context, db *gorm.DB, id snowflake.ID) (*orderdomain.Order, error) {
	// sqlite serializes writers on its own and rejects the clause.
	lock := " FOR UPDATE"
	if db.Dialector.Name() == "sqlite" {
		lock = ""
	}
	return r.findByID(ctx, db, id, lock)
}

func (r *repo) findByID(ctx context.Context, db *gorm.DB, id snowflake.ID, lock string) (*orderdomain.Order, error) {
	var order orderdomain.Order
	err := db.WithContext(ctx).Raw(
		`SELECT `+orderColumns+` FROM orders WHERE id = ?`+lock,
		id,
	).Scan(&order).Error
	if err != nil {
		return nil, err
	}
	if order.ID == 0 {
		return nil, nil
	}
	return &order, nil
}

func (r *repo) FindItems(ctx context.Context, db *gorm.DB, orderID snowflake.ID) ([]orderdomain.OrderItem, error) {
	var items []orderdomain.OrderItem
	err := db.WithContext(ctx).Raw(
		`SELECT id, order_id, artwork_id, title, price, line_type, position, created_at
		 FROM order_items WHERE order_id = ? ORDER BY position ASC`,
		orderID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) TransitionStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, from, to orderdomain.OrderStatus, at time.Time) (bool, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE orders SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		to, at, id, from,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]orderdomain.Order, error) {
	var orders []orderdomain.Order
	err := db.WithContext(ctx).Raw(
		`SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC, id DESC`,
	).Scan(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

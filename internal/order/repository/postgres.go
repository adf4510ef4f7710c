package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-workshop-service/internal/apperror"
	"github.com/fekuna/omnipos-workshop-service/internal/database"
	"github.com/fekuna/omnipos-workshop-service/internal/model"
	"github.com/fekuna/omnipos-workshop-service/internal/order/dto"
	"github.com/jmoiron/sqlx"
)

const (
	orderColumns = `id, order_number, status, created_by, created_at, updated_at`
	itemColumns  = `id, order_id, material, quantity, size, color, completed_quantity`
)

type PGRepository struct {
	db *database.Gateway
}

func NewPGRepository(db *database.Gateway) *PGRepository {
	return &PGRepository{db: db}
}

func (r *PGRepository) Create(ctx context.Context, o *model.Order) error {
	query := `
        INSERT INTO orders (order_number, status, created_by, created_at, updated_at)
        VALUES (:order_number, :status, :created_by, :created_at, :updated_at)
        RETURNING id
    `
	id, err := database.InsertReturningID(ctx, r.db.Querier(ctx), query, o)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	o.ID = id
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Order, error) {
	return r.findOrder(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
}

// LockByID takes a row lock on Postgres. SQLite already serialises writers, so
// the plain read is enough there.
func (r *PGRepository) LockByID(ctx context.Context, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = ?`
	if r.db.DB.DriverName() != database.DriverSQLite {
		query += ` FOR UPDATE`
	}
	return r.findOrder(ctx, query, id)
}

func (r *PGRepository) findOrder(ctx context.Context, query string, id int64) (*model.Order, error) {
	q := r.db.Querier(ctx)
	var o model.Order
	if err := q.GetContext(ctx, &o, q.Rebind(query), id); err != nil {
		if database.IsNoRows(err) {
			return nil, apperror.NotFound("order %d not found", id)
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &o, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.OrderFilters) ([]model.Order, error) {
	q := r.db.Querier(ctx)
	query := `SELECT ` + orderColumns + ` FROM orders`
	var args []interface{}
	if f != nil && f.Status != nil {
		query += ` WHERE status = ?`
		args = append(args, string(*f.Status))
	}
	query += ` ORDER BY created_at DESC, id DESC`

	orders := []model.Order{}
	if err := q.SelectContext(ctx, &orders, q.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (r *PGRepository) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus, at time.Time) error {
	q := r.db.Querier(ctx)
	res, err := q.ExecContext(ctx, q.Rebind(`UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`), string(status), at, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	return database.EnsureAffected(res, apperror.NotFound("order %d not found", id))
}

func (r *PGRepository) UpdateOrderNumber(ctx context.Context, id int64, orderNumber string, at time.Time) error {
	q := r.db.Querier(ctx)
	res, err := q.ExecContext(ctx, q.Rebind(`UPDATE orders SET order_number = ?, updated_at = ? WHERE id = ?`), orderNumber, at, id)
	if err != nil {
		return fmt.Errorf("failed to update order number: %w", err)
	}
	return database.EnsureAffected(res, apperror.NotFound("order %d not found", id))
}

func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	q := r.db.Querier(ctx)
	res, err := q.ExecContext(ctx, q.Rebind(`DELETE FROM orders WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return database.EnsureAffected(res, apperror.NotFound("order %d not found", id))
}

func (r *PGRepository) AddItem(ctx context.Context, item *model.OrderItem) error {
	query := `
        INSERT INTO order_items (order_id, material, quantity, size, color, completed_quantity)
        VALUES (:order_id, :material, :quantity, :size, :color, :completed_quantity)
        RETURNING id
    `
	id, err := database.InsertReturningID(ctx, r.db.Querier(ctx), query, item)
	if err != nil {
		return fmt.Errorf("failed to add order item: %w", err)
	}
	item.ID = id
	return nil
}

func (r *PGRepository) FindItem(ctx context.Context, itemID int64) (*model.OrderItem, error) {
	q := r.db.Querier(ctx)
	var item model.OrderItem
	if err := q.GetContext(ctx, &item, q.Rebind(`SELECT `+itemColumns+` FROM order_items WHERE id = ?`), itemID); err != nil {
		if database.IsNoRows(err) {
			return nil, apperror.NotFound("order item %d not found", itemID)
		}
		return nil, fmt.Errorf("failed to get order item: %w", err)
	}
	return &item, nil
}

// ListItems returns the items of every given order, grouped by order and in id order.
func (r *PGRepository) ListItems(ctx context.Context, orderIDs ...int64) ([]model.OrderItem, error) {
	items := []model.OrderItem{}
	if len(orderIDs) == 0 {
		return items, nil
	}

	query, args, err := sqlx.In(`SELECT `+itemColumns+` FROM order_items WHERE order_id IN (?) ORDER BY order_id, id`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build item query: %w", err)
	}
	q := r.db.Querier(ctx)
	if err := q.SelectContext(ctx, &items, q.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	return items, nil
}

func (r *PGRepository) UpdateItemProgress(ctx context.Context, itemID int64, completed int) error {
	q := r.db.Querier(ctx)
	res, err := q.ExecContext(ctx, q.Rebind(`UPDATE order_items SET completed_quantity = ? WHERE id = ?`), completed, itemID)
	if err != nil {
		return fmt.Errorf("failed to update item progress: %w", err)
	}
	return database.EnsureAffected(res, apperror.NotFound("order item %d not found", itemID))
}

func (r *PGRepository) DeleteItems(ctx context.Context, orderID int64) (int64, error) {
	q := r.db.Querier(ctx)
	res, err := q.ExecContext(ctx, q.Rebind(`DELETE FROM order_items WHERE order_id = ?`), orderID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete order items: %w", err)
	}
	return res.RowsAffected()
}

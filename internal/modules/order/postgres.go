package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chesterOps/ecommerce-backend/internal/apperr"
	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// Create inserts the order and all its items inside a single transaction.
func (r *postgresRepo) Create(ctx context.Context, o *Order) error {
	billing, err := json.Marshal(o.BillingAddress)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, status, payment_method, ref, user_id, billing_address)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		o.ID, o.Status, o.PaymentMethod, nilIfEmpty(o.Ref), o.UserID, billing)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, title, price, quantity, product_id)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			item.ID, o.ID, item.Title, item.Price, item.Quantity, item.ProductID)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return tx.Commit()
}

const selectSQL = `
	SELECT id, status, payment_method, ref, user_id, billing_address, created_at, updated_at
	FROM orders`

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.NotFound("order not found")
	}
	o, err := r.scan(r.db.QueryRowContext(ctx, selectSQL+` WHERE id=$1`, uid))
	if err != nil {
		return nil, err
	}
	o.Items, err = r.listItems(ctx, o.ID)
	return o, err
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]*Order, error) {
	return r.queryOrders(ctx, selectSQL+` ORDER BY created_at DESC`)
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]*Order, error) {
	return r.queryOrders(ctx, selectSQL+` WHERE user_id=$1 ORDER BY created_at DESC`, userID)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status=$1, updated_at=$2 WHERE id=$3`,
		status, time.Now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("order not found")
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("order not found")
	}
	return nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

type rowScanner interface{ Scan(dest ...interface{}) error }

func (r *postgresRepo) scan(row rowScanner) (*Order, error) {
	o := &Order{}
	var ref, userID sql.NullString
	var billing []byte
	err := row.Scan(&o.ID, &o.Status, &o.PaymentMethod, &ref, &userID, &billing,
		&o.CreatedAt, &o.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("order not found")
	}
	if err != nil {
		return nil, err
	}
	if ref.Valid {
		o.Ref = ref.String
	}
	if userID.Valid {
		uid, err := uuid.Parse(userID.String)
		if err == nil {
			o.UserID = &uid
		}
	}
	if len(billing) > 0 {
		if err := json.Unmarshal(billing, &o.BillingAddress); err != nil {
			return nil, fmt.Errorf("decode billing address: %w", err)
		}
	}
	return o, nil
}

func (r *postgresRepo) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range orders {
		if o.Items, err = r.listItems(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *postgresRepo) listItems(ctx context.Context, orderID uuid.UUID) ([]*Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, title, price, quantity, product_id
		FROM order_items WHERE order_id=$1 ORDER BY created_at ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item := &Item{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.Title, &item.Price,
			&item.Quantity, &item.ProductID); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

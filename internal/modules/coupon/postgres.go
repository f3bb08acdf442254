package coupon

import (
	"context"
	"database/sql"
	"time"

	"github.com/chesterOps/ecommerce-backend/internal/apperr"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const selectSQL = `
	SELECT id, code, discount, start_at, end_at, active, created_at, updated_at
	FROM coupons`

func (r *postgresRepo) Create(ctx context.Context, c *Coupon) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO coupons (id, code, discount, start_at, end_at, active)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		c.ID, c.Code, c.Discount, c.Start, c.End, c.Active)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return apperr.Conflict("a coupon with this code already exists")
	}
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Coupon, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.NotFound("coupon not found")
	}
	return r.scan(r.db.QueryRowContext(ctx, selectSQL+` WHERE id=$1`, uid), "coupon not found")
}

func (r *postgresRepo) GetActiveByCode(ctx context.Context, code string) (*Coupon, error) {
	return r.scan(r.db.QueryRowContext(ctx, selectSQL+` WHERE code=$1 AND active=true`, code), "invalid coupon")
}

func (r *postgresRepo) List(ctx context.Context) ([]*Coupon, error) {
	rows, err := r.db.QueryContext(ctx, selectSQL+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var coupons []*Coupon
	for rows.Next() {
		c := &Coupon{}
		if err := rows.Scan(&c.ID, &c.Code, &c.Discount, &c.Start, &c.End, &c.Active,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		coupons = append(coupons, c)
	}
	return coupons, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, c *Coupon) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE coupons SET code=$1, discount=$2, start_at=$3, end_at=$4, active=$5, updated_at=$6
		WHERE id=$7`,
		c.Code, c.Discount, c.Start, c.End, c.Active, time.Now(), c.ID)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return apperr.Conflict("a coupon with this code already exists")
	}
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM coupons WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("coupon not found")
	}
	return nil
}

func (r *postgresRepo) scan(row *sql.Row, notFound string) (*Coupon, error) {
	c := &Coupon{}
	err := row.Scan(&c.ID, &c.Code, &c.Discount, &c.Start, &c.End, &c.Active,
		&c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound(notFound)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

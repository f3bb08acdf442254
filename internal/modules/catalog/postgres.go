package catalog

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

const productSelectSQL = `
	SELECT id, title, slug, description, price, stock, discount, published,
	       images, category_ids, rating_value, rating_count,
	       flashsale_id, flashsale_discount, created_at, updated_at
	FROM products`

func (r *postgresRepo) Create(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products
		  (id, title, slug, description, price, stock, discount, published, images, category_ids)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		p.ID, p.Title, p.Slug, p.Description, p.Price, p.Stock,
		nullableInt(p.Discount), p.Published,
		pq.Array(p.Images), pq.Array(uuidStrings(p.CategoryIDs)))
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.NotFound("product not found")
	}
	return r.scan(r.db.QueryRowContext(ctx, productSelectSQL+` WHERE id=$1`, uid))
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	return r.scan(r.db.QueryRowContext(ctx, productSelectSQL+` WHERE slug=$1`, slug))
}

func (r *postgresRepo) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	query := productSelectSQL + ` WHERE 1=1`
	var args []interface{}
	if filter.PublishedOnly {
		query += ` AND published=true`
	}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		query += ` AND $1=ANY(category_ids)`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET title=$1, slug=$2, description=$3, price=$4, stock=$5, discount=$6,
		    published=$7, images=$8, category_ids=$9, updated_at=$10
		WHERE id=$11`,
		p.Title, p.Slug, p.Description, p.Price, p.Stock, nullableInt(p.Discount),
		p.Published, pq.Array(p.Images), pq.Array(uuidStrings(p.CategoryIDs)),
		time.Now(), p.ID)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("product not found")
	}
	return nil
}

func (r *postgresRepo) Exists(ctx context.Context, id string) (bool, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}
	var exists bool
	err = r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM products WHERE id=$1)`, uid).Scan(&exists)
	return exists, err
}

func (r *postgresRepo) DecrementStock(ctx context.Context, id string, qty int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE products SET stock=GREATEST(stock-$1, 0), updated_at=$2 WHERE id=$3`,
		qty, time.Now(), id)
	return err
}

func (r *postgresRepo) SetRating(ctx context.Context, id string, value float64, count int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE products SET rating_value=$1, rating_count=$2, updated_at=$3 WHERE id=$4`,
		value, count, time.Now(), id)
	return err
}

func (r *postgresRepo) ClearRating(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE products SET rating_value=NULL, rating_count=NULL, updated_at=$1 WHERE id=$2`,
		time.Now(), id)
	return err
}

func (r *postgresRepo) DetachCategory(ctx context.Context, categoryID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE products SET category_ids=array_remove(category_ids, $1::text), updated_at=$2
		 WHERE $1=ANY(category_ids)`,
		categoryID.String(), time.Now())
	return err
}

// ── scanners ─────────────────────────────────────────────────────────────────

type rowScanner interface{ Scan(dest ...interface{}) error }

func (r *postgresRepo) scan(row *sql.Row) (*Product, error) {
	p, err := r.scanRow(row)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("product not found")
	}
	return p, err
}

func (r *postgresRepo) scanRow(row rowScanner) (*Product, error) {
	p := &Product{}
	var discount, ratingCount sql.NullInt64
	var ratingValue sql.NullFloat64
	var saleID sql.NullString
	var saleDiscount sql.NullInt64
	var images, categoryIDs []string

	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Description, &p.Price, &p.Stock,
		&discount, &p.Published, pq.Array(&images), pq.Array(&categoryIDs),
		&ratingValue, &ratingCount, &saleID, &saleDiscount,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if discount.Valid {
		p.Discount = int(discount.Int64)
	}
	p.Images = images
	for _, s := range categoryIDs {
		if id, err := uuid.Parse(s); err == nil {
			p.CategoryIDs = append(p.CategoryIDs, id)
		}
	}
	if ratingValue.Valid {
		p.Rating = &Rating{Value: ratingValue.Float64, Count: int(ratingCount.Int64)}
	}
	if saleID.Valid && saleDiscount.Valid {
		id, err := uuid.Parse(saleID.String)
		if err == nil {
			p.Sale = &SaleOverride{SaleID: id, Discount: int(saleDiscount.Int64)}
		}
	}
	return p, nil
}

func nullableInt(v int) interface{} {
	if v == 0 {
		return nil
	}
	return v
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

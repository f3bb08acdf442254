package flashsale

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/chesterOps/ecommerce-backend/internal/apperr"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// Replace swaps the sale inside one transaction. The overrides written onto
// products are what product reads surface as the effective discount.
func (r *postgresRepo) Replace(ctx context.Context, sale *FlashSale, entries []SaleEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE products SET flashsale_id=NULL, flashsale_discount=NULL
		 WHERE flashsale_id IS NOT NULL`); err != nil {
		return fmt.Errorf("clear sale overrides: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM flash_sale_products`); err != nil {
		return fmt.Errorf("delete sale products: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM flash_sales`); err != nil {
		return fmt.Errorf("delete prior sales: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO flash_sales (id, start_at, end_at) VALUES ($1,$2,$3)`,
		sale.ID, sale.Start, sale.End); err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO flash_sale_products (sale_id, product_id, discount) VALUES ($1,$2,$3)`,
			sale.ID, e.ProductID, e.Discount); err != nil {
			return fmt.Errorf("insert sale product: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE products SET flashsale_id=$1, flashsale_discount=$2, updated_at=$3 WHERE id=$4`,
			sale.ID, e.Discount, time.Now(), e.ProductID); err != nil {
			return fmt.Errorf("write sale override: %w", err)
		}
	}

	return tx.Commit()
}

func (r *postgresRepo) Current(ctx context.Context, now time.Time) (*FlashSale, error) {
	sale := &FlashSale{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, start_at, end_at, created_at
		FROM flash_sales WHERE start_at<=$1 AND end_at>=$1`, now).
		Scan(&sale.ID, &sale.Start, &sale.End, &sale.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("no active flash sale at the moment")
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.title, p.slug, p.price, p.stock, sp.discount
		FROM flash_sale_products sp
		JOIN products p ON p.id = sp.product_id
		WHERE sp.sale_id=$1
		ORDER BY p.title ASC`, sale.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var sp SaleProduct
		if err := rows.Scan(&sp.ProductID, &sp.Title, &sp.Slug, &sp.Price, &sp.Stock, &sp.Discount); err != nil {
			return nil, err
		}
		sale.Products = append(sale.Products, sp)
	}
	return sale, rows.Err()
}

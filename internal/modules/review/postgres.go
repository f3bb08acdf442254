package review

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

func (r *postgresRepo) Create(ctx context.Context, rv *Review) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reviews (id, product_id, user_id, content, rating)
		VALUES ($1,$2,$3,$4,$5)`,
		rv.ID, rv.ProductID, rv.UserID, rv.Content, rv.Rating)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return apperr.Conflict("you have already reviewed this product")
	}
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Review, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.NotFound("review not found")
	}
	rv := &Review{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, product_id, user_id, content, rating, created_at, updated_at
		FROM reviews WHERE id=$1`, uid).
		Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.Content, &rv.Rating, &rv.CreatedAt, &rv.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("review not found")
	}
	if err != nil {
		return nil, err
	}
	return rv, nil
}

func (r *postgresRepo) ListByProduct(ctx context.Context, productID string) ([]*Review, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, user_id, content, rating, created_at, updated_at
		FROM reviews WHERE product_id=$1 ORDER BY created_at DESC`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*Review
	for rows.Next() {
		rv := &Review{}
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.Content, &rv.Rating,
			&rv.CreatedAt, &rv.UpdatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, rv *Review) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE reviews SET content=$1, rating=$2, updated_at=$3 WHERE id=$4`,
		rv.Content, rv.Rating, time.Now(), rv.ID)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("review not found")
	}
	return nil
}

func (r *postgresRepo) Aggregate(ctx context.Context, productID string) (float64, int, error) {
	var avg sql.NullFloat64
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT AVG(rating), COUNT(*) FROM reviews WHERE product_id=$1`, productID).
		Scan(&avg, &count)
	if err != nil {
		return 0, 0, err
	}
	return avg.Float64, count, nil
}

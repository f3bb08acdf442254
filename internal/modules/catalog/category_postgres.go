package catalog

import (
	"context"
	"database/sql"
	"time"

	"github.com/chesterOps/ecommerce-backend/internal/apperr"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type categoryPostgresRepo struct{ db *sql.DB }

func NewCategoryPostgresRepository(db *sql.DB) CategoryRepository {
	return &categoryPostgresRepo{db: db}
}

func (r *categoryPostgresRepo) Create(ctx context.Context, c *Category) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, slug) VALUES ($1,$2,$3)`,
		c.ID, c.Name, c.Slug)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return apperr.Conflict("a category with this name already exists")
	}
	return err
}

func (r *categoryPostgresRepo) GetByID(ctx context.Context, id string) (*Category, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.NotFound("category not found")
	}
	c := &Category{}
	err = r.db.QueryRowContext(ctx,
		`SELECT id, name, slug, created_at, updated_at FROM categories WHERE id=$1`, uid).
		Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("category not found")
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *categoryPostgresRepo) List(ctx context.Context) ([]*Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, slug, created_at, updated_at FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *categoryPostgresRepo) Update(ctx context.Context, c *Category) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name=$1, slug=$2, updated_at=$3 WHERE id=$4`,
		c.Name, c.Slug, time.Now(), c.ID)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return apperr.Conflict("a category with this name already exists")
	}
	return err
}

func (r *categoryPostgresRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("category not found")
	}
	return nil
}

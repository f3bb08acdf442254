package user

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/chesterOps/ecommerce-backend/internal/apperr"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) CreateUser(ctx context.Context, u *User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, role, active)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.Active)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return apperr.Conflict("an account with this email already exists")
	}
	return err
}

const selectSQL = `
	SELECT id, name, email, password_hash, role, billing_address, active, created_at, updated_at
	FROM users`

func (r *postgresRepo) GetUserByID(ctx context.Context, id string) (*User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.NotFound("user not found")
	}
	return r.scan(r.db.QueryRowContext(ctx, selectSQL+` WHERE id=$1`, uid))
}

func (r *postgresRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return r.scan(r.db.QueryRowContext(ctx, selectSQL+` WHERE email=$1`, email))
}

func (r *postgresRepo) UpdateBillingAddress(ctx context.Context, id string, address json.RawMessage) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET billing_address=$1, updated_at=$2 WHERE id=$3`,
		[]byte(address), time.Now(), id)
	return err
}

func (r *postgresRepo) scan(row *sql.Row) (*User, error) {
	u := &User{}
	var billing []byte
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&billing, &u.Active, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	if len(billing) > 0 {
		u.BillingAddress = json.RawMessage(billing)
	}
	return u, nil
}

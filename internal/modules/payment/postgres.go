package payment

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

func (r *postgresRepo) Create(ctx context.Context, rec *Record) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO payment_records (id, provider, tx_ref, amount, currency, order_id)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		rec.ID, rec.Provider, rec.TxRef, rec.Amount, rec.Currency, rec.OrderID)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return apperr.Conflict("transaction reference already recorded")
	}
	return err
}

func (r *postgresRepo) GetByTxRef(ctx context.Context, txRef string) (*Record, error) {
	rec := &Record{}
	var orderID sql.NullString
	err := r.db.QueryRowContext(ctx, `
		SELECT id, provider, tx_ref, amount, currency, order_id, created_at, updated_at
		FROM payment_records WHERE tx_ref=$1`, txRef).
		Scan(&rec.ID, &rec.Provider, &rec.TxRef, &rec.Amount, &rec.Currency,
			&orderID, &rec.CreatedAt, &rec.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if orderID.Valid {
		id, err := uuid.Parse(orderID.String)
		if err == nil {
			rec.OrderID = &id
		}
	}
	return rec, nil
}

func (r *postgresRepo) AttachOrder(ctx context.Context, txRef string, orderID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE payment_records SET order_id=$1, updated_at=$2 WHERE tx_ref=$3`,
		orderID, time.Now(), txRef)
	return err
}

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"rental-marketplace/internal/domain"
	"rental-marketplace/internal/domain/model"
	"rental-marketplace/internal/domain/ports/repository"
)

var _ repository.CreditTransactionRepository = (*creditTransactionRepo)(nil)

type creditTransactionRepo struct{ pool *pgxpool.Pool }

func NewCreditTransactionRepo(pool *pgxpool.Pool) *creditTransactionRepo {
	return &creditTransactionRepo{pool: pool}
}

func (r *creditTransactionRepo) Append(ctx context.Context, tx repository.Tx, t *model.CreditTransaction) error {
	const q = `
INSERT INTO credit_transactions (
  user_id, transaction_type, credits, balance_after, payment_id, property_id, description, expires_at, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
RETURNING id;`

	row, err := pickRow(ctx, r.pool, tx, q, t.UserID, t.Type, t.Credits, t.BalanceAfter, t.PaymentID, t.PropertyID, t.Description, t.ExpiresAt, t.CreatedAt)
	if err != nil {
		return err
	}
	if err := row.Scan(&t.ID); err != nil {
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *creditTransactionRepo) ListByUser(ctx context.Context, tx repository.Tx, userID int64, limit int) ([]*model.CreditTransaction, error) {
	if limit <= 0 {
		limit = 10
	}
	const q = `
SELECT id, user_id, transaction_type, credits, balance_after, payment_id, property_id, description, expires_at, created_at
FROM credit_transactions
WHERE user_id=$1
ORDER BY created_at DESC
LIMIT $2;`
	rows, err := queryRows(ctx, r.pool, tx, q, userID, limit)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.CreditTransaction
	for rows.Next() {
		t := &model.CreditTransaction{}
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Credits, &t.BalanceAfter, &t.PaymentID, &t.PropertyID, &t.Description, &t.ExpiresAt, &t.CreatedAt); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, domain.ErrNotFound
			}
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *creditTransactionRepo) HasUsedForProperty(ctx context.Context, tx repository.Tx, userID, propertyID int64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM credit_transactions WHERE user_id=$1 AND property_id=$2 AND transaction_type='used');`
	row, err := pickRow(ctx, r.pool, tx, q, userID, propertyID)
	if err != nil {
		return false, err
	}
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, domain.ErrReadDatabaseRow
	}
	return exists, nil
}

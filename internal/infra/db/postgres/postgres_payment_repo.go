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

var _ repository.PaymentRepository = (*paymentRepo)(nil)

type paymentRepo struct{ pool *pgxpool.Pool }

func NewPaymentRepo(pool *pgxpool.Pool) *paymentRepo {
	return &paymentRepo{pool: pool}
}

const paymentColumns = `id, user_id, order_id, gateway_payment_id, signature, plan_type, credits, base_price, gst_amount, gst_percentage, total_amount, currency, validity_days, credits_expiry, status, created_at, updated_at`

func scanPayment(row pgx.Row) (*model.Payment, error) {
	p := &model.Payment{}
	if err := row.Scan(&p.ID, &p.UserID, &p.OrderID, &p.GatewayPaymentID, &p.Signature, &p.PlanType, &p.Credits, &p.BasePrice, &p.GSTAmount, &p.GSTPct, &p.TotalAmount, &p.Currency, &p.ValidityDays, &p.CreditsExpiry, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return p, nil
}

func (r *paymentRepo) Save(ctx context.Context, tx repository.Tx, p *model.Payment) error {
	const q = `
INSERT INTO payments (
  user_id, order_id, gateway_payment_id, signature, plan_type, credits, base_price, gst_amount, gst_percentage, total_amount, currency, validity_days, credits_expiry, status, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
RETURNING id;`

	row, err := pickRow(ctx, r.pool, tx, q, p.UserID, p.OrderID, p.GatewayPaymentID, p.Signature, p.PlanType, p.Credits, p.BasePrice, p.GSTAmount, p.GSTPct, p.TotalAmount, p.Currency, p.ValidityDays, p.CreditsExpiry, p.Status, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return err
	}
	if err := row.Scan(&p.ID); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *paymentRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.Payment, error) {
	q := `SELECT ` + paymentColumns + ` FROM payments WHERE id=$1`
	if _, ok := tx.(pgx.Tx); ok {
		q += " FOR UPDATE"
	}
	q += ";"
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanPayment(row)
}

func (r *paymentRepo) FindByOrderAndUser(ctx context.Context, tx repository.Tx, orderID string, userID int64) (*model.Payment, error) {
	q := `SELECT ` + paymentColumns + ` FROM payments WHERE order_id=$1 AND user_id=$2 LIMIT 1`
	if _, ok := tx.(pgx.Tx); ok {
		q += " FOR UPDATE"
	}
	q += ";"
	row, err := pickRow(ctx, r.pool, tx, q, orderID, userID)
	if err != nil {
		return nil, err
	}
	return scanPayment(row)
}

func (r *paymentRepo) FindByOrderID(ctx context.Context, tx repository.Tx, orderID string) (*model.Payment, error) {
	q := `SELECT ` + paymentColumns + ` FROM payments WHERE order_id=$1 LIMIT 1`
	if _, ok := tx.(pgx.Tx); ok {
		q += " FOR UPDATE"
	}
	q += ";"
	row, err := pickRow(ctx, r.pool, tx, q, orderID)
	if err != nil {
		return nil, err
	}
	return scanPayment(row)
}

func (r *paymentRepo) ListByUser(ctx context.Context, tx repository.Tx, userID int64, limit, offset int) ([]*model.Payment, int, error) {
	if limit <= 0 {
		limit = 10
	}
	q := `SELECT ` + paymentColumns + ` FROM payments WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3;`
	rows, err := queryRows(ctx, r.pool, tx, q, userID, limit, offset)
	if err != nil {
		return nil, 0, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}

	const cq = `SELECT COUNT(*) FROM payments WHERE user_id=$1;`
	row, err := pickRow(ctx, r.pool, tx, cq, userID)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := row.Scan(&total); err != nil {
		return nil, 0, domain.ErrReadDatabaseRow
	}
	return out, total, nil
}

// CompleteIfPending flips pending -> completed only when the row is still
// pending. The conditional UPDATE is the idempotency guard shared by the
// client verification path and the webhook: the loser of a completion race
// sees zero rows affected and must skip the credit merge.
func (r *paymentRepo) CompleteIfPending(ctx context.Context, tx repository.Tx, id int64, gatewayPaymentID, signature string) (bool, error) {
	const q = `
UPDATE payments
   SET status='completed',
       gateway_payment_id=$2,
       signature=$3,
       updated_at=NOW()
 WHERE id=$1
   AND status='pending';`
	cmd, err := execSQL(ctx, r.pool, tx, q, id, gatewayPaymentID, signature)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return false, err
		}
		return false, domain.ErrOperationFailed
	}
	return cmd.RowsAffected() >= 1, nil
}

func (r *paymentRepo) FailIfPending(ctx context.Context, tx repository.Tx, id int64, gatewayPaymentID, signature string) (bool, error) {
	const q = `
UPDATE payments
   SET status='failed',
       gateway_payment_id=$2,
       signature=$3,
       updated_at=NOW()
 WHERE id=$1
   AND status='pending';`
	cmd, err := execSQL(ctx, r.pool, tx, q, id, gatewayPaymentID, signature)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return false, err
		}
		return false, domain.ErrOperationFailed
	}
	return cmd.RowsAffected() >= 1, nil
}

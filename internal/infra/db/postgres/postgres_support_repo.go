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

var _ repository.SupportTicketRepository = (*supportRepo)(nil)

type supportRepo struct{ pool *pgxpool.Pool }

func NewSupportRepo(pool *pgxpool.Pool) *supportRepo {
	return &supportRepo{pool: pool}
}

func (r *supportRepo) Save(ctx context.Context, tx repository.Tx, t *model.SupportTicket) error {
	const q = `
INSERT INTO support_tickets (name, email, phone, message, status, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING id;`
	row, err := pickRow(ctx, r.pool, tx, q, t.Name, t.Email, t.Phone, t.Message, t.Status, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return err
	}
	if err := row.Scan(&t.ID); err != nil {
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *supportRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.SupportTicket, error) {
	const q = `SELECT id, name, email, phone, message, status, created_at, updated_at FROM support_tickets WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	t := &model.SupportTicket{}
	if err := row.Scan(&t.ID, &t.Name, &t.Email, &t.Phone, &t.Message, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return t, nil
}

func (r *supportRepo) List(ctx context.Context, tx repository.Tx, limit, offset int) ([]*model.SupportTicket, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `SELECT id, name, email, phone, message, status, created_at, updated_at FROM support_tickets ORDER BY created_at DESC LIMIT $1 OFFSET $2;`
	rows, err := queryRows(ctx, r.pool, tx, q, limit, offset)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.SupportTicket
	for rows.Next() {
		t := &model.SupportTicket{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Email, &t.Phone, &t.Message, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *supportRepo) UpdateStatus(ctx context.Context, tx repository.Tx, id int64, status model.TicketStatus) (bool, error) {
	const q = `UPDATE support_tickets SET status=$2, updated_at=NOW() WHERE id=$1;`
	cmd, err := execSQL(ctx, r.pool, tx, q, id, status)
	if err != nil {
		return false, domain.ErrOperationFailed
	}
	return cmd.RowsAffected() >= 1, nil
}

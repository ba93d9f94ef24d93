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

var _ repository.ViewingRequestRepository = (*viewingRepo)(nil)

type viewingRepo struct{ pool *pgxpool.Pool }

func NewViewingRepo(pool *pgxpool.Pool) *viewingRepo {
	return &viewingRepo{pool: pool}
}

const viewingColumns = `id, name, phone, property_type, location, property_link, preferred_date, preferred_time, status, created_at, updated_at`

func scanViewing(row pgx.Row) (*model.ViewingRequest, error) {
	v := &model.ViewingRequest{}
	if err := row.Scan(&v.ID, &v.Name, &v.Phone, &v.PropertyType, &v.Location, &v.PropertyLink, &v.PreferredDate, &v.PreferredTime, &v.Status, &v.CreatedAt, &v.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return v, nil
}

func (r *viewingRepo) Save(ctx context.Context, tx repository.Tx, v *model.ViewingRequest) error {
	const q = `
INSERT INTO viewing_requests (name, phone, property_type, location, property_link, preferred_date, preferred_time, status, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
RETURNING id;`
	row, err := pickRow(ctx, r.pool, tx, q, v.Name, v.Phone, v.PropertyType, v.Location, v.PropertyLink, v.PreferredDate, v.PreferredTime, v.Status, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return err
	}
	if err := row.Scan(&v.ID); err != nil {
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *viewingRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.ViewingRequest, error) {
	q := `SELECT ` + viewingColumns + ` FROM viewing_requests WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanViewing(row)
}

func (r *viewingRepo) List(ctx context.Context, tx repository.Tx, limit, offset int) ([]*model.ViewingRequest, error) {
	if limit <= 0 {
		limit = 20
	}
	q := `SELECT ` + viewingColumns + ` FROM viewing_requests ORDER BY created_at DESC LIMIT $1 OFFSET $2;`
	rows, err := queryRows(ctx, r.pool, tx, q, limit, offset)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.ViewingRequest
	for rows.Next() {
		v, err := scanViewing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *viewingRepo) ListByPhone(ctx context.Context, tx repository.Tx, phone string) ([]*model.ViewingRequest, error) {
	q := `SELECT ` + viewingColumns + ` FROM viewing_requests WHERE phone=$1 ORDER BY created_at DESC;`
	rows, err := queryRows(ctx, r.pool, tx, q, phone)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.ViewingRequest
	for rows.Next() {
		v, err := scanViewing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *viewingRepo) UpdateStatus(ctx context.Context, tx repository.Tx, id int64, status model.ViewingStatus) (bool, error) {
	const q = `UPDATE viewing_requests SET status=$2, updated_at=NOW() WHERE id=$1;`
	cmd, err := execSQL(ctx, r.pool, tx, q, id, status)
	if err != nil {
		return false, domain.ErrOperationFailed
	}
	return cmd.RowsAffected() >= 1, nil
}

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"rental-marketplace/internal/domain"
	"rental-marketplace/internal/domain/model"
	"rental-marketplace/internal/domain/ports/repository"
)

var _ repository.UserRepository = (*userRepo)(nil)

type userRepo struct{ pool *pgxpool.Pool }

func NewUserRepo(pool *pgxpool.Pool) *userRepo {
	return &userRepo{pool: pool}
}

const userColumns = `id, name, email, phone, password_hash, user_type, is_verified, occupation, preferred_location, budget, company_name, total_properties, credits, credit_expiry, total_purchased_credits, total_used_credits, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.UserType, &u.IsVerified, &u.Occupation, &u.PreferredLocation, &u.Budget, &u.CompanyName, &u.TotalProperties, &u.Credits, &u.CreditExpiry, &u.TotalPurchasedCredits, &u.TotalUsedCredits, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return u, nil
}

func (r *userRepo) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	const q = `
INSERT INTO users (
  name, email, phone, password_hash, user_type, is_verified, occupation, preferred_location, budget, company_name, total_properties, credits, credit_expiry, total_purchased_credits, total_used_credits, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
RETURNING id;`

	row, err := pickRow(ctx, r.pool, tx, q, u.Name, u.Email, u.Phone, u.PasswordHash, u.UserType, u.IsVerified, u.Occupation, u.PreferredLocation, u.Budget, u.CompanyName, u.TotalProperties, u.Credits, u.CreditExpiry, u.TotalPurchasedCredits, u.TotalUsedCredits, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return err
	}
	if err := row.Scan(&u.ID); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanUser(row)
}

func (r *userRepo) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE email=$1 LIMIT 1;`
	row, err := pickRow(ctx, r.pool, tx, q, email)
	if err != nil {
		return nil, err
	}
	return scanUser(row)
}

func (r *userRepo) FindByPhone(ctx context.Context, tx repository.Tx, phone string) (*model.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE phone=$1 LIMIT 1;`
	row, err := pickRow(ctx, r.pool, tx, q, phone)
	if err != nil {
		return nil, err
	}
	return scanUser(row)
}

func (r *userRepo) UpdateProfile(ctx context.Context, tx repository.Tx, u *model.User) error {
	const q = `
UPDATE users SET
  name=$2, phone=$3, occupation=$4, preferred_location=$5, budget=$6, company_name=$7, total_properties=$8, updated_at=NOW()
WHERE id=$1;`
	_, err := execSQL(ctx, r.pool, tx, q, u.ID, u.Name, u.Phone, u.Occupation, u.PreferredLocation, u.Budget, u.CompanyName, u.TotalProperties)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *userRepo) UpdatePassword(ctx context.Context, tx repository.Tx, id int64, passwordHash string) error {
	const q = `UPDATE users SET password_hash=$2, updated_at=NOW() WHERE id=$1;`
	cmd, err := execSQL(ctx, r.pool, tx, q, id, passwordHash)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FindCreditStateForUpdate reads the credit fields, locking the row when
// called inside a transaction so concurrent balance mutations serialize.
func (r *userRepo) FindCreditStateForUpdate(ctx context.Context, tx repository.Tx, id int64) (*model.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	if _, ok := tx.(pgx.Tx); ok {
		q += " FOR UPDATE"
	}
	q += ";"
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanUser(row)
}

func (r *userRepo) UpdateCreditState(ctx context.Context, tx repository.Tx, id int64, credits int64, expiry *time.Time, purchasedDelta, usedDelta int64) error {
	const q = `
UPDATE users SET
  credits=$2,
  credit_expiry=$3,
  total_purchased_credits=total_purchased_credits+$4,
  total_used_credits=total_used_credits+$5,
  updated_at=NOW()
WHERE id=$1;`
	cmd, err := execSQL(ctx, r.pool, tx, q, id, credits, expiry, purchasedDelta, usedDelta)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

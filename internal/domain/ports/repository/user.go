package repository

import (
	"context"
	"time"

	"rental-marketplace/internal/domain/model"
)

type UserRepository interface {
	Save(ctx context.Context, tx Tx, u *model.User) error
	FindByID(ctx context.Context, tx Tx, id int64) (*model.User, error)
	FindByEmail(ctx context.Context, tx Tx, email string) (*model.User, error)
	FindByPhone(ctx context.Context, tx Tx, phone string) (*model.User, error)
	UpdateProfile(ctx context.Context, tx Tx, u *model.User) error
	UpdatePassword(ctx context.Context, tx Tx, id int64, passwordHash string) error

	// FindCreditStateForUpdate reads the credit fields under a row lock when
	// called inside a transaction. Every balance mutation goes through this
	// read first so concurrent consumers serialize on the user row.
	FindCreditStateForUpdate(ctx context.Context, tx Tx, id int64) (*model.User, error)
	// UpdateCreditState writes balance/expiry and bumps the monotonic
	// purchased/used counters by the given deltas.
	UpdateCreditState(ctx context.Context, tx Tx, id int64, credits int64, expiry *time.Time, purchasedDelta, usedDelta int64) error
}

package repository

import (
	"context"

	"rental-marketplace/internal/domain/model"
)

type PaymentRepository interface {
	Save(ctx context.Context, tx Tx, p *model.Payment) error
	FindByID(ctx context.Context, tx Tx, id int64) (*model.Payment, error)
	// FindByOrderAndUser scopes lookup to the owning user (client verification path).
	FindByOrderAndUser(ctx context.Context, tx Tx, orderID string, userID int64) (*model.Payment, error)
	// FindByOrderID is the webhook path; the gateway does not know our user ids.
	FindByOrderID(ctx context.Context, tx Tx, orderID string) (*model.Payment, error)
	ListByUser(ctx context.Context, tx Tx, userID int64, limit, offset int) ([]*model.Payment, int, error)

	// CompleteIfPending atomically flips pending -> completed, recording the
	// gateway payment id and signature. Returns false when the payment was
	// already terminal: the caller lost the completion race (or is a retry)
	// and must skip the credit merge.
	CompleteIfPending(ctx context.Context, tx Tx, id int64, gatewayPaymentID, signature string) (bool, error)
	// FailIfPending is the same guard for the failure transition.
	FailIfPending(ctx context.Context, tx Tx, id int64, gatewayPaymentID, signature string) (bool, error)
}

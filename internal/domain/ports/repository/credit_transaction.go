package repository

import (
	"context"

	"rental-marketplace/internal/domain/model"
)

// CreditTransactionRepository is append-only; there is deliberately no update
// or delete. The ledger is the audit trail for every balance change.
type CreditTransactionRepository interface {
	Append(ctx context.Context, tx Tx, t *model.CreditTransaction) error
	ListByUser(ctx context.Context, tx Tx, userID int64, limit int) ([]*model.CreditTransaction, error)
	// HasUsedForProperty reports whether the user already spent a credit on
	// this property (the firstTimeView flag).
	HasUsedForProperty(ctx context.Context, tx Tx, userID, propertyID int64) (bool, error)
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
)

// Tx is an opaque transaction handle passed through use cases into
// repositories. The concrete type is infra-defined (pgx.Tx for Postgres).
// Repositories MUST gracefully accept nil (non-transactional path).
type Tx interface{}

// NoTX marks a deliberately non-transactional repository call.
var NoTX Tx

// TransactionManager executes a function within a database transaction,
// passing the underlying handle via tx. Keeping the handle opaque lets
// repository methods detect a tx implementation-side and run
// SELECT ... FOR UPDATE / tx-bound Exec as needed, without the transaction
// type leaking into use-case interfaces.
//
// If fn returns an error the transaction is rolled back; otherwise committed.
type TransactionManager interface {
	WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx Tx) error) error
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
)

type Tx interface{}

// TransactionManager executes a function within a database transaction,
// passing the transaction handle to repositories via the Tx argument.
//
// Repository methods accept a Tx so the checkout path can create a ticket
// and its transaction as one atomic unit without leaking a storage-specific
// transaction type into the use-case layer. Repositories MUST gracefully
// accept a nil Tx (non-transactional path).
type TransactionManager interface {
	WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx Tx) error) error
}

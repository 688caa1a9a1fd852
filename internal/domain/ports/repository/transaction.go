package repository

import (
	"context"
	"time"

	"hotspot-ticketing/internal/domain/model"
)

type TransactionRepository interface {
	Save(ctx context.Context, tx Tx, t *model.Transaction) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Transaction, error)
	FindBySessionID(ctx context.Context, tx Tx, sessionID string) (*model.Transaction, error)
	FindByTicketID(ctx context.Context, tx Tx, ticketID string) (*model.Transaction, error)
	// SetSessionID binds the external checkout session to the transaction.
	// The session id is set exactly once; it is the idempotency key for
	// reconciliation.
	SetSessionID(ctx context.Context, tx Tx, id, sessionID string) error
	// CompleteIfPending atomically marks the transaction COMPLETED only when
	// its current status is PENDING, returning whether the row was claimed.
	// This check-and-set is the sole guard against double activation when
	// verification runs concurrently (webhook plus success-page poll).
	CompleteIfPending(ctx context.Context, tx Tx, id, paymentIntentID string, paidAt time.Time) (bool, error)
	// ListPendingOlderThan returns stale PENDING transactions with a bound
	// session id, oldest first, for the reconciliation sweep.
	ListPendingOlderThan(ctx context.Context, tx Tx, olderThan time.Time, limit int) ([]*model.Transaction, error)
	SumCompletedByPeriod(ctx context.Context, tx Tx, tenantID, period string) (int64, error)
}

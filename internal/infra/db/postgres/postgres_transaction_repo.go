package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"hotspot-ticketing/internal/domain"
	"hotspot-ticketing/internal/domain/model"
	"hotspot-ticketing/internal/domain/ports/repository"
)

var _ repository.TransactionRepository = (*transactionRepo)(nil)

type transactionRepo struct{ pool *pgxpool.Pool }

func NewTransactionRepo(pool *pgxpool.Pool) *transactionRepo {
	return &transactionRepo{pool: pool}
}

const transactionColumns = `id, tenant_id, ticket_id, amount, currency, status, payment_method,
customer_email, session_id, payment_intent_id, created_at, updated_at, paid_at`

func (r *transactionRepo) Save(ctx context.Context, tx repository.Tx, t *model.Transaction) error {
	const q = `
INSERT INTO transactions (
  id, tenant_id, ticket_id, amount, currency, status, payment_method,
  customer_email, session_id, payment_intent_id, created_at, updated_at, paid_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13
) ON CONFLICT (id) DO UPDATE SET
  status=$6, customer_email=$8, session_id=$9, payment_intent_id=$10, updated_at=$12, paid_at=$13;`

	_, err := execSQL(ctx, r.pool, tx, q,
		t.ID, t.TenantID, t.TicketID, t.Amount, t.Currency, t.Status, t.PaymentMethod,
		t.CustomerEmail, t.SessionID, t.PaymentIntentID, t.CreatedAt, t.UpdatedAt, t.PaidAt)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *transactionRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Transaction, error) {
	return r.findOne(ctx, tx, `SELECT `+transactionColumns+` FROM transactions WHERE id=$1;`, id)
}

func (r *transactionRepo) FindBySessionID(ctx context.Context, tx repository.Tx, sessionID string) (*model.Transaction, error) {
	return r.findOne(ctx, tx, `SELECT `+transactionColumns+` FROM transactions WHERE session_id=$1 LIMIT 1;`, sessionID)
}

func (r *transactionRepo) FindByTicketID(ctx context.Context, tx repository.Tx, ticketID string) (*model.Transaction, error) {
	return r.findOne(ctx, tx, `SELECT `+transactionColumns+` FROM transactions WHERE ticket_id=$1 LIMIT 1;`, ticketID)
}

func (r *transactionRepo) findOne(ctx context.Context, tx repository.Tx, q string, arg interface{}) (*model.Transaction, error) {
	row, err := pickRow(ctx, r.pool, tx, q, arg)
	if err != nil {
		return nil, err
	}
	t := &model.Transaction{}
	if err := scanTransaction(row, t); err != nil {
		return nil, err
	}
	return t, nil
}

// SetSessionID binds the external session exactly once; a second bind
// attempt affects no rows and fails.
func (r *transactionRepo) SetSessionID(ctx context.Context, tx repository.Tx, id, sessionID string) error {
	const q = `
UPDATE transactions SET session_id=$2, updated_at=NOW()
 WHERE id=$1 AND (session_id IS NULL OR session_id='');`
	cmd, err := execSQL(ctx, r.pool, tx, q, id, sessionID)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrOperationFailed
	}
	return nil
}

// CompleteIfPending atomically claims the transaction for completion. The
// WHERE status='PENDING' clause is the idempotency gate: of any number of
// concurrent verifications, exactly one sees RowsAffected()==1.
func (r *transactionRepo) CompleteIfPending(ctx context.Context, tx repository.Tx, id, paymentIntentID string, paidAt time.Time) (bool, error) {
	const q = `
UPDATE transactions
   SET status='COMPLETED',
       payment_intent_id=$2,
       paid_at=$3,
       updated_at=NOW()
 WHERE id=$1
   AND status='PENDING';`
	cmd, err := execSQL(ctx, r.pool, tx, q, id, paymentIntentID, paidAt)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return false, err
		}
		return false, domain.ErrOperationFailed
	}
	return cmd.RowsAffected() >= 1, nil
}

func (r *transactionRepo) ListPendingOlderThan(ctx context.Context, tx repository.Tx, olderThan time.Time, limit int) ([]*model.Transaction, error) {
	if limit <= 0 {
		limit = 100
	}
	const q = `
SELECT ` + transactionColumns + `
  FROM transactions
 WHERE status='PENDING' AND session_id <> '' AND created_at < $1
 ORDER BY created_at ASC
 LIMIT $2;`
	rows, err := queryRows(ctx, r.pool, tx, q, olderThan, limit)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return nil, err
		}
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.Transaction
	for rows.Next() {
		t := new(model.Transaction)
		if err := scanTransaction(rows, t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *transactionRepo) SumCompletedByPeriod(ctx context.Context, tx repository.Tx, tenantID, period string) (int64, error) {
	const q = `
SELECT COALESCE(SUM(amount),0) FROM transactions
 WHERE tenant_id=$1 AND status='COMPLETED' AND paid_at >= DATE_TRUNC($2, NOW());`
	row, err := pickRow(ctx, r.pool, tx, q, tenantID, period)
	if err != nil {
		return 0, err
	}
	var sum int64
	if err := row.Scan(&sum); err != nil {
		return 0, domain.ErrReadDatabaseRow
	}
	return sum, nil
}

func scanTransaction(row pgx.Row, t *model.Transaction) error {
	err := row.Scan(&t.ID, &t.TenantID, &t.TicketID, &t.Amount, &t.Currency, &t.Status, &t.PaymentMethod,
		&t.CustomerEmail, &t.SessionID, &t.PaymentIntentID, &t.CreatedAt, &t.UpdatedAt, &t.PaidAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return domain.ErrReadDatabaseRow
	}
	return nil
}

package postgres

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"hotspot-ticketing/internal/domain"
	"hotspot-ticketing/internal/domain/model"
	"hotspot-ticketing/internal/domain/ports/repository"
)

var _ repository.TicketRepository = (*ticketRepo)(nil)

type ticketRepo struct{ pool *pgxpool.Pool }

func NewTicketRepo(pool *pgxpool.Pool) *ticketRepo {
	return &ticketRepo{pool: pool}
}

const ticketColumns = `id, tenant_id, profile_id, username, password, status, purchase_email,
used_data_bytes, created_at, purchased_at, activated_at, expires_at`

func (r *ticketRepo) Save(ctx context.Context, tx repository.Tx, t *model.Ticket) error {
	const q = `
INSERT INTO tickets (
  id, tenant_id, profile_id, username, password, status, purchase_email,
  used_data_bytes, created_at, purchased_at, activated_at, expires_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12
) ON CONFLICT (id) DO UPDATE SET
  status=$6, purchase_email=$7, used_data_bytes=$8, purchased_at=$10, activated_at=$11, expires_at=$12;`

	_, err := execSQL(ctx, r.pool, tx, q,
		t.ID, t.TenantID, t.ProfileID, t.Username, t.Password, t.Status, t.PurchaseEmail,
		t.UsedDataBytes, t.CreatedAt, t.PurchasedAt, t.ActivatedAt, t.ExpiresAt)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *ticketRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Ticket, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT `+ticketColumns+` FROM tickets WHERE id=$1;`, id)
	if err != nil {
		return nil, err
	}
	t := &model.Ticket{}
	if err := scanTicket(row, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *ticketRepo) ListByTenant(ctx context.Context, tx repository.Tx, tenantID string, f repository.TicketFilter) ([]*model.Ticket, int, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	q := `SELECT ` + ticketColumns + ` FROM tickets WHERE tenant_id=$1`
	countQ := `SELECT COUNT(*) FROM tickets WHERE tenant_id=$1`
	countArgs := []interface{}{tenantID}
	if f.Status != "" {
		q += ` AND status=$2`
		countQ += ` AND status=$2`
		countArgs = append(countArgs, f.Status)
	}
	listArgs := append(append([]interface{}{}, countArgs...), f.Limit, f.Offset)
	q += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(listArgs)-1) + ` OFFSET $` + strconv.Itoa(len(listArgs)) + `;`

	rows, err := queryRows(ctx, r.pool, tx, q, listArgs...)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return nil, 0, err
		}
		return nil, 0, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.Ticket
	for rows.Next() {
		t := new(model.Ticket)
		if err := scanTicket(rows, t); err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}

	row, err := pickRow(ctx, r.pool, tx, countQ+`;`, countArgs...)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := row.Scan(&total); err != nil {
		return nil, 0, domain.ErrReadDatabaseRow
	}
	return out, total, nil
}

func (r *ticketRepo) UpdateStatus(ctx context.Context, tx repository.Tx, id string, status model.TicketStatus, purchasedAt, activatedAt, expiresAt *time.Time) error {
	const q = `
UPDATE tickets SET
  status=$2,
  purchased_at=COALESCE($3, purchased_at),
  activated_at=COALESCE($4, activated_at),
  expires_at=COALESCE($5, expires_at)
WHERE id=$1;`
	cmd, err := execSQL(ctx, r.pool, tx, q, id, status, purchasedAt, activatedAt, expiresAt)
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

func (r *ticketRepo) ActivateIfPending(ctx context.Context, tx repository.Tx, id string, purchasedAt, activatedAt, expiresAt *time.Time) (bool, error) {
	const q = `
UPDATE tickets SET
  status='ACTIVE',
  purchased_at=COALESCE($2, purchased_at),
  activated_at=COALESCE($3, activated_at),
  expires_at=COALESCE($4, expires_at)
WHERE id=$1 AND status='PENDING';`
	cmd, err := execSQL(ctx, r.pool, tx, q, id, purchasedAt, activatedAt, expiresAt)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return false, err
		}
		return false, domain.ErrOperationFailed
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *ticketRepo) ListPaidUnprovisioned(ctx context.Context, tx repository.Tx, limit int) ([]*model.Ticket, error) {
	if limit <= 0 {
		limit = 100
	}
	// PENDING ticket with a COMPLETED transaction: money captured, router
	// account still missing.
	const q = `
SELECT t.id, t.tenant_id, t.profile_id, t.username, t.password, t.status, t.purchase_email,
       t.used_data_bytes, t.created_at, t.purchased_at, t.activated_at, t.expires_at
  FROM tickets t
  JOIN transactions x ON x.ticket_id = t.id
 WHERE t.status = 'PENDING' AND x.status = 'COMPLETED'
 ORDER BY t.created_at ASC
 LIMIT $1;`
	rows, err := queryRows(ctx, r.pool, tx, q, limit)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return nil, err
		}
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.Ticket
	for rows.Next() {
		t := new(model.Ticket)
		if err := scanTicket(rows, t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func scanTicket(row pgx.Row, t *model.Ticket) error {
	err := row.Scan(&t.ID, &t.TenantID, &t.ProfileID, &t.Username, &t.Password, &t.Status, &t.PurchaseEmail,
		&t.UsedDataBytes, &t.CreatedAt, &t.PurchasedAt, &t.ActivatedAt, &t.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return domain.ErrReadDatabaseRow
	}
	return nil
}

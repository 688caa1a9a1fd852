package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"hotspot-ticketing/internal/domain"
	"hotspot-ticketing/internal/domain/model"
	"hotspot-ticketing/internal/domain/ports/repository"
)

var _ repository.ProfileRepository = (*profileRepo)(nil)

type profileRepo struct{ pool *pgxpool.Pool }

func NewProfileRepo(pool *pgxpool.Pool) *profileRepo {
	return &profileRepo{pool: pool}
}

const profileColumns = `id, tenant_id, name, description, mikrotik_profile, price, currency,
duration_seconds, data_limit_bytes, speed_limit, is_active, created_at, updated_at`

func (r *profileRepo) Save(ctx context.Context, tx repository.Tx, p *model.Profile) error {
	const q = `
INSERT INTO profiles (
  id, tenant_id, name, description, mikrotik_profile, price, currency,
  duration_seconds, data_limit_bytes, speed_limit, is_active, created_at, updated_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13
) ON CONFLICT (id) DO UPDATE SET
  name=$3, description=$4, mikrotik_profile=$5, price=$6, currency=$7,
  duration_seconds=$8, data_limit_bytes=$9, speed_limit=$10, is_active=$11, updated_at=$13;`

	_, err := execSQL(ctx, r.pool, tx, q,
		p.ID, p.TenantID, p.Name, p.Description, p.MikrotikProfile, p.Price, p.Currency,
		p.Duration, p.DataLimit, p.SpeedLimit, p.IsActive, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *profileRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Profile, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT `+profileColumns+` FROM profiles WHERE id=$1;`, id)
	if err != nil {
		return nil, err
	}
	p := &model.Profile{}
	if err := scanProfile(row, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *profileRepo) ListByTenant(ctx context.Context, tx repository.Tx, tenantID string, activeOnly bool) ([]*model.Profile, error) {
	q := `SELECT ` + profileColumns + ` FROM profiles WHERE tenant_id=$1`
	if activeOnly {
		q += ` AND is_active`
	}
	q += ` ORDER BY price ASC;`
	rows, err := queryRows(ctx, r.pool, tx, q, tenantID)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return nil, err
		}
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.Profile
	for rows.Next() {
		p := new(model.Profile)
		if err := scanProfile(rows, p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func scanProfile(row pgx.Row, p *model.Profile) error {
	err := row.Scan(&p.ID, &p.TenantID, &p.Name, &p.Description, &p.MikrotikProfile, &p.Price, &p.Currency,
		&p.Duration, &p.DataLimit, &p.SpeedLimit, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return domain.ErrReadDatabaseRow
	}
	return nil
}

package postgres

import (
	"errors"

	"context"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"hotspot-ticketing/internal/domain"
	"hotspot-ticketing/internal/domain/model"
	"hotspot-ticketing/internal/domain/ports/repository"
)

var _ repository.TenantRepository = (*tenantRepo)(nil)

type tenantRepo struct{ pool *pgxpool.Pool }

func NewTenantRepo(pool *pgxpool.Pool) *tenantRepo {
	return &tenantRepo{pool: pool}
}

const tenantColumns = `id, user_id, business_name, slug, logo, primary_color, secondary_color, is_active,
router_host, router_port, router_username, router_password, router_use_ssl, router_timeout_ms,
created_at, updated_at`

func (r *tenantRepo) Save(ctx context.Context, tx repository.Tx, t *model.Tenant) error {
	const q = `
INSERT INTO tenants (
  id, user_id, business_name, slug, logo, primary_color, secondary_color, is_active,
  router_host, router_port, router_username, router_password, router_use_ssl, router_timeout_ms,
  created_at, updated_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16
) ON CONFLICT (id) DO UPDATE SET
  business_name=$3, slug=$4, logo=$5, primary_color=$6, secondary_color=$7, is_active=$8,
  router_host=$9, router_port=$10, router_username=$11, router_password=$12, router_use_ssl=$13, router_timeout_ms=$14,
  updated_at=$16;`

	_, err := execSQL(ctx, r.pool, tx, q,
		t.ID, t.UserID, t.BusinessName, t.Slug, t.Logo, t.PrimaryColor, t.SecondaryColor, t.IsActive,
		t.Router.Host, t.Router.Port, t.Router.Username, t.Router.Password, t.Router.UseSSL, t.Router.TimeoutMs,
		t.CreatedAt, t.UpdatedAt)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *tenantRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Tenant, error) {
	return r.findOne(ctx, tx, `SELECT `+tenantColumns+` FROM tenants WHERE id=$1;`, id)
}

func (r *tenantRepo) FindBySlug(ctx context.Context, tx repository.Tx, slug string) (*model.Tenant, error) {
	return r.findOne(ctx, tx, `SELECT `+tenantColumns+` FROM tenants WHERE slug=$1;`, slug)
}

func (r *tenantRepo) findOne(ctx context.Context, tx repository.Tx, q string, arg interface{}) (*model.Tenant, error) {
	row, err := pickRow(ctx, r.pool, tx, q, arg)
	if err != nil {
		return nil, err
	}
	t := &model.Tenant{}
	err = row.Scan(&t.ID, &t.UserID, &t.BusinessName, &t.Slug, &t.Logo, &t.PrimaryColor, &t.SecondaryColor, &t.IsActive,
		&t.Router.Host, &t.Router.Port, &t.Router.Username, &t.Router.Password, &t.Router.UseSSL, &t.Router.TimeoutMs,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return t, nil
}

func (r *tenantRepo) UpdateRouterSettings(ctx context.Context, tx repository.Tx, tenantID string, rs model.RouterSettings) error {
	const q = `
UPDATE tenants SET
  router_host=$2, router_port=$3, router_username=$4, router_password=$5, router_use_ssl=$6, router_timeout_ms=$7,
  updated_at=NOW()
WHERE id=$1;`
	cmd, err := execSQL(ctx, r.pool, tx, q, tenantID, rs.Host, rs.Port, rs.Username, rs.Password, rs.UseSSL, rs.TimeoutMs)
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

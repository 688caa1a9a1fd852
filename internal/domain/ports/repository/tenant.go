package repository

import (
	"context"

	"hotspot-ticketing/internal/domain/model"
)

type TenantRepository interface {
	Save(ctx context.Context, tx Tx, t *model.Tenant) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Tenant, error)
	FindBySlug(ctx context.Context, tx Tx, slug string) (*model.Tenant, error)
	UpdateRouterSettings(ctx context.Context, tx Tx, tenantID string, rs model.RouterSettings) error
}

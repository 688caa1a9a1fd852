package repository

import (
	"context"

	"hotspot-ticketing/internal/domain/model"
)

type ProfileRepository interface {
	Save(ctx context.Context, tx Tx, p *model.Profile) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Profile, error)
	// ListByTenant returns profiles ordered by ascending price.
	// activeOnly restricts to profiles currently offered for sale.
	ListByTenant(ctx context.Context, tx Tx, tenantID string, activeOnly bool) ([]*model.Profile, error)
}

package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hotspot-ticketing/internal/domain"
	"hotspot-ticketing/internal/domain/model"
	"hotspot-ticketing/internal/domain/ports/repository"
)

// Compile-time check
var _ ProfileUseCase = (*profileUC)(nil)

// ProfileInput carries profile fields for create/update. Price is in minor
// currency units already; no float conversion happens anywhere.
type ProfileInput struct {
	Name            string
	Description     string
	MikrotikProfile string
	Price           int64
	Currency        string
	Duration        *int64
	DataLimit       *int64
	SpeedLimit      string
}

// ProfileUpdate applies only non-nil fields.
type ProfileUpdate struct {
	Name        *string
	Description *string
	Price       *int64
	Duration    *int64
	DataLimit   *int64
	SpeedLimit  *string
	IsActive    *bool
}

type ProfileUseCase interface {
	Create(ctx context.Context, actor Actor, tenantID string, in ProfileInput) (*model.Profile, error)
	Update(ctx context.Context, actor Actor, id string, upd ProfileUpdate) (*model.Profile, error)
	Get(ctx context.Context, id string) (*model.Profile, error)
	ListByTenant(ctx context.Context, actor Actor, tenantID string) ([]*model.Profile, error)
	// ListBySlug is the public storefront listing: active profiles only.
	ListBySlug(ctx context.Context, slug string) ([]*model.Profile, error)
}

type profileUC struct {
	profiles repository.ProfileRepository
	tenants  repository.TenantRepository
}

func NewProfileUseCase(profiles repository.ProfileRepository, tenants repository.TenantRepository) *profileUC {
	return &profileUC{profiles: profiles, tenants: tenants}
}

func (u *profileUC) Create(ctx context.Context, actor Actor, tenantID string, in ProfileInput) (*model.Profile, error) {
	tenant, err := u.tenants.FindByID(ctx, nil, tenantID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(tenant.UserID) {
		return nil, domain.ErrForbidden
	}
	currency := in.Currency
	if currency == "" {
		currency = "MXN"
	}
	p, err := model.NewProfile(uuid.NewString(), tenantID, in.Name, in.MikrotikProfile, in.Price, currency)
	if err != nil {
		return nil, err
	}
	p.Description = in.Description
	p.Duration = in.Duration
	p.DataLimit = in.DataLimit
	p.SpeedLimit = in.SpeedLimit
	if err := u.profiles.Save(ctx, nil, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (u *profileUC) Update(ctx context.Context, actor Actor, id string, upd ProfileUpdate) (*model.Profile, error) {
	p, err := u.profiles.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	tenant, err := u.tenants.FindByID(ctx, nil, p.TenantID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(tenant.UserID) {
		return nil, domain.ErrForbidden
	}

	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Price != nil {
		if *upd.Price <= 0 {
			return nil, domain.ErrInvalidArgument
		}
		p.Price = *upd.Price
	}
	if upd.Duration != nil {
		p.Duration = upd.Duration
	}
	if upd.DataLimit != nil {
		p.DataLimit = upd.DataLimit
	}
	if upd.SpeedLimit != nil {
		p.SpeedLimit = *upd.SpeedLimit
	}
	if upd.IsActive != nil {
		p.IsActive = *upd.IsActive
	}
	p.UpdatedAt = time.Now()

	if err := u.profiles.Save(ctx, nil, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (u *profileUC) Get(ctx context.Context, id string) (*model.Profile, error) {
	return u.profiles.FindByID(ctx, nil, id)
}

func (u *profileUC) ListByTenant(ctx context.Context, actor Actor, tenantID string) ([]*model.Profile, error) {
	tenant, err := u.tenants.FindByID(ctx, nil, tenantID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(tenant.UserID) {
		return nil, domain.ErrForbidden
	}
	return u.profiles.ListByTenant(ctx, nil, tenantID, false)
}

func (u *profileUC) ListBySlug(ctx context.Context, slug string) ([]*model.Profile, error) {
	tenant, err := u.tenants.FindBySlug(ctx, nil, slug)
	if err != nil {
		return nil, err
	}
	return u.profiles.ListByTenant(ctx, nil, tenant.ID, true)
}

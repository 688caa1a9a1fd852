package usecase

import (
	"context"

	"hotspot-ticketing/internal/domain"
	"hotspot-ticketing/internal/domain/model"
	"hotspot-ticketing/internal/domain/ports/adapter"
	"hotspot-ticketing/internal/domain/ports/repository"
)

// Compile-time check
var _ TenantUseCase = (*tenantUC)(nil)

type TenantUseCase interface {
	// GetBySlug serves the public captive-portal branding page.
	GetBySlug(ctx context.Context, slug string) (*model.Tenant, error)
	Get(ctx context.Context, actor Actor, id string) (*model.Tenant, error)
	UpdateRouterSettings(ctx context.Context, actor Actor, tenantID string, rs model.RouterSettings) error
	// TestRouter probes the tenant's router with the stored settings.
	TestRouter(ctx context.Context, actor Actor, tenantID string) error
}

type tenantUC struct {
	tenants repository.TenantRepository
	router  adapter.RouterProvisioner
}

func NewTenantUseCase(tenants repository.TenantRepository, router adapter.RouterProvisioner) *tenantUC {
	return &tenantUC{tenants: tenants, router: router}
}

func (u *tenantUC) GetBySlug(ctx context.Context, slug string) (*model.Tenant, error) {
	t, err := u.tenants.FindBySlug(ctx, nil, slug)
	if err != nil {
		return nil, err
	}
	if !t.IsActive {
		return nil, domain.ErrTenantInactive
	}
	return t, nil
}

func (u *tenantUC) Get(ctx context.Context, actor Actor, id string) (*model.Tenant, error) {
	t, err := u.tenants.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(t.UserID) {
		return nil, domain.ErrForbidden
	}
	return t, nil
}

func (u *tenantUC) UpdateRouterSettings(ctx context.Context, actor Actor, tenantID string, rs model.RouterSettings) error {
	t, err := u.tenants.FindByID(ctx, nil, tenantID)
	if err != nil {
		return err
	}
	if !actor.CanManage(t.UserID) {
		return domain.ErrForbidden
	}
	if rs.Host == "" || rs.Username == "" {
		return domain.ErrInvalidArgument
	}
	if rs.Port <= 0 {
		rs.Port = 8728
	}
	return u.tenants.UpdateRouterSettings(ctx, nil, tenantID, rs)
}

func (u *tenantUC) TestRouter(ctx context.Context, actor Actor, tenantID string) error {
	t, err := u.tenants.FindByID(ctx, nil, tenantID)
	if err != nil {
		return err
	}
	if !actor.CanManage(t.UserID) {
		return domain.ErrForbidden
	}
	if t.Router.IsZero() {
		return domain.ErrInvalidArgument
	}
	return u.router.TestConnection(ctx, t.Router)
}

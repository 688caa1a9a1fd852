package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"hotspot-ticketing/internal/domain"
	"hotspot-ticketing/internal/domain/model"
	"hotspot-ticketing/internal/domain/ports/adapter"
	"hotspot-ticketing/internal/domain/ports/repository"
)

// Compile-time check
var _ TicketUseCase = (*ticketUC)(nil)

type TicketUseCase interface {
	Get(ctx context.Context, actor Actor, id string) (*model.Ticket, error)
	ListByTenant(ctx context.Context, actor Actor, tenantID string, f repository.TicketFilter) ([]*model.Ticket, int, error)
	// Cancel best-effort removes the router account (errors logged, not
	// fatal), then marks the ticket CANCELLED. Cancellation always succeeds
	// from the store's perspective even if the device-side account lingers.
	Cancel(ctx context.Context, actor Actor, ticketID string) (*model.Ticket, error)
	// Revenue sums completed-transaction amounts for the tenant since the
	// start of the current period ("day", "week" or "month"), in minor units.
	Revenue(ctx context.Context, actor Actor, tenantID, period string) (int64, error)
}

type ticketUC struct {
	tickets repository.TicketRepository
	tenants repository.TenantRepository
	txns    repository.TransactionRepository
	router  adapter.RouterProvisioner
	log     *zerolog.Logger
}

func NewTicketUseCase(
	tickets repository.TicketRepository,
	tenants repository.TenantRepository,
	txns repository.TransactionRepository,
	router adapter.RouterProvisioner,
	logger *zerolog.Logger,
) *ticketUC {
	return &ticketUC{tickets: tickets, tenants: tenants, txns: txns, router: router, log: logger}
}

func (u *ticketUC) Get(ctx context.Context, actor Actor, id string) (*model.Ticket, error) {
	ticket, err := u.tickets.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	tenant, err := u.tenants.FindByID(ctx, nil, ticket.TenantID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(tenant.UserID) {
		return nil, domain.ErrForbidden
	}
	return ticket, nil
}

func (u *ticketUC) ListByTenant(ctx context.Context, actor Actor, tenantID string, f repository.TicketFilter) ([]*model.Ticket, int, error) {
	tenant, err := u.tenants.FindByID(ctx, nil, tenantID)
	if err != nil {
		return nil, 0, err
	}
	if !actor.CanManage(tenant.UserID) {
		return nil, 0, domain.ErrForbidden
	}
	if f.Limit <= 0 {
		f.Limit = 50
	}
	return u.tickets.ListByTenant(ctx, nil, tenantID, f)
}

func (u *ticketUC) Cancel(ctx context.Context, actor Actor, ticketID string) (*model.Ticket, error) {
	ticket, err := u.tickets.FindByID(ctx, nil, ticketID)
	if err != nil {
		return nil, err
	}
	tenant, err := u.tenants.FindByID(ctx, nil, ticket.TenantID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(tenant.UserID) {
		return nil, domain.ErrForbidden
	}
	if ticket.Status == model.TicketStatusCancelled {
		return ticket, nil
	}

	if ticket.Status == model.TicketStatusActive && !tenant.Router.IsZero() {
		if err := u.router.RemoveAccount(ctx, tenant.Router, ticket.Username); err != nil {
			// Known-accepted gap: the device-side account may linger.
			u.log.Warn().Err(err).
				Str("ticket_id", ticket.ID).
				Str("username", ticket.Username).
				Msg("cancel: router removal failed")
		}
	}

	if err := u.tickets.UpdateStatus(ctx, nil, ticket.ID, model.TicketStatusCancelled, nil, nil, nil); err != nil {
		return nil, err
	}
	ticket.Status = model.TicketStatusCancelled
	u.log.Info().Str("ticket_id", ticket.ID).Msg("cancel: ticket cancelled")
	return ticket, nil
}

func (u *ticketUC) Revenue(ctx context.Context, actor Actor, tenantID, period string) (int64, error) {
	switch period {
	case "day", "week", "month":
	default:
		return 0, fmt.Errorf("%w: unknown period %q", domain.ErrInvalidArgument, period)
	}
	tenant, err := u.tenants.FindByID(ctx, nil, tenantID)
	if err != nil {
		return 0, err
	}
	if !actor.CanManage(tenant.UserID) {
		return 0, domain.ErrForbidden
	}
	return u.txns.SumCompletedByPeriod(ctx, nil, tenantID, period)
}

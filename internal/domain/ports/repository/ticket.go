package repository

import (
	"context"
	"time"

	"hotspot-ticketing/internal/domain/model"
)

// TicketFilter narrows ListByTenant. Zero value lists everything.
type TicketFilter struct {
	Status model.TicketStatus
	Limit  int
	Offset int
}

type TicketRepository interface {
	Save(ctx context.Context, tx Tx, t *model.Ticket) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Ticket, error)
	ListByTenant(ctx context.Context, tx Tx, tenantID string, f TicketFilter) ([]*model.Ticket, int, error)
	// UpdateStatus sets the lifecycle columns. Nil time pointers leave the
	// stored value untouched.
	UpdateStatus(ctx context.Context, tx Tx, id string, status model.TicketStatus, purchasedAt, activatedAt, expiresAt *time.Time) error
	// ActivateIfPending flips the ticket ACTIVE only when its current status
	// is PENDING, returning whether this call claimed the transition. Guards
	// against the reconciler sweep and a concurrent verification both
	// activating the same ticket.
	ActivateIfPending(ctx context.Context, tx Tx, id string, purchasedAt, activatedAt, expiresAt *time.Time) (bool, error)
	// ListPaidUnprovisioned returns PENDING tickets whose transaction is
	// already COMPLETED: paid but not yet provisioned on the router.
	ListPaidUnprovisioned(ctx context.Context, tx Tx, limit int) ([]*model.Ticket, error)
}

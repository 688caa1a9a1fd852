package model

import (
	"time"

	"hotspot-ticketing/internal/domain"
)

type TicketStatus string

const (
	TicketStatusPending   TicketStatus = "PENDING"   // created at checkout, payment not yet confirmed (or paid but not provisioned)
	TicketStatusActive    TicketStatus = "ACTIVE"    // payment confirmed and router account created
	TicketStatusCancelled TicketStatus = "CANCELLED" // terminal
)

// Ticket is a single purchased access credential plus its lifecycle status.
//
// A ticket becomes ACTIVE only after its transaction is COMPLETED and the
// router account exists. A paid ticket whose provisioning failed stays
// PENDING so it can be retried; it is never silently lost.
type Ticket struct {
	ID            string // ULID
	TenantID      string
	ProfileID     string
	Username      string
	Password      string // plaintext, router-compatible credential
	Status        TicketStatus
	PurchaseEmail string
	UsedDataBytes int64
	CreatedAt     time.Time
	PurchasedAt   *time.Time
	ActivatedAt   *time.Time
	ExpiresAt     *time.Time
}

func (t *Ticket) IsZero() bool { return t == nil || t.ID == "" }

// NewTicket constructs a pending ticket for a checkout.
func NewTicket(id, tenantID, profileID, username, password, purchaseEmail string) (*Ticket, error) {
	if id == "" || tenantID == "" || profileID == "" || username == "" || password == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Ticket{
		ID:            id,
		TenantID:      tenantID,
		ProfileID:     profileID,
		Username:      username,
		Password:      password,
		Status:        TicketStatusPending,
		PurchaseEmail: purchaseEmail,
		CreatedAt:     time.Now(),
	}, nil
}

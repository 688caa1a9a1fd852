package model

import (
	"time"

	"hotspot-ticketing/internal/domain"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// Transaction is the payment record bound 1:1 to a ticket. It is created
// PENDING alongside the ticket and transitions to COMPLETED exactly once;
// the external session id is the idempotency key for reconciliation.
type Transaction struct {
	ID              string // UUID
	TenantID        string
	TicketID        string
	Amount          int64 // minor currency units
	Currency        string
	Status          TransactionStatus
	PaymentMethod   string // gateway name, e.g. "stripe"
	CustomerEmail   string
	SessionID       string // external checkout session id, set exactly once
	PaymentIntentID string // external payment intent id, set on completion
	CreatedAt       time.Time
	UpdatedAt       time.Time
	PaidAt          *time.Time
}

func (t *Transaction) IsZero() bool { return t == nil || t.ID == "" }

// NewTransaction constructs a pending transaction for a ticket.
func NewTransaction(id, tenantID, ticketID string, amount int64, currency, paymentMethod, customerEmail string) (*Transaction, error) {
	if id == "" || tenantID == "" || ticketID == "" {
		return nil, domain.ErrInvalidArgument
	}
	if amount <= 0 || currency == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &Transaction{
		ID:            id,
		TenantID:      tenantID,
		TicketID:      ticketID,
		Amount:        amount,
		Currency:      currency,
		Status:        TransactionStatusPending,
		PaymentMethod: paymentMethod,
		CustomerEmail: customerEmail,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

package adapter

import "context"

// CreateSessionParams describes one hosted checkout session for a single
// profile purchase. UnitAmount is in minor currency units.
type CreateSessionParams struct {
	ItemName      string
	Description   string
	UnitAmount    int64
	Currency      string
	SuccessURL    string // may contain the gateway's session-id placeholder
	CancelURL     string
	CustomerEmail string
	Metadata      map[string]string // must carry ticket and transaction ids
}

// Session is the provider-side checkout session handle.
type Session struct {
	ID          string
	RedirectURL string
}

// SessionStatus is the provider's current view of a session.
type SessionStatus struct {
	Paid            bool
	PaymentIntentID string
}

// WebhookEvent is a signature-verified gateway event.
type WebhookEvent struct {
	ID        string
	Type      string // e.g. "checkout.session.completed"
	SessionID string // set for checkout session events
}

// PaymentGateway is the port for the hosted-checkout payment provider.
// GetSession is always consulted for the authoritative payment state; a
// caller-supplied "paid" flag is never trusted.
type PaymentGateway interface {
	Name() string
	CreateSession(ctx context.Context, p CreateSessionParams) (Session, error)
	GetSession(ctx context.Context, sessionID string) (SessionStatus, error)
	// VerifyWebhook authenticates a raw payload against its signature header.
	// Returns domain.ErrSignatureInvalid on any verification failure; this
	// must propagate as a rejection, never be swallowed.
	VerifyWebhook(payload []byte, signatureHeader string) (WebhookEvent, error)
}

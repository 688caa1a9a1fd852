package payment

import (
	"context"
	"fmt"
	"sync"

	"hotspot-ticketing/internal/domain"
	"hotspot-ticketing/internal/domain/ports/adapter"
)

var _ adapter.PaymentGateway = (*NoopGateway)(nil)

// NoopGateway is a simple in-memory gateway for dev mode and tests.
// MarkPaid flips a session to paid so the full verify path can be exercised
// without touching Stripe.
type NoopGateway struct {
	mu       sync.Mutex
	seq      int64
	sessions map[string]bool // session id -> paid
}

func NewNoopGateway() *NoopGateway {
	return &NoopGateway{sessions: make(map[string]bool)}
}

func (g *NoopGateway) Name() string { return "noop" }

func (g *NoopGateway) CreateSession(ctx context.Context, p adapter.CreateSessionParams) (adapter.Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	id := fmt.Sprintf("noop_sess_%d", g.seq)
	g.sessions[id] = false
	return adapter.Session{ID: id, RedirectURL: "https://example.test/pay/" + id}, nil
}

func (g *NoopGateway) GetSession(ctx context.Context, sessionID string) (adapter.SessionStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	paid, ok := g.sessions[sessionID]
	if !ok {
		return adapter.SessionStatus{}, domain.ErrNotFound
	}
	return adapter.SessionStatus{Paid: paid, PaymentIntentID: "pi_" + sessionID}, nil
}

func (g *NoopGateway) MarkPaid(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sessions[sessionID] = true
}

func (g *NoopGateway) VerifyWebhook(payload []byte, signatureHeader string) (adapter.WebhookEvent, error) {
	if signatureHeader == "" {
		return adapter.WebhookEvent{}, domain.ErrSignatureInvalid
	}
	return adapter.WebhookEvent{ID: "noop_evt", Type: "checkout.session.completed", SessionID: signatureHeader}, nil
}

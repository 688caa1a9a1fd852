//go:build !integration

// File: internal/usecase/mocks_test.go
package usecase_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"hotspot-ticketing/internal/domain"
	"hotspot-ticketing/internal/domain/model"
	"hotspot-ticketing/internal/domain/ports/adapter"
	"hotspot-ticketing/internal/domain/ports/repository"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// ---------------- in-memory repositories ----------------

type memTenantRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Tenant
}

func newMemTenantRepo() *memTenantRepo {
	return &memTenantRepo{store: make(map[string]*model.Tenant)}
}

func (m *memTenantRepo) Save(ctx context.Context, tx repository.Tx, t *model.Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.store[t.ID] = &cp
	return nil
}

func (m *memTenantRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Tenant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memTenantRepo) FindBySlug(ctx context.Context, tx repository.Tx, slug string) (*model.Tenant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.store {
		if t.Slug == slug {
			cp := *t
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memTenantRepo) UpdateRouterSettings(ctx context.Context, tx repository.Tx, tenantID string, rs model.RouterSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.store[tenantID]
	if !ok {
		return domain.ErrNotFound
	}
	t.Router = rs
	return nil
}

type memProfileRepo struct {
	mu      sync.RWMutex
	store   map[string]*model.Profile
	saveErr error
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{store: make(map[string]*model.Profile)}
}

func (m *memProfileRepo) Save(ctx context.Context, tx repository.Tx, p *model.Profile) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.store[p.ID] = &cp
	return nil
}

func (m *memProfileRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memProfileRepo) ListByTenant(ctx context.Context, tx repository.Tx, tenantID string, activeOnly bool) ([]*model.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Profile
	for _, p := range m.store {
		if p.TenantID != tenantID {
			continue
		}
		if activeOnly && !p.IsActive {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out, nil
}

type memTicketRepo struct {
	mu      sync.RWMutex
	store   map[string]*model.Ticket
	saveErr error

	// paired transaction repo, used by ListPaidUnprovisioned
	txns *memTxnRepo
}

func newMemTicketRepo() *memTicketRepo {
	return &memTicketRepo{store: make(map[string]*model.Ticket)}
}

func (m *memTicketRepo) Save(ctx context.Context, tx repository.Tx, t *model.Ticket) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.store[t.ID] = &cp
	return nil
}

func (m *memTicketRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memTicketRepo) ListByTenant(ctx context.Context, tx repository.Tx, tenantID string, f repository.TicketFilter) ([]*model.Ticket, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var all []*model.Ticket
	for _, t := range m.store {
		if t.TenantID != tenantID {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		cp := *t
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := len(all)
	if f.Offset >= len(all) {
		return nil, total, nil
	}
	all = all[f.Offset:]
	if f.Limit > 0 && f.Limit < len(all) {
		all = all[:f.Limit]
	}
	return all, total, nil
}

func (m *memTicketRepo) UpdateStatus(ctx context.Context, tx repository.Tx, id string, status model.TicketStatus, purchasedAt, activatedAt, expiresAt *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.store[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.Status = status
	if purchasedAt != nil {
		t.PurchasedAt = purchasedAt
	}
	if activatedAt != nil {
		t.ActivatedAt = activatedAt
	}
	if expiresAt != nil {
		t.ExpiresAt = expiresAt
	}
	return nil
}

func (m *memTicketRepo) ActivateIfPending(ctx context.Context, tx repository.Tx, id string, purchasedAt, activatedAt, expiresAt *time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.store[id]
	if !ok || t.Status != model.TicketStatusPending {
		return false, nil
	}
	t.Status = model.TicketStatusActive
	if purchasedAt != nil {
		t.PurchasedAt = purchasedAt
	}
	if activatedAt != nil {
		t.ActivatedAt = activatedAt
	}
	if expiresAt != nil {
		t.ExpiresAt = expiresAt
	}
	return true, nil
}

func (m *memTicketRepo) ListPaidUnprovisioned(ctx context.Context, tx repository.Tx, limit int) ([]*model.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.txns == nil {
		return nil, nil
	}
	var out []*model.Ticket
	for _, t := range m.store {
		if t.Status != model.TicketStatusPending {
			continue
		}
		txn, err := m.txns.FindByTicketID(ctx, tx, t.ID)
		if err != nil || txn.Status != model.TransactionStatusCompleted {
			continue
		}
		cp := *t
		out = append(out, &cp)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

type memTxnRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Transaction
}

func newMemTxnRepo() *memTxnRepo {
	return &memTxnRepo{store: make(map[string]*model.Transaction)}
}

func (m *memTxnRepo) Save(ctx context.Context, tx repository.Tx, t *model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.store[t.ID] = &cp
	return nil
}

func (m *memTxnRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memTxnRepo) FindBySessionID(ctx context.Context, tx repository.Tx, sessionID string) (*model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.store {
		if t.SessionID == sessionID && sessionID != "" {
			cp := *t
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memTxnRepo) FindByTicketID(ctx context.Context, tx repository.Tx, ticketID string) (*model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.store {
		if t.TicketID == ticketID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memTxnRepo) SetSessionID(ctx context.Context, tx repository.Tx, id, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.store[id]
	if !ok {
		return domain.ErrNotFound
	}
	if t.SessionID != "" {
		return domain.ErrOperationFailed
	}
	t.SessionID = sessionID
	return nil
}

func (m *memTxnRepo) CompleteIfPending(ctx context.Context, tx repository.Tx, id, paymentIntentID string, paidAt time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.store[id]
	if !ok {
		return false, domain.ErrNotFound
	}
	if t.Status != model.TransactionStatusPending {
		return false, nil
	}
	t.Status = model.TransactionStatusCompleted
	t.PaymentIntentID = paymentIntentID
	t.PaidAt = &paidAt
	return true, nil
}

func (m *memTxnRepo) ListPendingOlderThan(ctx context.Context, tx repository.Tx, olderThan time.Time, limit int) ([]*model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Transaction
	for _, t := range m.store {
		if t.Status != model.TransactionStatusPending || t.SessionID == "" {
			continue
		}
		if t.CreatedAt.After(olderThan) {
			continue
		}
		cp := *t
		out = append(out, &cp)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (m *memTxnRepo) SumCompletedByPeriod(ctx context.Context, tx repository.Tx, tenantID, period string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sum int64
	for _, t := range m.store {
		if t.TenantID == tenantID && t.Status == model.TransactionStatusCompleted {
			sum += t.Amount
		}
	}
	return sum, nil
}

type mockTxManager struct{}

func (m *mockTxManager) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	return fn(ctx, nil)
}

// ---------------- adapter mocks ----------------

type mockGateway struct {
	mu       sync.Mutex
	sessions map[string]*adapter.SessionStatus
	created  int

	CreateSessionFunc func(ctx context.Context, p adapter.CreateSessionParams) (adapter.Session, error)
	VerifyWebhookFunc func(payload []byte, signatureHeader string) (adapter.WebhookEvent, error)
}

func newMockGateway() *mockGateway {
	return &mockGateway{sessions: make(map[string]*adapter.SessionStatus)}
}

func (g *mockGateway) Name() string { return "stripe" }

func (g *mockGateway) CreateSession(ctx context.Context, p adapter.CreateSessionParams) (adapter.Session, error) {
	if g.CreateSessionFunc != nil {
		return g.CreateSessionFunc(ctx, p)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.created++
	id := fmt.Sprintf("cs_test_%d", g.created)
	g.sessions[id] = &adapter.SessionStatus{}
	return adapter.Session{ID: id, RedirectURL: "https://checkout.example/" + id}, nil
}

func (g *mockGateway) GetSession(ctx context.Context, sessionID string) (adapter.SessionStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	st, ok := g.sessions[sessionID]
	if !ok {
		return adapter.SessionStatus{}, domain.ErrNotFound
	}
	return *st, nil
}

func (g *mockGateway) VerifyWebhook(payload []byte, signatureHeader string) (adapter.WebhookEvent, error) {
	if g.VerifyWebhookFunc != nil {
		return g.VerifyWebhookFunc(payload, signatureHeader)
	}
	return adapter.WebhookEvent{}, domain.ErrSignatureInvalid
}

// markPaid flips the provider-side session state to paid.
func (g *mockGateway) markPaid(sessionID, intentID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if st, ok := g.sessions[sessionID]; ok {
		st.Paid = true
		st.PaymentIntentID = intentID
	}
}

type mockRouter struct {
	mu       sync.Mutex
	accounts map[string]adapter.NewAccount
	creates  int
	removes  int

	CreateAccountFunc func(ctx context.Context, rs model.RouterSettings, acc adapter.NewAccount) (string, error)
	RemoveAccountFunc func(ctx context.Context, rs model.RouterSettings, username string) error
}

func newMockRouter() *mockRouter {
	return &mockRouter{accounts: make(map[string]adapter.NewAccount)}
}

func (r *mockRouter) CreateAccount(ctx context.Context, rs model.RouterSettings, acc adapter.NewAccount) (string, error) {
	r.mu.Lock()
	r.creates++
	r.mu.Unlock()
	if r.CreateAccountFunc != nil {
		return r.CreateAccountFunc(ctx, rs, acc)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[acc.Username] = acc
	return "*1", nil
}

func (r *mockRouter) RemoveAccount(ctx context.Context, rs model.RouterSettings, username string) error {
	r.mu.Lock()
	r.removes++
	r.mu.Unlock()
	if r.RemoveAccountFunc != nil {
		return r.RemoveAccountFunc(ctx, rs, username)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[username]; !ok {
		return domain.ErrNotFoundOnDevice
	}
	delete(r.accounts, username)
	return nil
}

func (r *mockRouter) TestConnection(ctx context.Context, rs model.RouterSettings) error {
	return nil
}

func (r *mockRouter) createCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.creates
}

type mockCreds struct {
	n int
}

func (c *mockCreds) Username() (string, error) {
	c.n++
	return fmt.Sprintf("hs-user-%d", c.n), nil
}

func (c *mockCreds) Password() (string, error) {
	return "pw-fixed", nil
}

type mockNotifier struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (n *mockNotifier) Notify(ctx context.Context, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.messages = append(n.messages, message)
	return nil
}

func (n *mockNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

type memDedupe struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newMemDedupe() *memDedupe { return &memDedupe{seen: make(map[string]bool)} }

func (d *memDedupe) Seen(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.seen[key] {
		return true, nil
	}
	d.seen[key] = true
	return false, nil
}

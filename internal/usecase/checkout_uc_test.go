//go:build !integration

// File: internal/usecase/checkout_uc_test.go
package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"hotspot-ticketing/internal/domain"
	"hotspot-ticketing/internal/domain/model"
	"hotspot-ticketing/internal/domain/ports/adapter"
	"hotspot-ticketing/internal/usecase"
)

type checkoutDeps struct {
	tenants  *memTenantRepo
	profiles *memProfileRepo
	tickets  *memTicketRepo
	txns     *memTxnRepo
	gateway  *mockGateway
	creds    *mockCreds
}

func newCheckoutDeps() *checkoutDeps {
	d := &checkoutDeps{
		tenants:  newMemTenantRepo(),
		profiles: newMemProfileRepo(),
		tickets:  newMemTicketRepo(),
		txns:     newMemTxnRepo(),
		gateway:  newMockGateway(),
		creds:    &mockCreds{},
	}
	d.tickets.txns = d.txns
	return d
}

func (d *checkoutDeps) uc() usecase.CheckoutUseCase {
	return usecase.NewCheckoutUseCase(
		d.profiles, d.tenants, d.tickets, d.txns, &mockTxManager{},
		d.gateway, d.creds, "https://portal.example.com", newTestLogger(),
	)
}

func seedTenantProfile(ctx context.Context, d *checkoutDeps) (*model.Tenant, *model.Profile) {
	tenant, _ := model.NewTenant("ten-1", "user-1", "Café Demo", "cafe-demo")
	tenant.Router = model.RouterSettings{Host: "192.168.88.1", Port: 8728, Username: "api", Password: "secret"}
	_ = d.tenants.Save(ctx, nil, tenant)

	oneHour := int64(3600)
	oneGB := int64(1 << 30)
	profile, _ := model.NewProfile("prof-1", tenant.ID, "1 Hora", "1hora", 2000, "MXN")
	profile.Duration = &oneHour
	profile.DataLimit = &oneGB
	_ = d.profiles.Save(ctx, nil, profile)
	return tenant, profile
}

func TestCheckoutUseCase_StartCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending ticket and transaction and opens a session", func(t *testing.T) {
		deps := newCheckoutDeps()
		_, profile := seedTenantProfile(ctx, deps)

		var gotParams adapter.CreateSessionParams
		deps.gateway.CreateSessionFunc = func(ctx context.Context, p adapter.CreateSessionParams) (adapter.Session, error) {
			gotParams = p
			return adapter.Session{ID: "cs_test_1", RedirectURL: "https://checkout.example/cs_test_1"}, nil
		}

		res, err := deps.uc().StartCheckout(ctx, profile.ID, "guest@example.com")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if res.SessionID != "cs_test_1" || res.SessionURL == "" {
			t.Fatalf("unexpected result: %+v", res)
		}

		ticket, err := deps.tickets.FindByID(ctx, nil, res.TicketID)
		if err != nil {
			t.Fatalf("ticket not saved: %v", err)
		}
		if ticket.Status != model.TicketStatusPending {
			t.Errorf("ticket status = %s, want PENDING", ticket.Status)
		}
		if ticket.Username == "" || ticket.Password == "" {
			t.Error("ticket credentials should be generated at checkout")
		}

		txn, err := deps.txns.FindByTicketID(ctx, nil, ticket.ID)
		if err != nil {
			t.Fatalf("transaction not saved: %v", err)
		}
		if txn.Status != model.TransactionStatusPending {
			t.Errorf("transaction status = %s, want PENDING", txn.Status)
		}
		if txn.Amount != 2000 || txn.Currency != "MXN" {
			t.Errorf("amount = %d %s, want 2000 MXN", txn.Amount, txn.Currency)
		}
		if txn.SessionID != "cs_test_1" {
			t.Errorf("session id not bound: %q", txn.SessionID)
		}

		// Session params must carry integer minor units and the correlation ids.
		if gotParams.UnitAmount != 2000 {
			t.Errorf("unit amount = %d, want 2000", gotParams.UnitAmount)
		}
		if gotParams.Metadata["ticketId"] != ticket.ID || gotParams.Metadata["transactionId"] != txn.ID {
			t.Errorf("metadata missing correlation ids: %+v", gotParams.Metadata)
		}
		if !strings.Contains(gotParams.SuccessURL, "cafe-demo") || !strings.Contains(gotParams.SuccessURL, "{CHECKOUT_SESSION_ID}") {
			t.Errorf("success url = %q", gotParams.SuccessURL)
		}
	})

	t.Run("rejects an inactive profile", func(t *testing.T) {
		deps := newCheckoutDeps()
		_, profile := seedTenantProfile(ctx, deps)
		profile.IsActive = false
		_ = deps.profiles.Save(ctx, nil, profile)

		_, err := deps.uc().StartCheckout(ctx, profile.ID, "")
		if !errors.Is(err, domain.ErrProfileInactive) {
			t.Fatalf("want ErrProfileInactive, got %v", err)
		}
	})

	t.Run("rejects an inactive tenant", func(t *testing.T) {
		deps := newCheckoutDeps()
		tenant, profile := seedTenantProfile(ctx, deps)
		tenant.IsActive = false
		_ = deps.tenants.Save(ctx, nil, tenant)

		_, err := deps.uc().StartCheckout(ctx, profile.ID, "")
		if !errors.Is(err, domain.ErrTenantInactive) {
			t.Fatalf("want ErrTenantInactive, got %v", err)
		}
	})

	t.Run("unknown profile is not found", func(t *testing.T) {
		deps := newCheckoutDeps()
		_, err := deps.uc().StartCheckout(ctx, "missing", "")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})

	t.Run("gateway failure surfaces and leaves the pair pending", func(t *testing.T) {
		deps := newCheckoutDeps()
		_, profile := seedTenantProfile(ctx, deps)
		deps.gateway.CreateSessionFunc = func(ctx context.Context, p adapter.CreateSessionParams) (adapter.Session, error) {
			return adapter.Session{}, errors.New("stripe down")
		}

		_, err := deps.uc().StartCheckout(ctx, profile.ID, "")
		if err == nil {
			t.Fatal("expected an error")
		}
		// The pair exists but has no session bound; the reconciler will not
		// touch it and it can be retried or expired later.
		for _, txn := range deps.txns.store {
			if txn.SessionID != "" {
				t.Errorf("no session should be bound, got %q", txn.SessionID)
			}
		}
	})
}

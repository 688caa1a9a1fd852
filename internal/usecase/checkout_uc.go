package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"hotspot-ticketing/internal/domain"
	"hotspot-ticketing/internal/domain/model"
	"hotspot-ticketing/internal/domain/ports/adapter"
	"hotspot-ticketing/internal/domain/ports/repository"
	"hotspot-ticketing/internal/infra/metrics"
)

// Compile-time check
var _ CheckoutUseCase = (*checkoutUC)(nil)

// CheckoutResult is what the payer's browser needs to proceed to payment.
type CheckoutResult struct {
	SessionID  string
	SessionURL string
	TicketID   string
}

type CheckoutUseCase interface {
	// StartCheckout creates a pending ticket/transaction pair for the
	// profile, opens a hosted payment session, and binds the session id to
	// the transaction.
	StartCheckout(ctx context.Context, profileID, customerEmail string) (*CheckoutResult, error)
}

type checkoutUC struct {
	profiles repository.ProfileRepository
	tenants  repository.TenantRepository
	tickets  repository.TicketRepository
	txns     repository.TransactionRepository
	tm       repository.TransactionManager
	gateway  adapter.PaymentGateway
	creds    adapter.CredentialGenerator
	baseURL  string // public frontend base, e.g. https://portal.example.com
	log      *zerolog.Logger
}

func NewCheckoutUseCase(
	profiles repository.ProfileRepository,
	tenants repository.TenantRepository,
	tickets repository.TicketRepository,
	txns repository.TransactionRepository,
	tm repository.TransactionManager,
	gateway adapter.PaymentGateway,
	creds adapter.CredentialGenerator,
	baseURL string,
	logger *zerolog.Logger,
) *checkoutUC {
	return &checkoutUC{
		profiles: profiles,
		tenants:  tenants,
		tickets:  tickets,
		txns:     txns,
		tm:       tm,
		gateway:  gateway,
		creds:    creds,
		baseURL:  baseURL,
		log:      logger,
	}
}

func (u *checkoutUC) StartCheckout(ctx context.Context, profileID, customerEmail string) (*CheckoutResult, error) {
	profile, err := u.profiles.FindByID(ctx, nil, profileID)
	if err != nil {
		return nil, err
	}
	if !profile.IsActive {
		return nil, domain.ErrProfileInactive
	}
	tenant, err := u.tenants.FindByID(ctx, nil, profile.TenantID)
	if err != nil {
		return nil, err
	}
	if !tenant.IsActive {
		return nil, domain.ErrTenantInactive
	}

	username, err := u.creds.Username()
	if err != nil {
		return nil, err
	}
	password, err := u.creds.Password()
	if err != nil {
		return nil, err
	}

	ticket, err := model.NewTicket(ulid.Make().String(), tenant.ID, profile.ID, username, password, customerEmail)
	if err != nil {
		return nil, err
	}
	txn, err := model.NewTransaction(uuid.NewString(), tenant.ID, ticket.ID, profile.Price, profile.Currency, u.gateway.Name(), customerEmail)
	if err != nil {
		return nil, err
	}

	// Ticket and transaction are one atomic unit: neither exists without
	// the other.
	err = u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		if err := u.tickets.Save(ctx, tx, ticket); err != nil {
			return err
		}
		return u.txns.Save(ctx, tx, txn)
	})
	if err != nil {
		return nil, err
	}

	session, err := u.gateway.CreateSession(ctx, adapter.CreateSessionParams{
		ItemName:      profile.Name,
		Description:   fmt.Sprintf("Acceso a Internet - %s", profile.Name),
		UnitAmount:    profile.Price,
		Currency:      profile.Currency,
		SuccessURL:    fmt.Sprintf("%s/hotspot/%s/success?session_id={CHECKOUT_SESSION_ID}", u.baseURL, tenant.Slug),
		CancelURL:     fmt.Sprintf("%s/hotspot/%s/plans", u.baseURL, tenant.Slug),
		CustomerEmail: customerEmail,
		Metadata: map[string]string{
			"ticketId":      ticket.ID,
			"transactionId": txn.ID,
			"tenantSlug":    tenant.Slug,
		},
	})
	if err != nil {
		u.log.Error().Err(err).Str("ticket_id", ticket.ID).Msg("checkout: payment session failed")
		return nil, err
	}

	if err := u.txns.SetSessionID(ctx, nil, txn.ID, session.ID); err != nil {
		return nil, err
	}

	metrics.CheckoutSessionStarted(u.gateway.Name())
	u.log.Info().
		Str("ticket_id", ticket.ID).
		Str("transaction_id", txn.ID).
		Str("session_id", session.ID).
		Int64("amount", txn.Amount).
		Str("currency", txn.Currency).
		Msg("checkout: session created")

	return &CheckoutResult{
		SessionID:  session.ID,
		SessionURL: session.RedirectURL,
		TicketID:   ticket.ID,
	}, nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"hotspot-ticketing/internal/domain"
	"hotspot-ticketing/internal/domain/model"
	"hotspot-ticketing/internal/domain/ports/adapter"
	"hotspot-ticketing/internal/domain/ports/repository"
	"hotspot-ticketing/internal/infra/metrics"
)

// Compile-time check
var _ ReconcileUseCase = (*reconcileUC)(nil)

// VerifyResult reports the outcome of a verification attempt. Success=false
// means nothing changed: the session is unpaid or was already reconciled.
// Success=true means the payment was claimed by this call; Ticket carries
// ACTIVE on full success or PENDING when provisioning failed and the
// credential is awaiting retry.
type VerifyResult struct {
	Success bool
	Status  model.TransactionStatus
	Ticket  *model.Ticket
}

type ReconcileUseCase interface {
	// VerifyAndActivate re-fetches the session from the gateway and, when
	// paid and not yet reconciled, completes the transaction and provisions
	// the router account. Idempotent: repeat calls are no-ops.
	VerifyAndActivate(ctx context.Context, sessionID string) (*VerifyResult, error)
	// HandleWebhook authenticates a gateway event and converges through the
	// same VerifyAndActivate path. Invalid signatures are rejected, never
	// processed.
	HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error
	// RetryProvisioning re-attempts router provisioning for paid tickets
	// still PENDING. Returns how many tickets went ACTIVE.
	RetryProvisioning(ctx context.Context, limit int) (int, error)
}

type reconcileUC struct {
	tickets  repository.TicketRepository
	txns     repository.TransactionRepository
	profiles repository.ProfileRepository
	tenants  repository.TenantRepository
	gateway  adapter.PaymentGateway
	router   adapter.RouterProvisioner
	dedupe   repository.DedupeStore // optional
	notifier adapter.OpsNotifier    // optional
	log      *zerolog.Logger
}

func NewReconcileUseCase(
	tickets repository.TicketRepository,
	txns repository.TransactionRepository,
	profiles repository.ProfileRepository,
	tenants repository.TenantRepository,
	gateway adapter.PaymentGateway,
	router adapter.RouterProvisioner,
	dedupe repository.DedupeStore,
	notifier adapter.OpsNotifier,
	logger *zerolog.Logger,
) *reconcileUC {
	return &reconcileUC{
		tickets:  tickets,
		txns:     txns,
		profiles: profiles,
		tenants:  tenants,
		gateway:  gateway,
		router:   router,
		dedupe:   dedupe,
		notifier: notifier,
		log:      logger,
	}
}

func (u *reconcileUC) VerifyAndActivate(ctx context.Context, sessionID string) (*VerifyResult, error) {
	txn, err := u.txns.FindBySessionID(ctx, nil, sessionID)
	if err != nil {
		return nil, err
	}

	// Always re-fetch from the gateway; the session id alone proves nothing.
	status, err := u.gateway.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !status.Paid || txn.Status != model.TransactionStatusPending {
		return &VerifyResult{Success: false, Status: txn.Status}, nil
	}

	now := time.Now()
	claimed, err := u.txns.CompleteIfPending(ctx, nil, txn.ID, status.PaymentIntentID, now)
	if err != nil {
		return nil, err
	}
	if !claimed {
		// A concurrent verification (webhook vs. success-page poll) won the
		// check-and-set; report the settled state without side effects.
		return &VerifyResult{Success: false, Status: model.TransactionStatusCompleted}, nil
	}
	metrics.PaymentCompleted(u.gateway.Name())

	ticket, err := u.tickets.FindByID(ctx, nil, txn.TicketID)
	if err != nil {
		return nil, err
	}
	profile, err := u.profiles.FindByID(ctx, nil, ticket.ProfileID)
	if err != nil {
		return nil, err
	}
	tenant, err := u.tenants.FindByID(ctx, nil, ticket.TenantID)
	if err != nil {
		return nil, err
	}

	expiresAt := profile.ExpiryFrom(now)
	if provErr := u.provision(ctx, tenant, profile, ticket); provErr != nil {
		// Payment is captured; the credential is retryable. The ticket stays
		// PENDING so the reconciler sweep or support can finish the job.
		u.log.Error().Err(provErr).
			Str("ticket_id", ticket.ID).
			Str("tenant", tenant.Slug).
			Msg("reconcile: provisioning failed, ticket left pending")
		metrics.TicketLeftUnprovisioned()
		if err := u.tickets.UpdateStatus(ctx, nil, ticket.ID, model.TicketStatusPending, &now, nil, nil); err != nil {
			return nil, err
		}
		ticket.Status = model.TicketStatusPending
		ticket.PurchasedAt = &now
		u.notifyUnprovisioned(ctx, tenant, ticket, provErr)
		return &VerifyResult{Success: true, Status: model.TransactionStatusCompleted, Ticket: ticket}, nil
	}

	if _, err := u.tickets.ActivateIfPending(ctx, nil, ticket.ID, &now, &now, expiresAt); err != nil {
		return nil, err
	}
	ticket.Status = model.TicketStatusActive
	ticket.PurchasedAt = &now
	ticket.ActivatedAt = &now
	ticket.ExpiresAt = expiresAt
	metrics.TicketActivated()

	u.log.Info().
		Str("ticket_id", ticket.ID).
		Str("tenant", tenant.Slug).
		Str("username", ticket.Username).
		Msg("reconcile: ticket activated")
	return &VerifyResult{Success: true, Status: model.TransactionStatusCompleted, Ticket: ticket}, nil
}

func (u *reconcileUC) provision(ctx context.Context, tenant *model.Tenant, profile *model.Profile, ticket *model.Ticket) error {
	if tenant.Router.IsZero() {
		return fmt.Errorf("tenant %s has no router settings: %w", tenant.Slug, domain.ErrProvisioning)
	}
	_, err := u.router.CreateAccount(ctx, tenant.Router, adapter.NewAccount{
		Username:    ticket.Username,
		Password:    ticket.Password,
		ProfileName: profile.MikrotikProfile,
		UptimeLimit: profile.Duration,
		ByteLimit:   profile.DataLimit,
		Comment:     "Ticket ID: " + ticket.ID,
	})
	return err
}

func (u *reconcileUC) notifyUnprovisioned(ctx context.Context, tenant *model.Tenant, ticket *model.Ticket, cause error) {
	if u.notifier == nil {
		return
	}
	msg := fmt.Sprintf("paid ticket %s (tenant %s) is not provisioned: %v", ticket.ID, tenant.Slug, cause)
	if err := u.notifier.Notify(ctx, msg); err != nil {
		u.log.Warn().Err(err).Str("ticket_id", ticket.ID).Msg("reconcile: ops notification failed")
	}
}

func (u *reconcileUC) RetryProvisioning(ctx context.Context, limit int) (int, error) {
	if limit <= 0 {
		limit = 100
	}
	pending, err := u.tickets.ListPaidUnprovisioned(ctx, nil, limit)
	if err != nil {
		return 0, err
	}

	activated := 0
	for _, ticket := range pending {
		profile, err := u.profiles.FindByID(ctx, nil, ticket.ProfileID)
		if err != nil {
			u.log.Error().Err(err).Str("ticket_id", ticket.ID).Msg("retry: profile lookup failed")
			continue
		}
		tenant, err := u.tenants.FindByID(ctx, nil, ticket.TenantID)
		if err != nil {
			u.log.Error().Err(err).Str("ticket_id", ticket.ID).Msg("retry: tenant lookup failed")
			continue
		}

		if err := u.provision(ctx, tenant, profile, ticket); err != nil {
			u.log.Warn().Err(err).
				Str("ticket_id", ticket.ID).
				Str("tenant", tenant.Slug).
				Msg("retry: provisioning still failing")
			continue
		}

		// Validity starts when the credential actually works, not when the
		// earlier attempt failed.
		now := time.Now()
		expiresAt := profile.ExpiryFrom(now)
		claimed, err := u.tickets.ActivateIfPending(ctx, nil, ticket.ID, nil, &now, expiresAt)
		if err != nil {
			u.log.Error().Err(err).Str("ticket_id", ticket.ID).Msg("retry: status update failed")
			continue
		}
		if !claimed {
			// A concurrent verification activated the ticket between the list
			// and this update; its timestamps stand.
			continue
		}
		metrics.TicketActivated()
		activated++
		u.log.Info().Str("ticket_id", ticket.ID).Str("tenant", tenant.Slug).Msg("retry: ticket activated")
	}
	return activated, nil
}

func (u *reconcileUC) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	event, err := u.gateway.VerifyWebhook(payload, signatureHeader)
	if err != nil {
		return err // fails closed
	}

	if u.dedupe != nil && event.ID != "" {
		seen, derr := u.dedupe.Seen(ctx, "webhook:event:"+event.ID, 24*time.Hour)
		if derr != nil {
			u.log.Warn().Err(derr).Str("event_id", event.ID).Msg("webhook: dedupe check failed")
		} else if seen {
			return nil
		}
	}

	switch event.Type {
	case "checkout.session.completed":
		if event.SessionID == "" {
			return nil
		}
		// Converge through the same path as the success-page poll so the
		// outcome does not depend on delivery order.
		if _, err := u.VerifyAndActivate(ctx, event.SessionID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Session from another environment; acknowledge it.
				u.log.Debug().Str("session_id", event.SessionID).Msg("webhook: unknown session")
				return nil
			}
			return err
		}
	default:
		u.log.Debug().Str("type", event.Type).Msg("webhook: unhandled event type")
	}
	return nil
}

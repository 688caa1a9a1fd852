// File: internal/infra/web/handlers_public.go
package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hotspot-ticketing/internal/domain"
	"hotspot-ticketing/internal/infra/metrics"
	red "hotspot-ticketing/internal/infra/redis"
)

// handleTenantBySlug serves the captive-portal storefront: branding plus the
// active profiles, nothing tenant-internal.
func (s *Server) handleTenantBySlug(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	tenant, err := s.tenantUC.GetBySlug(ctx, slug)
	if err != nil {
		writeError(w, err)
		return
	}
	profiles, err := s.profileUC.ListBySlug(ctx, slug)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Tenant   tenantDTO    `json:"tenant"`
		Profiles []profileDTO `json:"profiles"`
	}{
		Tenant:   toTenantDTO(tenant),
		Profiles: toProfileDTOs(profiles),
	})
}

type checkoutRequest struct {
	ProfileID string `json:"profile_id"`
	Email     string `json:"email"`
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, red.CheckoutKey(r.RemoteAddr), s.checkoutPerMin, time.Minute)
		if err != nil {
			// Redis being down must not take checkout down with it.
			s.log.Warn().Err(err).Msg("checkout: rate limiter unavailable")
		} else if !allowed {
			writeJSON(w, http.StatusTooManyRequests, errBody("too many checkout attempts"))
			return
		}
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody("invalid request body"))
		return
	}
	if req.ProfileID == "" {
		writeJSON(w, http.StatusBadRequest, errBody("profile_id is required"))
		return
	}

	result, err := s.checkoutUC.StartCheckout(ctx, req.ProfileID, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		SessionID  string `json:"session_id"`
		SessionURL string `json:"session_url"`
		TicketID   string `json:"ticket_id"`
	}{
		SessionID:  result.SessionID,
		SessionURL: result.SessionURL,
		TicketID:   result.TicketID,
	})
}

// handleVerify is polled by the success page. It drives the same
// reconciliation path as the webhook; whichever arrives first wins and the
// loser sees success=false with the settled status.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "sessionID")

	result, err := s.reconcileUC.VerifyAndActivate(ctx, sessionID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := struct {
		Success bool       `json:"success"`
		Status  string     `json:"status"`
		Ticket  *ticketDTO `json:"ticket,omitempty"`
	}{
		Success: result.Success,
		Status:  string(result.Status),
	}
	if result.Ticket != nil {
		dto := toTicketDTO(result.Ticket)
		resp.Ticket = &dto
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleStripeWebhook verifies the event signature before anything else.
// Unverifiable payloads are rejected outright; processing errors return 500
// so the gateway redelivers.
func (s *Server) handleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errBody("unreadable payload"))
		return
	}

	if err := s.reconcileUC.HandleWebhook(ctx, payload, r.Header.Get("Stripe-Signature")); err != nil {
		if errors.Is(err, domain.ErrSignatureInvalid) {
			metrics.WebhookEvent("invalid_signature")
		}
		writeError(w, err)
		return
	}
	metrics.WebhookEvent("ok")
	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}

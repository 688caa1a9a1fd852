// File: internal/infra/web/server.go
package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	red "hotspot-ticketing/internal/infra/redis"
	"hotspot-ticketing/internal/usecase"
)

// Server owns the HTTP surface: the public captive-portal API, the Stripe
// webhook endpoint, and the JWT-guarded admin API.
type Server struct {
	tenantUC    usecase.TenantUseCase
	profileUC   usecase.ProfileUseCase
	checkoutUC  usecase.CheckoutUseCase
	reconcileUC usecase.ReconcileUseCase
	ticketUC    usecase.TicketUseCase

	limiter          *red.RateLimiter // nil disables checkout rate limiting
	checkoutPerMin   int
	jwtSecret        string
	log              *zerolog.Logger
}

func NewServer(
	tenantUC usecase.TenantUseCase,
	profileUC usecase.ProfileUseCase,
	checkoutUC usecase.CheckoutUseCase,
	reconcileUC usecase.ReconcileUseCase,
	ticketUC usecase.TicketUseCase,
	limiter *red.RateLimiter,
	checkoutPerMin int,
	jwtSecret string,
	logger *zerolog.Logger,
) *Server {
	if checkoutPerMin <= 0 {
		checkoutPerMin = 10
	}
	return &Server{
		tenantUC:       tenantUC,
		profileUC:      profileUC,
		checkoutUC:     checkoutUC,
		reconcileUC:    reconcileUC,
		ticketUC:       ticketUC,
		limiter:        limiter,
		checkoutPerMin: checkoutPerMin,
		jwtSecret:      jwtSecret,
		log:            logger,
	}
}

// Routes builds the router. Mounted at root by the composition layer.
func (s *Server) Routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/tenants/{slug}", s.handleTenantBySlug)
		r.Post("/checkout", s.handleCheckout)
		r.Get("/checkout/verify/{sessionID}", s.handleVerify)
	})

	r.Post("/api/webhooks/stripe", s.handleStripeWebhook)

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Get("/tenants/{tenantID}", s.handleTenantGet)
		r.Put("/tenants/{tenantID}/router", s.handleRouterUpdate)
		r.Post("/tenants/{tenantID}/router/test", s.handleRouterTest)
		r.Get("/tenants/{tenantID}/profiles", s.handleProfileList)
		r.Post("/tenants/{tenantID}/profiles", s.handleProfileCreate)
		r.Put("/profiles/{profileID}", s.handleProfileUpdate)
		r.Get("/tenants/{tenantID}/tickets", s.handleTicketList)
		r.Get("/tenants/{tenantID}/stats/revenue", s.handleRevenue)
		r.Get("/tickets/{ticketID}", s.handleTicketGet)
		r.Post("/tickets/{ticketID}/cancel", s.handleTicketCancel)
	})

	return r
}

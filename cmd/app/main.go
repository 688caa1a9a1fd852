// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hotspot-ticketing/internal/config"
	"hotspot-ticketing/internal/domain/ports/adapter"
	"hotspot-ticketing/internal/domain/ports/repository"
	"hotspot-ticketing/internal/infra/adapters/mikrotik"
	payAdapters "hotspot-ticketing/internal/infra/adapters/payment"
	tele "hotspot-ticketing/internal/infra/adapters/telegram"
	pg "hotspot-ticketing/internal/infra/db/postgres"
	"hotspot-ticketing/internal/infra/logging"
	"hotspot-ticketing/internal/infra/metrics"
	red "hotspot-ticketing/internal/infra/redis"
	"hotspot-ticketing/internal/infra/sched"
	"hotspot-ticketing/internal/infra/security"
	"hotspot-ticketing/internal/infra/web"
	"hotspot-ticketing/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (noop gateway/router fallbacks)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("dev mode enabled")
	}
	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	// ---- Redis (optional: checkout still works without it) ----
	var (
		rateLimiter *red.RateLimiter
		dedupe      *red.DedupeStore
	)
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		rateLimiter = red.NewRateLimiter(redisClient)
		dedupe = red.NewDedupeStore(redisClient)
	} else {
		logger.Warn().Msg("redis.url not set; rate limiting and webhook dedupe disabled")
	}

	// ---- Repositories ----
	tm := pg.NewTxManager(pool)
	tenantRepo := pg.NewTenantRepo(pool)
	profileRepo := pg.NewProfileRepo(pool)
	ticketRepo := pg.NewTicketRepo(pool)
	txnRepo := pg.NewTransactionRepo(pool)

	// ---- Payment gateway ----
	var gateway adapter.PaymentGateway
	if cfg.Stripe.SecretKey != "" {
		gateway, err = payAdapters.NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)
		if err != nil {
			logger.Fatal().Err(err).Msg("stripe gateway")
		}
	} else {
		logger.Warn().Msg("stripe.secret_key not set; using noop gateway")
		gateway = payAdapters.NewNoopGateway()
	}

	// ---- Router provisioner ----
	var router adapter.RouterProvisioner
	if cfg.Runtime.Dev {
		router = mikrotik.NewNoopProvisioner(*logger)
	} else {
		router = mikrotik.NewProvisioner()
	}

	// ---- Ops notifier ----
	var notifier adapter.OpsNotifier
	if cfg.Notify.TelegramToken != "" && cfg.Notify.TelegramChatID != 0 {
		notifier, err = tele.NewNotifier(cfg.Notify.TelegramToken, cfg.Notify.TelegramChatID, *logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("telegram notifier")
		}
	} else {
		notifier = tele.NewNoopNotifier(*logger)
	}

	creds := security.NewCredentialService("hotspot")

	// ---- Use cases ----
	tenantUC := usecase.NewTenantUseCase(tenantRepo, router)
	profileUC := usecase.NewProfileUseCase(profileRepo, tenantRepo)
	checkoutUC := usecase.NewCheckoutUseCase(
		profileRepo, tenantRepo, ticketRepo, txnRepo, tm,
		gateway, creds, cfg.Server.FrontendURL, logger,
	)
	// A nil *DedupeStore must stay a nil interface inside the use case.
	var dedupeStore repository.DedupeStore
	if dedupe != nil {
		dedupeStore = dedupe
	}
	reconcileUC := usecase.NewReconcileUseCase(
		ticketRepo, txnRepo, profileRepo, tenantRepo,
		gateway, router, dedupeStore, notifier, logger,
	)
	ticketUC := usecase.NewTicketUseCase(ticketRepo, tenantRepo, txnRepo, router, logger)

	// ---- HTTP server ----
	srv := web.NewServer(
		tenantUC, profileUC, checkoutUC, reconcileUC, ticketUC,
		rateLimiter, cfg.RateLimit.CheckoutPerMinute, cfg.Auth.JWTSecret, logger,
	)
	mux := srv.Routes()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server")
		}
	}()

	// ---- Reconciliation sweep ----
	reconciler := sched.NewProvisioningReconciler(
		reconcileUC, txnRepo,
		cfg.Reconciler.Interval, cfg.Reconciler.StaleAfter, logger,
	)
	go reconciler.Start(ctx)

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
}

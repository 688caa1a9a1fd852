// File: internal/infra/sched/provisioning_reconciler.go
package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"hotspot-ticketing/internal/domain/ports/repository"
	"hotspot-ticketing/internal/usecase"
)

// ProvisioningReconciler periodically finishes work the request path could
// not: stale PENDING transactions get re-verified against the gateway (the
// success page was never loaded, or the webhook was lost), and paid tickets
// stuck unprovisioned get their router account retried.
type ProvisioningReconciler struct {
	uc         usecase.ReconcileUseCase
	txns       repository.TransactionRepository
	interval   time.Duration
	staleAfter time.Duration
	log        *zerolog.Logger
}

func NewProvisioningReconciler(
	uc usecase.ReconcileUseCase,
	txns repository.TransactionRepository,
	interval, staleAfter time.Duration,
	logger *zerolog.Logger,
) *ProvisioningReconciler {
	if interval <= 0 {
		interval = time.Minute
	}
	if staleAfter <= 0 {
		staleAfter = 10 * time.Minute
	}
	return &ProvisioningReconciler{
		uc:         uc,
		txns:       txns,
		interval:   interval,
		staleAfter: staleAfter,
		log:        logger,
	}
}

func (w *ProvisioningReconciler) Start(ctx context.Context) {
	t := time.NewTicker(w.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			w.tick(ctx)
		}
	}
}

// RunOnce performs a single sweep outside the ticker loop.
func (w *ProvisioningReconciler) RunOnce(ctx context.Context) {
	w.tick(ctx)
}

func (w *ProvisioningReconciler) tick(ctx context.Context) {
	w.sweepStaleTransactions(ctx)
	w.sweepUnprovisioned(ctx)
}

func (w *ProvisioningReconciler) sweepStaleTransactions(ctx context.Context) {
	cutoff := time.Now().Add(-w.staleAfter)
	pending, err := w.txns.ListPendingOlderThan(ctx, nil, cutoff, 200)
	if err != nil {
		w.log.Error().Err(err).Msg("reconciler: list stale transactions failed")
		return
	}
	for _, txn := range pending {
		if txn.SessionID == "" {
			continue
		}
		res, err := w.uc.VerifyAndActivate(ctx, txn.SessionID)
		if err != nil {
			w.log.Warn().Err(err).
				Str("transaction_id", txn.ID).
				Str("session_id", txn.SessionID).
				Msg("reconciler: verify failed")
			continue
		}
		if res.Success {
			w.log.Info().Str("transaction_id", txn.ID).Msg("reconciler: stale transaction settled")
		}
	}
}

func (w *ProvisioningReconciler) sweepUnprovisioned(ctx context.Context) {
	n, err := w.uc.RetryProvisioning(ctx, 100)
	if err != nil {
		w.log.Error().Err(err).Msg("reconciler: retry provisioning failed")
		return
	}
	if n > 0 {
		w.log.Info().Int("activated", n).Msg("reconciler: recovered unprovisioned tickets")
	}
}

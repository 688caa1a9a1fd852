// File: internal/infra/adapters/telegram/noop_notifier.go
package telegram

import (
	"context"

	"github.com/rs/zerolog"

	"hotspot-ticketing/internal/domain/ports/adapter"
)

var _ adapter.OpsNotifier = (*NoopNotifier)(nil)

// NoopNotifier logs alerts instead of sending them. Used when no Telegram
// token is configured.
type NoopNotifier struct {
	logger zerolog.Logger
}

func NewNoopNotifier(logger zerolog.Logger) *NoopNotifier {
	return &NoopNotifier{logger: logger}
}

func (n *NoopNotifier) Notify(ctx context.Context, message string) error {
	n.logger.Warn().Str("message", message).Msg("ops notification (noop)")
	return nil
}

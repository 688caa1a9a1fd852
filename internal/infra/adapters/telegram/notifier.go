// File: internal/infra/adapters/telegram/notifier.go
package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"hotspot-ticketing/internal/domain/ports/adapter"
)

var _ adapter.OpsNotifier = (*Notifier)(nil)

// Notifier pushes operational alerts (paid tickets stuck unprovisioned,
// reconciler failures) to a Telegram chat watched by operators.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger zerolog.Logger
}

func NewNotifier(token string, chatID int64, logger zerolog.Logger) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Notifier{bot: bot, chatID: chatID, logger: logger}, nil
}

func (n *Notifier) Notify(ctx context.Context, message string) error {
	msg := tgbotapi.NewMessage(n.chatID, message)
	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error().Err(err).Msg("failed to send ops notification")
		return err
	}
	return nil
}

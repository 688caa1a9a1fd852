// File: internal/infra/adapters/mikrotik/noop.go
package mikrotik

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"hotspot-ticketing/internal/domain"
	"hotspot-ticketing/internal/domain/model"
	"hotspot-ticketing/internal/domain/ports/adapter"
)

var _ adapter.RouterProvisioner = (*NoopProvisioner)(nil)

// NoopProvisioner records accounts in memory instead of dialing a router.
// Used in dev mode when no physical device is reachable.
type NoopProvisioner struct {
	logger zerolog.Logger

	mu       sync.Mutex
	accounts map[string]adapter.NewAccount
}

func NewNoopProvisioner(logger zerolog.Logger) *NoopProvisioner {
	return &NoopProvisioner{
		logger:   logger,
		accounts: make(map[string]adapter.NewAccount),
	}
}

func (n *NoopProvisioner) CreateAccount(ctx context.Context, rs model.RouterSettings, acc adapter.NewAccount) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.accounts[acc.Username] = acc
	n.logger.Info().Str("username", acc.Username).Str("profile", acc.ProfileName).Msg("noop router: account created")
	return "*" + acc.Username, nil
}

func (n *NoopProvisioner) RemoveAccount(ctx context.Context, rs model.RouterSettings, username string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.accounts[username]; !ok {
		return domain.ErrNotFoundOnDevice
	}
	delete(n.accounts, username)
	n.logger.Info().Str("username", username).Msg("noop router: account removed")
	return nil
}

func (n *NoopProvisioner) TestConnection(ctx context.Context, rs model.RouterSettings) error {
	return nil
}

package adapter

import (
	"context"

	"hotspot-ticketing/internal/domain/model"
)

// NewAccount describes one hotspot user to create on the router.
// Nil limits mean unlimited and must be omitted from the device call,
// never sent as zero.
type NewAccount struct {
	Username    string
	Password    string
	ProfileName string // router-side hotspot profile
	UptimeLimit *int64 // seconds
	ByteLimit   *int64 // total bytes
	Comment     string
}

// RouterProvisioner is the port for router-side account management.
//
// Every call connects to the tenant's router, performs exactly one account
// mutation, and releases the connection on all exit paths. A timeout or
// connection failure is domain.ErrProvisioning, never success.
type RouterProvisioner interface {
	// CreateAccount returns the device-assigned id of the new hotspot user.
	CreateAccount(ctx context.Context, rs model.RouterSettings, acc NewAccount) (string, error)
	// RemoveAccount deletes the hotspot user by name. Returns
	// domain.ErrNotFoundOnDevice when no such account exists.
	RemoveAccount(ctx context.Context, rs model.RouterSettings, username string) error
	TestConnection(ctx context.Context, rs model.RouterSettings) error
}

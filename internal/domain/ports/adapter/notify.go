package adapter

import "context"

// OpsNotifier pushes operational alerts to whoever handles support.
// Used for the one tolerated inconsistency: payment captured but router
// provisioning failed, leaving the ticket PENDING for manual retry.
// Delivery is best effort; failures are logged, never propagated.
type OpsNotifier interface {
	Notify(ctx context.Context, message string) error
}

package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound            = errors.New("entity not found")
	ErrForbidden           = errors.New("forbidden")
	ErrAlreadyExists       = errors.New("entity already exists")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrProfileInactive     = errors.New("profile is not active")
	ErrTenantInactive      = errors.New("tenant is not active")
	ErrTicketCancelled     = errors.New("ticket is cancelled")
	ErrPaymentNotConfirmed = errors.New("payment is not confirmed")

	// External capability errors
	ErrProvisioning     = errors.New("router provisioning failed")
	ErrNotFoundOnDevice = errors.New("account not found on device")
	ErrSignatureInvalid = errors.New("webhook signature verification failed")

	// Storage-layer errors
	ErrOperationFailed    = errors.New("operation failed")
	ErrReadDatabaseRow    = errors.New("failed to read database row")
	ErrInvalidExecContext = errors.New("invalid execution context")
)

package model

import (
	"time"

	"hotspot-ticketing/internal/domain"
)

// RouterSettings holds per-tenant MikroTik API connection parameters.
// The API password is stored as configured by the tenant; transport security
// is the useSSL flag (API-SSL on port 8729).
type RouterSettings struct {
	Host      string
	Port      int
	Username  string
	Password  string
	UseSSL    bool
	TimeoutMs int
}

func (s RouterSettings) IsZero() bool { return s.Host == "" }

// Timeout returns the dial/IO timeout, falling back to the 5s default.
func (s RouterSettings) Timeout() time.Duration {
	if s.TimeoutMs <= 0 {
		return 5 * time.Second
	}
	return time.Duration(s.TimeoutMs) * time.Millisecond
}

// Tenant is a business selling hotspot access: a captive-portal brand plus
// the router its tickets are provisioned on.
type Tenant struct {
	ID             string // UUID
	UserID         string // owning account (auth layer, opaque here)
	BusinessName   string
	Slug           string // unique, public URL key
	Logo           string
	PrimaryColor   string
	SecondaryColor string
	IsActive       bool
	Router         RouterSettings
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewTenant validates and constructs a tenant.
func NewTenant(id, userID, businessName, slug string) (*Tenant, error) {
	if id == "" || userID == "" || businessName == "" || slug == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &Tenant{
		ID:           id,
		UserID:       userID,
		BusinessName: businessName,
		Slug:         slug,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

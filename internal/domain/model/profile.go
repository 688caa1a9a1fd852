package model

import (
	"time"

	"hotspot-ticketing/internal/domain"
)

// Profile is a tenant-defined service plan mapped to a router-side hotspot
// profile. Price is an integer in minor currency units; Duration and
// DataLimit are optional (nil means unlimited).
type Profile struct {
	ID              string // UUID
	TenantID        string
	Name            string
	Description     string
	MikrotikProfile string // /ip/hotspot/user/profile name on the router
	Price           int64  // minor currency units
	Currency        string // ISO code, e.g. "MXN"
	Duration        *int64 // seconds; nil = unlimited
	DataLimit       *int64 // bytes; nil = unlimited
	SpeedLimit      string // opaque rate descriptor, e.g. "5M/5M"
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (p *Profile) IsZero() bool { return p == nil || p.ID == "" }

// ExpiryFrom computes the expiry for a ticket activated at t.
// Returns nil for unlimited profiles.
func (p *Profile) ExpiryFrom(t time.Time) *time.Time {
	if p.Duration == nil || *p.Duration <= 0 {
		return nil
	}
	exp := t.Add(time.Duration(*p.Duration) * time.Second)
	return &exp
}

// NewProfile validates and constructs a profile.
func NewProfile(id, tenantID, name, mikrotikProfile string, price int64, currency string) (*Profile, error) {
	if id == "" || tenantID == "" || name == "" || mikrotikProfile == "" {
		return nil, domain.ErrInvalidArgument
	}
	if price <= 0 || currency == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &Profile{
		ID:              id,
		TenantID:        tenantID,
		Name:            name,
		MikrotikProfile: mikrotikProfile,
		Price:           price,
		Currency:        currency,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

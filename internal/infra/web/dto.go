// File: internal/infra/web/dto.go
package web

import (
	"strconv"
	"time"

	"hotspot-ticketing/internal/domain/model"
)

// Wire shapes for the public and admin APIs. Byte counts travel as decimal
// strings so clients without 64-bit integers cannot corrupt them; unlimited
// limits are omitted, never rendered as zero.

type tenantDTO struct {
	ID             string `json:"id"`
	BusinessName   string `json:"business_name"`
	Slug           string `json:"slug"`
	Logo           string `json:"logo,omitempty"`
	PrimaryColor   string `json:"primary_color,omitempty"`
	SecondaryColor string `json:"secondary_color,omitempty"`
}

type profileDTO struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Price           int64   `json:"price"`
	Currency        string  `json:"currency"`
	DurationSeconds *int64  `json:"duration_seconds,omitempty"`
	DataLimit       *string `json:"data_limit,omitempty"`
	SpeedLimit      string  `json:"speed_limit,omitempty"`
	IsActive        bool    `json:"is_active"`
}

type ticketDTO struct {
	ID            string     `json:"id"`
	ProfileID     string     `json:"profile_id"`
	Username      string     `json:"username"`
	Password      string     `json:"password"`
	Status        string     `json:"status"`
	UsedDataBytes string     `json:"used_data_bytes"`
	CreatedAt     time.Time  `json:"created_at"`
	PurchasedAt   *time.Time `json:"purchased_at,omitempty"`
	ActivatedAt   *time.Time `json:"activated_at,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

func toTenantDTO(t *model.Tenant) tenantDTO {
	return tenantDTO{
		ID:             t.ID,
		BusinessName:   t.BusinessName,
		Slug:           t.Slug,
		Logo:           t.Logo,
		PrimaryColor:   t.PrimaryColor,
		SecondaryColor: t.SecondaryColor,
	}
}

func toProfileDTO(p *model.Profile) profileDTO {
	dto := profileDTO{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		Currency:        p.Currency,
		DurationSeconds: p.Duration,
		SpeedLimit:      p.SpeedLimit,
		IsActive:        p.IsActive,
	}
	if p.DataLimit != nil {
		s := strconv.FormatInt(*p.DataLimit, 10)
		dto.DataLimit = &s
	}
	return dto
}

func toProfileDTOs(ps []*model.Profile) []profileDTO {
	out := make([]profileDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProfileDTO(p))
	}
	return out
}

func toTicketDTO(t *model.Ticket) ticketDTO {
	return ticketDTO{
		ID:            t.ID,
		ProfileID:     t.ProfileID,
		Username:      t.Username,
		Password:      t.Password,
		Status:        string(t.Status),
		UsedDataBytes: strconv.FormatInt(t.UsedDataBytes, 10),
		CreatedAt:     t.CreatedAt,
		PurchasedAt:   t.PurchasedAt,
		ActivatedAt:   t.ActivatedAt,
		ExpiresAt:     t.ExpiresAt,
	}
}

func toTicketDTOs(ts []*model.Ticket) []ticketDTO {
	out := make([]ticketDTO, 0, len(ts))
	for _, t := range ts {
		out = append(out, toTicketDTO(t))
	}
	return out
}

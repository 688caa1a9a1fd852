// File: internal/infra/web/handlers_admin.go
package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hotspot-ticketing/internal/domain/model"
	"hotspot-ticketing/internal/domain/ports/repository"
	"hotspot-ticketing/internal/usecase"
)

func (s *Server) handleTenantGet(w http.ResponseWriter, r *http.Request) {
	tenant, err := s.tenantUC.Get(r.Context(), actorFrom(r), chi.URLParam(r, "tenantID"))
	if err != nil {
		writeError(w, err)
		return
	}
	// Admin view includes router host but never the API password.
	writeJSON(w, http.StatusOK, struct {
		Tenant     tenantDTO `json:"tenant"`
		RouterHost string    `json:"router_host,omitempty"`
		RouterPort int       `json:"router_port,omitempty"`
		IsActive   bool      `json:"is_active"`
	}{
		Tenant:     toTenantDTO(tenant),
		RouterHost: tenant.Router.Host,
		RouterPort: tenant.Router.Port,
		IsActive:   tenant.IsActive,
	})
}

type routerUpdateRequest struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	UseSSL    bool   `json:"use_ssl"`
	TimeoutMs int    `json:"timeout_ms"`
}

func (s *Server) handleRouterUpdate(w http.ResponseWriter, r *http.Request) {
	var req routerUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody("invalid request body"))
		return
	}
	rs := model.RouterSettings{
		Host:      req.Host,
		Port:      req.Port,
		Username:  req.Username,
		Password:  req.Password,
		UseSSL:    req.UseSSL,
		TimeoutMs: req.TimeoutMs,
	}
	if err := s.tenantUC.UpdateRouterSettings(r.Context(), actorFrom(r), chi.URLParam(r, "tenantID"), rs); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"updated": true})
}

func (s *Server) handleRouterTest(w http.ResponseWriter, r *http.Request) {
	if err := s.tenantUC.TestRouter(r.Context(), actorFrom(r), chi.URLParam(r, "tenantID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"connected": true})
}

func (s *Server) handleProfileList(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.profileUC.ListByTenant(r.Context(), actorFrom(r), chi.URLParam(r, "tenantID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Data []profileDTO `json:"data"`
	}{Data: toProfileDTOs(profiles)})
}

type profileCreateRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	MikrotikProfile string `json:"mikrotik_profile"`
	Price           int64  `json:"price"`
	Currency        string `json:"currency"`
	DurationSeconds *int64 `json:"duration_seconds"`
	DataLimit       *int64 `json:"data_limit"`
	SpeedLimit      string `json:"speed_limit"`
}

func (s *Server) handleProfileCreate(w http.ResponseWriter, r *http.Request) {
	var req profileCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody("invalid request body"))
		return
	}
	profile, err := s.profileUC.Create(r.Context(), actorFrom(r), chi.URLParam(r, "tenantID"), usecase.ProfileInput{
		Name:            req.Name,
		Description:     req.Description,
		MikrotikProfile: req.MikrotikProfile,
		Price:           req.Price,
		Currency:        req.Currency,
		Duration:        req.DurationSeconds,
		DataLimit:       req.DataLimit,
		SpeedLimit:      req.SpeedLimit,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProfileDTO(profile))
}

type profileUpdateRequest struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	Price           *int64  `json:"price"`
	DurationSeconds *int64  `json:"duration_seconds"`
	DataLimit       *int64  `json:"data_limit"`
	SpeedLimit      *string `json:"speed_limit"`
	IsActive        *bool   `json:"is_active"`
}

func (s *Server) handleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody("invalid request body"))
		return
	}
	profile, err := s.profileUC.Update(r.Context(), actorFrom(r), chi.URLParam(r, "profileID"), usecase.ProfileUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.DurationSeconds,
		DataLimit:   req.DataLimit,
		SpeedLimit:  req.SpeedLimit,
		IsActive:    req.IsActive,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileDTO(profile))
}

func (s *Server) handleTicketList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	filter := repository.TicketFilter{
		Limit:  limit,
		Offset: offset,
	}
	if st := q.Get("status"); st != "" {
		filter.Status = model.TicketStatus(st)
	}

	tickets, total, err := s.ticketUC.ListByTenant(r.Context(), actorFrom(r), chi.URLParam(r, "tenantID"), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Data   []ticketDTO `json:"data"`
		Total  int         `json:"total"`
		Limit  int         `json:"limit"`
		Offset int         `json:"offset"`
	}{
		Data:   toTicketDTOs(tickets),
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

func (s *Server) handleRevenue(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "month"
	}
	total, err := s.ticketUC.Revenue(r.Context(), actorFrom(r), chi.URLParam(r, "tenantID"), period)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Period string `json:"period"`
		Total  int64  `json:"total"`
	}{Period: period, Total: total})
}

func (s *Server) handleTicketGet(w http.ResponseWriter, r *http.Request) {
	ticket, err := s.ticketUC.Get(r.Context(), actorFrom(r), chi.URLParam(r, "ticketID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTicketDTO(ticket))
}

func (s *Server) handleTicketCancel(w http.ResponseWriter, r *http.Request) {
	ticket, err := s.ticketUC.Cancel(r.Context(), actorFrom(r), chi.URLParam(r, "ticketID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTicketDTO(ticket))
}

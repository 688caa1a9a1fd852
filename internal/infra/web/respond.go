// File: internal/infra/web/respond.go
package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"hotspot-ticketing/internal/domain"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain sentinels onto HTTP statuses. Anything unmapped is a
// 500 with a generic body; internals never leak to the payer.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errBody("not found"))
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errBody("forbidden"))
	case errors.Is(err, domain.ErrAlreadyExists):
		writeJSON(w, http.StatusConflict, errBody("already exists"))
	case errors.Is(err, domain.ErrTenantInactive):
		writeJSON(w, http.StatusBadRequest, errBody("tenant is not active"))
	case errors.Is(err, domain.ErrProfileInactive):
		writeJSON(w, http.StatusBadRequest, errBody("profile is not active"))
	case errors.Is(err, domain.ErrSignatureInvalid):
		writeJSON(w, http.StatusBadRequest, errBody("invalid signature"))
	case errors.Is(err, domain.ErrInvalidArgument):
		writeJSON(w, http.StatusBadRequest, errBody("invalid request"))
	case errors.Is(err, domain.ErrPaymentNotConfirmed):
		writeJSON(w, http.StatusPaymentRequired, errBody("payment not confirmed"))
	case errors.Is(err, domain.ErrProvisioning):
		writeJSON(w, http.StatusBadGateway, errBody("router unreachable"))
	default:
		writeJSON(w, http.StatusInternalServerError, errBody("internal error"))
	}
}

func errBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

// File: internal/infra/web/auth.go
package web

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"hotspot-ticketing/internal/usecase"
)

type actorCtxKey struct{}

// authMiddleware validates a Bearer JWT (HS256) and puts the resulting actor
// on the request context. Admin routes reject anything else.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.jwtSecret == "" {
			s.log.Error().Msg("admin auth: jwt secret is not configured")
			writeJSON(w, http.StatusForbidden, errBody("forbidden"))
			return
		}

		header := r.Header.Get("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			writeJSON(w, http.StatusUnauthorized, errBody("missing bearer token"))
			return
		}

		claims := &sessionClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(s.jwtSecret), nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			writeJSON(w, http.StatusUnauthorized, errBody("invalid token"))
			return
		}

		actor := usecase.Actor{UserID: claims.Subject, Admin: claims.Admin}
		ctx := context.WithValue(r.Context(), actorCtxKey{}, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type sessionClaims struct {
	Admin bool `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

func actorFrom(r *http.Request) usecase.Actor {
	if a, ok := r.Context().Value(actorCtxKey{}).(usecase.Actor); ok {
		return a
	}
	return usecase.Actor{}
}

package middleware

import (
	"encoding/json"
	"net/http"
	"voicedetect/internal/model"
	"voicedetect/internal/service"
)

// DefaultAPIKeyHeader carries the shared secret when no other header is configured
const DefaultAPIKeyHeader = "x-api-key"

// AuthMiddleware provides shared-secret authentication
type AuthMiddleware struct {
	authSvc *service.AuthService
	header  string
}

// NewAuthMiddleware creates a new auth middleware reading the key from header
func NewAuthMiddleware(authSvc *service.AuthService, header string) *AuthMiddleware {
	if header == "" {
		header = DefaultAPIKeyHeader
	}
	return &AuthMiddleware{authSvc: authSvc, header: header}
}

// RequireAPIKey rejects the request before the body is read when the key is
// missing or wrong
func (m *AuthMiddleware) RequireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := m.authSvc.ValidateAPIKey(r.Header.Get(m.header)); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(model.ErrorResponse{
				Status:  model.StatusError,
				Message: model.MessageInvalidRequest,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

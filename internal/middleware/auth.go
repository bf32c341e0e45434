package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tripjournal/backend/internal/auth"
	"github.com/tripjournal/backend/internal/domain"
)

// TokenVerifier resolves a bearer token to the owner it identifies.
// *auth.Verifier satisfies it.
type TokenVerifier interface {
	Verify(token string) (domain.Owner, error)
}

// NewAuthenticator returns a middleware that requires an
// "Authorization: Bearer <token>" header. A verified owner is stored in the
// request context (see auth.OwnerFromContext); anything else is a 401.
func NewAuthenticator(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}

			owner, err := v.Verify(strings.TrimSpace(token))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized", "invalid bearer token")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithOwner(r.Context(), owner)))
		})
	}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError writes the API's standard error envelope.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: errorDetail{Code: code, Message: message}})
}

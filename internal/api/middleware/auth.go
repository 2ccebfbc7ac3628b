// Package middleware holds the dashboard API's request filters.
package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/flipdeck/flipdeck/internal/api/response"
	"github.com/flipdeck/flipdeck/internal/core"
)

// APIKeyAuth gates requests on the X-API-Key header. An empty
// configured key disables the gate, which is the local-development
// default.
func APIKeyAuth(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			provided := r.Header.Get("X-API-Key")
			// Constant-time compare so response timing leaks nothing
			// about the key.
			if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				response.Error(w, http.StatusUnauthorized, core.ErrUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

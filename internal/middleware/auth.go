package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/online-catalog/backend/internal/config"
)

// APIKeyAuth guards the admin console routes. The key is passed in the
// "api_key" header.
func APIKeyAuth(cfg config.AdminConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get("api_key")

			if apiKey == "" {
				writeAuthError(w, http.StatusUnauthorized, "API key required")
				return
			}

			valid := false
			for _, validKey := range cfg.APIKeys {
				if apiKey == validKey {
					valid = true
					break
				}
			}

			if !valid {
				writeAuthError(w, http.StatusForbidden, "Invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

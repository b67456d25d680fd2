package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/online-catalog/backend/internal/config"
)

func TestAPIKeyAuth(t *testing.T) {
	cfg := config.AdminConfig{APIKeys: []string{"apitest", "second-key"}}

	handler := APIKeyAuth(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		apiKey     string
		wantStatus int
	}{
		{name: "valid key", apiKey: "apitest", wantStatus: http.StatusOK},
		{name: "second valid key", apiKey: "second-key", wantStatus: http.StatusOK},
		{name: "missing key", apiKey: "", wantStatus: http.StatusUnauthorized},
		{name: "invalid key", apiKey: "wrong", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
			if tt.apiKey != "" {
				req.Header.Set("api_key", tt.apiKey)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantStatus != http.StatusOK {
				if ct := w.Header().Get("Content-Type"); ct != "application/json" {
					t.Errorf("expected JSON error response, got Content-Type %q", ct)
				}
			}
		})
	}
}

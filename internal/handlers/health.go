package handlers

import (
	"log/slog"
	"net/http"
	"time"
)

// HealthHandler provides the health check endpoint.
type HealthHandler struct {
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(logger *slog.Logger) *HealthHandler {
	return &HealthHandler{logger: logger}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
}

// ServeHTTP handles health check requests.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   "catalog-backend",
		Timestamp: time.Now().UTC(),
	}, h.logger)
}

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/online-catalog/backend/internal/models"
	"github.com/online-catalog/backend/internal/service"
)

// SettingsHandler handles the admin site-settings endpoints.
type SettingsHandler struct {
	service *service.SettingsService
	log     *slog.Logger
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(service *service.SettingsService, log *slog.Logger) *SettingsHandler {
	return &SettingsHandler{
		service: service,
		log:     log,
	}
}

// GetSettings handles GET /api/admin/settings. A never-saved settings
// document reads as empty values, not an error.
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.GetSettings(r.Context())
	if err != nil {
		h.log.Error("failed to load settings", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}
	WriteJSON(w, http.StatusOK, settings, h.log)
}

// SaveSettings handles PUT /api/admin/settings.
func (h *SettingsHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var in models.Settings
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	if err := h.service.SaveSettings(r.Context(), in); err != nil {
		if errors.Is(err, service.ErrInvalidContactNumber) {
			WriteError(w, http.StatusBadRequest, "Invalid contact number", h.log)
			return
		}
		h.log.Error("failed to save settings", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, in, h.log)
}

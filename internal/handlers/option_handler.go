package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/online-catalog/backend/internal/models"
	"github.com/online-catalog/backend/internal/repository"
	"github.com/online-catalog/backend/internal/service"
)

// OptionHandler handles option-group HTTP requests.
type OptionHandler struct {
	service *service.OptionService
	log     *slog.Logger
}

// NewOptionHandler creates a new option handler.
func NewOptionHandler(service *service.OptionService, log *slog.Logger) *OptionHandler {
	return &OptionHandler{
		service: service,
		log:     log,
	}
}

// ListOptions handles GET /api/options.
func (h *OptionHandler) ListOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.ListOptions(r.Context())
	if err != nil {
		h.log.Error("failed to list options", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}
	WriteJSON(w, http.StatusOK, options, h.log)
}

// CreateOption handles POST /api/admin/options.
func (h *OptionHandler) CreateOption(w http.ResponseWriter, r *http.Request) {
	var in models.OptionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	option, err := h.service.CreateOption(r.Context(), in)
	if err != nil {
		h.writeOptionError(w, err, "failed to create option")
		return
	}

	WriteJSON(w, http.StatusCreated, option, h.log)
	h.log.Info("option created", "optionId", option.ID, "name", option.Name)
}

// UpdateOption handles PUT /api/admin/options/{optionId}.
func (h *OptionHandler) UpdateOption(w http.ResponseWriter, r *http.Request) {
	optionID := chi.URLParam(r, "optionId")

	var in models.OptionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	option, err := h.service.UpdateOption(r.Context(), optionID, in)
	if err != nil {
		h.writeOptionError(w, err, "failed to update option")
		return
	}

	WriteJSON(w, http.StatusOK, option, h.log)
	h.log.Info("option updated", "optionId", option.ID)
}

// DeleteOption handles DELETE /api/admin/options/{optionId}.
func (h *OptionHandler) DeleteOption(w http.ResponseWriter, r *http.Request) {
	optionID := chi.URLParam(r, "optionId")

	if err := h.service.DeleteOption(r.Context(), optionID); err != nil {
		h.writeOptionError(w, err, "failed to delete option")
		return
	}

	w.WriteHeader(http.StatusNoContent)
	h.log.Info("option deleted", "optionId", optionID)
}

func (h *OptionHandler) writeOptionError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, repository.ErrOptionNotFound):
		WriteError(w, http.StatusNotFound, "Option not found", h.log)
	case errors.Is(err, service.ErrInvalidOption):
		WriteError(w, http.StatusBadRequest, "Option name and at least one unique value are required", h.log)
	default:
		h.log.Error(logMsg, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
	}
}

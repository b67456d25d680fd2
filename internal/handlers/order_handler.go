package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/online-catalog/backend/internal/cart"
	"github.com/online-catalog/backend/internal/models"
	"github.com/online-catalog/backend/internal/repository"
	"github.com/online-catalog/backend/internal/service"
)

// OrderHandler handles checkout and the admin order console.
type OrderHandler struct {
	orders *service.OrderService
	carts  *cart.Store
	log    *slog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orders *service.OrderService, carts *cart.Store, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		carts:  carts,
		log:    log,
	}
}

type createOrderResponse struct {
	Order        *models.Order `json:"order"`
	WhatsAppLink string        `json:"whatsappLink"`
}

// CreateOrder handles POST /api/orders. The order is assembled from the
// session cart; on success the cart is cleared.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var customer models.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	c, err := r.Cookie(sessionCookie)
	if err != nil || c.Value == "" {
		WriteError(w, http.StatusBadRequest, "Cart is empty", h.log)
		return
	}
	session := c.Value

	var lines []cart.Line
	h.carts.Do(session, func(l *cart.Ledger) {
		lines = l.Lines()
	})

	order, link, err := h.orders.PlaceOrder(r.Context(), customer, lines)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			WriteError(w, http.StatusBadRequest, "Cart is empty", h.log)
		case errors.Is(err, service.ErrInvalidCustomer):
			WriteError(w, http.StatusBadRequest, "Customer name and phone are required", h.log)
		case errors.Is(err, service.ErrContactNumberNotSet):
			// Distinct from a generic failure: the store is not configured
			// to receive orders yet.
			WriteError(w, http.StatusConflict, "Store contact number is not configured", h.log)
		default:
			h.log.Error("failed to place order", "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	h.carts.Drop(session)

	WriteJSON(w, http.StatusCreated, createOrderResponse{Order: order, WhatsAppLink: link}, h.log)
}

// ListOrders handles GET /api/admin/orders with optional from/to date bounds
// (YYYY-MM-DD, both inclusive).
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error(), h.log)
		return
	}

	orders, err := h.orders.ListOrders(r.Context(), from, to)
	if err != nil {
		h.log.Error("failed to list orders", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, orders, h.log)
}

// ExportOrders handles GET /api/admin/orders/export, streaming the filtered
// orders as a CSV attachment.
func (h *OrderHandler) ExportOrders(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error(), h.log)
		return
	}

	orders, err := h.orders.ListOrders(r.Context(), from, to)
	if err != nil {
		h.log.Error("failed to list orders for export", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=orders-%d.csv", time.Now().Unix()))

	if err := h.orders.ExportCSV(w, orders); err != nil {
		h.log.Error("failed to write csv export", "error", err)
	}
}

// UpdateStatus handles PUT /api/admin/orders/{orderId}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	if err := h.orders.UpdateStatus(r.Context(), orderID, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOrderStatus):
			WriteError(w, http.StatusBadRequest, "Unknown order status", h.log)
		case errors.Is(err, repository.ErrOrderNotFound):
			WriteError(w, http.StatusNotFound, "Order not found", h.log)
		default:
			h.log.Error("failed to update order status", "orderId", orderID, "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
	h.log.Info("order status updated", "orderId", orderID, "status", req.Status)
}

// DeleteOrder handles DELETE /api/admin/orders/{orderId}.
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	if err := h.orders.DeleteOrder(r.Context(), orderID); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			WriteError(w, http.StatusNotFound, "Order not found", h.log)
			return
		}
		h.log.Error("failed to delete order", "orderId", orderID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	w.WriteHeader(http.StatusNoContent)
	h.log.Info("order deleted", "orderId", orderID)
}

func parseDateRange(r *http.Request) (from, to time.Time, err error) {
	const layout = "2006-01-02"
	q := r.URL.Query()

	if s := q.Get("from"); s != "" {
		if from, err = time.Parse(layout, s); err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid from date, expected YYYY-MM-DD")
		}
	}
	if s := q.Get("to"); s != "" {
		if to, err = time.Parse(layout, s); err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid to date, expected YYYY-MM-DD")
		}
	}
	return from, to, nil
}

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/online-catalog/backend/internal/cart"
	"github.com/online-catalog/backend/internal/repository"
	"github.com/online-catalog/backend/internal/service"
)

// sessionCookie carries the storefront cart session id.
const sessionCookie = "cart_session"

// CartHandler exposes the session cart over HTTP. All operations address the
// session taken from the cart cookie, issued on first touch.
type CartHandler struct {
	products *service.ProductService
	carts    *cart.Store
	log      *slog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(products *service.ProductService, carts *cart.Store, log *slog.Logger) *CartHandler {
	return &CartHandler{
		products: products,
		carts:    carts,
		log:      log,
	}
}

// cartView is the response shape for every cart operation.
type cartView struct {
	Items      []cart.Line `json:"items"`
	TotalItems int         `json:"totalItems"`
	TotalPrice string      `json:"totalPrice"`
}

type addItemRequest struct {
	ProductID       string            `json:"productId"`
	Quantity        int               `json:"quantity"`
	SelectedOptions map[string]string `json:"selectedOptions"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart handles GET /api/cart.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	WriteJSON(w, http.StatusOK, h.view(session), h.log)
}

// AddItem handles POST /api/cart/items. The product snapshot is taken at add
// time; a configuration missing a declared option group is rejected.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	product, err := h.products.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			WriteError(w, http.StatusNotFound, "Product not found", h.log)
			return
		}
		h.log.Error("failed to load product for cart", "productId", req.ProductID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	if !cart.AllOptionsSelected(product.Options, req.SelectedOptions) {
		WriteError(w, http.StatusBadRequest, "All product options must be selected", h.log)
		return
	}

	session := h.session(w, r)
	h.carts.Do(session, func(l *cart.Ledger) {
		l.Add(product.Product, req.Quantity, req.SelectedOptions)
	})

	WriteJSON(w, http.StatusOK, h.view(session), h.log)
}

// UpdateItem handles PUT /api/cart/items/{lineKey}. Quantities below 1 leave
// the line unchanged.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	lineKey := chi.URLParam(r, "lineKey")

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	session := h.session(w, r)
	h.carts.Do(session, func(l *cart.Ledger) {
		l.UpdateQuantity(lineKey, req.Quantity)
	})

	WriteJSON(w, http.StatusOK, h.view(session), h.log)
}

// RemoveItem handles DELETE /api/cart/items/{lineKey}. Unknown keys are a
// no-op, not an error.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	lineKey := chi.URLParam(r, "lineKey")

	session := h.session(w, r)
	h.carts.Do(session, func(l *cart.Ledger) {
		l.Remove(lineKey)
	})

	WriteJSON(w, http.StatusOK, h.view(session), h.log)
}

// ClearCart handles DELETE /api/cart.
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	h.carts.Do(session, func(l *cart.Ledger) {
		l.Clear()
	})

	WriteJSON(w, http.StatusOK, h.view(session), h.log)
}

// session returns the request's cart session id, issuing the cookie on first
// touch.
func (h *CartHandler) session(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (h *CartHandler) view(session string) cartView {
	var v cartView
	h.carts.Do(session, func(l *cart.Ledger) {
		v = cartView{
			Items:      l.Lines(),
			TotalItems: l.TotalItems(),
			TotalPrice: l.TotalPrice().StringFixed(2),
		}
	})
	return v
}

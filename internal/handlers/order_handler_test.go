package handlers

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/online-catalog/backend/internal/cart"
	"github.com/online-catalog/backend/internal/models"
	"github.com/online-catalog/backend/internal/repository"
	"github.com/online-catalog/backend/internal/service"
	"github.com/online-catalog/backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	router chi.Router
	orders *repository.InMemoryOrderRepository
}

func newOrderFixture(t *testing.T, contactNumber string) orderFixture {
	t.Helper()

	productRepo := repository.NewInMemoryProductRepository(repository.SeedProducts()...)
	optionRepo := repository.NewInMemoryOptionRepository(repository.SeedOptions()...)
	orderRepo := repository.NewInMemoryOrderRepository()
	settingsRepo := repository.NewInMemorySettingsRepository()
	log := logger.New("error")

	if contactNumber != "" {
		require.NoError(t, settingsRepo.Save(context.Background(), models.Settings{WhatsApp: contactNumber}))
	}

	products := service.NewProductService(productRepo, optionRepo, discardImageStore{}, log)
	orders := service.NewOrderService(orderRepo, settingsRepo, log)
	carts := cart.NewStore()

	cartHandler := NewCartHandler(products, carts, log)
	orderHandler := NewOrderHandler(orders, carts, log)

	r := chi.NewRouter()
	r.Post("/api/cart/items", cartHandler.AddItem)
	r.Get("/api/cart", cartHandler.GetCart)
	r.Post("/api/orders", orderHandler.CreateOrder)
	r.Get("/api/admin/orders", orderHandler.ListOrders)
	r.Get("/api/admin/orders/export", orderHandler.ExportOrders)
	r.Put("/api/admin/orders/{orderId}/status", orderHandler.UpdateStatus)
	r.Delete("/api/admin/orders/{orderId}", orderHandler.DeleteOrder)
	return orderFixture{router: r, orders: orderRepo}
}

func validCustomer() models.Customer {
	return models.Customer{Name: "Amina", Phone: "0612345678", Address: "12 Rue des Fleurs", City: "Casablanca"}
}

func TestCreateOrder(t *testing.T) {
	f := newOrderFixture(t, "+212 600 000 000")

	w, cookie := do(t, f.router, nil, http.MethodPost, "/api/cart/items", addItemRequest{ProductID: "part-5", Quantity: 2})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, f.router, cookie, http.MethodPost, "/api/orders", validCustomer())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp createOrderResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotNil(t, resp.Order)
	assert.Equal(t, 2, resp.Order.TotalItems)
	assert.Equal(t, "300.00", resp.Order.TotalPrice)
	assert.Equal(t, models.OrderStatusNew, resp.Order.Status)
	assert.True(t, strings.HasPrefix(resp.WhatsAppLink, "https://wa.me/212600000000?text="), resp.WhatsAppLink)

	// Checkout drops the session cart.
	w, _ = do(t, f.router, cookie, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeCart(t, w).Items)
}

func TestCreateOrder_NoSession(t *testing.T) {
	f := newOrderFixture(t, "+212600000000")

	w, _ := do(t, f.router, nil, http.MethodPost, "/api/orders", validCustomer())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cart is empty")
}

func TestCreateOrder_ContactNumberNotConfigured(t *testing.T) {
	f := newOrderFixture(t, "")

	w, cookie := do(t, f.router, nil, http.MethodPost, "/api/cart/items", addItemRequest{ProductID: "part-5", Quantity: 1})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, f.router, cookie, http.MethodPost, "/api/orders", validCustomer())
	assert.Equal(t, http.StatusConflict, w.Code)

	// The cart survives a failed checkout.
	w, _ = do(t, f.router, cookie, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeCart(t, w).Items, 1)
}

func TestCreateOrder_MissingCustomerFields(t *testing.T) {
	f := newOrderFixture(t, "+212600000000")

	w, cookie := do(t, f.router, nil, http.MethodPost, "/api/cart/items", addItemRequest{ProductID: "part-5", Quantity: 1})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, f.router, cookie, http.MethodPost, "/api/orders", models.Customer{Name: "Amina"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListOrders_InvalidDate(t *testing.T) {
	f := newOrderFixture(t, "+212600000000")

	w, _ := do(t, f.router, nil, http.MethodGet, "/api/admin/orders?from=12-08-2026", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportOrders_CSV(t *testing.T) {
	f := newOrderFixture(t, "+212600000000")

	w, cookie := do(t, f.router, nil, http.MethodPost, "/api/cart/items", addItemRequest{ProductID: "part-5", Quantity: 1})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, f.router, cookie, http.MethodPost, "/api/orders", validCustomer())
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = do(t, f.router, nil, http.MethodGet, "/api/admin/orders/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	records, err := csv.NewReader(w.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"Date", "Name", "Phone", "City", "Address", "Items"}, records[0])
	assert.Equal(t, "Amina", records[1][1])
}

func TestUpdateOrderStatus(t *testing.T) {
	f := newOrderFixture(t, "+212600000000")

	order, err := f.orders.Create(context.Background(), models.Order{Customer: validCustomer(), Status: models.OrderStatusNew})
	require.NoError(t, err)

	body := map[string]string{"status": "shipped"}
	w, _ := do(t, f.router, nil, http.MethodPut, "/api/admin/orders/"+order.ID+"/status", body)
	require.Equal(t, http.StatusNoContent, w.Code)

	stored, err := f.orders.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, models.OrderStatusShipped, stored[0].Status)
}

func TestUpdateOrderStatus_Invalid(t *testing.T) {
	f := newOrderFixture(t, "+212600000000")

	order, err := f.orders.Create(context.Background(), models.Order{Customer: validCustomer(), Status: models.OrderStatusNew})
	require.NoError(t, err)

	w, _ := do(t, f.router, nil, http.MethodPut, "/api/admin/orders/"+order.ID+"/status", map[string]string{"status": "lost"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteOrder_NotFound(t *testing.T) {
	f := newOrderFixture(t, "+212600000000")

	w, _ := do(t, f.router, nil, http.MethodDelete, "/api/admin/orders/nope", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

package service

import (
	"context"
	"encoding/csv"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/online-catalog/backend/internal/cart"
	"github.com/online-catalog/backend/internal/models"
	"github.com/online-catalog/backend/internal/repository"
	"github.com/online-catalog/backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderService(t *testing.T) (*OrderService, *repository.InMemoryOrderRepository, *repository.InMemorySettingsRepository) {
	t.Helper()
	orders := repository.NewInMemoryOrderRepository()
	settings := repository.NewInMemorySettingsRepository()
	return NewOrderService(orders, settings, logger.New("error")), orders, settings
}

func checkoutLines() []cart.Line {
	l := cart.New()
	l.Add(models.Product{ID: "p1", Name: "Spark Plug Set", Price: "$45"}, 2, map[string]string{"color": "red"})
	l.Add(models.Product{ID: "p2", Name: "Brake Pad Set", Price: "$150"}, 1, nil)
	return l.Lines()
}

var customer = models.Customer{Name: "Sara", Phone: "+212600000000", Address: "12 Atlas St", City: "Casablanca"}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	svc, _, settings := newOrderService(t)
	require.NoError(t, settings.Save(context.Background(), models.Settings{WhatsApp: "+212600000000"}))

	_, _, err := svc.PlaceOrder(context.Background(), customer, nil)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrder_MissingContactNumberBlocks(t *testing.T) {
	svc, orders, _ := newOrderService(t)

	_, _, err := svc.PlaceOrder(context.Background(), customer, checkoutLines())
	assert.ErrorIs(t, err, ErrContactNumberNotSet)

	stored, err := orders.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored, "a blocked checkout must not persist anything")
}

func TestPlaceOrder_MissingCustomerFields(t *testing.T) {
	svc, _, settings := newOrderService(t)
	require.NoError(t, settings.Save(context.Background(), models.Settings{WhatsApp: "+212600000000"}))

	_, _, err := svc.PlaceOrder(context.Background(), models.Customer{Name: "Sara"}, checkoutLines())
	assert.ErrorIs(t, err, ErrInvalidCustomer)
}

func TestPlaceOrder_Success(t *testing.T) {
	svc, orders, settings := newOrderService(t)
	require.NoError(t, settings.Save(context.Background(), models.Settings{WhatsApp: "+212 600 000 000"}))

	order, link, err := svc.PlaceOrder(context.Background(), customer, checkoutLines())
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, models.OrderStatusNew, order.Status)
	assert.Equal(t, 3, order.TotalItems)
	assert.Equal(t, "240.00", order.TotalPrice) // 2 x $45 + 1 x $150
	require.Len(t, order.Items, 2)
	assert.Equal(t, "$45", order.Items[0].UnitPrice)
	assert.Equal(t, map[string]string{"color": "red"}, order.Items[0].SelectedOptions)

	// The deep link carries the normalized number and the escaped summary.
	assert.True(t, strings.HasPrefix(link, "https://wa.me/212600000000?text="), link)
	u, err := url.Parse(link)
	require.NoError(t, err)
	text := u.Query().Get("text")
	assert.Contains(t, text, "Spark Plug Set x2")
	assert.Contains(t, text, "(color: red)")
	assert.Contains(t, text, "Total: $240.00")

	stored, err := orders.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestListOrders_DateRangeInclusive(t *testing.T) {
	svc, orders, _ := newOrderService(t)
	ctx := context.Background()

	day := func(d int, hour int) time.Time {
		return time.Date(2026, time.August, d, hour, 30, 0, 0, time.UTC)
	}
	for i, created := range []time.Time{day(10, 9), day(12, 0), day(12, 23), day(15, 12)} {
		_, err := orders.Create(ctx, models.Order{
			Customer:  models.Customer{Name: "c", Phone: "1"},
			Status:    models.OrderStatusNew,
			CreatedAt: created,
		})
		require.NoError(t, err, "order %d", i)
	}

	from := time.Date(2026, time.August, 12, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.August, 12, 0, 0, 0, 0, time.UTC)

	got, err := svc.ListOrders(ctx, from, to)
	require.NoError(t, err)
	assert.Len(t, got, 2, "both endpoints of the day are inside the range")

	got, err = svc.ListOrders(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, got, 4)

	// Newest first.
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].CreatedAt.After(got[i-1].CreatedAt))
	}
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	svc, orders, _ := newOrderService(t)
	ctx := context.Background()

	created, err := orders.Create(ctx, models.Order{Status: models.OrderStatusNew, CreatedAt: time.Now()})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.UpdateStatus(ctx, created.ID, "teleported"), ErrInvalidOrderStatus)
	require.NoError(t, svc.UpdateStatus(ctx, created.ID, models.OrderStatusShipped))

	stored, err := orders.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, stored[0].Status)
}

func TestExportCSV(t *testing.T) {
	svc, _, _ := newOrderService(t)

	orders := []models.Order{
		{
			Customer: models.Customer{Name: `Youssef "Joe"`, Phone: "0600", Address: "5, Palm Ave", City: "Rabat"},
			Items: []models.OrderItem{
				{Name: "Spark Plug Set", Quantity: 2},
				{Name: "Brake Pad Set", Quantity: 1},
			},
			CreatedAt: time.Date(2026, time.August, 30, 14, 5, 0, 0, time.UTC),
		},
	}

	var b strings.Builder
	require.NoError(t, svc.ExportCSV(&b, orders))

	records, err := csv.NewReader(strings.NewReader(b.String())).ReadAll()
	require.NoError(t, err, "export must round-trip through a CSV reader despite quotes and commas")
	require.Len(t, records, 2)

	assert.Equal(t, []string{"Date", "Name", "Phone", "City", "Address", "Items"}, records[0])
	assert.Equal(t, "2026-08-30 14:05:00", records[1][0])
	assert.Equal(t, `Youssef "Joe"`, records[1][1])
	assert.Equal(t, "5, Palm Ave", records[1][4])
	assert.Equal(t, "Spark Plug Set x2 | Brake Pad Set x1", records[1][5])
}

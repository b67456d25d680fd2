package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/online-catalog/backend/internal/cart"
	"github.com/online-catalog/backend/internal/models"
	"github.com/online-catalog/backend/internal/repository"
)

var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInvalidCustomer     = errors.New("customer name and phone are required")
	ErrInvalidOrderStatus  = errors.New("unknown order status")
	ErrContactNumberNotSet = errors.New("contact number is not configured")
)

// OrderService handles checkout and the admin order console.
type OrderService struct {
	orders   repository.OrderRepository
	settings repository.SettingsRepository
	log      *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(orders repository.OrderRepository, settings repository.SettingsRepository, log *slog.Logger) *OrderService {
	return &OrderService{
		orders:   orders,
		settings: settings,
		log:      log,
	}
}

// PlaceOrder persists an order assembled from the session cart and returns
// it together with the WhatsApp deep link the storefront opens. A missing
// contact number blocks checkout outright, distinct from a storage failure.
func (s *OrderService) PlaceOrder(ctx context.Context, customer models.Customer, lines []cart.Line) (*models.Order, string, error) {
	if len(lines) == 0 {
		return nil, "", ErrEmptyCart
	}
	if strings.TrimSpace(customer.Name) == "" || strings.TrimSpace(customer.Phone) == "" {
		return nil, "", ErrInvalidCustomer
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("load settings: %w", err)
	}
	if strings.TrimSpace(settings.WhatsApp) == "" {
		return nil, "", ErrContactNumberNotSet
	}

	ledger := cart.New()
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		ledger.Add(line.Product, line.Quantity, line.SelectedOptions)
		items = append(items, models.OrderItem{
			ProductID:       line.Product.ID,
			Name:            line.Product.Name,
			UnitPrice:       line.Product.Price,
			Quantity:        line.Quantity,
			SelectedOptions: line.SelectedOptions,
		})
	}

	order := models.Order{
		Customer:   customer,
		Items:      items,
		TotalItems: ledger.TotalItems(),
		TotalPrice: ledger.TotalPrice().StringFixed(2),
		Status:     models.OrderStatusNew,
		CreatedAt:  time.Now().UTC(),
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, "", fmt.Errorf("persist order: %w", err)
	}

	link := whatsappLink(settings.WhatsApp, created)
	s.log.Info("order placed",
		"orderId", created.ID,
		"totalItems", created.TotalItems,
		"totalPrice", created.TotalPrice,
	)
	return created, link, nil
}

// whatsappLink builds the wa.me deep link relaying the order summary.
func whatsappLink(number string, order *models.Order) string {
	number = strings.TrimLeft(strings.ReplaceAll(strings.TrimSpace(number), " ", ""), "+")

	var b strings.Builder
	fmt.Fprintf(&b, "New order from %s (%s)\n", order.Customer.Name, order.Customer.Phone)
	fmt.Fprintf(&b, "%s, %s\n", order.Customer.Address, order.Customer.City)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %s x%d", item.Name, item.Quantity)
		if len(item.SelectedOptions) > 0 {
			names := make([]string, 0, len(item.SelectedOptions))
			for name := range item.SelectedOptions {
				names = append(names, name)
			}
			sort.Strings(names)
			pairs := make([]string, 0, len(names))
			for _, name := range names {
				pairs = append(pairs, name+": "+item.SelectedOptions[name])
			}
			fmt.Fprintf(&b, " (%s)", strings.Join(pairs, ", "))
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "Total: $%s", order.TotalPrice)

	return "https://wa.me/" + number + "?text=" + url.QueryEscape(b.String())
}

// ListOrders returns orders newest first, optionally bounded to the
// inclusive calendar-day range [from, to]. Zero times disable the bound.
func (s *OrderService) ListOrders(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	orders, err := s.orders.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if from.IsZero() && to.IsZero() {
		return orders, nil
	}

	// Bounds cover whole days: from at 00:00:00, to at 23:59:59.
	if !to.IsZero() {
		to = to.Add(24*time.Hour - time.Second)
	}

	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if !from.IsZero() && o.CreatedAt.Before(from) {
			continue
		}
		if !to.IsZero() && o.CreatedAt.After(to) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

// UpdateStatus moves an order to a new status.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) error {
	if !models.ValidOrderStatus(status) {
		return ErrInvalidOrderStatus
	}
	return s.orders.UpdateStatus(ctx, id, status)
}

// DeleteOrder removes an order.
func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	return s.orders.Delete(ctx, id)
}

// ExportCSV writes the given orders as the admin console's CSV document:
// one row per order, items rendered "Name xQty | Name xQty".
func (s *OrderService) ExportCSV(w io.Writer, orders []models.Order) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Name", "Phone", "City", "Address", "Items"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, o := range orders {
		parts := make([]string, 0, len(o.Items))
		for _, item := range o.Items {
			parts = append(parts, fmt.Sprintf("%s x%d", item.Name, item.Quantity))
		}
		record := []string{
			o.CreatedAt.Format("2006-01-02 15:04:05"),
			o.Customer.Name,
			o.Customer.Phone,
			o.Customer.City,
			o.Customer.Address,
			strings.Join(parts, " | "),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

package models

import "time"

// Order statuses. New orders start as "new" and move forward manually from
// the admin console.
const (
	OrderStatusNew       = "new"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusCancelled = "cancelled"
)

// Customer holds the contact and shipping fields collected at checkout.
type Customer struct {
	Name    string `json:"name" bson:"name"`
	Phone   string `json:"phone" bson:"phone"`
	Address string `json:"address" bson:"address"`
	City    string `json:"city" bson:"city"`
}

// OrderItem is a cart line frozen into an order. UnitPrice is the display
// price captured at order time, not a live catalog reference.
type OrderItem struct {
	ProductID       string            `json:"productId" bson:"productId"`
	Name            string            `json:"name" bson:"name"`
	UnitPrice       string            `json:"unitPrice" bson:"unitPrice"`
	Quantity        int               `json:"quantity" bson:"quantity"`
	SelectedOptions map[string]string `json:"selectedOptions,omitempty" bson:"selectedOptions,omitempty"`
}

// Order is a persisted order document.
type Order struct {
	ID         string      `json:"id" bson:"_id,omitempty"`
	Customer   Customer    `json:"customer" bson:"customer"`
	Items      []OrderItem `json:"items" bson:"items"`
	TotalItems int         `json:"totalItems" bson:"totalItems"`
	TotalPrice string      `json:"totalPrice" bson:"totalPrice"`
	Status     string      `json:"status" bson:"status"`
	CreatedAt  time.Time   `json:"createdAt" bson:"createdAt"`
}

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusNew, OrderStatusConfirmed, OrderStatusShipped, OrderStatusCancelled:
		return true
	}
	return false
}

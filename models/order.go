package models

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// allowedTransitions maps a current status to the statuses an order may
// move to. Terminal statuses have no entries.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusCompleted, OrderStatusCancelled},
}

// ValidStatusTransition reports whether an order may move from one
// status to another.
func ValidStatusTransition(from, to OrderStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether the status permits no further transitions.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderLineItem is a row from order_items. UnitPrice is the menu item's
// price captured when the order was created; it never changes after
// insert, even if the catalog price does.
type OrderLineItem struct {
	MenuItemID int64 `json:"menuItemId"`
	Quantity   int   `json:"quantity"`
	UnitPrice  Money `json:"unitPriceSnapshot"`
}

// Order is a row from orders table together with its line items.
// Total always equals the sum of quantity * unit price over LineItems.
type Order struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Status    OrderStatus     `json:"status"`
	Total     Money           `json:"total"`
	OrderedAt time.Time       `json:"orderedAt"`
	LineItems []OrderLineItem `json:"lineItems"`
}

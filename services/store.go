package services

import (
	"context"

	"food-orders/models"
)

// OrderFilter is a conjunction of optional constraints for Find. Zero
// values mean "no constraint".
type OrderFilter struct {
	Status       models.OrderStatus
	UserID       string
	RestaurantID int64 // matches orders whose line items reference the restaurant
}

// OrderStore is durable storage for orders and their line items. The
// engine holds the only write path to these rows.
type OrderStore interface {
	// Create persists the order header and all line items as one
	// atomic unit and returns the stored order with its id and
	// timestamp filled in.
	Create(ctx context.Context, order *models.Order) (*models.Order, error)

	// Get returns one order with its line items, or KindNotFound.
	Get(ctx context.Context, orderID string) (*models.Order, error)

	// Find returns orders matching every set constraint, newest first.
	Find(ctx context.Context, f OrderFilter) ([]models.Order, error)

	// UpdateStatus moves the order to newStatus if and only if the
	// transition table allows it from the status stored right now
	// (compare-and-set). Of two racing calls exactly one wins; the
	// loser gets KindIllegalTransition.
	UpdateStatus(ctx context.Context, orderID string, newStatus models.OrderStatus) (*models.Order, error)

	// Delete removes the order and its line items atomically. Only
	// pending orders may be deleted; terminal ones are historical
	// record and fail with KindIllegalDeletion.
	Delete(ctx context.Context, orderID string) error
}

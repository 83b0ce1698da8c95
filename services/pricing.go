package services

import (
	"context"

	"food-orders/models"
)

// CartItem is one requested position in a submitted cart. Duplicate
// menu item ids are legal and stay separate line items.
type CartItem struct {
	MenuItemID int64 `json:"menuItemId"`
	Quantity   int   `json:"quantity"`
}

// maxLineItemQuantity bounds a single cart position. Anything larger is
// a client bug, and the bound keeps line totals well clear of int64
// overflow.
const maxLineItemQuantity = 1_000_000

// PriceCart resolves every cart item against the catalog and produces
// the immutable line-item snapshots plus the exact order total in minor
// units. It is all-or-nothing: any bad position fails the whole cart
// and nothing is returned for the caller to persist.
func PriceCart(ctx context.Context, catalog Catalog, cart []CartItem) ([]models.OrderLineItem, models.Money, error) {
	if len(cart) == 0 {
		return nil, 0, errInvalidInput("cart is empty")
	}
	lineItems := make([]models.OrderLineItem, 0, len(cart))
	var total models.Money
	for _, ci := range cart {
		if ci.Quantity <= 0 || ci.Quantity > maxLineItemQuantity {
			return nil, 0, errInvalidQuantity(ci.MenuItemID, ci.Quantity)
		}
		item, err := catalog.LookupMenuItem(ctx, ci.MenuItemID)
		if err != nil {
			return nil, 0, err
		}
		if !item.Available {
			return nil, 0, errItemUnavailable(ci.MenuItemID)
		}
		lineItems = append(lineItems, models.OrderLineItem{
			MenuItemID: ci.MenuItemID,
			Quantity:   ci.Quantity,
			UnitPrice:  item.Price,
		})
		// Both factors are non-negative, so a wrapped product or sum
		// shows up as a smaller result.
		line := int64(ci.Quantity) * int64(item.Price)
		if item.Price != 0 && line/int64(item.Price) != int64(ci.Quantity) {
			return nil, 0, errInvalidInput("order total is too large")
		}
		if total+models.Money(line) < total {
			return nil, 0, errInvalidInput("order total is too large")
		}
		total += models.Money(line)
	}
	return lineItems, total, nil
}

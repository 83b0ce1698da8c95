package services

import (
	"context"

	"food-orders/models"
)

// Orders orchestrates pricing, policy and storage for the order
// lifecycle. It is safe for concurrent use; all state lives in the
// store.
type Orders struct {
	catalog Catalog
	store   OrderStore
}

func NewOrders(catalog Catalog, store OrderStore) *Orders {
	return &Orders{catalog: catalog, store: store}
}

// Create prices the cart and persists a pending order owned by the
// principal. The owner always comes from the principal, never from
// client input, so nobody can place an order in someone else's name.
func (s *Orders) Create(ctx context.Context, p models.Principal, cart []CartItem) (*models.Order, error) {
	lineItems, total, err := PriceCart(ctx, s.catalog, cart)
	if err != nil {
		return nil, err
	}
	return s.store.Create(ctx, &models.Order{
		UserID:    p.UserID,
		Status:    models.OrderStatusPending,
		Total:     total,
		LineItems: lineItems,
	})
}

// List applies the role visibility policy to the requested filter and
// delegates to the store. Customers see only their own orders, managers
// only their restaurant's, admins everything.
func (s *Orders) List(ctx context.Context, p models.Principal, f OrderFilter) ([]models.Order, error) {
	switch p.Role {
	case models.RoleCustomer:
		if f.UserID != "" && f.UserID != p.UserID {
			return nil, errForbidden("customers may only list their own orders")
		}
		f.UserID = p.UserID
	case models.RoleManager:
		if f.RestaurantID != 0 && f.RestaurantID != p.RestaurantID {
			return nil, errForbidden("managers may only list orders for their own restaurant")
		}
		f.RestaurantID = p.RestaurantID
	case models.RoleAdmin:
		// unrestricted
	default:
		return nil, errForbidden("unknown role")
	}
	return s.store.Find(ctx, f)
}

// UpdateStatus transitions an order. Completion is staff-only; a
// manager may additionally only complete orders that reference their
// restaurant. Cancellation is open to the owning customer and staff.
// The transition itself is a compare-and-set in the store, so of two
// racing calls exactly one succeeds.
func (s *Orders) UpdateStatus(ctx context.Context, p models.Principal, orderID string, newStatus models.OrderStatus) (*models.Order, error) {
	if newStatus != models.OrderStatusCompleted && newStatus != models.OrderStatusCancelled {
		return nil, errIllegalTransition("", string(newStatus))
	}
	order, err := s.store.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	switch newStatus {
	case models.OrderStatusCompleted:
		switch p.Role {
		case models.RoleAdmin:
		case models.RoleManager:
			ok, err := s.referencesRestaurant(ctx, order, p.RestaurantID)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, errForbidden("order does not belong to your restaurant")
			}
		default:
			return nil, errForbidden("only staff may complete orders")
		}
	case models.OrderStatusCancelled:
		switch p.Role {
		case models.RoleAdmin:
		case models.RoleManager:
			ok, err := s.referencesRestaurant(ctx, order, p.RestaurantID)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, errForbidden("order does not belong to your restaurant")
			}
		case models.RoleCustomer:
			if order.UserID != p.UserID {
				return nil, errForbidden("customers may only cancel their own orders")
			}
		default:
			return nil, errForbidden("unknown role")
		}
	}
	return s.store.UpdateStatus(ctx, orderID, newStatus)
}

// Delete removes a pending order. Admin only; terminal orders are
// rejected by the store.
func (s *Orders) Delete(ctx context.Context, p models.Principal, orderID string) error {
	if p.Role != models.RoleAdmin {
		return errForbidden("only admins may delete orders")
	}
	return s.store.Delete(ctx, orderID)
}

// referencesRestaurant reports whether any line item of the order
// belongs to the given restaurant. Restaurant affiliation is derived
// through the line items' menu items; snapshots keep the item ids, so
// the catalog still resolves them.
func (s *Orders) referencesRestaurant(ctx context.Context, order *models.Order, restaurantID int64) (bool, error) {
	for _, li := range order.LineItems {
		item, err := s.catalog.LookupMenuItem(ctx, li.MenuItemID)
		if err != nil {
			if KindOf(err) == KindItemNotFound {
				continue
			}
			return false, err
		}
		if item.RestaurantID == restaurantID {
			return true, nil
		}
	}
	return false, nil
}

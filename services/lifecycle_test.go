package services

import (
	"context"
	"sync"
	"testing"

	"food-orders/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	customer      = models.Principal{UserID: "00000000-0000-0000-0000-000000000001", Role: models.RoleCustomer}
	otherCustomer = models.Principal{UserID: "00000000-0000-0000-0000-000000000009", Role: models.RoleCustomer}
	manager       = models.Principal{UserID: "00000000-0000-0000-0000-000000000002", Role: models.RoleManager, RestaurantID: 10}
	otherManager  = models.Principal{UserID: "00000000-0000-0000-0000-000000000008", Role: models.RoleManager, RestaurantID: 20}
	admin         = models.Principal{UserID: "00000000-0000-0000-0000-000000000003", Role: models.RoleAdmin}
)

func newTestOrders(t *testing.T) (*Orders, *MemoryCatalog, *MemoryOrderStore) {
	t.Helper()
	catalog := seedCatalog()
	store := NewMemoryOrderStore(catalog)
	return NewOrders(catalog, store), catalog, store
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestOrders(t)

	order, err := svc.Create(ctx, customer, []CartItem{
		{MenuItemID: 1, Quantity: 2},
		{MenuItemID: 2, Quantity: 1},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, customer.UserID, order.UserID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.Money(2197), order.Total)
	assert.False(t, order.OrderedAt.IsZero())
	require.Len(t, order.LineItems, 2)
	assert.Equal(t, models.Money(899), order.LineItems[0].UnitPrice)
	assert.Equal(t, models.Money(399), order.LineItems[1].UnitPrice)
}

func TestCreateOrderPersistsNothingOnFailure(t *testing.T) {
	ctx := context.Background()
	svc, _, store := newTestOrders(t)

	tests := []struct {
		name string
		cart []CartItem
		kind Kind
	}{
		{"unknown item", []CartItem{{MenuItemID: 1, Quantity: 1}, {MenuItemID: 999, Quantity: 1}}, KindItemNotFound},
		{"unavailable item", []CartItem{{MenuItemID: 1, Quantity: 1}, {MenuItemID: 4, Quantity: 1}}, KindItemUnavailable},
		{"bad quantity", []CartItem{{MenuItemID: 1, Quantity: 0}}, KindInvalidQuantity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, customer, tt.cart)
			require.Error(t, err)
			assert.Equal(t, tt.kind, KindOf(err))
			assert.Equal(t, 0, store.Len(), "repository must be unchanged")
		})
	}
}

func TestOrderSnapshotSurvivesCatalogPriceChange(t *testing.T) {
	ctx := context.Background()
	svc, catalog, store := newTestOrders(t)

	order, err := svc.Create(ctx, customer, []CartItem{{MenuItemID: 1, Quantity: 2}})
	require.NoError(t, err)

	item, err := catalog.LookupMenuItem(ctx, 1)
	require.NoError(t, err)
	item.Price = 9999
	catalog.Put(*item)

	got, err := store.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Money(899), got.LineItems[0].UnitPrice)
	assert.Equal(t, models.Money(1798), got.Total)
}

func TestListOrdersVisibility(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestOrders(t)

	// customer's order at restaurant 10, other customer's at restaurant 20
	mine, err := svc.Create(ctx, customer, []CartItem{{MenuItemID: 1, Quantity: 1}})
	require.NoError(t, err)
	theirs, err := svc.Create(ctx, otherCustomer, []CartItem{{MenuItemID: 3, Quantity: 1}})
	require.NoError(t, err)

	t.Run("customer sees only their own by default", func(t *testing.T) {
		orders, err := svc.List(ctx, customer, OrderFilter{})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, mine.ID, orders[0].ID)
	})

	t.Run("customer requesting their own id succeeds", func(t *testing.T) {
		orders, err := svc.List(ctx, customer, OrderFilter{UserID: customer.UserID})
		require.NoError(t, err)
		assert.Len(t, orders, 1)
	})

	t.Run("customer requesting another user is forbidden", func(t *testing.T) {
		_, err := svc.List(ctx, customer, OrderFilter{UserID: otherCustomer.UserID})
		assert.Equal(t, KindForbidden, KindOf(err))
	})

	t.Run("manager is scoped to their restaurant", func(t *testing.T) {
		orders, err := svc.List(ctx, manager, OrderFilter{})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, mine.ID, orders[0].ID)

		_, err = svc.List(ctx, manager, OrderFilter{RestaurantID: 20})
		assert.Equal(t, KindForbidden, KindOf(err))
	})

	t.Run("admin sees everything", func(t *testing.T) {
		orders, err := svc.List(ctx, admin, OrderFilter{})
		require.NoError(t, err)
		assert.Len(t, orders, 2)
	})

	t.Run("admin can filter by status and user", func(t *testing.T) {
		orders, err := svc.List(ctx, admin, OrderFilter{Status: models.OrderStatusPending, UserID: otherCustomer.UserID})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, theirs.ID, orders[0].ID)
	})
}

func TestUpdateStatusPolicy(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestOrders(t)

	newOrder := func(t *testing.T) *models.Order {
		t.Helper()
		o, err := svc.Create(ctx, customer, []CartItem{{MenuItemID: 1, Quantity: 1}})
		require.NoError(t, err)
		return o
	}

	t.Run("customer cannot complete", func(t *testing.T) {
		o := newOrder(t)
		_, err := svc.UpdateStatus(ctx, customer, o.ID, models.OrderStatusCompleted)
		assert.Equal(t, KindForbidden, KindOf(err))
	})

	t.Run("manager completes own restaurant order", func(t *testing.T) {
		o := newOrder(t)
		got, err := svc.UpdateStatus(ctx, manager, o.ID, models.OrderStatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusCompleted, got.Status)
	})

	t.Run("manager of another restaurant is forbidden", func(t *testing.T) {
		o := newOrder(t)
		_, err := svc.UpdateStatus(ctx, otherManager, o.ID, models.OrderStatusCompleted)
		assert.Equal(t, KindForbidden, KindOf(err))
	})

	t.Run("owning customer cancels", func(t *testing.T) {
		o := newOrder(t)
		got, err := svc.UpdateStatus(ctx, customer, o.ID, models.OrderStatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusCancelled, got.Status)
	})

	t.Run("another customer cannot cancel", func(t *testing.T) {
		o := newOrder(t)
		_, err := svc.UpdateStatus(ctx, otherCustomer, o.ID, models.OrderStatusCancelled)
		assert.Equal(t, KindForbidden, KindOf(err))
	})

	t.Run("transition to pending is illegal", func(t *testing.T) {
		o := newOrder(t)
		_, err := svc.UpdateStatus(ctx, admin, o.ID, models.OrderStatusPending)
		assert.Equal(t, KindIllegalTransition, KindOf(err))
	})

	t.Run("unknown order is not found", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, admin, "no-such-order", models.OrderStatusCompleted)
		assert.Equal(t, KindNotFound, KindOf(err))
	})
}

func TestStatusTransitionsHappenExactlyOnce(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestOrders(t)

	o, err := svc.Create(ctx, customer, []CartItem{{MenuItemID: 1, Quantity: 1}})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, admin, o.ID, models.OrderStatusCompleted)
	require.NoError(t, err)

	// repeating either transition from a terminal state fails
	_, err = svc.UpdateStatus(ctx, admin, o.ID, models.OrderStatusCompleted)
	assert.Equal(t, KindIllegalTransition, KindOf(err))
	_, err = svc.UpdateStatus(ctx, admin, o.ID, models.OrderStatusCancelled)
	assert.Equal(t, KindIllegalTransition, KindOf(err))
}

func TestDeleteOrder(t *testing.T) {
	ctx := context.Background()
	svc, _, store := newTestOrders(t)

	o, err := svc.Create(ctx, customer, []CartItem{{MenuItemID: 1, Quantity: 1}})
	require.NoError(t, err)

	t.Run("non-admin is forbidden", func(t *testing.T) {
		assert.Equal(t, KindForbidden, KindOf(svc.Delete(ctx, customer, o.ID)))
		assert.Equal(t, KindForbidden, KindOf(svc.Delete(ctx, manager, o.ID)))
	})

	t.Run("pending order is deleted with its line items", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, admin, o.ID))
		assert.Equal(t, 0, store.Len())
		assert.Equal(t, KindNotFound, KindOf(svc.Delete(ctx, admin, o.ID)))
	})

	t.Run("terminal order is kept as historical record", func(t *testing.T) {
		o2, err := svc.Create(ctx, customer, []CartItem{{MenuItemID: 2, Quantity: 1}})
		require.NoError(t, err)
		_, err = svc.UpdateStatus(ctx, admin, o2.ID, models.OrderStatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, KindIllegalDeletion, KindOf(svc.Delete(ctx, admin, o2.ID)))
		assert.Equal(t, 1, store.Len())
	})
}

func TestConcurrentStatusUpdatesHaveOneWinner(t *testing.T) {
	ctx := context.Background()
	svc, _, store := newTestOrders(t)

	o, err := svc.Create(ctx, customer, []CartItem{{MenuItemID: 1, Quantity: 1}})
	require.NoError(t, err)

	const n = 32
	results := make([]error, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			target := models.OrderStatusCompleted
			if i%2 == 1 {
				target = models.OrderStatusCancelled
			}
			_, results[i] = svc.UpdateStatus(ctx, admin, o.ID, target)
		}(i)
	}
	wg.Wait()

	var wins, losses int
	for _, err := range results {
		if err == nil {
			wins++
		} else {
			require.Equal(t, KindIllegalTransition, KindOf(err))
			losses++
		}
	}
	assert.Equal(t, 1, wins, "exactly one racer must win")
	assert.Equal(t, n-1, losses)

	got, err := store.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, got.Status.Terminal())
}

// End-to-end walk of the documented example: a two-burger one-fries
// cart totals 21.97, a manager completes it, and the completed order
// can no longer be deleted.
func TestOrderLifecycleEndToEnd(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestOrders(t)

	order, err := svc.Create(ctx, customer, []CartItem{
		{MenuItemID: 1, Quantity: 2}, // 8.99 each
		{MenuItemID: 2, Quantity: 1}, // 3.99
	})
	require.NoError(t, err)
	assert.Equal(t, "21.97", order.Total.String())
	assert.Equal(t, models.OrderStatusPending, order.Status)
	require.Len(t, order.LineItems, 2)

	completed, err := svc.UpdateStatus(ctx, manager, order.ID, models.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, completed.Status)
	assert.Equal(t, order.Total, completed.Total)

	assert.Equal(t, KindIllegalDeletion, KindOf(svc.Delete(ctx, admin, order.ID)))
}

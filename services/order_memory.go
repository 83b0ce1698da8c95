package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"food-orders/models"

	"github.com/google/uuid"
)

// MemoryCatalog is a Catalog backed by a map, for tests and local
// development.
type MemoryCatalog struct {
	mu    sync.RWMutex
	items map[int64]models.MenuItem
}

func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{items: make(map[int64]models.MenuItem)}
}

func (c *MemoryCatalog) Put(item models.MenuItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[item.ID] = item
}

func (c *MemoryCatalog) LookupMenuItem(_ context.Context, menuItemID int64) (*models.MenuItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[menuItemID]
	if !ok {
		return nil, errItemNotFound(menuItemID)
	}
	return &item, nil
}

// MemoryOrderStore is an OrderStore backed by a map with the same
// compare-and-set semantics as the Postgres store. The catalog is only
// consulted for the restaurant filter in Find.
type MemoryOrderStore struct {
	mu      sync.Mutex
	orders  map[string]models.Order
	catalog *MemoryCatalog
}

func NewMemoryOrderStore(catalog *MemoryCatalog) *MemoryOrderStore {
	return &MemoryOrderStore{orders: make(map[string]models.Order), catalog: catalog}
}

func (s *MemoryOrderStore) Create(_ context.Context, order *models.Order) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *order
	stored.ID = uuid.NewString()
	stored.OrderedAt = time.Now().UTC()
	stored.LineItems = append([]models.OrderLineItem(nil), order.LineItems...)
	s.orders[stored.ID] = stored
	out := copyOrder(stored)
	return &out, nil
}

func (s *MemoryOrderStore) Get(_ context.Context, orderID string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.orders[orderID]
	if !ok {
		return nil, errOrderNotFound(orderID)
	}
	out := copyOrder(stored)
	return &out, nil
}

func (s *MemoryOrderStore) Find(_ context.Context, f OrderFilter) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	for _, stored := range s.orders {
		if f.Status != "" && stored.Status != f.Status {
			continue
		}
		if f.UserID != "" && stored.UserID != f.UserID {
			continue
		}
		if f.RestaurantID != 0 && !s.referencesRestaurant(stored, f.RestaurantID) {
			continue
		}
		out = append(out, copyOrder(stored))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].OrderedAt.Equal(out[j].OrderedAt) {
			return out[i].OrderedAt.After(out[j].OrderedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *MemoryOrderStore) UpdateStatus(_ context.Context, orderID string, newStatus models.OrderStatus) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.orders[orderID]
	if !ok {
		return nil, errOrderNotFound(orderID)
	}
	if !models.ValidStatusTransition(stored.Status, newStatus) {
		return nil, errIllegalTransition(string(stored.Status), string(newStatus))
	}
	stored.Status = newStatus
	s.orders[orderID] = stored
	out := copyOrder(stored)
	return &out, nil
}

func (s *MemoryOrderStore) Delete(_ context.Context, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.orders[orderID]
	if !ok {
		return errOrderNotFound(orderID)
	}
	if stored.Status != models.OrderStatusPending {
		return errIllegalDeletion("only pending orders may be deleted; " + string(stored.Status) + " orders are kept as historical record")
	}
	delete(s.orders, orderID)
	return nil
}

// Len reports how many orders are stored.
func (s *MemoryOrderStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func (s *MemoryOrderStore) referencesRestaurant(o models.Order, restaurantID int64) bool {
	if s.catalog == nil {
		return false
	}
	for _, li := range o.LineItems {
		item, err := s.catalog.LookupMenuItem(context.Background(), li.MenuItemID)
		if err != nil {
			continue
		}
		if item.RestaurantID == restaurantID {
			return true
		}
	}
	return false
}

func copyOrder(o models.Order) models.Order {
	o.LineItems = append([]models.OrderLineItem(nil), o.LineItems...)
	return o
}

package services

import (
	"context"
	"errors"

	"food-orders/db"
	"food-orders/models"

	"github.com/jackc/pgx/v5"
)

// Catalog is the read side of the catalog store as the order engine
// sees it. Lookups always reflect the catalog's current state; results
// are never cached, because a stale price would leak into a snapshot.
type Catalog interface {
	// LookupMenuItem returns the item regardless of its availability
	// flag; callers decide what unavailability means for them. A
	// missing id fails with KindItemNotFound.
	LookupMenuItem(ctx context.Context, menuItemID int64) (*models.MenuItem, error)
}

// PGCatalog reads menu items from Postgres.
type PGCatalog struct{}

func (PGCatalog) LookupMenuItem(ctx context.Context, menuItemID int64) (*models.MenuItem, error) {
	m := models.MenuItem{ID: menuItemID}
	err := db.Pool.QueryRow(ctx, `
		SELECT restaurant_id, name, COALESCE(description, ''), category, price,
			COALESCE(image, ''), is_available, is_popular
		FROM menu_items WHERE id = $1`,
		menuItemID,
	).Scan(&m.RestaurantID, &m.Name, &m.Description, &m.Category, &m.Price,
		&m.Image, &m.Available, &m.Popular)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errItemNotFound(menuItemID)
		}
		return nil, storageErr("lookup menu item", err)
	}
	return &m, nil
}

// GetRestaurant returns one restaurant row.
func GetRestaurant(ctx context.Context, id int64) (*models.Restaurant, error) {
	r := models.Restaurant{ID: id}
	err := db.Pool.QueryRow(ctx, `
		SELECT name, COALESCE(location, ''), COALESCE(description, ''), rating,
			COALESCE(image, ''), is_active
		FROM restaurants WHERE id = $1`,
		id,
	).Scan(&r.Name, &r.Location, &r.Description, &r.Rating, &r.Image, &r.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &Error{Kind: KindNotFound, Msg: "restaurant not found"}
		}
		return nil, storageErr("get restaurant", err)
	}
	return &r, nil
}

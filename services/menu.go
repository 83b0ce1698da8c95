package services

import (
	"context"
	"errors"
	"fmt"

	"food-orders/db"
	"food-orders/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// listMenuItemsQuery narrows the available-items listing by category
// and/or restaurant; "All" means no category constraint.
func listMenuItemsQuery(category string, restaurantID int64) (string, []any) {
	query := `
		SELECT id, restaurant_id, name, COALESCE(description, ''), category, price,
			COALESCE(image, ''), is_available, is_popular
		FROM menu_items
		WHERE is_available`
	var args []any
	if category != "" && category != "All" {
		args = append(args, category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if restaurantID != 0 {
		args = append(args, restaurantID)
		query += fmt.Sprintf(" AND restaurant_id = $%d", len(args))
	}
	query += ` ORDER BY is_popular DESC, id`
	return query, args
}

// ListMenuItems returns available menu items, most popular first,
// optionally narrowed by category and/or restaurant.
func ListMenuItems(ctx context.Context, category string, restaurantID int64) ([]models.MenuItem, error) {
	query, args := listMenuItemsQuery(category, restaurantID)
	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list menu items", err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var m models.MenuItem
		if err := rows.Scan(&m.ID, &m.RestaurantID, &m.Name, &m.Description, &m.Category,
			&m.Price, &m.Image, &m.Available, &m.Popular); err != nil {
			return nil, storageErr("scan menu item", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// CreateMenuItemInput is the admin payload for a new catalog item.
type CreateMenuItemInput struct {
	RestaurantID int64        `json:"restaurantId"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Category     string       `json:"category"`
	Price        models.Money `json:"price"`
	Image        string       `json:"image"`
	Popular      bool         `json:"isPopular"`
}

func (in CreateMenuItemInput) validate() error {
	if in.Name == "" {
		return errInvalidInput("name is required")
	}
	if in.Category == "" {
		return errInvalidInput("category is required")
	}
	if in.RestaurantID == 0 {
		return errInvalidInput("restaurantId is required")
	}
	if in.Price < 0 {
		return errInvalidInput("price must be >= 0")
	}
	return nil
}

func CreateMenuItem(ctx context.Context, in CreateMenuItemInput) (*models.MenuItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var id int64
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO menu_items (restaurant_id, name, description, category, price, image, is_popular)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, NULLIF($6, ''), $7)
		RETURNING id`,
		in.RestaurantID, in.Name, in.Description, in.Category, in.Price, in.Image, in.Popular,
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, &Error{Kind: KindNotFound, Msg: "restaurant not found"}
		}
		return nil, storageErr("create menu item", err)
	}
	return &models.MenuItem{
		ID: id, RestaurantID: in.RestaurantID, Name: in.Name, Description: in.Description,
		Category: in.Category, Price: in.Price, Image: in.Image, Available: true, Popular: in.Popular,
	}, nil
}

// UpdateMenuItemInput carries the mutable catalog fields. Nil pointers
// leave the stored value untouched.
type UpdateMenuItemInput struct {
	Name      *string       `json:"name"`
	Category  *string       `json:"category"`
	Price     *models.Money `json:"price"`
	Available *bool         `json:"isAvailable"`
	Popular   *bool         `json:"isPopular"`
}

func UpdateMenuItem(ctx context.Context, id int64, in UpdateMenuItemInput) (*models.MenuItem, error) {
	if in.Price != nil && *in.Price < 0 {
		return nil, errInvalidInput("price must be >= 0")
	}
	var m models.MenuItem
	err := db.Pool.QueryRow(ctx, `
		UPDATE menu_items SET
			name = COALESCE($2, name),
			category = COALESCE($3, category),
			price = COALESCE($4, price),
			is_available = COALESCE($5, is_available),
			is_popular = COALESCE($6, is_popular),
			updated_at = now()
		WHERE id = $1
		RETURNING id, restaurant_id, name, COALESCE(description, ''), category, price,
			COALESCE(image, ''), is_available, is_popular`,
		id, in.Name, in.Category, in.Price, in.Available, in.Popular,
	).Scan(&m.ID, &m.RestaurantID, &m.Name, &m.Description, &m.Category,
		&m.Price, &m.Image, &m.Available, &m.Popular)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errItemNotFound(id)
		}
		return nil, storageErr("update menu item", err)
	}
	return &m, nil
}

// DeleteMenuItem removes a catalog item. Items already referenced by
// order line items must stay so that snapshots keep resolving; those
// should be marked unavailable instead.
func DeleteMenuItem(ctx context.Context, id int64) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return errIllegalDeletion("menu item is referenced by existing orders; mark it unavailable instead")
		}
		return storageErr("delete menu item", err)
	}
	if tag.RowsAffected() == 0 {
		return errItemNotFound(id)
	}
	return nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

package services

import (
	"context"
	"errors"
	"strconv"

	"food-orders/db"
	"food-orders/models"

	"github.com/jackc/pgx/v5"
)

// PGOrderStore implements OrderStore on the orders and order_items
// tables.
type PGOrderStore struct{}

func (PGOrderStore) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, storageErr("begin create order", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stored := *order
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, status, total)
		VALUES ($1, $2, $3)
		RETURNING id::text, ordered_at`,
		order.UserID, order.Status, order.Total,
	).Scan(&stored.ID, &stored.OrderedAt)
	if err != nil {
		// Retrying cannot help an owner the identity service no longer
		// vouches for.
		if isForeignKeyViolation(err) {
			return nil, errInvalidInput("order owner " + order.UserID + " is not a known user")
		}
		return nil, storageErr("insert order", err)
	}

	for seq, li := range order.LineItems {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (order_id, seq, menu_item_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)`,
			stored.ID, seq+1, li.MenuItemID, li.Quantity, li.UnitPrice,
		)
		if err != nil {
			// A menu item deleted between pricing and commit.
			if isForeignKeyViolation(err) {
				return nil, errItemNotFound(li.MenuItemID)
			}
			return nil, storageErr("insert order line item", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, storageErr("commit create order", err)
	}
	return &stored, nil
}

func (PGOrderStore) Get(ctx context.Context, orderID string) (*models.Order, error) {
	var o models.Order
	err := db.Pool.QueryRow(ctx, `
		SELECT id::text, user_id::text, status, total, ordered_at
		FROM orders WHERE id = $1`,
		orderID,
	).Scan(&o.ID, &o.UserID, &o.Status, &o.Total, &o.OrderedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errOrderNotFound(orderID)
		}
		return nil, storageErr("get order", err)
	}
	items, err := lineItemsFor(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.LineItems = items[o.ID]
	return &o, nil
}

// findOrdersQuery builds the conjunctive filter query; every set
// OrderFilter field becomes one AND clause.
func findOrdersQuery(f OrderFilter) (string, []any) {
	query := `
		SELECT o.id::text, o.user_id::text, o.status, o.total, o.ordered_at
		FROM orders o WHERE true`
	var args []any
	if f.Status != "" {
		args = append(args, f.Status)
		query += ` AND o.status = $` + strconv.Itoa(len(args))
	}
	if f.UserID != "" {
		args = append(args, f.UserID)
		query += ` AND o.user_id = $` + strconv.Itoa(len(args))
	}
	if f.RestaurantID != 0 {
		args = append(args, f.RestaurantID)
		query += ` AND EXISTS (
			SELECT 1 FROM order_items oi
			JOIN menu_items mi ON mi.id = oi.menu_item_id
			WHERE oi.order_id = o.id AND mi.restaurant_id = $` + strconv.Itoa(len(args)) + `)`
	}
	query += ` ORDER BY o.ordered_at DESC, o.id DESC`
	return query, args
}

func (PGOrderStore) Find(ctx context.Context, f OrderFilter) ([]models.Order, error) {
	query, args := findOrdersQuery(f)
	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("find orders", err)
	}
	defer rows.Close()

	var orders []models.Order
	var ids []string
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.Total, &o.OrderedAt); err != nil {
			return nil, storageErr("scan order", err)
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("find orders", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	items, err := lineItemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].LineItems = items[orders[i].ID]
	}
	return orders, nil
}

func (PGOrderStore) UpdateStatus(ctx context.Context, orderID string, newStatus models.OrderStatus) (*models.Order, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, storageErr("begin status update", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var fromStatus models.OrderStatus
	err = tx.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1`, orderID).Scan(&fromStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errOrderNotFound(orderID)
		}
		return nil, storageErr("read order status", err)
	}
	if !models.ValidStatusTransition(fromStatus, newStatus) {
		return nil, errIllegalTransition(string(fromStatus), string(newStatus))
	}

	// Compare-and-set against the status read above: a concurrent
	// transition that committed first leaves no matching row, and this
	// call loses with an illegal-transition failure.
	var o models.Order
	err = tx.QueryRow(ctx, `
		UPDATE orders SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3
		RETURNING id::text, user_id::text, status, total, ordered_at`,
		newStatus, orderID, fromStatus,
	).Scan(&o.ID, &o.UserID, &o.Status, &o.Total, &o.OrderedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errIllegalTransition(string(fromStatus), string(newStatus))
		}
		return nil, storageErr("update order status", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, storageErr("commit status update", err)
	}

	items, err := lineItemsFor(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.LineItems = items[o.ID]
	return &o, nil
}

func (PGOrderStore) Delete(ctx context.Context, orderID string) error {
	// Line items go with the order via ON DELETE CASCADE, so a single
	// guarded DELETE is already atomic.
	tag, err := db.Pool.Exec(ctx, `
		DELETE FROM orders WHERE id = $1 AND status = $2`,
		orderID, models.OrderStatusPending,
	)
	if err != nil {
		return storageErr("delete order", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var status models.OrderStatus
	err = db.Pool.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1`, orderID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errOrderNotFound(orderID)
		}
		return storageErr("read order status", err)
	}
	return errIllegalDeletion("only pending orders may be deleted; " + string(status) + " orders are kept as historical record")
}

func lineItemsFor(ctx context.Context, orderIDs []string) (map[string][]models.OrderLineItem, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT order_id::text, menu_item_id, quantity, unit_price
		FROM order_items WHERE order_id = ANY($1)
		ORDER BY order_id, seq`,
		orderIDs,
	)
	if err != nil {
		return nil, storageErr("load line items", err)
	}
	defer rows.Close()

	out := make(map[string][]models.OrderLineItem, len(orderIDs))
	for rows.Next() {
		var orderID string
		var li models.OrderLineItem
		if err := rows.Scan(&orderID, &li.MenuItemID, &li.Quantity, &li.UnitPrice); err != nil {
			return nil, storageErr("scan line item", err)
		}
		out[orderID] = append(out[orderID], li)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("load line items", err)
	}
	return out, nil
}

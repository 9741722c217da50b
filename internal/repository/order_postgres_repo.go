package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/soujanya-a-n1/FoodSphere/internal/domain"
)

type postgresOrderRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresOrderRepository(db *sql.DB, logger *logrus.Logger) domain.OrderRepository {
	return &postgresOrderRepository{
		db:  db,
		log: logger,
	}
}

// CreateOrder writes the order row, its items and the user_orders
// cross-reference in one transaction, so an order is never visible
// standalone without also being indexed under its user.
func (r *postgresOrderRepository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.log.Errorf("Repository: Failed to begin transaction: %v", err)
		return nil, fmt.Errorf("could not start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.log.Errorf("Repository: Failed to rollback transaction: %v (original error: %v)", rbErr, err)
			}
		} else {
			if cErr := tx.Commit(); cErr != nil {
				err = fmt.Errorf("failed to commit transaction: %w", cErr)
				r.log.Errorf("Repository: %v", err)
			}
		}
	}()

	orderQuery := `
        INSERT INTO orders (order_number, user_id, restaurant_id, total_price, tax, delivery_fee,
                            delivery_address, payment_method, status, estimated_delivery_minutes)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, status, created_at, updated_at`

	err = tx.QueryRowContext(ctx, orderQuery,
		order.OrderNumber,
		order.UserID,
		order.RestaurantID,
		order.TotalPrice,
		order.Tax,
		order.DeliveryFee,
		order.DeliveryAddress,
		order.PaymentMethod,
		order.Status,
		order.EstimatedDeliveryMinutes,
	).Scan(&order.ID, &order.Status, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		r.log.Errorf("Repository: Failed to insert order for user %d: %v", order.UserID, err)
		return nil, fmt.Errorf("could not create order entry: %w", err)
	}

	itemQuery := `
        INSERT INTO order_items (order_id, menu_item_id, quantity, unit_price)
        VALUES ($1, $2, $3, $4)`

	stmt, err := tx.PrepareContext(ctx, itemQuery)
	if err != nil {
		r.log.Errorf("Repository: Failed to prepare order item statement: %v", err)
		return nil, fmt.Errorf("could not prepare item statement: %w", err)
	}
	defer stmt.Close()

	for i := range order.Items {
		item := &order.Items[i]
		if _, err = stmt.ExecContext(ctx, order.ID, item.MenuItemID, item.Quantity, item.UnitPrice); err != nil {
			r.log.Errorf("Repository: Failed to insert order item (menu_item_id: %d) for order %d: %v", item.MenuItemID, order.ID, err)
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" {
				return nil, fmt.Errorf("%w: invalid item data (menu_item_id: %d): %s", domain.ErrValidation, item.MenuItemID, pqErr.Message)
			}
			return nil, fmt.Errorf("could not create order item (menu_item_id: %d): %w", item.MenuItemID, err)
		}
	}

	linkQuery := `INSERT INTO user_orders (user_id, order_id) VALUES ($1, $2)`
	if _, err = tx.ExecContext(ctx, linkQuery, order.UserID, order.ID); err != nil {
		r.log.Errorf("Repository: Failed to link order %d to user %d: %v", order.ID, order.UserID, err)
		return nil, fmt.Errorf("could not link order to user history: %w", err)
	}

	r.log.Infof("Repository: Order %d (%s) created with %d items for user %d", order.ID, order.OrderNumber, len(order.Items), order.UserID)
	return order, nil
}

func (r *postgresOrderRepository) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	order := &domain.Order{}
	orderQuery := `
        SELECT id, order_number, user_id, restaurant_id, total_price, tax, delivery_fee,
               delivery_address, payment_method, status, estimated_delivery_minutes, created_at, updated_at
        FROM orders
        WHERE id = $1`

	err := r.db.QueryRowContext(ctx, orderQuery, id).Scan(
		&order.ID,
		&order.OrderNumber,
		&order.UserID,
		&order.RestaurantID,
		&order.TotalPrice,
		&order.Tax,
		&order.DeliveryFee,
		&order.DeliveryAddress,
		&order.PaymentMethod,
		&order.Status,
		&order.EstimatedDeliveryMinutes,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Order with ID %d not found", id)
			return nil, fmt.Errorf("%w: order with id %d", domain.ErrNotFound, id)
		}
		r.log.Errorf("Repository: Failed to get order by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not retrieve order: %w", err)
	}

	items, err := r.getOrderItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

func (r *postgresOrderRepository) getOrderItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	itemsQuery := `
        SELECT menu_item_id, quantity, unit_price
        FROM order_items
        WHERE order_id = $1
        ORDER BY id`

	rows, err := r.db.QueryContext(ctx, itemsQuery, orderID)
	if err != nil {
		r.log.Errorf("Repository: Failed to query order items for order ID %d: %v", orderID, err)
		return nil, fmt.Errorf("could not retrieve order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.MenuItemID, &item.Quantity, &item.UnitPrice); err != nil {
			r.log.Errorf("Repository: Failed to scan order item row for order ID %d: %v", orderID, err)
			return nil, fmt.Errorf("error scanning order item: %w", err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Repository: Error during order items iteration for order ID %d: %v", orderID, err)
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}

func (r *postgresOrderRepository) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	query := `
        UPDATE orders
        SET status = $1, updated_at = NOW()
        WHERE id = $2
        RETURNING id, order_number, user_id, restaurant_id, total_price, tax, delivery_fee,
                  delivery_address, payment_method, status, estimated_delivery_minutes, created_at, updated_at`

	order := &domain.Order{}
	err := r.db.QueryRowContext(ctx, query, status, id).Scan(
		&order.ID,
		&order.OrderNumber,
		&order.UserID,
		&order.RestaurantID,
		&order.TotalPrice,
		&order.Tax,
		&order.DeliveryFee,
		&order.DeliveryAddress,
		&order.PaymentMethod,
		&order.Status,
		&order.EstimatedDeliveryMinutes,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Order with ID %d not found for status update", id)
			return nil, fmt.Errorf("%w: order with id %d", domain.ErrNotFound, id)
		}
		r.log.Errorf("Repository: Failed to update status for order ID %d: %v", id, err)
		return nil, fmt.Errorf("could not update order status: %w", err)
	}

	items, err := r.getOrderItems(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order status updated, but failed to retrieve items: %w", err)
	}
	order.Items = items

	r.log.Infof("Repository: Order %d status updated to '%s'", order.ID, order.Status)
	return order, nil
}

// ListOrdersByUserID reads through the user_orders cross-reference,
// newest orders first.
func (r *postgresOrderRepository) ListOrdersByUserID(ctx context.Context, userID int64) ([]domain.Order, error) {
	ordersQuery := `
        SELECT o.id, o.order_number, o.user_id, o.restaurant_id, o.total_price, o.tax, o.delivery_fee,
               o.delivery_address, o.payment_method, o.status, o.estimated_delivery_minutes, o.created_at, o.updated_at
        FROM orders o
        JOIN user_orders uo ON uo.order_id = o.id
        WHERE uo.user_id = $1
        ORDER BY o.created_at DESC`

	rows, err := r.db.QueryContext(ctx, ordersQuery, userID)
	if err != nil {
		r.log.Errorf("Repository: Failed to list orders for user ID %d: %v", userID, err)
		return nil, fmt.Errorf("could not retrieve orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	var orderIDs []int64

	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.OrderNumber,
			&order.UserID,
			&order.RestaurantID,
			&order.TotalPrice,
			&order.Tax,
			&order.DeliveryFee,
			&order.DeliveryAddress,
			&order.PaymentMethod,
			&order.Status,
			&order.EstimatedDeliveryMinutes,
			&order.CreatedAt,
			&order.UpdatedAt,
		); err != nil {
			r.log.Errorf("Repository: Failed to scan order row for user ID %d: %v", userID, err)
			return nil, fmt.Errorf("error scanning order data: %w", err)
		}
		orders = append(orders, order)
		orderIDs = append(orderIDs, order.ID)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Repository: Error during orders iteration for user ID %d: %v", userID, err)
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if len(orders) == 0 {
		return []domain.Order{}, nil
	}

	itemsQuery := `
        SELECT order_id, menu_item_id, quantity, unit_price
        FROM order_items
        WHERE order_id = ANY($1::bigint[])
        ORDER BY order_id, id`

	itemRows, err := r.db.QueryContext(ctx, itemsQuery, pq.Array(orderIDs))
	if err != nil {
		r.log.Errorf("Repository: Failed to query items for orders %v: %v", orderIDs, err)
		return nil, fmt.Errorf("could not retrieve order items for list: %w", err)
	}
	defer itemRows.Close()

	itemsMap := make(map[int64][]domain.OrderItem)
	for itemRows.Next() {
		var item domain.OrderItem
		var orderID int64
		if err := itemRows.Scan(&orderID, &item.MenuItemID, &item.Quantity, &item.UnitPrice); err != nil {
			r.log.Errorf("Repository: Failed to scan order item row during multi-order fetch: %v", err)
			return nil, fmt.Errorf("error scanning order item data for list: %w", err)
		}
		itemsMap[orderID] = append(itemsMap[orderID], item)
	}
	if err = itemRows.Err(); err != nil {
		r.log.Errorf("Repository: Error during multi-order items iteration: %v", err)
		return nil, fmt.Errorf("error iterating order items for list: %w", err)
	}

	for i := range orders {
		if items, ok := itemsMap[orders[i].ID]; ok {
			orders[i].Items = items
		} else {
			orders[i].Items = []domain.OrderItem{}
		}
	}

	r.log.Debugf("Repository: Retrieved %d orders for user ID %d", len(orders), userID)
	return orders, nil
}

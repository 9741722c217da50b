package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/soujanya-a-n1/FoodSphere/internal/domain"
)

type postgresCatalogRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresCatalogRepository(db *sql.DB, logger *logrus.Logger) domain.CatalogRepository {
	return &postgresCatalogRepository{
		db:  db,
		log: logger,
	}
}

const restaurantColumns = `id, name, description, cuisine, rating, delivery_time_minutes,
    delivery_fee, min_order, address, phone, email, image, is_open, created_at`

func scanRestaurant(row interface{ Scan(...interface{}) error }, r *domain.Restaurant) error {
	return row.Scan(
		&r.ID,
		&r.Name,
		&r.Description,
		&r.Cuisine,
		&r.Rating,
		&r.DeliveryTimeMinutes,
		&r.DeliveryFee,
		&r.MinOrder,
		&r.Address,
		&r.Phone,
		&r.Email,
		&r.Image,
		&r.IsOpen,
		&r.CreatedAt,
	)
}

func (r *postgresCatalogRepository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.log.Errorf("Repository: Failed to list restaurants: %v", err)
		return nil, fmt.Errorf("could not retrieve restaurants: %w", err)
	}
	defer rows.Close()

	var restaurants []domain.Restaurant
	for rows.Next() {
		var restaurant domain.Restaurant
		if err := scanRestaurant(rows, &restaurant); err != nil {
			r.log.Errorf("Repository: Failed to scan restaurant row: %v", err)
			return nil, fmt.Errorf("error scanning restaurant: %w", err)
		}
		restaurants = append(restaurants, restaurant)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating restaurants: %w", err)
	}

	if restaurants == nil {
		restaurants = []domain.Restaurant{}
	}
	return restaurants, nil
}

func (r *postgresCatalogRepository) GetRestaurantByID(ctx context.Context, id int64) (*domain.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = $1`

	restaurant := &domain.Restaurant{}
	err := scanRestaurant(r.db.QueryRowContext(ctx, query, id), restaurant)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: restaurant with id %d", domain.ErrNotFound, id)
		}
		r.log.Errorf("Repository: Failed to get restaurant by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not retrieve restaurant: %w", err)
	}

	return restaurant, nil
}

func (r *postgresCatalogRepository) CreateRestaurant(ctx context.Context, restaurant *domain.Restaurant) (*domain.Restaurant, error) {
	query := `
        INSERT INTO restaurants (name, description, cuisine, rating, delivery_time_minutes,
                                 delivery_fee, min_order, address, phone, email, image, is_open)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		restaurant.Name,
		restaurant.Description,
		restaurant.Cuisine,
		restaurant.Rating,
		restaurant.DeliveryTimeMinutes,
		restaurant.DeliveryFee,
		restaurant.MinOrder,
		restaurant.Address,
		restaurant.Phone,
		restaurant.Email,
		restaurant.Image,
		restaurant.IsOpen,
	).Scan(&restaurant.ID, &restaurant.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" {
			return nil, fmt.Errorf("%w: restaurant data constraint violation: %s", domain.ErrValidation, pqErr.Message)
		}
		r.log.Errorf("Repository: Failed to create restaurant '%s': %v", restaurant.Name, err)
		return nil, fmt.Errorf("could not create restaurant: %w", err)
	}

	r.log.Infof("Repository: Restaurant created with ID: %d, Name: %s", restaurant.ID, restaurant.Name)
	return restaurant, nil
}

func (r *postgresCatalogRepository) UpdateRestaurant(ctx context.Context, id int64, updates map[string]interface{}) (*domain.Restaurant, error) {
	if len(updates) == 0 {
		return r.GetRestaurantByID(ctx, id)
	}

	allowed := map[string]string{
		"name":          "name",
		"description":   "description",
		"cuisine":       "cuisine",
		"rating":        "rating",
		"delivery_time": "delivery_time_minutes",
		"delivery_fee":  "delivery_fee",
		"min_order":     "min_order",
		"address":       "address",
		"phone":         "phone",
		"email":         "email",
		"image":         "image",
		"is_open":       "is_open",
	}

	args := []interface{}{}
	setClauses := []string{}
	argCounter := 1

	for key, value := range updates {
		column, ok := allowed[key]
		if !ok {
			r.log.Warnf("Repository: Skipping unknown field '%s' in restaurant update for ID %d", key, id)
			continue
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argCounter))
		args = append(args, value)
		argCounter++
	}

	if len(setClauses) == 0 {
		return r.GetRestaurantByID(ctx, id)
	}

	query := "UPDATE restaurants SET " + strings.Join(setClauses, ", ") +
		fmt.Sprintf(" WHERE id = $%d RETURNING ", argCounter) + restaurantColumns
	args = append(args, id)

	restaurant := &domain.Restaurant{}
	err := scanRestaurant(r.db.QueryRowContext(ctx, query, args...), restaurant)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: restaurant with id %d", domain.ErrNotFound, id)
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" {
			return nil, fmt.Errorf("%w: restaurant data constraint violation: %s", domain.ErrValidation, pqErr.Message)
		}
		r.log.Errorf("Repository: Failed to update restaurant ID %d: %v", id, err)
		return nil, fmt.Errorf("could not update restaurant: %w", err)
	}

	r.log.Infof("Repository: Restaurant %d updated (%d fields)", id, len(setClauses))
	return restaurant, nil
}

const menuItemColumns = `id, restaurant_id, name, description, price, category, available, created_at`

func scanMenuItem(row interface{ Scan(...interface{}) error }, m *domain.MenuItem) error {
	return row.Scan(
		&m.ID,
		&m.RestaurantID,
		&m.Name,
		&m.Description,
		&m.Price,
		&m.Category,
		&m.Available,
		&m.CreatedAt,
	)
}

func (r *postgresCatalogRepository) ListMenuItems(ctx context.Context, restaurantID int64) ([]domain.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE restaurant_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, restaurantID)
	if err != nil {
		r.log.Errorf("Repository: Failed to list menu items for restaurant %d: %v", restaurantID, err)
		return nil, fmt.Errorf("could not retrieve menu items: %w", err)
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var item domain.MenuItem
		if err := scanMenuItem(rows, &item); err != nil {
			return nil, fmt.Errorf("error scanning menu item: %w", err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating menu items: %w", err)
	}

	if items == nil {
		items = []domain.MenuItem{}
	}
	return items, nil
}

func (r *postgresCatalogRepository) GetMenuItemsByIDs(ctx context.Context, ids []int64) ([]domain.MenuItem, error) {
	if len(ids) == 0 {
		return []domain.MenuItem{}, nil
	}

	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE id = ANY($1::bigint[])`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		r.log.Errorf("Repository: Failed to get menu items by IDs %v: %v", ids, err)
		return nil, fmt.Errorf("could not retrieve menu items: %w", err)
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var item domain.MenuItem
		if err := scanMenuItem(rows, &item); err != nil {
			return nil, fmt.Errorf("error scanning menu item: %w", err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating menu items: %w", err)
	}

	return items, nil
}

func (r *postgresCatalogRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	query := `
        INSERT INTO menu_items (restaurant_id, name, description, price, category, available)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		item.RestaurantID,
		item.Name,
		item.Description,
		item.Price,
		item.Category,
		item.Available,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23503":
				return nil, fmt.Errorf("%w: restaurant with id %d", domain.ErrNotFound, item.RestaurantID)
			case "23514":
				return nil, fmt.Errorf("%w: menu item data constraint violation: %s", domain.ErrValidation, pqErr.Message)
			}
		}
		r.log.Errorf("Repository: Failed to create menu item '%s' for restaurant %d: %v", item.Name, item.RestaurantID, err)
		return nil, fmt.Errorf("could not create menu item: %w", err)
	}

	r.log.Infof("Repository: Menu item created with ID: %d for restaurant %d", item.ID, item.RestaurantID)
	return item, nil
}

package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Restaurant struct {
	ID                  int64           `json:"id"`
	Name                string          `json:"name"`
	Description         string          `json:"description"`
	Cuisine             string          `json:"cuisine"`
	Rating              float64         `json:"rating"`
	DeliveryTimeMinutes int             `json:"delivery_time"`
	DeliveryFee         decimal.Decimal `json:"delivery_fee"`
	MinOrder            decimal.Decimal `json:"min_order"`
	Address             string          `json:"address"`
	Phone               string          `json:"phone"`
	Email               string          `json:"email"`
	Image               string          `json:"image"`
	IsOpen              bool            `json:"is_open"`
	Menu                []MenuItem      `json:"menu,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
}

type MenuItem struct {
	ID           int64           `json:"id"`
	RestaurantID int64           `json:"restaurant_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Category     string          `json:"category"`
	Available    bool            `json:"available"`
	CreatedAt    time.Time       `json:"created_at"`
}

type CatalogRepository interface {
	ListRestaurants(ctx context.Context) ([]Restaurant, error)
	GetRestaurantByID(ctx context.Context, id int64) (*Restaurant, error)
	CreateRestaurant(ctx context.Context, restaurant *Restaurant) (*Restaurant, error)
	UpdateRestaurant(ctx context.Context, id int64, updates map[string]interface{}) (*Restaurant, error)
	ListMenuItems(ctx context.Context, restaurantID int64) ([]MenuItem, error)
	GetMenuItemsByIDs(ctx context.Context, ids []int64) ([]MenuItem, error)
	CreateMenuItem(ctx context.Context, item *MenuItem) (*MenuItem, error)
}

type CatalogUseCase interface {
	ListRestaurants(ctx context.Context) ([]Restaurant, error)
	GetRestaurant(ctx context.Context, id int64) (*Restaurant, error)
	CreateRestaurant(ctx context.Context, restaurant *Restaurant) (*Restaurant, error)
	UpdateRestaurant(ctx context.Context, id int64, updates map[string]interface{}) (*Restaurant, error)
	GetMenu(ctx context.Context, restaurantID int64) ([]MenuItem, error)
	AddMenuItem(ctx context.Context, item *MenuItem) (*MenuItem, error)
}

package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/soujanya-a-n1/FoodSphere/internal/domain"
)

var _ domain.CatalogUseCase = (*catalogUseCase)(nil)

type catalogUseCase struct {
	catalogRepo domain.CatalogRepository
	log         *logrus.Logger
}

func NewCatalogUseCase(repo domain.CatalogRepository, logger *logrus.Logger) domain.CatalogUseCase {
	return &catalogUseCase{
		catalogRepo: repo,
		log:         logger,
	}
}

func (uc *catalogUseCase) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	restaurants, err := uc.catalogRepo.ListRestaurants(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list restaurants: %v", err)
		return nil, err
	}
	return restaurants, nil
}

// GetRestaurant returns the restaurant together with its menu.
func (uc *catalogUseCase) GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid restaurant ID", domain.ErrValidation)
	}

	restaurant, err := uc.catalogRepo.GetRestaurantByID(ctx, id)
	if err != nil {
		return nil, err
	}

	menu, err := uc.catalogRepo.ListMenuItems(ctx, id)
	if err != nil {
		return nil, err
	}
	restaurant.Menu = menu

	return restaurant, nil
}

func (uc *catalogUseCase) CreateRestaurant(ctx context.Context, restaurant *domain.Restaurant) (*domain.Restaurant, error) {
	restaurant.Name = strings.TrimSpace(restaurant.Name)
	if restaurant.Name == "" {
		return nil, fmt.Errorf("%w: restaurant name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(restaurant.Cuisine) == "" {
		return nil, fmt.Errorf("%w: cuisine is required", domain.ErrValidation)
	}
	if strings.TrimSpace(restaurant.Address) == "" {
		return nil, fmt.Errorf("%w: address is required", domain.ErrValidation)
	}

	if restaurant.DeliveryTimeMinutes == 0 {
		restaurant.DeliveryTimeMinutes = 30
	}
	if restaurant.Image == "" {
		restaurant.Image = "/images/default-restaurant.png"
	}
	restaurant.IsOpen = true

	created, err := uc.catalogRepo.CreateRestaurant(ctx, restaurant)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create restaurant '%s': %v", restaurant.Name, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Restaurant '%s' created with ID %d", created.Name, created.ID)
	return created, nil
}

func (uc *catalogUseCase) UpdateRestaurant(ctx context.Context, id int64, updates map[string]interface{}) (*domain.Restaurant, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid restaurant ID", domain.ErrValidation)
	}

	updated, err := uc.catalogRepo.UpdateRestaurant(ctx, id, updates)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to update restaurant %d: %v", id, err)
		return nil, err
	}
	return updated, nil
}

func (uc *catalogUseCase) GetMenu(ctx context.Context, restaurantID int64) ([]domain.MenuItem, error) {
	if restaurantID <= 0 {
		return nil, fmt.Errorf("%w: invalid restaurant ID", domain.ErrValidation)
	}
	return uc.catalogRepo.ListMenuItems(ctx, restaurantID)
}

func (uc *catalogUseCase) AddMenuItem(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	if item.RestaurantID <= 0 {
		return nil, fmt.Errorf("%w: invalid restaurant ID", domain.ErrValidation)
	}
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return nil, fmt.Errorf("%w: menu item name is required", domain.ErrValidation)
	}
	if item.Price.IsNegative() {
		return nil, fmt.Errorf("%w: menu item price cannot be negative", domain.ErrValidation)
	}
	item.Available = true

	created, err := uc.catalogRepo.CreateMenuItem(ctx, item)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to add menu item '%s' to restaurant %d: %v", item.Name, item.RestaurantID, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Menu item '%s' added to restaurant %d", created.Name, created.RestaurantID)
	return created, nil
}

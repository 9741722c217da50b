package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soujanya-a-n1/FoodSphere/internal/domain"
)

func setupCatalogUseCase(t *testing.T) (domain.CatalogUseCase, *mockCatalogRepo) {
	t.Helper()
	repo := newMockCatalogRepo()
	return NewCatalogUseCase(repo, testLogger()), repo
}

func TestCreateRestaurant(t *testing.T) {
	uc, _ := setupCatalogUseCase(t)

	restaurant, err := uc.CreateRestaurant(context.Background(), &domain.Restaurant{
		Name:    "Pizza Palace",
		Cuisine: "Italian",
		Address: "123 Pizza Street",
		Phone:   "555-1001",
		Email:   "pizzapalace@example.com",
	})

	require.NoError(t, err)
	assert.NotZero(t, restaurant.ID)
	assert.Equal(t, 30, restaurant.DeliveryTimeMinutes)
	assert.True(t, restaurant.IsOpen)
}

func TestCreateRestaurant_Validation(t *testing.T) {
	uc, _ := setupCatalogUseCase(t)

	_, err := uc.CreateRestaurant(context.Background(), &domain.Restaurant{Cuisine: "Italian", Address: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.CreateRestaurant(context.Background(), &domain.Restaurant{Name: "No Cuisine", Address: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetRestaurant_IncludesMenu(t *testing.T) {
	uc, repo := setupCatalogUseCase(t)

	created, err := uc.CreateRestaurant(context.Background(), &domain.Restaurant{
		Name: "Sushi Supreme", Cuisine: "Japanese", Address: "789 Sushi Road",
		Phone: "555-1003", Email: "sushi@example.com",
	})
	require.NoError(t, err)

	_, err = uc.AddMenuItem(context.Background(), &domain.MenuItem{
		RestaurantID: created.ID,
		Name:         "Salmon Nigiri",
	})
	require.NoError(t, err)

	restaurant, err := uc.GetRestaurant(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, restaurant.Menu, 1)
	assert.Equal(t, "Salmon Nigiri", restaurant.Menu[0].Name)

	_, ok := repo.restaurants[created.ID]
	assert.True(t, ok)
}

func TestGetRestaurant_NotFound(t *testing.T) {
	uc, _ := setupCatalogUseCase(t)

	_, err := uc.GetRestaurant(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddMenuItem_UnknownRestaurant(t *testing.T) {
	uc, _ := setupCatalogUseCase(t)

	_, err := uc.AddMenuItem(context.Background(), &domain.MenuItem{
		RestaurantID: 999,
		Name:         "Ghost Burger",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

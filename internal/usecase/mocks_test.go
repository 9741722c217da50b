package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/soujanya-a-n1/FoodSphere/internal/domain"
)

// Map-backed repository doubles, one per collaborator port.

type mockOrderRepo struct {
	mu         sync.Mutex
	nextID     int64
	orders     map[int64]domain.Order
	userOrders map[int64][]int64
	createErr  error
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{
		orders:     make(map[int64]domain.Order),
		userOrders: make(map[int64][]int64),
	}
}

func (m *mockOrderRepo) CreateOrder(_ context.Context, order *domain.Order) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createErr != nil {
		return nil, m.createErr
	}

	m.nextID++
	order.ID = m.nextID
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt

	m.orders[order.ID] = *order
	m.userOrders[order.UserID] = append(m.userOrders[order.UserID], order.ID)

	stored := m.orders[order.ID]
	return &stored, nil
}

func (m *mockOrderRepo) GetOrderByID(_ context.Context, id int64) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: order with id %d", domain.ErrNotFound, id)
	}
	return &order, nil
}

func (m *mockOrderRepo) ListOrdersByUserID(_ context.Context, userID int64) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := m.userOrders[userID]
	orders := make([]domain.Order, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		orders = append(orders, m.orders[ids[i]])
	}
	return orders, nil
}

func (m *mockOrderRepo) UpdateOrderStatus(_ context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: order with id %d", domain.ErrNotFound, id)
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	m.orders[id] = order
	return &order, nil
}

type mockCatalogRepo struct {
	restaurants map[int64]domain.Restaurant
	menuItems   map[int64]domain.MenuItem
}

func newMockCatalogRepo() *mockCatalogRepo {
	return &mockCatalogRepo{
		restaurants: make(map[int64]domain.Restaurant),
		menuItems:   make(map[int64]domain.MenuItem),
	}
}

func (m *mockCatalogRepo) ListRestaurants(_ context.Context) ([]domain.Restaurant, error) {
	restaurants := make([]domain.Restaurant, 0, len(m.restaurants))
	for _, r := range m.restaurants {
		restaurants = append(restaurants, r)
	}
	return restaurants, nil
}

func (m *mockCatalogRepo) GetRestaurantByID(_ context.Context, id int64) (*domain.Restaurant, error) {
	restaurant, ok := m.restaurants[id]
	if !ok {
		return nil, fmt.Errorf("%w: restaurant with id %d", domain.ErrNotFound, id)
	}
	return &restaurant, nil
}

func (m *mockCatalogRepo) CreateRestaurant(_ context.Context, restaurant *domain.Restaurant) (*domain.Restaurant, error) {
	restaurant.ID = int64(len(m.restaurants) + 1)
	restaurant.CreatedAt = time.Now()
	m.restaurants[restaurant.ID] = *restaurant
	return restaurant, nil
}

func (m *mockCatalogRepo) UpdateRestaurant(_ context.Context, id int64, updates map[string]interface{}) (*domain.Restaurant, error) {
	restaurant, ok := m.restaurants[id]
	if !ok {
		return nil, fmt.Errorf("%w: restaurant with id %d", domain.ErrNotFound, id)
	}
	if name, ok := updates["name"].(string); ok {
		restaurant.Name = name
	}
	m.restaurants[id] = restaurant
	return &restaurant, nil
}

func (m *mockCatalogRepo) ListMenuItems(_ context.Context, restaurantID int64) ([]domain.MenuItem, error) {
	items := []domain.MenuItem{}
	for _, item := range m.menuItems {
		if item.RestaurantID == restaurantID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (m *mockCatalogRepo) GetMenuItemsByIDs(_ context.Context, ids []int64) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	for _, id := range ids {
		if item, ok := m.menuItems[id]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func (m *mockCatalogRepo) CreateMenuItem(_ context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	if _, ok := m.restaurants[item.RestaurantID]; !ok {
		return nil, fmt.Errorf("%w: restaurant with id %d", domain.ErrNotFound, item.RestaurantID)
	}
	item.ID = int64(len(m.menuItems) + 1)
	item.CreatedAt = time.Now()
	m.menuItems[item.ID] = *item
	return item, nil
}

type mockUserRepo struct {
	mu       sync.Mutex
	nextID   int64
	users    map[int64]domain.User
	byEmail  map[string]int64
	sessions map[string]domain.Session
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:    make(map[int64]domain.User),
		byEmail:  make(map[string]int64),
		sessions: make(map[string]domain.Session),
	}
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byEmail[user.Email]; exists {
		return nil, fmt.Errorf("%w: user with email '%s'", domain.ErrAlreadyExists, user.Email)
	}

	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users[user.ID] = *user
	m.byEmail[user.Email] = user.ID

	stored := m.users[user.ID]
	return &stored, nil
}

func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("%w: user with email %s", domain.ErrNotFound, email)
	}
	user := m.users[id]
	return &user, nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user with id %d", domain.ErrNotFound, id)
	}
	return &user, nil
}

func (m *mockUserRepo) CreateSession(_ context.Context, session *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session.CreatedAt = time.Now()
	m.sessions[session.Token] = *session
	return nil
}

func (m *mockUserRepo) GetSession(_ context.Context, token string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[token]
	if !ok || session.ExpiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("%w: session not found or expired", domain.ErrUnauthorized)
	}
	return &session, nil
}

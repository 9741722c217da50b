package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/soujanya-a-n1/FoodSphere/internal/domain"
)

// Pricing constants. The total is rounded to 2 decimals at the very end;
// tax is stored unrounded (at most 3 decimals for 2-decimal unit prices).
var (
	taxRate          = decimal.NewFromFloat(0.10)
	fixedDeliveryFee = decimal.NewFromFloat(5.00)
)

const defaultEstimatedDeliveryMinutes = 30

var _ domain.OrderUseCase = (*orderUseCase)(nil)

type orderUseCase struct {
	orderRepo domain.OrderRepository
	catalog   domain.CatalogRepository
	log       *logrus.Logger
}

func NewOrderUseCase(repo domain.OrderRepository, catalog domain.CatalogRepository, logger *logrus.Logger) domain.OrderUseCase {
	return &orderUseCase{
		orderRepo: repo,
		catalog:   catalog,
		log:       logger,
	}
}

func (uc *orderUseCase) CreateOrder(ctx context.Context, input domain.CreateOrderInput) (*domain.Order, error) {
	if input.UserID <= 0 {
		return nil, fmt.Errorf("%w: invalid user ID", domain.ErrValidation)
	}
	if input.RestaurantID <= 0 {
		return nil, fmt.Errorf("%w: restaurant is required", domain.ErrValidation)
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", domain.ErrValidation)
	}
	if input.DeliveryAddress == "" {
		return nil, fmt.Errorf("%w: delivery address is required", domain.ErrValidation)
	}
	if input.PaymentMethod == "" {
		return nil, fmt.Errorf("%w: payment method is required", domain.ErrValidation)
	}
	for i, item := range input.Items {
		if item.MenuItemID <= 0 {
			return nil, fmt.Errorf("%w: item %d: invalid menu item ID", domain.ErrValidation, i)
		}
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: item %d (menu item %d): quantity must be positive", domain.ErrValidation, i, item.MenuItemID)
		}
		if item.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: item %d (menu item %d): unit price cannot be negative", domain.ErrValidation, i, item.MenuItemID)
		}
	}

	subtotal := decimal.Zero
	for _, item := range input.Items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	tax := subtotal.Mul(taxRate)
	totalPrice := subtotal.Add(tax).Add(fixedDeliveryFee).Round(2)

	// The restaurant is looked up only for its advertised delivery time.
	// A missing restaurant is not an error: creation stays permissive and
	// does not validate catalog references.
	estimatedMinutes := defaultEstimatedDeliveryMinutes
	if restaurant, err := uc.catalog.GetRestaurantByID(ctx, input.RestaurantID); err == nil {
		estimatedMinutes = restaurant.DeliveryTimeMinutes
	} else if !errors.Is(err, domain.ErrNotFound) {
		uc.log.Warnf("Use Case: Could not look up restaurant %d for delivery estimate: %v", input.RestaurantID, err)
	}

	order := &domain.Order{
		OrderNumber:              fmt.Sprintf("ORD-%d", time.Now().UnixMilli()),
		UserID:                   input.UserID,
		RestaurantID:             input.RestaurantID,
		Items:                    input.Items,
		TotalPrice:               totalPrice,
		Tax:                      tax,
		DeliveryFee:              fixedDeliveryFee,
		DeliveryAddress:          input.DeliveryAddress,
		PaymentMethod:            input.PaymentMethod,
		Status:                   domain.StatusPending,
		EstimatedDeliveryMinutes: estimatedMinutes,
	}

	created, err := uc.orderRepo.CreateOrder(ctx, order)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create order for user %d: %v", input.UserID, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Order %s (ID %d) created for user %d, total %s", created.OrderNumber, created.ID, created.UserID, created.TotalPrice)
	return created, nil
}

func (uc *orderUseCase) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid order ID", domain.ErrValidation)
	}

	order, err := uc.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get order ID %d: %v", id, err)
		return nil, err
	}

	if err := uc.resolveReferences(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (uc *orderUseCase) ListUserOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: invalid user ID", domain.ErrValidation)
	}

	orders, err := uc.orderRepo.ListOrdersByUserID(ctx, userID)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list orders for user %d: %v", userID, err)
		return nil, fmt.Errorf("could not retrieve orders for user %d: %w", userID, err)
	}

	for i := range orders {
		if err := uc.resolveReferences(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}

	uc.log.Debugf("Use Case: Retrieved %d orders for user %d", len(orders), userID)
	return orders, nil
}

// UpdateOrderStatus sets any enumerated status regardless of the current
// one; only membership in the enumeration is checked. Manual progression is
// an operational override, so no transition table is enforced here.
func (uc *orderUseCase) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid order ID", domain.ErrValidation)
	}
	if !domain.IsValidStatus(status) {
		return nil, fmt.Errorf("%w: invalid order status '%s'", domain.ErrValidation, status)
	}

	order, err := uc.orderRepo.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		uc.log.Warnf("Use Case: Failed to update status for order ID %d: %v", id, err)
		return nil, err
	}

	if err := uc.resolveReferences(ctx, order); err != nil {
		return nil, err
	}

	uc.log.Infof("Use Case: Order %d status updated to '%s'", order.ID, order.Status)
	return order, nil
}

func (uc *orderUseCase) CancelOrder(ctx context.Context, id int64) (*domain.Order, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid order ID", domain.ErrValidation)
	}

	order, err := uc.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		uc.log.Warnf("Use Case: Could not get order %d for cancellation: %v", id, err)
		return nil, err
	}

	if !order.Status.Cancellable() {
		uc.log.Warnf("Use Case: Attempt to cancel order %d in status '%s'", id, order.Status)
		return nil, fmt.Errorf("%w: cannot cancel order in current status", domain.ErrInvalidTransition)
	}

	cancelled, err := uc.orderRepo.UpdateOrderStatus(ctx, id, domain.StatusCancelled)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to cancel order %d: %v", id, err)
		return nil, err
	}

	if err := uc.resolveReferences(ctx, cancelled); err != nil {
		return nil, err
	}

	uc.log.Infof("Use Case: Order %d cancelled", cancelled.ID)
	return cancelled, nil
}

// resolveReferences performs the read-time join: the restaurant and each
// item's menu item are attached from their current catalog representation.
// Dangling references are left unresolved rather than failing the read.
func (uc *orderUseCase) resolveReferences(ctx context.Context, order *domain.Order) error {
	restaurant, err := uc.catalog.GetRestaurantByID(ctx, order.RestaurantID)
	if err == nil {
		order.Restaurant = restaurant
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	ids := lo.Uniq(lo.Map(order.Items, func(item domain.OrderItem, _ int) int64 {
		return item.MenuItemID
	}))
	menuItems, err := uc.catalog.GetMenuItemsByIDs(ctx, ids)
	if err != nil {
		return err
	}

	byID := lo.KeyBy(menuItems, func(item domain.MenuItem) int64 { return item.ID })
	for i := range order.Items {
		if item, ok := byID[order.Items[i].MenuItemID]; ok {
			resolved := item
			order.Items[i].MenuItem = &resolved
		}
	}

	return nil
}

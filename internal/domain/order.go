package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

// remember to add new statuses to the validOrderStatuses map
const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

var validOrderStatuses = map[OrderStatus]struct{}{
	StatusPending:        {},
	StatusConfirmed:      {},
	StatusPreparing:      {},
	StatusOutForDelivery: {},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

func ToOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := validOrderStatuses[status]; ok {
		return status, nil
	}
	return "", fmt.Errorf("%w: invalid order status '%s'", ErrValidation, s)
}

func IsValidStatus(status OrderStatus) bool {
	_, ok := validOrderStatuses[status]
	return ok
}

// Cancellable reports whether an order in this status may still be cancelled.
// Cancellation is the only guarded transition.
func (s OrderStatus) Cancellable() bool {
	return s == StatusPending || s == StatusConfirmed
}

type OrderItem struct {
	MenuItemID int64           `json:"menu_item_id"`
	MenuItem   *MenuItem       `json:"menu_item,omitempty"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// Order is the central entity. TotalPrice, Tax and DeliveryFee are computed
// once at creation and stored; they are never re-derived on read.
type Order struct {
	ID                       int64           `json:"id"`
	OrderNumber              string          `json:"order_number"`
	UserID                   int64           `json:"user_id"`
	RestaurantID             int64           `json:"restaurant_id"`
	Restaurant               *Restaurant     `json:"restaurant,omitempty"`
	Items                    []OrderItem     `json:"items"`
	TotalPrice               decimal.Decimal `json:"total_price"`
	Tax                      decimal.Decimal `json:"tax"`
	DeliveryFee              decimal.Decimal `json:"delivery_fee"`
	DeliveryAddress          string          `json:"delivery_address"`
	PaymentMethod            string          `json:"payment_method"`
	Status                   OrderStatus     `json:"status"`
	EstimatedDeliveryMinutes int             `json:"estimated_delivery_time"`
	CreatedAt                time.Time       `json:"created_at"`
	UpdatedAt                time.Time       `json:"updated_at"`
}

type CreateOrderInput struct {
	UserID          int64
	RestaurantID    int64
	Items           []OrderItem
	DeliveryAddress string
	PaymentMethod   string
}

type OrderRepository interface {
	// CreateOrder persists the order, its items and the user-to-order
	// cross-reference in a single transaction.
	CreateOrder(ctx context.Context, order *Order) (*Order, error)
	GetOrderByID(ctx context.Context, id int64) (*Order, error)
	ListOrdersByUserID(ctx context.Context, userID int64) ([]Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status OrderStatus) (*Order, error)
}

type OrderUseCase interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error)
	GetOrder(ctx context.Context, id int64) (*Order, error)
	ListUserOrders(ctx context.Context, userID int64) ([]Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status OrderStatus) (*Order, error)
	CancelOrder(ctx context.Context, id int64) (*Order, error)
}
